// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/registry.go
// Summary: Named command registry for call sites that cannot hold typed references.
// Usage: main creates one Registry, packages bind their entry points on it, and key
// bindings, notifications or stdin invocations call Invoke by name.

package registry

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
)

// ErrUnknownCommand is returned by Invoke for names nothing registered.
var ErrUnknownCommand = errors.New("registry: unknown command")

// Command is an invocable entry point. Args carries untyped parameters.
type Command func(args Args) error

// Registry maps command names to entry points.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register binds name to cmd. It panics on duplicate names.
func (r *Registry) Register(name string, cmd Command) {
	if name == "" || cmd == nil {
		panic("registry: empty command registration")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.commands[name]; exists {
		panic("registry: duplicate registration for " + name)
	}
	r.commands[name] = cmd
	log.Printf("Registry: Registered command '%s'", name)
}

// Lookup fetches a command by name.
func (r *Registry) Lookup(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Invoke runs the named command with args.
func (r *Registry) Invoke(name string, args Args) error {
	cmd, ok := r.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	return cmd(args)
}

// Dispatch invokes each entry in order and joins their errors.
func (r *Registry) Dispatch(invocations []Invocation) error {
	var errs []error
	for _, inv := range invocations {
		if err := r.Invoke(inv.Name, inv.Args); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
