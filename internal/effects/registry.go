// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/registry.go
// Summary: Factory registry for effects built from configuration.

package effects

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Factory constructs an effect given its configuration map.
type Factory func(EffectConfig) (Effect, error)

// Register associates an effect ID with a factory. It panics on duplicate IDs.
func Register(id string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[id]; exists {
		panic("effects: duplicate registration for " + id)
	}
	registry[id] = factory
}

// Lookup fetches a factory by ID.
func Lookup(id string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[id]
	return f, ok
}

// Create builds the effect registered under id.
func Create(id string, cfg EffectConfig) (Effect, error) {
	factory, ok := Lookup(id)
	if !ok {
		return nil, fmt.Errorf("effects: unknown effect %q", id)
	}
	eff, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("effects: create %q: %w", id, err)
	}
	return eff, nil
}

// RegisteredIDs returns the registered effect identifiers in sorted order.
func RegisteredIDs() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
