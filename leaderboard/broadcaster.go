// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: leaderboard/broadcaster.go
// Summary: Fan-out of refresh messages to every attached view.

package leaderboard

import (
	"log"
	"sync"
)

type Listener func(message string)

type subscription struct {
	id uint64
	fn Listener
}

// Broadcaster delivers messages to listeners in registration order. A
// listener that panics is dropped.
type Broadcaster struct {
	mu        sync.Mutex
	listeners []subscription
	nextID    uint64
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{}
}

// Register adds fn and returns a func that removes it again.
func (b *Broadcaster) Register(fn Listener) (unregister func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, subscription{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Broadcaster) Broadcast(message string) {
	b.mu.Lock()
	subs := append([]subscription(nil), b.listeners...)
	b.mu.Unlock()

	for _, sub := range subs {
		if !deliver(sub.fn, message) {
			b.remove(sub.id)
		}
	}
}

// Len returns the number of registered listeners.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}

func (b *Broadcaster) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sub := range b.listeners {
		if sub.id == id {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return
		}
	}
}

func deliver(fn Listener, message string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Broadcaster: Dropping listener after panic: %v", r)
			ok = false
		}
	}()
	fn(message)
	return true
}
