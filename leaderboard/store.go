// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: leaderboard/store.go
// Summary: Persistence of the last seen high-score list per machine.

package leaderboard

import (
	"context"
	"sync"
)

// Store remembers the previous high-score list of each machine.
type Store interface {
	// Previous returns the saved list, or nil if the machine was never saved.
	// A machine saved with no entries yields an empty, non-nil slice.
	Previous(ctx context.Context, machineID int64) ([]HighScoreEntry, error)
	SavePrevious(ctx context.Context, machineID int64, entries []HighScoreEntry) error
	Close() error
}

type MemoryStore struct {
	mu       sync.RWMutex
	previous map[int64][]HighScoreEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{previous: make(map[int64][]HighScoreEntry)}
}

func (s *MemoryStore) Previous(_ context.Context, machineID int64) ([]HighScoreEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries, ok := s.previous[machineID]
	if !ok {
		return nil, nil
	}
	return cloneEntries(entries), nil
}

func (s *MemoryStore) SavePrevious(_ context.Context, machineID int64, entries []HighScoreEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.previous[machineID] = cloneEntries(entries)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

func cloneEntries(entries []HighScoreEntry) []HighScoreEntry {
	out := make([]HighScoreEntry, len(entries))
	for i, e := range entries {
		out[i] = e
		if e.User != nil {
			u := *e.User
			out[i].User = &u
		}
	}
	return out
}
