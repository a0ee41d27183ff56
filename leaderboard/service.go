// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: leaderboard/service.go
// Summary: Periodic leaderboard refresh with new-score detection.
// Usage: Views read Machines and NewScoreIDs and listen on the Broadcaster.
// Notes: Every refresh broadcasts exactly once, NEW_SCORE lines or REFRESH. A
// machine's highlights expire after the highlight duration, followed by REFRESH.

package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
)

var ErrNoSource = errors.New("leaderboard: no score source configured")

// DefaultHighlightDuration is how long new scores stay highlighted.
const DefaultHighlightDuration = 10 * time.Second

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithHighlightDuration sets how long new scores stay highlighted. d <= 0
// keeps them until the next refresh.
func WithHighlightDuration(d time.Duration) ServiceOption {
	return func(s *Service) { s.highlight = d }
}

// WithAfterFunc replaces time.AfterFunc for highlight expiry.
func WithAfterFunc(after func(d time.Duration, f func())) ServiceOption {
	return func(s *Service) {
		if after != nil {
			s.afterFunc = after
		}
	}
}

type Service struct {
	source      Source
	store       Store
	broadcaster *Broadcaster
	highlight   time.Duration
	afterFunc   func(d time.Duration, f func())

	// refreshMu serialises Refresh.
	refreshMu sync.Mutex

	mu           sync.RWMutex
	machines     []Machine
	newScoreIDs  map[int64]map[string]struct{}
	highlightGen map[int64]uint64
	nextGen      uint64
}

// NewService wires a service. A nil store keeps history in memory and a nil
// broadcaster gets a private one.
func NewService(source Source, store Store, broadcaster *Broadcaster, opts ...ServiceOption) *Service {
	if store == nil {
		store = NewMemoryStore()
	}
	if broadcaster == nil {
		broadcaster = NewBroadcaster()
	}
	s := &Service{
		source:       source,
		store:        store,
		broadcaster:  broadcaster,
		highlight:    DefaultHighlightDuration,
		afterFunc:    func(d time.Duration, f func()) { time.AfterFunc(d, f) },
		newScoreIDs:  make(map[int64]map[string]struct{}),
		highlightGen: make(map[int64]uint64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Broadcaster() *Broadcaster { return s.broadcaster }

// Refresh fetches a snapshot, detects new scores against the store and
// broadcasts the result. Highlights from the previous refresh are cleared
// first. Concurrent calls run one at a time.
func (s *Service) Refresh(ctx context.Context) error {
	if s.source == nil {
		return ErrNoSource
	}
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()
	log.Printf("Leaderboard: Refreshing scores")

	s.mu.Lock()
	s.newScoreIDs = make(map[int64]map[string]struct{})
	s.highlightGen = make(map[int64]uint64)
	s.mu.Unlock()

	snap, err := s.source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("leaderboard: fetch: %w", err)
	}
	if len(snap.Machines) == 0 {
		log.Printf("Leaderboard: No machines in snapshot")
		return nil
	}

	var found []NewScore
	newIDs := make(map[int64]map[string]struct{})
	for _, m := range snap.Machines {
		previous, err := s.store.Previous(ctx, m.ID)
		if err != nil {
			log.Printf("Leaderboard: Failed to load previous scores for machine %d: %v", m.ID, err)
			continue
		}
		detected := DetectNewScores(m, previous)
		for _, n := range detected {
			if newIDs[m.ID] == nil {
				newIDs[m.ID] = make(map[string]struct{})
			}
			newIDs[m.ID][n.EntryID] = struct{}{}
		}
		found = append(found, detected...)

		if m.HighScores != nil {
			if err := s.store.SavePrevious(ctx, m.ID, m.HighScores); err != nil {
				log.Printf("Leaderboard: Failed to save scores for machine %d: %v", m.ID, err)
			}
		}
	}

	expiries := make(map[int64]uint64, len(newIDs))
	s.mu.Lock()
	s.machines = snap.Machines
	s.newScoreIDs = newIDs
	if s.highlight > 0 {
		for id := range newIDs {
			s.nextGen++
			s.highlightGen[id] = s.nextGen
			expiries[id] = s.nextGen
		}
	}
	s.mu.Unlock()
	for id, gen := range expiries {
		s.afterFunc(s.highlight, func() { s.expireHighlights(id, gen) })
	}
	log.Printf("Leaderboard: Refreshed %d machines, %d new scores", len(snap.Machines), len(found))

	if len(found) == 0 {
		s.broadcaster.Broadcast(RefreshMessage)
		return nil
	}
	lines := make([]string, len(found))
	for i, n := range found {
		lines[i] = n.Message()
	}
	s.broadcaster.Broadcast(strings.Join(lines, "\n"))
	return nil
}

// expireHighlights drops a machine's highlights unless a later refresh
// replaced them.
func (s *Service) expireHighlights(machineID int64, gen uint64) {
	s.mu.Lock()
	if s.highlightGen[machineID] != gen {
		s.mu.Unlock()
		return
	}
	delete(s.highlightGen, machineID)
	delete(s.newScoreIDs, machineID)
	s.mu.Unlock()

	log.Printf("Leaderboard: Highlights expired for machine %d", machineID)
	s.broadcaster.Broadcast(RefreshMessage)
}

// Run refreshes immediately and then every interval until ctx ends.
func (s *Service) Run(ctx context.Context, interval time.Duration) error {
	if err := s.Refresh(ctx); err != nil {
		if errors.Is(err, ErrNoSource) {
			return err
		}
		log.Printf("Leaderboard: %v", err)
	}
	if interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				log.Printf("Leaderboard: %v", err)
			}
		}
	}
}

// Machines returns the machines of the last successful refresh.
func (s *Service) Machines() []Machine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Machine(nil), s.machines...)
}

// NewScoreIDs returns the entry IDs the last refresh found new on a machine,
// until they expire.
func (s *Service) NewScoreIDs(machineID int64) map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]struct{}, len(s.newScoreIDs[machineID]))
	for id := range s.newScoreIDs[machineID] {
		out[id] = struct{}{}
	}
	return out
}
