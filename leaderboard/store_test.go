// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package leaderboard

import (
	"context"
	"path/filepath"
	"testing"
)

func storeContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	prev, err := store.Previous(ctx, 1)
	if err != nil || prev != nil {
		t.Fatalf("unseen machine: prev=%v err=%v", prev, err)
	}

	if err := store.SavePrevious(ctx, 2, []HighScoreEntry{}); err != nil {
		t.Fatalf("save empty: %v", err)
	}
	prev, err = store.Previous(ctx, 2)
	if err != nil || prev == nil || len(prev) != 0 {
		t.Fatalf("saved empty list: prev=%v err=%v", prev, err)
	}

	entries := []HighScoreEntry{
		{ID: "a", Score: "300", User: &ScoreUser{Username: "ace"}},
		{Score: "200", User: &ScoreUser{Initials: "BOB"}},
		{ID: "c", Score: "100"},
	}
	if err := store.SavePrevious(ctx, 1, entries); err != nil {
		t.Fatalf("save: %v", err)
	}
	prev, err = store.Previous(ctx, 1)
	if err != nil {
		t.Fatalf("previous: %v", err)
	}
	if len(prev) != 3 {
		t.Fatalf("loaded %d entries", len(prev))
	}
	for i := range entries {
		if EntryID(prev[i]) != EntryID(entries[i]) {
			t.Fatalf("entry %d id %q, want %q", i, EntryID(prev[i]), EntryID(entries[i]))
		}
	}
	if prev[2].User != nil {
		t.Fatalf("entry without user came back with %+v", prev[2].User)
	}

	if err := store.SavePrevious(ctx, 1, entries[:1]); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	prev, _ = store.Previous(ctx, 1)
	if len(prev) != 1 {
		t.Fatalf("overwrite left %d entries", len(prev))
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	storeContract(t, store)
}

func TestMemoryStoreCopies(t *testing.T) {
	store := NewMemoryStore()
	entries := []HighScoreEntry{{ID: "a", User: &ScoreUser{Username: "ace"}}}
	store.SavePrevious(context.Background(), 1, entries)
	entries[0].User.Username = "changed"

	prev, _ := store.Previous(context.Background(), 1)
	if prev[0].User.Username != "ace" {
		t.Fatal("store shares entries with the caller")
	}
}

func TestSQLiteStore(t *testing.T) {
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()
	storeContract(t, store)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "scores.db")
	store, err := OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.SavePrevious(context.Background(), 5, []HighScoreEntry{{ID: "a", Score: "1"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	store.Close()

	store, err = OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()
	prev, err := store.Previous(context.Background(), 5)
	if err != nil || len(prev) != 1 || prev[0].ID != "a" {
		t.Fatalf("after reopen prev=%v err=%v", prev, err)
	}
}

func TestServiceDetectsAcrossRestartsWithSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")
	first := Snapshot{Machines: []Machine{machine(1, "A", entry("a", "1", "ace"))}}
	second := Snapshot{Machines: []Machine{machine(1, "A", entry("b", "2", "bob"), entry("a", "1", "ace"))}}

	store, err := OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	NewService(&scriptedSource{snaps: []Snapshot{first}}, store, nil).Refresh(context.Background())
	store.Close()

	store, err = OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()
	svc := NewService(&scriptedSource{snaps: []Snapshot{second}}, store, nil)
	messages := collect(svc.Broadcaster())
	svc.Refresh(context.Background())
	if got := messages(); len(got) != 1 || got[0] != "NEW_SCORE:A:bob:2" {
		t.Fatalf("messages = %q", got)
	}
}
