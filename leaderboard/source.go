// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: leaderboard/source.go
// Summary: Where refreshes read machines and scores from.

package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

type Source interface {
	Fetch(ctx context.Context) (Snapshot, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (Snapshot, error)

func (f SourceFunc) Fetch(ctx context.Context) (Snapshot, error) { return f(ctx) }

// FileSource reads a JSON snapshot from disk on every fetch, so an external
// process can rewrite the file between refreshes.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read scores %s: %w", s.Path, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode scores %s: %w", s.Path, err)
	}
	return snap, nil
}
