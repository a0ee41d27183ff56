// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: leaderboard/types.go
// Summary: Machines, high-score entries and the identity rules shared by the
// service and the table view.

package leaderboard

import "strings"

const unknownName = "Unknown"

type ScoreUser struct {
	Username string `json:"username,omitempty"`
	Name     string `json:"name,omitempty"`
	Initials string `json:"initials,omitempty"`
}

type HighScoreEntry struct {
	ID    string     `json:"id,omitempty"`
	Score string     `json:"score,omitempty"`
	User  *ScoreUser `json:"user,omitempty"`
}

type Title struct {
	Name string `json:"name"`
}

type Model struct {
	Title         *Title `json:"title,omitempty"`
	ModelTypeName string `json:"model_type_name,omitempty"`
}

// Machine is one pinball machine and its current high-score list, best first.
type Machine struct {
	ID         int64            `json:"id"`
	Archived   bool             `json:"archived"`
	Online     bool             `json:"online"`
	LastPlayed string           `json:"last_played,omitempty"`
	Model      *Model           `json:"model,omitempty"`
	HighScores []HighScoreEntry `json:"high_score"`
}

// Name returns the machine's title, or "Unknown".
func (m Machine) Name() string {
	if m.Model == nil || m.Model.Title == nil || strings.TrimSpace(m.Model.Title.Name) == "" {
		return unknownName
	}
	return m.Model.Title.Name
}

// Snapshot is everything one refresh fetches.
type Snapshot struct {
	Machines []Machine `json:"machines"`
}

// ResolveUsername picks the first non-blank of username, name and initials.
func ResolveUsername(entry HighScoreEntry) string {
	if entry.User == nil {
		return unknownName
	}
	for _, candidate := range []string{entry.User.Username, entry.User.Name, entry.User.Initials} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return unknownName
}

// EntryID identifies an entry across refreshes: its ID when set, otherwise
// player and score.
func EntryID(entry HighScoreEntry) string {
	if strings.TrimSpace(entry.ID) != "" {
		return entry.ID
	}
	return ResolveUsername(entry) + "-" + entry.Score
}
