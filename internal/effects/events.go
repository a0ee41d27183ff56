// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/events.go
// Summary: Triggers the leaderboard app sends to its effects.

package effects

import "time"

type EffectTriggerType int

type EffectTrigger struct {
	Type      EffectTriggerType
	Title     string
	Message   string
	Cols      int
	Rows      int
	Timestamp time.Time
}

const (
	// TriggerNewScore announces one new high score. Title and Message carry
	// the notification text.
	TriggerNewScore EffectTriggerType = iota
	// TriggerDismiss closes every open notification.
	TriggerDismiss
	// TriggerRefresh marks a completed leaderboard refresh.
	TriggerRefresh
	// TriggerResize carries the new surface size in Cols and Rows.
	TriggerResize
)
