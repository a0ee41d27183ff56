// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for celebrate.json.

package config

// Section names.
const (
	SectionCelebration = "celebration"
	SectionLeaderboard = "leaderboard"
	SectionEffects     = "effects"
)

func applyDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults(SectionCelebration, Section{
		"duration_ms": 30000,
		"fps":         60,
	})
	cfg.RegisterDefaults(SectionLeaderboard, Section{
		"scores_path":                     "",
		"db_path":                         "",
		"data_refresh_minutes":            5,
		"fireworks_duration_seconds":      30,
		"notification_auto_close_seconds": 8,
		"highlight_seconds":               10,
	})
	cfg.RegisterDefaults(SectionEffects, Section{
		"flash_color":       "#ffd700",
		"flash_duration_ms": 250,
		"toast_fade_ms":     300,
	})
}
