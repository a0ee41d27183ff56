// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/config.go
// Summary: Effect configuration maps and the typed readers factories use.

package effects

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/celebrate/config"
)

type EffectConfig map[string]interface{}

// ConfigFromStore builds the per-effect configs from the "effects" and
// "leaderboard" sections of celebrate.json.
func ConfigFromStore(cfg config.Config) map[string]EffectConfig {
	return map[string]EffectConfig{
		"flash": {
			"color":       cfg.Effects().GetString("flash_color", "#ffd700"),
			"duration_ms": cfg.Effects().GetInt("flash_duration_ms", 250),
		},
		"toast": {
			"fade_ms":       cfg.Effects().GetInt("toast_fade_ms", 300),
			"auto_close_ms": cfg.Leaderboard().GetSeconds("notification_auto_close_seconds", 8*time.Second).Milliseconds(),
		},
	}
}

func parseColorOrDefault(cfg EffectConfig, key string, fallback tcell.Color) tcell.Color {
	if cfg == nil {
		return fallback
	}
	if raw, ok := cfg[key]; ok {
		if str, ok := raw.(string); ok {
			if color, ok := parseHexColor(str); ok {
				return color
			}
		}
	}
	return fallback
}

func parseFloatOrDefault(cfg EffectConfig, key string, fallback float64) float64 {
	if cfg == nil {
		return fallback
	}
	if raw, ok := cfg[key]; ok {
		switch v := raw.(type) {
		case float64:
			return v
		case float32:
			return float64(v)
		case int:
			return float64(v)
		case int64:
			return float64(v)
		case json.Number:
			if parsed, err := v.Float64(); err == nil {
				return parsed
			}
		case string:
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				return parsed
			}
		}
	}
	return fallback
}

func parseDurationOrDefault(cfg EffectConfig, key string, fallbackMS int64) time.Duration {
	ms := parseFloatOrDefault(cfg, key, float64(fallbackMS))
	return time.Duration(ms * float64(time.Millisecond))
}
