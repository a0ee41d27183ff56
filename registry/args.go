// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/args.go
// Summary: Untyped command arguments with lenient typed accessors.

package registry

import (
	"encoding/json"
	"strconv"
	"time"
)

// Args holds JSON-compatible command parameters.
type Args map[string]interface{}

// Has reports whether key is present.
func (a Args) Has(key string) bool {
	if a == nil {
		return false
	}
	_, ok := a[key]
	return ok
}

// String returns the value at key or fallback.
func (a Args) String(key, fallback string) string {
	if raw, ok := a[key]; ok {
		if str, ok := raw.(string); ok {
			return str
		}
	}
	return fallback
}

// Float returns the value at key or fallback. Numeric strings are accepted.
func (a Args) Float(key string, fallback float64) float64 {
	if raw, ok := a[key]; ok {
		if v, ok := toFloat(raw); ok {
			return v
		}
	}
	return fallback
}

// Millis reads key as a millisecond count. ok is false when the key is
// missing or not numeric.
func (a Args) Millis(key string) (time.Duration, bool) {
	raw, ok := a[key]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case int:
		return time.Duration(v) * time.Millisecond, true
	case int64:
		return time.Duration(v) * time.Millisecond, true
	case string:
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			return time.Duration(parsed) * time.Millisecond, true
		}
		return 0, false
	}
	if f, ok := toFloat(raw); ok {
		return time.Duration(f * float64(time.Millisecond)), true
	}
	return 0, false
}

// MillisOrDefault reads key as milliseconds, falling back to fallbackMS.
func (a Args) MillisOrDefault(key string, fallbackMS int64) time.Duration {
	if d, ok := a.Millis(key); ok {
		return d
	}
	return time.Duration(fallbackMS) * time.Millisecond
}

func toFloat(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		if parsed, err := v.Float64(); err == nil {
			return parsed, true
		}
	case string:
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed, true
		}
	}
	return 0, false
}
