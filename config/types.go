// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/types.go
// Summary: Section accessors and typed getters for celebrate.json values.
// Notes: Numbers decoded from JSON arrive as float64; defaults registered in code
// are ints. Getters accept both, plus numeric strings.

package config

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Section returns the named section or nil if missing.
func (c Config) Section(name string) Section {
	return c[name]
}

// Celebration returns the scheduler settings.
func (c Config) Celebration() Section { return c[SectionCelebration] }

// Leaderboard returns the score watching settings.
func (c Config) Leaderboard() Section { return c[SectionLeaderboard] }

// Effects returns the overlay settings.
func (c Config) Effects() Section { return c[SectionEffects] }

// RegisterDefaults fills missing keys of a section without overwriting
// values the user set.
func (c Config) RegisterDefaults(name string, defaults Section) {
	if c == nil || len(defaults) == 0 {
		return
	}
	section := c[name]
	if section == nil {
		section = make(Section, len(defaults))
		c[name] = section
	}
	for key, value := range defaults {
		if _, ok := section[key]; !ok {
			section[key] = value
		}
	}
}

func (c Config) clone() Config {
	if c == nil {
		return nil
	}
	out := make(Config, len(c))
	for name, section := range c {
		s := make(Section, len(section))
		for key, value := range section {
			s[key] = value
		}
		out[name] = s
	}
	return out
}

// GetString returns a string value or defaultValue.
func (s Section) GetString(key, defaultValue string) string {
	if v, ok := s[key].(string); ok {
		return v
	}
	return defaultValue
}

// GetFloat returns a numeric value or defaultValue.
func (s Section) GetFloat(key string, defaultValue float64) float64 {
	if v, ok := s.number(key); ok {
		return v
	}
	return defaultValue
}

// GetInt returns a numeric value truncated to an int, or defaultValue.
func (s Section) GetInt(key string, defaultValue int) int {
	if v, ok := s.number(key); ok {
		return int(v)
	}
	return defaultValue
}

// GetMillis reads a millisecond count as a duration.
func (s Section) GetMillis(key string, defaultValue time.Duration) time.Duration {
	return s.duration(key, time.Millisecond, defaultValue)
}

// GetSeconds reads a second count as a duration.
func (s Section) GetSeconds(key string, defaultValue time.Duration) time.Duration {
	return s.duration(key, time.Second, defaultValue)
}

// GetMinutes reads a minute count as a duration.
func (s Section) GetMinutes(key string, defaultValue time.Duration) time.Duration {
	return s.duration(key, time.Minute, defaultValue)
}

func (s Section) duration(key string, unit, defaultValue time.Duration) time.Duration {
	if v, ok := s.number(key); ok {
		return time.Duration(v * float64(unit))
	}
	return defaultValue
}

func (s Section) number(key string) (float64, bool) {
	switch v := s[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	return 0, false
}
