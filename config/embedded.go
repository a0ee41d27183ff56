// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/embedded.go
// Summary: Parses and caches the defaults embedded in the defaults package.

package config

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/framegrace/celebrate/defaults"
)

var (
	embeddedOnce sync.Once
	embedded     Config
)

func embeddedDefaults() Config {
	embeddedOnce.Do(func() {
		var cfg Config
		if err := json.Unmarshal(defaults.Config(), &cfg); err != nil {
			log.Printf("Config: Embedded defaults are invalid: %v", err)
			return
		}
		embedded = cfg
	})
	return embedded
}

// defaultConfig returns a fresh copy of the embedded defaults.
func defaultConfig() Config {
	cfg := embeddedDefaults().clone()
	if cfg == nil {
		cfg = make(Config)
	}
	return cfg
}
