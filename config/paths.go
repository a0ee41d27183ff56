// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for celebrate configuration and data files.

package config

import (
	"os"
	"path/filepath"
)

// Dir returns the directory holding celebrate.json, the score database and
// the TUI log.
func Dir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "celebrate"), nil
}

// DataPath joins name onto Dir.
func DataPath(name string) (string, error) {
	root, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, name), nil
}

func configPath() (string, error) {
	return DataPath(configName)
}
