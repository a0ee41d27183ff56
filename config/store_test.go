// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func resetStore() {
	once = sync.Once{}
	current = nil
	loadErr = nil
}

func TestDefaultsWritten(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetStore()

	cfg := Get()
	if got := cfg.Celebration().GetInt("duration_ms", 0); got != 30000 {
		t.Fatalf("expected duration_ms 30000, got %d", got)
	}

	path, err := configPath()
	if err != nil {
		t.Fatalf("configPath: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}

	var disk Config
	if err := json.Unmarshal(data, &disk); err != nil {
		t.Fatalf("unmarshal config: %v", err)
	}
	for _, name := range []string{SectionCelebration, SectionLeaderboard, SectionEffects} {
		if disk.Section(name) == nil {
			t.Fatalf("expected %s section to be present", name)
		}
	}
}

func TestSaveWritesUpdates(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetStore()

	Set(Config{
		SectionLeaderboard: Section{
			"fireworks_duration_seconds": 5,
		},
	})
	if err := Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	path, err := configPath()
	if err != nil {
		t.Fatalf("configPath: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}

	var disk Config
	if err := json.Unmarshal(data, &disk); err != nil {
		t.Fatalf("unmarshal config: %v", err)
	}
	if got := disk.Leaderboard().GetInt("fireworks_duration_seconds", 0); got != 5 {
		t.Fatalf("expected fireworks_duration_seconds 5, got %d", got)
	}
	if got := disk.Leaderboard().GetInt("data_refresh_minutes", 0); got != 5 {
		t.Fatalf("expected defaults merged into saved config, got %d", got)
	}
}

func TestUserValuesSurviveReload(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", root)
	resetStore()

	dir := filepath.Join(root, "celebrate")
	if err := writeConfig(filepath.Join(dir, configName), Config{
		SectionEffects: Section{
			"flash_color": "#00ff00",
		},
	}); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := Get()
	if got := cfg.Effects().GetString("flash_color", ""); got != "#00ff00" {
		t.Fatalf("expected user flash_color, got %q", got)
	}
	if got := cfg.Effects().GetInt("toast_fade_ms", 0); got != 300 {
		t.Fatalf("expected toast_fade_ms default, got %d", got)
	}
}

func TestInvalidFileIsReportedAndKept(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", root)
	resetStore()

	path := filepath.Join(root, "celebrate", configName)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if Err() == nil {
		t.Fatal("expected a load error")
	}
	if got := Get().Celebration().GetInt("fps", 0); got != 60 {
		t.Fatalf("expected defaults after a bad file, got fps %d", got)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "{not json" {
		t.Fatalf("invalid file was overwritten: %q", data)
	}
}

func TestSectionGetters(t *testing.T) {
	s := Section{
		"ms":    json.Number("1500"),
		"secs":  2.5,
		"mins":  "0.5",
		"count": 7,
		"name":  "gold",
	}
	if got := s.GetMillis("ms", 0); got != 1500*time.Millisecond {
		t.Fatalf("GetMillis = %v", got)
	}
	if got := s.GetSeconds("secs", 0); got != 2500*time.Millisecond {
		t.Fatalf("GetSeconds = %v", got)
	}
	if got := s.GetMinutes("mins", 0); got != 30*time.Second {
		t.Fatalf("GetMinutes = %v", got)
	}
	if got := s.GetInt("count", 0); got != 7 {
		t.Fatalf("GetInt = %d", got)
	}
	if got := s.GetFloat("count", 0); got != 7 {
		t.Fatalf("GetFloat = %v", got)
	}
	if got := s.GetString("name", ""); got != "gold" {
		t.Fatalf("GetString = %q", got)
	}
	if got := s.GetMillis("missing", 250*time.Millisecond); got != 250*time.Millisecond {
		t.Fatalf("GetMillis default = %v", got)
	}
	if got := s.GetInt("name", 3); got != 3 {
		t.Fatalf("GetInt on a string = %d", got)
	}

	var missing Section
	if got := missing.GetString("name", "x"); got != "x" {
		t.Fatalf("nil section GetString = %q", got)
	}
}

func TestRegisterDefaultsKeepsUserValues(t *testing.T) {
	cfg := Config{SectionEffects: Section{"flash_color": "#00ff00"}}
	applyDefaults(cfg)

	if got := cfg.Effects().GetString("flash_color", ""); got != "#00ff00" {
		t.Fatalf("flash_color overwritten: %q", got)
	}
	if got := cfg.Leaderboard().GetSeconds("highlight_seconds", 0); got != 10*time.Second {
		t.Fatalf("highlight_seconds default = %v", got)
	}

	copied := cfg.clone()
	copied.Effects()["flash_color"] = "#ffffff"
	if got := cfg.Effects().GetString("flash_color", ""); got != "#00ff00" {
		t.Fatalf("clone shares sections: %q", got)
	}
}
