// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/framegrace/celebrate/config"
)

// syncBuffer guards a bytes.Buffer written from celebration goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	text := strings.TrimSpace(b.buf.String())
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func TestParseFlagsDefaultsFromConfig(t *testing.T) {
	cfg := config.Config{
		config.SectionCelebration: config.Section{"duration_ms": 5000.0, "fps": 30.0},
		config.SectionLeaderboard: config.Section{"scores_path": "/tmp/scores.json"},
	}
	opts, err := parseFlags(nil, cfg, io.Discard)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opts.duration != 5*time.Second || opts.durationSet || opts.fps != 30 || opts.scoresPath != "/tmp/scores.json" {
		t.Fatalf("unexpected options %+v", opts)
	}

	opts, err = parseFlags([]string{"-duration", "2s", "-headless"}, cfg, io.Discard)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opts.duration != 2*time.Second || !opts.durationSet || !opts.headless {
		t.Fatalf("unexpected options %+v", opts)
	}

	if _, err := parseFlags([]string{"-fps", "0"}, cfg, io.Discard); err == nil {
		t.Fatal("expected an error for -fps 0")
	}
}

func TestHeadlessDispatchesInputLines(t *testing.T) {
	input := strings.Join([]string{
		`{"id":"triggerSingleBurst"}`,
		``,
		`not json`,
		`{"id":"doesNotExist"}`,
		`{"id":"triggerCelebration","duration_ms":30}`,
	}, "\n")
	out := &syncBuffer{}

	done := make(chan error, 1)
	go func() {
		done <- runHeadless(context.Background(), options{fps: 200}, strings.NewReader(input), out)
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("runHeadless: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("headless mode did not finish after input ended")
	}

	lines := out.lines()
	if len(lines) < 2 {
		t.Fatalf("expected the single burst plus celebration bursts, got %d lines", len(lines))
	}
	var first struct {
		Type   string `json:"type"`
		Params struct {
			ParticleCount int `json:"particleCount"`
		} `json:"params"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if first.Type != "burst" || first.Params.ParticleCount != 100 {
		t.Fatalf("first line should be the single burst, got %+v", first)
	}
}

func TestHeadlessStartupCelebrationAndCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	out := &syncBuffer{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- runHeadless(ctx, options{fps: 200, duration: time.Hour, durationSet: true}, pr, out)
	}()

	deadline := time.Now().Add(time.Second)
	for len(out.lines()) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if len(out.lines()) == 0 {
		t.Fatal("startup celebration produced no bursts")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("headless mode did not stop on cancel")
	}

	n := len(out.lines())
	time.Sleep(50 * time.Millisecond)
	if len(out.lines()) != n {
		t.Fatal("bursts kept coming after cancel")
	}
	sc := bufio.NewScanner(strings.NewReader(strings.Join(out.lines(), "\n")))
	for sc.Scan() {
		if !json.Valid(sc.Bytes()) {
			t.Fatalf("invalid JSON line %q", sc.Text())
		}
	}
}
