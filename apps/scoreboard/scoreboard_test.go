// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package scoreboard

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/celebrate/celebration"
	"github.com/framegrace/celebrate/internal/effects"
	"github.com/framegrace/celebrate/leaderboard"
	"github.com/framegrace/celebrate/registry"
	"github.com/framegrace/celebrate/texel"
)

type invocationLog struct {
	mu    sync.Mutex
	calls []string
	args  []registry.Args
}

func (l *invocationLog) command(name string) registry.Command {
	return func(args registry.Args) error {
		l.mu.Lock()
		l.calls = append(l.calls, name)
		l.args = append(l.args, args)
		l.mu.Unlock()
		return nil
	}
}

func (l *invocationLog) snapshot() ([]string, []registry.Args) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...), append([]registry.Args(nil), l.args...)
}

type swapSource struct {
	mu   sync.Mutex
	snap leaderboard.Snapshot
}

func (s *swapSource) Fetch(context.Context) (leaderboard.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap, nil
}

func (s *swapSource) set(snap leaderboard.Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

func godzilla(entries ...leaderboard.HighScoreEntry) leaderboard.Snapshot {
	return leaderboard.Snapshot{Machines: []leaderboard.Machine{{
		ID:         1,
		Online:     true,
		Model:      &leaderboard.Model{Title: &leaderboard.Title{Name: "Godzilla"}},
		HighScores: entries,
	}}}
}

func score(id, value, user string) leaderboard.HighScoreEntry {
	return leaderboard.HighScoreEntry{ID: id, Score: value, User: &leaderboard.ScoreUser{Username: user}}
}

func newTestApp(t *testing.T, src leaderboard.Source) (*scoreboardApp, *leaderboard.Service, *invocationLog) {
	t.Helper()
	calls := &invocationLog{}
	reg := registry.New()
	reg.Register(celebration.EntryPoint, calls.command(celebration.EntryPoint))
	reg.Register(celebration.SingleBurstEntryPoint, calls.command(celebration.SingleBurstEntryPoint))

	mgr := effects.NewManager()
	toast, err := effects.Create("toast", effects.EffectConfig{"fade_ms": 0, "auto_close_ms": 0})
	if err != nil {
		t.Fatalf("create toast: %v", err)
	}
	mgr.Register(toast)

	svc := leaderboard.NewService(src, nil, nil)
	app := New(svc, reg, mgr, Config{FireworksDuration: 30 * time.Second}).(*scoreboardApp)
	app.Resize(80, 24)
	return app, svc, calls
}

func screenText(buf [][]texel.Cell) string {
	var b strings.Builder
	for _, row := range buf {
		for _, c := range row {
			b.WriteRune(c.Ch)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func waitFor(t *testing.T, msg string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timeout waiting for %s", msg)
}

func TestRenderDimensions(t *testing.T) {
	app, _, _ := newTestApp(t, nil)
	buf := app.Render()
	if len(buf) != 24 || len(buf[0]) != 80 {
		t.Fatalf("unexpected buffer dimensions: %dx%d", len(buf), len(buf[0]))
	}
	if !strings.Contains(screenText(buf), "Loading machines...") {
		t.Fatal("expected the loading message before the first refresh")
	}
}

func TestNewScoreCelebratesAndHighlights(t *testing.T) {
	src := &swapSource{}
	src.set(godzilla(score("a", "1000", "ace")))
	app, svc, calls := newTestApp(t, src)

	runDone := make(chan error, 1)
	go func() { runDone <- app.Run() }()
	waitFor(t, "first refresh", func() bool { return len(svc.Machines()) == 1 })
	waitFor(t, "listener registration", func() bool { return svc.Broadcaster().Len() == 1 })

	text := screenText(app.Render())
	if !strings.Contains(text, "Godzilla") || !strings.Contains(text, "GC") || !strings.Contains(text, "1,000") {
		t.Fatalf("table missing after first refresh:\n%s", text)
	}
	if names, _ := calls.snapshot(); len(names) != 0 {
		t.Fatalf("first refresh should not celebrate, got %v", names)
	}

	src.set(godzilla(score("b", "2500000", "bob"), score("a", "1000", "ace")))
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	names, args := calls.snapshot()
	if len(names) != 1 || names[0] != celebration.EntryPoint {
		t.Fatalf("invocations = %v", names)
	}
	if ms, ok := args[0].Millis("duration_ms"); !ok || ms != 30*time.Second {
		t.Fatalf("duration_ms = %v, %v", ms, ok)
	}

	buf := app.Render()
	text = screenText(buf)
	if !strings.Contains(text, "New high score on Godzilla! bob scored 2,500,000!") {
		t.Fatalf("notification missing:\n%s", text)
	}
	highlighted := false
	for _, row := range buf {
		line := string(cellsToRunes(row))
		if strings.Contains(line, "GC") && strings.Contains(line, "bob") {
			_, bg, _ := row[0].Style.Decompose()
			_, want, _ := newRowStyle.Decompose()
			highlighted = bg == want
		}
	}
	if !highlighted {
		t.Fatalf("new first place row is not highlighted:\n%s", text)
	}

	app.Stop()
	select {
	case <-runDone:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
	if svc.Broadcaster().Len() != 0 {
		t.Fatal("listener still registered after Run returned")
	}
}

func cellsToRunes(row []texel.Cell) []rune {
	out := make([]rune, len(row))
	for i, c := range row {
		out[i] = c.Ch
	}
	return out
}

func TestNoScoresMessage(t *testing.T) {
	src := &swapSource{}
	src.set(godzilla())
	app, svc, _ := newTestApp(t, src)
	svc.Refresh(context.Background())

	if text := screenText(app.Render()); !strings.Contains(text, "No high scores yet") {
		t.Fatalf("expected empty table message:\n%s", text)
	}
}

func TestKeys(t *testing.T) {
	app, _, calls := newTestApp(t, nil)

	app.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone))
	app.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'b', tcell.ModNone))
	names, _ := calls.snapshot()
	if len(names) != 2 || names[0] != celebration.EntryPoint || names[1] != celebration.SingleBurstEntryPoint {
		t.Fatalf("invocations = %v", names)
	}

	runDone := make(chan error, 1)
	go func() { runDone <- app.Run() }()
	app.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	select {
	case err := <-runDone:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("q did not stop the app")
	}
}

func TestScrollIsClamped(t *testing.T) {
	app, _, _ := newTestApp(t, nil)
	app.HandleKey(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	app.HandleKey(tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone))
	app.Render()
	if app.scroll != 0 {
		t.Fatalf("scroll = %d, want 0 with a short page", app.scroll)
	}
}
