// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/scoreboard/scoreboard.go
// Summary: Full-screen high-score tables that celebrate new scores.
// Usage: Built by cmd/celebrate and run through devshell.Run.
// Notes: Keys are c (celebrate), b (single burst), r (refresh), q (quit), arrows scroll.

package scoreboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/celebrate/celebration"
	"github.com/framegrace/celebrate/internal/effects"
	"github.com/framegrace/celebrate/leaderboard"
	"github.com/framegrace/celebrate/registry"
	"github.com/framegrace/celebrate/texel"
)

const notificationTitle = "🏆 New High Score"

type Config struct {
	// FireworksDuration is passed to triggerCelebration on new scores.
	FireworksDuration time.Duration
	// RefreshInterval between leaderboard refreshes. Zero refreshes once.
	RefreshInterval time.Duration
}

var (
	baseStyle    = tcell.StyleDefault.Foreground(tcell.NewRGBColor(205, 214, 244)).Background(tcell.NewRGBColor(17, 17, 27))
	titleStyle   = baseStyle.Foreground(tcell.NewRGBColor(249, 226, 175)).Bold(true)
	headerStyle  = baseStyle.Foreground(tcell.NewRGBColor(147, 153, 178))
	dimStyle     = baseStyle.Foreground(tcell.NewRGBColor(108, 112, 134))
	onlineStyle  = baseStyle.Foreground(tcell.NewRGBColor(166, 227, 161))
	newRowStyle  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(17, 17, 27)).Background(tcell.NewRGBColor(249, 226, 175)).Bold(true)
	helpKeyStyle = baseStyle.Foreground(tcell.NewRGBColor(137, 180, 250)).Bold(true)
)

type span struct {
	text  string
	style tcell.Style
	// right-aligns the span at this column when > 0
	alignRight int
}

type line struct {
	spans []span
	fill  tcell.Style
}

type scoreboardApp struct {
	svc     *leaderboard.Service
	reg     *registry.Registry
	effects *effects.Manager
	cfg     Config
	now     func() time.Time

	mu            sync.RWMutex
	width, height int
	scroll        int
	lastRefresh   time.Time
	buf           [][]texel.Cell

	refreshChan chan<- bool
	stop        chan struct{}
	stopOnce    sync.Once
}

// New builds the app. reg must hold the celebration entry points and mgr the
// overlay effects.
func New(svc *leaderboard.Service, reg *registry.Registry, mgr *effects.Manager, cfg Config) texel.App {
	if mgr == nil {
		mgr = effects.NewManager()
	}
	return &scoreboardApp{
		svc:     svc,
		reg:     reg,
		effects: mgr,
		cfg:     cfg,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
}

func (a *scoreboardApp) GetTitle() string { return "Leaderboard" }

func (a *scoreboardApp) SetRefreshNotifier(refreshChan chan<- bool) {
	a.refreshChan = refreshChan
	a.effects.AttachRenderChannel(refreshChan)
}

// Run listens for refresh broadcasts and drives the service until Stop.
func (a *scoreboardApp) Run() error {
	unregister := a.svc.Broadcaster().Register(a.onMessage)
	defer unregister()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	serviceDone := make(chan error, 1)
	go func() {
		serviceDone <- a.svc.Run(ctx, a.cfg.RefreshInterval)
	}()

	select {
	case <-a.stop:
		cancel()
		<-serviceDone
		return nil
	case err := <-serviceDone:
		if errors.Is(err, leaderboard.ErrNoSource) {
			log.Printf("Leaderboard: %v, showing celebrations only", err)
		}
		<-a.stop
		return nil
	}
}

func (a *scoreboardApp) Stop() {
	a.stopOnce.Do(func() { close(a.stop) })
}

func (a *scoreboardApp) Resize(cols, rows int) {
	a.mu.Lock()
	a.width, a.height = cols, rows
	a.mu.Unlock()
	a.effects.HandleTrigger(effects.EffectTrigger{Type: effects.TriggerResize, Cols: cols, Rows: rows, Timestamp: a.now()})
}

func (a *scoreboardApp) HandleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyUp:
		a.scrollBy(-1)
		return
	case tcell.KeyDown:
		a.scrollBy(1)
		return
	case tcell.KeyPgUp:
		a.scrollBy(-a.pageSize())
		return
	case tcell.KeyPgDn:
		a.scrollBy(a.pageSize())
		return
	case tcell.KeyRune:
	default:
		return
	}
	switch ev.Rune() {
	case 'c', 'C':
		a.celebrate()
	case 'b', 'B':
		if err := a.reg.Invoke(celebration.SingleBurstEntryPoint, nil); err != nil {
			log.Printf("Leaderboard: Single burst failed: %v", err)
		}
	case 'r', 'R':
		go func() {
			if err := a.svc.Refresh(context.Background()); err != nil {
				log.Printf("Leaderboard: Manual refresh failed: %v", err)
			}
		}()
	case 'q', 'Q':
		a.Stop()
	}
}

// onMessage handles one broadcast: close old notifications, open one per
// NEW_SCORE line and celebrate if there was any.
func (a *scoreboardApp) onMessage(message string) {
	now := a.now()
	a.mu.Lock()
	a.lastRefresh = now
	a.mu.Unlock()

	a.effects.HandleTrigger(effects.EffectTrigger{Type: effects.TriggerDismiss, Timestamp: now})
	lines := leaderboard.SplitMessage(message)
	for _, l := range lines {
		a.effects.HandleTrigger(effects.EffectTrigger{
			Type:      effects.TriggerNewScore,
			Title:     notificationTitle,
			Message:   leaderboard.NotificationFor(l),
			Timestamp: now,
		})
	}
	if len(lines) > 0 {
		a.celebrate()
	}
	a.effects.HandleTrigger(effects.EffectTrigger{Type: effects.TriggerRefresh, Timestamp: now})
	a.requestRefresh()
}

func (a *scoreboardApp) celebrate() {
	args := registry.Args{"duration_ms": a.cfg.FireworksDuration.Milliseconds()}
	if err := a.reg.Invoke(celebration.EntryPoint, args); err != nil {
		log.Printf("Leaderboard: Celebration failed: %v", err)
	}
}

func (a *scoreboardApp) requestRefresh() {
	if a.refreshChan == nil {
		return
	}
	select {
	case a.refreshChan <- true:
	default:
	}
}

func (a *scoreboardApp) pageSize() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.height > 4 {
		return a.height - 3
	}
	return 1
}

func (a *scoreboardApp) scrollBy(delta int) {
	a.mu.Lock()
	a.scroll += delta
	if a.scroll < 0 {
		a.scroll = 0
	}
	a.mu.Unlock()
	a.requestRefresh()
}

func (a *scoreboardApp) Render() [][]texel.Cell {
	now := a.now()
	content := a.buildLines(now)

	a.mu.Lock()
	if a.width <= 0 || a.height <= 0 {
		a.mu.Unlock()
		return [][]texel.Cell{}
	}
	if len(a.buf) != a.height || len(a.buf[0]) != a.width {
		a.buf = texel.NewBuffer(a.width, a.height)
	}
	for y := range a.buf {
		for x := range a.buf[y] {
			a.buf[y][x] = texel.Cell{Ch: ' ', Style: baseStyle}
		}
	}

	a.drawLine(0, a.header(now))
	body := a.height - 2
	maxScroll := len(content) - body
	if maxScroll < 0 {
		maxScroll = 0
	}
	if a.scroll > maxScroll {
		a.scroll = maxScroll
	}
	for i := 0; i < body && a.scroll+i < len(content); i++ {
		a.drawLine(i+1, content[a.scroll+i])
	}
	a.drawLine(a.height-1, a.footer())
	buf := a.buf
	a.mu.Unlock()

	a.effects.Update(now)
	a.effects.Apply(buf)
	return buf
}

func (a *scoreboardApp) header(now time.Time) line {
	l := line{spans: []span{{text: " 🏆 High Scores", style: titleStyle}}}
	if !a.lastRefresh.IsZero() {
		l.spans = append(l.spans, span{
			text:       "updated " + humanize.RelTime(a.lastRefresh, now, "ago", "from now") + " ",
			style:      dimStyle,
			alignRight: a.width,
		})
	}
	return l
}

func (a *scoreboardApp) footer() line {
	l := line{}
	for _, k := range [][2]string{{"c", "celebrate"}, {"b", "burst"}, {"r", "refresh"}, {"q", "quit"}} {
		l.spans = append(l.spans, span{text: " " + k[0], style: helpKeyStyle}, span{text: " " + k[1] + " ", style: dimStyle})
	}
	return l
}

// buildLines lays out one table per machine.
func (a *scoreboardApp) buildLines(now time.Time) []line {
	machines := a.svc.Machines()
	if len(machines) == 0 {
		return []line{{}, {spans: []span{{text: "  Loading machines...", style: dimStyle}}}}
	}

	var lines []line
	for _, m := range machines {
		status := span{text: "○ offline", style: dimStyle}
		if m.Online {
			status = span{text: "● online", style: onlineStyle}
		}
		status.text = status.text + " "
		lines = append(lines, line{}, line{spans: []span{
			{text: "  " + m.Name(), style: titleStyle},
			{text: "  " + status.text, style: status.style},
		}})

		if len(m.HighScores) == 0 {
			lines = append(lines, line{spans: []span{{text: "    No high scores yet", style: dimStyle}}})
			continue
		}
		lines = append(lines, line{spans: []span{{text: fmt.Sprintf("    %-5s %-22s %15s", "Rank", "Player", "Score"), style: headerStyle}}})

		newIDs := a.svc.NewScoreIDs(m.ID)
		for i, e := range m.HighScores {
			rank := "GC"
			if i > 0 {
				rank = fmt.Sprintf("%d", i+1)
			}
			player := runewidth.FillRight(runewidth.Truncate(leaderboard.ResolveUsername(e), 22, "…"), 22)
			text := fmt.Sprintf("    %-5s %s %15s", rank, player, leaderboard.FormatScore(e.Score))
			row := line{spans: []span{{text: text, style: baseStyle}}}
			if _, ok := newIDs[leaderboard.EntryID(e)]; ok {
				row = line{spans: []span{{text: text + "  ★ new", style: newRowStyle}}, fill: newRowStyle}
			}
			lines = append(lines, row)
		}
	}
	return lines
}

// drawLine must be called with a.mu held.
func (a *scoreboardApp) drawLine(y int, l line) {
	if y < 0 || y >= len(a.buf) {
		return
	}
	row := a.buf[y]
	if l.fill != (tcell.Style{}) {
		for x := range row {
			row[x].Style = l.fill
		}
	}
	x := 0
	for _, s := range l.spans {
		if s.alignRight > 0 {
			x = s.alignRight - runewidth.StringWidth(s.text)
			if x < 0 {
				x = 0
			}
		}
		for _, r := range s.text {
			w := runewidth.RuneWidth(r)
			if w == 0 {
				continue
			}
			if x+w > len(row) {
				return
			}
			row[x] = texel.Cell{Ch: r, Style: s.style}
			if w == 2 {
				row[x+1] = texel.Cell{Ch: ' ', Style: s.style}
			}
			x += w
		}
	}
}
