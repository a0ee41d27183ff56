// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/toast.go
// Summary: Stack of notification boxes in the bottom-right corner.
// Usage: TriggerNewScore opens a toast, TriggerDismiss closes all of them.
// Notes: Toasts close on their own after auto_close_ms and fade over fade_ms.

package effects

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/celebrate/texel"
)

const (
	toastMaxWidth = 60
	toastHeight   = 2
)

var (
	defaultToastFg = tcell.NewRGBColor(245, 245, 245)
	defaultToastBg = tcell.NewRGBColor(30, 30, 46)
	defaultToastHi = tcell.NewRGBColor(255, 215, 0)
)

type toast struct {
	id      uint64
	title   string
	message string
	expires time.Time
	fading  bool
}

type toastEffect struct {
	EffectBase
	autoClose time.Duration
	fg, bg    tcell.Color
	titleFg   tcell.Color

	mu     sync.Mutex
	toasts []*toast
	nextID uint64
}

func newToastEffect(fade, autoClose time.Duration) *toastEffect {
	return &toastEffect{
		EffectBase: NewEffectBase(fade),
		autoClose:  autoClose,
		fg:         defaultToastFg,
		bg:         defaultToastBg,
		titleFg:    defaultToastHi,
	}
}

func (e *toastEffect) ID() string { return "toast" }

func (e *toastEffect) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.toasts) > 0
}

// Len returns the number of open toasts.
func (e *toastEffect) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.toasts)
}

func (e *toastEffect) HandleTrigger(trigger EffectTrigger) {
	switch trigger.Type {
	case TriggerNewScore:
		e.mu.Lock()
		e.nextID++
		t := &toast{id: e.nextID, title: trigger.Title, message: trigger.Message}
		if e.autoClose > 0 {
			t.expires = trigger.Timestamp.Add(e.autoClose)
		}
		e.toasts = append(e.toasts, t)
		e.mu.Unlock()
		e.Set(t.id, 1, trigger.Timestamp)
	case TriggerDismiss:
		e.mu.Lock()
		for _, t := range e.toasts {
			e.Reset(t.id)
		}
		e.toasts = nil
		e.mu.Unlock()
	}
}

func (e *toastEffect) Update(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, t := range e.toasts {
		if !t.fading && !t.expires.IsZero() && !now.Before(t.expires) {
			t.fading = true
			e.Animate(t.id, 0, now)
		}
	}
	e.EffectBase.Update(now)

	open := e.toasts[:0]
	for _, t := range e.toasts {
		if t.fading && e.GetCached(t.id) <= 0 {
			e.Reset(t.id)
			continue
		}
		open = append(open, t)
	}
	for i := len(open); i < len(e.toasts); i++ {
		e.toasts[i] = nil
	}
	e.toasts = open
}

// Apply stacks toasts upward from the bottom-right corner, newest lowest.
func (e *toastEffect) Apply(buffer [][]texel.Cell) {
	rows := len(buffer)
	if rows == 0 {
		return
	}
	cols := len(buffer[0])
	width := toastMaxWidth
	if width > cols-2 {
		width = cols - 2
	}
	if width < 8 {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	bottom := rows - 1
	for i := len(e.toasts) - 1; i >= 0; i-- {
		top := bottom - toastHeight + 1
		if top < 0 {
			return
		}
		t := e.toasts[i]
		opacity := e.GetCached(t.id)
		left := cols - width - 1
		e.drawLine(buffer[top], left, width, t.title, e.titleFg, true, opacity)
		e.drawLine(buffer[top+1], left, width, t.message, e.fg, false, opacity)
		bottom = top - 1
	}
}

func (e *toastEffect) drawLine(row []texel.Cell, left, width int, text string, fg tcell.Color, bold bool, opacity float32) {
	text = runewidth.Truncate(" "+text, width, "…")
	x := left
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 || x+w > left+width {
			continue
		}
		e.paint(&row[x], r, fg, bold, opacity)
		x += w
	}
	for ; x < left+width; x++ {
		e.paint(&row[x], ' ', fg, bold, opacity)
	}
}

func (e *toastEffect) paint(cell *texel.Cell, r rune, fg tcell.Color, bold bool, opacity float32) {
	_, under, _ := cell.Style.Decompose()
	if !under.Valid() {
		under = tcell.ColorBlack
	}
	cell.Ch = r
	cell.Style = tcell.StyleDefault.
		Foreground(blendColor(under, fg, opacity)).
		Background(blendColor(under, e.bg, opacity)).
		Bold(bold)
}

func init() {
	Register("toast", func(cfg EffectConfig) (Effect, error) {
		fade := parseDurationOrDefault(cfg, "fade_ms", 300)
		autoClose := parseDurationOrDefault(cfg, "auto_close_ms", 8000)
		return newToastEffect(fade, autoClose), nil
	})
}
