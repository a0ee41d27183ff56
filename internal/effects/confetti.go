// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/confetti.go
// Summary: Effect that draws a confetti canvas and feeds it bursts.

package effects

import (
	"sync"
	"time"

	"github.com/framegrace/celebrate/celebration"
	"github.com/framegrace/celebrate/internal/confetti"
	"github.com/framegrace/celebrate/texel"
)

// Confetti is both an Effect and a celebration.Renderer: hand it to
// celebration.NewTrigger and register it with a Manager.
type Confetti struct {
	canvas *confetti.Canvas

	mu      sync.Mutex
	request func()
}

var _ celebration.Renderer = (*Confetti)(nil)

func NewConfetti(canvas *confetti.Canvas) *Confetti {
	if canvas == nil {
		canvas = confetti.NewCanvas()
	}
	return &Confetti{canvas: canvas}
}

func (c *Confetti) ID() string { return "confetti" }

func (c *Confetti) Active() bool { return c.canvas.Active() }

func (c *Confetti) Update(now time.Time) { c.canvas.Advance(now) }

func (c *Confetti) HandleTrigger(trigger EffectTrigger) {
	if trigger.Type == TriggerResize {
		c.canvas.Resize(trigger.Cols, trigger.Rows)
	}
}

func (c *Confetti) Apply(buffer [][]texel.Cell) { c.canvas.Draw(buffer) }

// RenderBurst spawns the burst and asks for a redraw.
func (c *Confetti) RenderBurst(p celebration.BurstParameters) {
	c.canvas.RenderBurst(p)
	c.mu.Lock()
	request := c.request
	c.mu.Unlock()
	if request != nil {
		request()
	}
}

func (c *Confetti) attachFrameRequester(request func()) {
	c.mu.Lock()
	c.request = request
	c.mu.Unlock()
}
