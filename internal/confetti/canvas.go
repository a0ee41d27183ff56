// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/confetti/canvas.go
// Summary: Terminal particle canvas that renders confetti bursts into cell buffers.
// Usage: Pass a Canvas to celebration.NewTrigger as its Renderer, call Advance once per
// frame and Draw over the app buffer.
// Notes: Physics run in a virtual pixel space (8x16 per cell) at 60 ticks per second.

package confetti

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/framegrace/celebrate/celebration"
	"github.com/framegrace/celebrate/texel"
)

const (
	cellWidthPx  = 8.0
	cellHeightPx = 16.0

	launchAngle   = 90.0
	velocityDecay = 0.9
	gravityFactor = 3.0

	tickInterval     = time.Second / 60
	maxTicksPerFrame = 4
)

var glyphs = []rune{'▪', '•', '◆', '▴', '✦', '*', '·'}

type particle struct {
	x, y        float64
	velocity    float64
	angle2D     float64
	wobble      float64
	wobbleSpeed float64
	drift       float64
	gravity     float64
	scalar      float64
	color       colorful.Color
	tick        int
	totalTicks  int
}

// Canvas holds live particles for one terminal surface. It is safe for
// concurrent use.
type Canvas struct {
	mu         sync.Mutex
	cols, rows int
	particles  []*particle
	rng        *rand.Rand
	lastStep   time.Time
	carry      time.Duration
	fadeTo     colorful.Color
}

// NewCanvas creates an empty canvas. Particles fade toward black.
func NewCanvas() *Canvas {
	return &Canvas{
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		fadeTo: colorful.Color{},
	}
}

// Resize sets the surface size in cells.
func (c *Canvas) Resize(cols, rows int) {
	c.mu.Lock()
	c.cols, c.rows = cols, rows
	c.mu.Unlock()
}

// RenderBurst spawns the particles of one burst. Bursts arriving before the
// canvas has a size are dropped.
func (c *Canvas) RenderBurst(p celebration.BurstParameters) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cols <= 0 || c.rows <= 0 {
		return
	}

	colors := parseColors(p.Colors)
	originX := p.Origin.X * float64(c.cols) * cellWidthPx
	originY := p.Origin.Y * float64(c.rows) * cellHeightPx
	radAngle := launchAngle * math.Pi / 180
	radSpread := p.Spread * math.Pi / 180
	ticks := p.Ticks
	if ticks <= 0 {
		ticks = celebration.BurstTicks
	}

	for i := 0; i < p.ParticleCount; i++ {
		c.particles = append(c.particles, &particle{
			x:           originX,
			y:           originY,
			velocity:    p.StartVelocity*0.5 + c.rng.Float64()*p.StartVelocity,
			angle2D:     -radAngle + (0.5*radSpread - c.rng.Float64()*radSpread),
			wobble:      c.rng.Float64() * 10,
			wobbleSpeed: math.Min(0.11, c.rng.Float64()*0.1+0.05),
			drift:       p.Drift,
			gravity:     p.Gravity * gravityFactor,
			scalar:      p.Scalar,
			color:       colors[i%len(colors)],
			totalTicks:  ticks,
		})
	}
}

// Advance runs as many physics ticks as have elapsed since the last call,
// capped so a stalled host does not fast-forward whole bursts.
func (c *Canvas) Advance(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastStep.IsZero() || now.Before(c.lastStep) {
		c.lastStep = now
		return
	}
	c.carry += now.Sub(c.lastStep)
	c.lastStep = now

	ticks := int(c.carry / tickInterval)
	c.carry -= time.Duration(ticks) * tickInterval
	if ticks > maxTicksPerFrame {
		ticks = maxTicksPerFrame
		c.carry = 0
	}
	for i := 0; i < ticks; i++ {
		c.stepLocked()
	}
}

// Step runs a single physics tick.
func (c *Canvas) Step() {
	c.mu.Lock()
	c.stepLocked()
	c.mu.Unlock()
}

func (c *Canvas) stepLocked() {
	maxY := float64(c.rows) * cellHeightPx
	live := c.particles[:0]
	for _, p := range c.particles {
		p.x += math.Cos(p.angle2D)*p.velocity + p.drift
		p.y += math.Sin(p.angle2D)*p.velocity + p.gravity
		p.velocity *= velocityDecay
		p.wobble += p.wobbleSpeed
		p.tick++
		if p.tick >= p.totalTicks || p.y > maxY {
			continue
		}
		live = append(live, p)
	}
	for i := len(live); i < len(c.particles); i++ {
		c.particles[i] = nil
	}
	c.particles = live
}

// Active reports whether any particle is still alive.
func (c *Canvas) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.particles) > 0
}

// Len returns the number of live particles.
func (c *Canvas) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.particles)
}

// Draw overlays live particles onto buffer, keeping each cell's background.
func (c *Canvas) Draw(buffer [][]texel.Cell) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.particles {
		col := int(p.x / cellWidthPx)
		row := int(p.y / cellHeightPx)
		if p.x < 0 || p.y < 0 || row >= len(buffer) || col >= len(buffer[row]) {
			continue
		}
		progress := float64(p.tick) / float64(p.totalTicks)
		faded := p.color.BlendRgb(c.fadeTo, progress).Clamped()
		r, g, b := faded.RGB255()

		cell := &buffer[row][col]
		_, bg, _ := cell.Style.Decompose()
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b))).Background(bg)
		if p.scalar > 1.1 {
			style = style.Bold(true)
		}
		cell.Ch = glyphs[int(p.wobble)%len(glyphs)]
		cell.Style = style
	}
}

func parseColors(hexes []string) []colorful.Color {
	colors := make([]colorful.Color, 0, len(hexes))
	for _, h := range hexes {
		if col, err := colorful.Hex(h); err == nil {
			colors = append(colors, col)
		}
	}
	if len(colors) == 0 {
		colors = append(colors, colorful.Color{R: 1, G: 1, B: 1})
	}
	return colors
}
