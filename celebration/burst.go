// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: celebration/burst.go
// Summary: Burst parameters and the randomized generator behind every confetti burst.
// Usage: Trigger asks the Generator for one BurstParameters value per burst and hands it to a Renderer.

package celebration

import (
	"math/rand/v2"
	"slices"
	"sync"
)

// Fixed tuning for every generated burst. Ranges are [min, min+span).
const (
	BurstTicks = 200

	minParticleCount  = 5
	particleCountSpan = 15

	minStartVelocity  = 20.0
	startVelocitySpan = 20.0

	minSpread  = 60.0
	spreadSpan = 60.0

	minOriginX  = 0.1
	originXSpan = 0.8
	minOriginY  = 0.2
	originYSpan = 0.5

	minGravity  = 0.8
	gravitySpan = 0.4
	minScalar   = 0.8
	scalarSpan  = 0.4
	driftSpan   = 0.5

	maxBurstsPerFrame = 2
)

// RandomSource supplies the uniform draws behind every burst.
// *math/rand/v2.Rand satisfies it.
type RandomSource interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
	// IntN returns a value in [0, n).
	IntN(n int) int
}

func newDefaultSource() RandomSource {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Origin is the normalized, screen-relative launch point of a burst.
type Origin struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BurstParameters describes one burst. Field names in JSON follow the
// option names browser confetti libraries accept.
type BurstParameters struct {
	ParticleCount int      `json:"particleCount"`
	StartVelocity float64  `json:"startVelocity"`
	Spread        float64  `json:"spread"`
	Origin        Origin   `json:"origin"`
	Colors        []string `json:"colors"`
	Ticks         int      `json:"ticks"`
	Gravity       float64  `json:"gravity"`
	Scalar        float64  `json:"scalar"`
	Drift         float64  `json:"drift"`
}

// SingleBurst returns the light, non-animated variant: one large burst from
// the lower middle of the screen.
func SingleBurst() BurstParameters {
	return BurstParameters{
		ParticleCount: 100,
		StartVelocity: 45,
		Spread:        70,
		Origin:        Origin{X: 0.5, Y: 0.6},
		Colors:        slices.Clone(singleBurstColors),
		Ticks:         BurstTicks,
		Gravity:       1,
		Scalar:        1,
	}
}

var singleBurstColors = []string{"#26ccff", "#a25afd", "#ff5e7e", "#88ff5a", "#fcff42", "#ffa62d", "#ff36ff"}

// Generator produces randomized burst parameters. It is safe for concurrent
// use; overlapping celebrations share one Generator.
type Generator struct {
	mu  sync.Mutex
	rng RandomSource
}

// NewGenerator wraps rng. A nil rng selects a freshly seeded PCG source.
func NewGenerator(rng RandomSource) *Generator {
	if rng == nil {
		rng = newDefaultSource()
	}
	return &Generator{rng: rng}
}

// GenerateBurstParameters draws every field independently from its range.
func (g *Generator) GenerateBurstParameters() BurstParameters {
	g.mu.Lock()
	defer g.mu.Unlock()

	var p BurstParameters
	p.ParticleCount = minParticleCount + g.rng.IntN(particleCountSpan)
	p.StartVelocity = minStartVelocity + g.rng.Float64()*startVelocitySpan
	p.Spread = minSpread + g.rng.Float64()*spreadSpan
	p.Origin.X = minOriginX + g.rng.Float64()*originXSpan
	p.Origin.Y = minOriginY + g.rng.Float64()*originYSpan
	p.Colors = slices.Clone(g.selectPaletteLocked().Colors)
	p.Ticks = BurstTicks
	p.Gravity = minGravity + g.rng.Float64()*gravitySpan
	p.Scalar = minScalar + g.rng.Float64()*scalarSpan
	p.Drift = (g.rng.Float64() - 0.5) * driftSpan
	return p
}

// SelectPalette picks one of the predefined palettes uniformly.
func (g *Generator) SelectPalette() Palette {
	g.mu.Lock()
	defer g.mu.Unlock()
	p := g.selectPaletteLocked()
	p.Colors = slices.Clone(p.Colors)
	return p
}

func (g *Generator) selectPaletteLocked() Palette {
	return palettes[g.rng.IntN(len(palettes))]
}

// BurstsPerFrame returns how many bursts the next frame step fires: 1 or 2.
func (g *Generator) BurstsPerFrame() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return 1 + g.rng.IntN(maxBurstsPerFrame)
}
