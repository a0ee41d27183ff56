// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/flash.go
// Summary: Full-surface colour flash that fades out after a new high score.

package effects

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/celebrate/texel"
)

const flashKey = "flash"

var defaultFlashColor = tcell.NewRGBColor(255, 215, 0)

type flashEffect struct {
	EffectBase
	color tcell.Color
	peak  float32
}

func newFlashEffect(color tcell.Color, duration time.Duration, peak float32) *flashEffect {
	return &flashEffect{
		EffectBase: NewEffectBase(duration),
		color:      color,
		peak:       peak,
	}
}

func (e *flashEffect) ID() string { return "flash" }

func (e *flashEffect) Active() bool {
	return e.Animating() || e.GetCached(flashKey) > 0
}

func (e *flashEffect) HandleTrigger(trigger EffectTrigger) {
	if trigger.Type != TriggerNewScore {
		return
	}
	e.Set(flashKey, 1, trigger.Timestamp)
	e.Animate(flashKey, 0, trigger.Timestamp)
}

func (e *flashEffect) Apply(buffer [][]texel.Cell) {
	intensity := e.GetCached(flashKey) * e.peak
	if intensity <= 0 {
		return
	}
	for y := range buffer {
		row := buffer[y]
		for x := range row {
			row[x].Style = tintStyle(row[x].Style, e.color, intensity)
		}
	}
}

func init() {
	Register("flash", func(cfg EffectConfig) (Effect, error) {
		color := parseColorOrDefault(cfg, "color", defaultFlashColor)
		duration := parseDurationOrDefault(cfg, "duration_ms", 250)
		peak := float32(parseFloatOrDefault(cfg, "intensity", 0.35))
		return newFlashEffect(color, duration, peak), nil
	})
}
