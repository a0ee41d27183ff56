// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/base.go
// Summary: Base effect helpers that simplify effect implementation.
// Usage: Embed EffectBase in an effect struct and call Update from the effect's Update.
// Notes: Handles the Timeline boilerplate and remembers the last frame time.

package effects

import (
	"sync"
	"time"
)

// EffectBase wraps a Timeline with a default duration.
//
// Example usage:
//
//	type pulse struct {
//	    EffectBase
//	}
//
//	func (e *pulse) HandleTrigger(trigger EffectTrigger) {
//	    e.Set("pulse", 1, trigger.Timestamp)
//	    e.Animate("pulse", 0, trigger.Timestamp)
//	}
type EffectBase struct {
	timeline *Timeline
	duration time.Duration

	mu        sync.Mutex
	lastFrame time.Time
}

func NewEffectBase(duration time.Duration) EffectBase {
	if duration < 0 {
		duration = 0
	}
	return EffectBase{
		timeline: NewTimeline(0),
		duration: duration,
	}
}

// Update advances all keys to now.
func (b *EffectBase) Update(now time.Time) {
	b.mu.Lock()
	b.lastFrame = now
	b.mu.Unlock()
	b.timeline.Update(now)
}

// Animate moves key toward target over the base duration.
func (b *EffectBase) Animate(key interface{}, target float32, now time.Time) float32 {
	return b.timeline.AnimateTo(key, target, b.duration, now)
}

// Set jumps key to value.
func (b *EffectBase) Set(key interface{}, value float32, now time.Time) {
	b.timeline.AnimateTo(key, value, 0, now)
}

func (b *EffectBase) Get(key interface{}, now time.Time) float32 {
	return b.timeline.Get(key, now)
}

// GetCached returns the value from the last Update. Use it in Apply.
func (b *EffectBase) GetCached(key interface{}) float32 {
	return b.timeline.GetCached(key)
}

// Animating reports whether any key was still moving at the last Update.
func (b *EffectBase) Animating() bool {
	b.mu.Lock()
	last := b.lastFrame
	b.mu.Unlock()
	return b.timeline.HasActiveAnimations(last)
}

func (b *EffectBase) Reset(key interface{}) {
	b.timeline.Reset(key)
}
