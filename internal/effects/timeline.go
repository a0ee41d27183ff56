// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/timeline.go
// Summary: Thread-safe animation timeline with configurable easing functions.
// Usage: Effects call AnimateTo on triggers and Update once per frame.
// Notes: Every call takes an explicit time so frames and tests stay deterministic.

package effects

import (
	"sync"
	"time"
)

// EasingFunc maps progress [0,1] to an eased value [0,1].
type EasingFunc func(progress float32) float32

var (
	EaseLinear EasingFunc = func(t float32) float32 { return t }

	// EaseSmoothstep is the default S-curve.
	EaseSmoothstep EasingFunc = func(t float32) float32 {
		return t * t * (3.0 - 2.0*t)
	}

	EaseOutQuad EasingFunc = func(t float32) float32 {
		return t * (2.0 - t)
	}

	EaseInCubic EasingFunc = func(t float32) float32 {
		return t * t * t
	}
)

// AnimateOptions configures an animation transition
type AnimateOptions struct {
	Duration time.Duration // zero jumps straight to the target
	Easing   EasingFunc    // nil means EaseSmoothstep
}

type keyState struct {
	current   float32
	start     float32
	target    float32
	startTime time.Time
	duration  time.Duration
	easing    EasingFunc
}

// Timeline tracks one animated value per key.
type Timeline struct {
	mu             sync.RWMutex
	states         map[interface{}]*keyState
	defaultInitial float32
}

// NewTimeline creates a timeline whose unseen keys read as defaultInitial.
func NewTimeline(defaultInitial float32) *Timeline {
	return &Timeline{
		states:         make(map[interface{}]*keyState),
		defaultInitial: defaultInitial,
	}
}

// AnimateTo starts an animation from the key's current value toward target
// and returns the value at now.
func (tl *Timeline) AnimateTo(key interface{}, target float32, duration time.Duration, now time.Time) float32 {
	return tl.AnimateToWithOptions(key, target, AnimateOptions{Duration: duration}, now)
}

// AnimateToWithOptions is AnimateTo with a custom easing.
func (tl *Timeline) AnimateToWithOptions(key interface{}, target float32, opts AnimateOptions, now time.Time) float32 {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	state := tl.states[key]
	start := tl.defaultInitial
	if state != nil {
		start = computeValue(state, now)
	} else {
		state = &keyState{}
		tl.states[key] = state
	}

	state.start = start
	state.target = target
	state.startTime = now
	state.duration = opts.Duration
	state.easing = opts.Easing
	if state.easing == nil {
		state.easing = EaseSmoothstep
	}
	if opts.Duration <= 0 || start == target {
		state.duration = 0
		state.current = target
		return target
	}
	state.current = start
	return start
}

// Get computes the value of key at now.
func (tl *Timeline) Get(key interface{}, now time.Time) float32 {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	state := tl.states[key]
	if state == nil {
		return tl.defaultInitial
	}
	state.current = computeValue(state, now)
	return state.current
}

// GetCached returns the value computed by the last Update or Get.
func (tl *Timeline) GetCached(key interface{}) float32 {
	tl.mu.RLock()
	defer tl.mu.RUnlock()
	if state := tl.states[key]; state != nil {
		return state.current
	}
	return tl.defaultInitial
}

// IsAnimating reports whether key is still moving at now.
func (tl *Timeline) IsAnimating(key interface{}, now time.Time) bool {
	tl.mu.RLock()
	defer tl.mu.RUnlock()
	state := tl.states[key]
	return state != nil && animating(state, now)
}

// HasActiveAnimations reports whether any key is still moving at now.
func (tl *Timeline) HasActiveAnimations(now time.Time) bool {
	tl.mu.RLock()
	defer tl.mu.RUnlock()
	for _, state := range tl.states {
		if animating(state, now) {
			return true
		}
	}
	return false
}

// Update advances all keys to now.
func (tl *Timeline) Update(now time.Time) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	for _, state := range tl.states {
		state.current = computeValue(state, now)
	}
}

// Reset forgets key.
func (tl *Timeline) Reset(key interface{}) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	delete(tl.states, key)
}

// Clear forgets every key.
func (tl *Timeline) Clear() {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.states = make(map[interface{}]*keyState)
}

func animating(state *keyState, now time.Time) bool {
	return state.duration > 0 && now.Sub(state.startTime) < state.duration
}

// computeValue must be called with the lock held.
func computeValue(state *keyState, now time.Time) float32 {
	if state.duration <= 0 {
		return state.target
	}
	if now.Before(state.startTime) {
		return state.start
	}
	elapsed := now.Sub(state.startTime)
	if elapsed >= state.duration {
		return state.target
	}
	progress := float32(elapsed) / float32(state.duration)
	return state.start + (state.target-state.start)*state.easing(progress)
}
