// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: celebration/frames.go
// Summary: Frame sources that pace celebration loops to the host's refresh cadence.

package celebration

import (
	"sync"
	"time"
)

// DefaultFrameRate matches the 16ms frame budget used by the effect manager.
const DefaultFrameRate = 60

// FrameSource delivers one timestamp per display frame. Stop releases the
// source; a loop calls it once when it finishes.
type FrameSource interface {
	Frames() <-chan time.Time
	Stop()
}

// TickerFrames paces frames with a time.Ticker.
type TickerFrames struct {
	ticker *time.Ticker
}

// NewTickerFrames creates a ticker-backed source running at fps frames per
// second. Non-positive rates fall back to DefaultFrameRate.
func NewTickerFrames(fps int) *TickerFrames {
	if fps <= 0 {
		fps = DefaultFrameRate
	}
	return &TickerFrames{ticker: time.NewTicker(time.Second / time.Duration(fps))}
}

func (f *TickerFrames) Frames() <-chan time.Time { return f.ticker.C }

func (f *TickerFrames) Stop() { f.ticker.Stop() }

// ManualFrames hands frames to a loop one at a time. Hosts with their own
// refresh signal (and tests) drive it with Tick.
type ManualFrames struct {
	ch       chan time.Time
	stopped  chan struct{}
	stopOnce sync.Once
}

func NewManualFrames() *ManualFrames {
	return &ManualFrames{
		ch:      make(chan time.Time),
		stopped: make(chan struct{}),
	}
}

// Tick blocks until the loop takes the frame stamped now. It returns false
// once the source has been stopped.
func (f *ManualFrames) Tick(now time.Time) bool {
	select {
	case <-f.stopped:
		return false
	default:
	}
	select {
	case f.ch <- now:
		return true
	case <-f.stopped:
		return false
	}
}

func (f *ManualFrames) Frames() <-chan time.Time { return f.ch }

func (f *ManualFrames) Stop() {
	f.stopOnce.Do(func() { close(f.stopped) })
}

// Stopped is closed after Stop.
func (f *ManualFrames) Stopped() <-chan struct{} { return f.stopped }
