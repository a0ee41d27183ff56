// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: celebration/trigger.go
// Summary: Time-boxed confetti celebrations that fire one or two bursts per frame.
// Usage: Build a Trigger around a Renderer, then call Celebrate or CelebrateFor.
// Notes: Every call starts an independent loop; overlapping celebrations are allowed.

package celebration

import (
	"sync"
	"time"
)

// DefaultDuration is used when a celebration is started without a duration.
const DefaultDuration = 30 * time.Second

// Renderer draws bursts. Implementations must accept calls from several
// loops at once.
type Renderer interface {
	RenderBurst(params BurstParameters)
}

// RendererFunc adapts a plain function to Renderer.
type RendererFunc func(params BurstParameters)

func (f RendererFunc) RenderBurst(params BurstParameters) { f(params) }

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Option configures a Trigger.
type Option func(*Trigger)

// WithRandomSource replaces the generator's random source.
func WithRandomSource(rng RandomSource) Option {
	return func(t *Trigger) { t.gen = NewGenerator(rng) }
}

// WithClock replaces the clock used to compute end times.
func WithClock(clock Clock) Option {
	return func(t *Trigger) {
		if clock != nil {
			t.clock = clock
		}
	}
}

// WithFrameSource sets the factory that creates one FrameSource per loop.
func WithFrameSource(factory func() FrameSource) Option {
	return func(t *Trigger) {
		if factory != nil {
			t.newFrames = factory
		}
	}
}

// WithFrameRate paces loops with a ticker at fps frames per second.
func WithFrameRate(fps int) Option {
	return func(t *Trigger) {
		t.newFrames = func() FrameSource { return NewTickerFrames(fps) }
	}
}

// Trigger runs celebrations against a Renderer.
type Trigger struct {
	renderer  Renderer
	gen       *Generator
	clock     Clock
	newFrames func() FrameSource

	mu     sync.Mutex
	idle   *sync.Cond
	active map[string]*Task
}

// NewTrigger creates a Trigger that sends bursts to renderer.
func NewTrigger(renderer Renderer, opts ...Option) *Trigger {
	t := &Trigger{
		renderer:  renderer,
		clock:     systemClock{},
		newFrames: func() FrameSource { return NewTickerFrames(DefaultFrameRate) },
		active:    make(map[string]*Task),
	}
	t.idle = sync.NewCond(&t.mu)
	for _, opt := range opts {
		opt(t)
	}
	if t.gen == nil {
		t.gen = NewGenerator(nil)
	}
	return t
}

// Generator exposes the parameter generator backing this trigger.
func (t *Trigger) Generator() *Generator { return t.gen }

// Celebrate runs for DefaultDuration.
func (t *Trigger) Celebrate() *Task {
	return t.CelebrateFor(DefaultDuration)
}

// CelebrateFor fires bursts every frame until d has elapsed. The deadline is
// checked at the start of each step, so d <= 0 runs zero steps.
func (t *Trigger) CelebrateFor(d time.Duration) *Task {
	start := t.clock.Now()
	end := start.Add(d)

	task := Schedule(t.newFrames(), start, func(now time.Time) bool {
		if !now.Before(end) {
			return false
		}
		for range t.gen.BurstsPerFrame() {
			t.renderer.RenderBurst(t.gen.GenerateBurstParameters())
		}
		return true
	})
	t.track(task)
	return task
}

// FireSingleBurst renders the light single-burst variant once.
func (t *Trigger) FireSingleBurst() {
	t.renderer.RenderBurst(SingleBurst())
}

func (t *Trigger) track(task *Task) {
	t.mu.Lock()
	t.active[task.ID()] = task
	t.mu.Unlock()
	go func() {
		<-task.Done()
		t.mu.Lock()
		delete(t.active, task.ID())
		if len(t.active) == 0 {
			t.idle.Broadcast()
		}
		t.mu.Unlock()
	}()
}

// Active returns how many celebrations are still running.
func (t *Trigger) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.active)
}

// Stop cancels every running celebration.
func (t *Trigger) Stop() {
	t.mu.Lock()
	tasks := make([]*Task, 0, len(t.active))
	for _, task := range t.active {
		tasks = append(tasks, task)
	}
	t.mu.Unlock()
	for _, task := range tasks {
		task.Cancel()
	}
}

// Wait blocks until no celebration is running. Celebrations started while
// waiting extend the wait.
func (t *Trigger) Wait() {
	t.mu.Lock()
	for len(t.active) > 0 {
		t.idle.Wait()
	}
	t.mu.Unlock()
}
