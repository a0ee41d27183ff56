// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: celebration/task.go
// Summary: Cancellable repeating task bound to a FrameSource.

package celebration

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// StepFunc runs one frame step. Returning false ends the task.
type StepFunc func(now time.Time) bool

// Task is a running frame loop. The first step runs immediately with the
// start time; each later step waits for the next frame.
type Task struct {
	id         string
	frames     FrameSource
	cancel     chan struct{}
	cancelOnce sync.Once
	done       chan struct{}
	steps      atomic.Int64
}

// Schedule starts a task on its own goroutine.
func Schedule(frames FrameSource, start time.Time, step StepFunc) *Task {
	t := &Task{
		id:     uuid.NewString(),
		frames: frames,
		cancel: make(chan struct{}),
		done:   make(chan struct{}),
	}
	go t.run(start, step)
	return t
}

func (t *Task) run(now time.Time, step StepFunc) {
	defer close(t.done)
	defer t.frames.Stop()

	for {
		select {
		case <-t.cancel:
			return
		default:
		}

		if !step(now) {
			return
		}
		t.steps.Add(1)

		select {
		case <-t.cancel:
			return
		case next, ok := <-t.frames.Frames():
			if !ok {
				return
			}
			now = next
		}
	}
}

// ID identifies the task in logs.
func (t *Task) ID() string { return t.id }

// Cancel stops scheduling further steps. A step in progress completes.
func (t *Task) Cancel() {
	t.cancelOnce.Do(func() { close(t.cancel) })
}

// Done is closed once the loop has exited.
func (t *Task) Done() <-chan struct{} { return t.done }

// Wait blocks until the loop has exited.
func (t *Task) Wait() { <-t.done }

// Steps reports how many frame steps have completed.
func (t *Task) Steps() int { return int(t.steps.Load()) }
