// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/manager.go
// Summary: Runs registered effects and schedules redraws while they animate.

package effects

import (
	"sync"
	"time"

	"github.com/framegrace/celebrate/texel"
)

const frameInterval = 16 * time.Millisecond

type Manager struct {
	mu         sync.RWMutex
	effects    []Effect
	renderCh   chan<- bool
	frameMu    sync.Mutex
	frameTimer *time.Timer
}

func NewManager() *Manager {
	return &Manager{effects: make([]Effect, 0)}
}

// AttachRenderChannel sets the channel that receives redraw requests.
func (m *Manager) AttachRenderChannel(ch chan<- bool) {
	m.frameMu.Lock()
	m.renderCh = ch
	if m.frameTimer != nil {
		m.frameTimer.Stop()
		m.frameTimer = nil
	}
	m.frameMu.Unlock()
}

func (m *Manager) Register(effect Effect) {
	if fa, ok := effect.(frameAware); ok {
		fa.attachFrameRequester(m.RequestFrame)
	}
	m.mu.Lock()
	m.effects = append(m.effects, effect)
	m.mu.Unlock()
}

// RequestFrame schedules one redraw a frame from now. Requests made while
// one is pending are coalesced.
func (m *Manager) RequestFrame() {
	m.frameMu.Lock()
	defer m.frameMu.Unlock()
	if m.renderCh == nil || m.frameTimer != nil {
		return
	}
	ch := m.renderCh
	m.frameTimer = time.AfterFunc(frameInterval, func() {
		m.frameMu.Lock()
		m.frameTimer = nil
		m.frameMu.Unlock()
		select {
		case ch <- true:
		default:
		}
	})
}

func (m *Manager) snapshot() []Effect {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Effect(nil), m.effects...)
}

// Update advances every effect and keeps frames coming while any is active.
func (m *Manager) Update(now time.Time) {
	if m == nil {
		return
	}
	needsFrame := false
	for _, eff := range m.snapshot() {
		eff.Update(now)
		if eff.Active() {
			needsFrame = true
		}
	}
	if needsFrame {
		m.RequestFrame()
	}
}

// Active reports whether any effect still wants frames.
func (m *Manager) Active() bool {
	if m == nil {
		return false
	}
	for _, eff := range m.snapshot() {
		if eff.Active() {
			return true
		}
	}
	return false
}

func (m *Manager) Apply(buffer [][]texel.Cell) {
	if m == nil {
		return
	}
	for _, eff := range m.snapshot() {
		eff.Apply(buffer)
	}
}

func (m *Manager) HandleTrigger(trigger EffectTrigger) {
	if m == nil {
		return
	}
	if trigger.Timestamp.IsZero() {
		trigger.Timestamp = time.Now()
	}
	for _, eff := range m.snapshot() {
		eff.HandleTrigger(trigger)
	}
	m.RequestFrame()
}
