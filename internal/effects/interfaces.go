// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/interfaces.go
// Summary: Effect contract for overlays drawn on top of an app buffer.

package effects

import (
	"time"

	"github.com/framegrace/celebrate/texel"
)

type Effect interface {
	ID() string
	Active() bool
	Update(now time.Time)
	HandleTrigger(trigger EffectTrigger)
	Apply(buffer [][]texel.Cell)
}

// frameAware effects can ask the manager for a redraw on their own, for
// example when particles arrive from another goroutine.
type frameAware interface {
	attachFrameRequester(request func())
}
