// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/app.go
// Summary: Host contract for terminal apps and the cell buffers they render.

package texel

import "github.com/gdamore/tcell/v2"

// Cell is one character cell of a rendered buffer.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// App is a terminal application driven by a host runner.
type App interface {
	// Run blocks until Stop is called or the app fails.
	Run() error
	Stop()
	Resize(cols, rows int)
	Render() [][]Cell
	HandleKey(ev *tcell.EventKey)
	GetTitle() string
	// SetRefreshNotifier hands the app a channel it signals (non-blocking)
	// whenever it wants to be redrawn.
	SetRefreshNotifier(ch chan<- bool)
}

// NewBuffer allocates a cols x rows buffer filled with blank cells.
func NewBuffer(cols, rows int) [][]Cell {
	if cols <= 0 || rows <= 0 {
		return [][]Cell{}
	}
	buf := make([][]Cell, rows)
	for y := range buf {
		buf[y] = make([]Cell, cols)
		for x := range buf[y] {
			buf[y][x] = Cell{Ch: ' ', Style: tcell.StyleDefault}
		}
	}
	return buf
}
