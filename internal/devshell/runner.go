// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/devshell/runner.go
// Summary: Runs a single texel.App full-screen inside a local tcell screen.

package devshell

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/celebrate/texel"
)

// Builder constructs a texel.App, optionally using CLI args.
type Builder func(args []string) (texel.App, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Builder{}
)

// RegisterApp makes builder available to RunApp under name.
func RegisterApp(name string, builder Builder) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = builder
}

// Apps lists the registered app names.
func Apps() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var screenFactory = tcell.NewScreen

// SetScreenFactory overrides the screen factory used by Run. Passing nil restores the default.
func SetScreenFactory(factory func() (tcell.Screen, error)) {
	if factory == nil {
		screenFactory = tcell.NewScreen
		return
	}
	screenFactory = factory
}

// Run executes the provided builder inside a local tcell screen. It returns
// when the app's Run returns or the user presses Ctrl-C or Esc.
func Run(builder Builder, args []string) error {
	app, err := builder(args)
	if err != nil {
		return err
	}

	screen, err := screenFactory()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()
	screen.Clear()

	width, height := screen.Size()
	app.Resize(width, height)
	refreshCh := make(chan bool, 1)
	app.SetRefreshNotifier(refreshCh)

	draw := func() {
		buffer := app.Render()
		screen.Clear()
		for y, row := range buffer {
			for x, cell := range row {
				screen.SetContent(x, y, cell.Ch, nil, cell.Style)
			}
		}
		screen.Show()
	}

	draw()

	runErr := make(chan error, 1)
	go func() {
		runErr <- app.Run()
		screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()
	defer app.Stop()

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-done:
				return
			case <-refreshCh:
				screen.PostEvent(tcell.NewEventInterrupt(nil))
			}
		}
	}()

	for {
		select {
		case err := <-runErr:
			return err
		default:
		}

		ev := screen.PollEvent()
		switch tev := ev.(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			draw()
		case *tcell.EventResize:
			w, h := tev.Size()
			app.Resize(w, h)
			screen.Sync()
			draw()
		case *tcell.EventKey:
			if tev.Key() == tcell.KeyCtrlC || tev.Key() == tcell.KeyEscape {
				return nil
			}
			app.HandleKey(tev)
			draw()
		}
	}
}

// RunApp finds a registered builder by name and runs it.
func RunApp(name string, args []string) error {
	registryMu.RLock()
	buildApp, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown app %q", name)
	}
	return Run(buildApp, args)
}
