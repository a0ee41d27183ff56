// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"log"
	"time"

	"github.com/framegrace/celebrate/apps/scoreboard"
	"github.com/framegrace/celebrate/celebration"
	"github.com/framegrace/celebrate/config"
	"github.com/framegrace/celebrate/internal/confetti"
	"github.com/framegrace/celebrate/internal/devshell"
	"github.com/framegrace/celebrate/internal/effects"
	"github.com/framegrace/celebrate/leaderboard"
	"github.com/framegrace/celebrate/registry"
	"github.com/framegrace/celebrate/texel"
)

const appName = "scoreboard"

func openStore(opts options) leaderboard.Store {
	path := opts.dbPath
	if path == "" {
		p, err := config.DataPath("scores.db")
		if err != nil {
			log.Printf("Celebrate: No score database (%v), keeping history in memory", err)
			return leaderboard.NewMemoryStore()
		}
		path = p
	}
	store, err := leaderboard.OpenSQLiteStore(path)
	if err != nil {
		log.Printf("Celebrate: Failed to open score database %s: %v, keeping history in memory", path, err)
		return leaderboard.NewMemoryStore()
	}
	return store
}

// buildEffects returns the overlay manager and the confetti effect that
// doubles as the trigger's renderer.
func buildEffects(cfg config.Config) (*effects.Manager, *effects.Confetti) {
	mgr := effects.NewManager()
	conf := effects.NewConfetti(confetti.NewCanvas())
	mgr.Register(conf)

	specs := effects.ConfigFromStore(cfg)
	for _, id := range []string{"flash", "toast"} {
		eff, err := effects.Create(id, specs[id])
		if err != nil {
			log.Printf("Celebrate: %v", err)
			continue
		}
		mgr.Register(eff)
	}
	return mgr, conf
}

func runTUI(ctx context.Context, opts options, cfg config.Config) error {
	store := openStore(opts)
	defer store.Close()

	var source leaderboard.Source
	if opts.scoresPath != "" {
		source = leaderboard.FileSource{Path: opts.scoresPath}
	}
	svc := leaderboard.NewService(source, store, leaderboard.NewBroadcaster(),
		leaderboard.WithHighlightDuration(cfg.Leaderboard().GetSeconds("highlight_seconds", leaderboard.DefaultHighlightDuration)))

	mgr, conf := buildEffects(cfg)
	trig := celebration.NewTrigger(conf, celebration.WithFrameRate(opts.fps))
	defer func() {
		trig.Stop()
		trig.Wait()
	}()
	reg := registry.New()
	celebration.Register(reg, trig)

	fireworks := cfg.Leaderboard().GetSeconds("fireworks_duration_seconds", 30*time.Second)
	if opts.durationSet {
		fireworks = opts.duration
	}
	refresh := cfg.Leaderboard().GetMinutes("data_refresh_minutes", 5*time.Minute)

	app := scoreboard.New(svc, reg, mgr, scoreboard.Config{
		FireworksDuration: fireworks,
		RefreshInterval:   refresh,
	})
	devshell.RegisterApp(appName, func([]string) (texel.App, error) {
		return app, nil
	})

	go func() {
		<-ctx.Done()
		app.Stop()
	}()
	return devshell.RunApp(appName, nil)
}
