// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/celebrate/main.go
// Summary: Leaderboard TUI with confetti celebrations, or a headless burst stream.
// Usage: `celebrate -scores scores.json` in a terminal, or
// `echo '{"id":"triggerCelebration","duration_ms":5000}' | celebrate -headless`.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/framegrace/celebrate/config"
)

type options struct {
	duration    time.Duration
	durationSet bool
	fps         int
	scoresPath  string
	dbPath      string
	headless    bool
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg := config.Get()
	opts, err := parseFlags(args, cfg, os.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.headless || !term.IsTerminal(int(os.Stdout.Fd())) {
		log.SetOutput(os.Stderr)
		return runHeadless(ctx, opts, os.Stdin, os.Stdout)
	}

	logPath, err := config.DataPath("celebrate.log")
	if err != nil {
		return fmt.Errorf("resolve log path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.Println("Celebrate: Starting leaderboard")
	if err := config.Err(); err != nil {
		log.Printf("Celebrate: Config problem, using defaults where needed: %v", err)
	}

	return runTUI(ctx, opts, cfg)
}

func parseFlags(args []string, cfg config.Config, output io.Writer) (options, error) {
	fs := flag.NewFlagSet("celebrate", flag.ContinueOnError)
	fs.SetOutput(output)

	var opts options
	fs.DurationVar(&opts.duration, "duration", cfg.Celebration().GetMillis("duration_ms", 30*time.Second),
		"celebration length for new scores and the c key; in headless mode, fire one celebration of this length at start")
	fs.IntVar(&opts.fps, "fps", cfg.Celebration().GetInt("fps", 60), "frames per second of the celebration loop")
	fs.StringVar(&opts.scoresPath, "scores", cfg.Leaderboard().GetString("scores_path", ""), "JSON leaderboard snapshot to watch")
	fs.StringVar(&opts.dbPath, "db", cfg.Leaderboard().GetString("db_path", ""), "SQLite file remembering previous scores (default: <config dir>/scores.db)")
	fs.BoolVar(&opts.headless, "headless", false, "stream bursts as JSON lines instead of drawing them")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "duration" {
			opts.durationSet = true
		}
	})
	if opts.fps <= 0 {
		return options{}, fmt.Errorf("-fps must be positive, got %d", opts.fps)
	}
	return opts, nil
}
