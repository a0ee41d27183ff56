// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bufio"
	"context"
	"io"
	"log"
	"strings"

	"github.com/framegrace/celebrate/celebration"
	"github.com/framegrace/celebrate/internal/confetti"
	"github.com/framegrace/celebrate/registry"
)

// runHeadless writes bursts to out as JSON lines and dispatches one
// invocation per input line. It returns once in is exhausted and every
// celebration has finished, or when ctx ends.
func runHeadless(ctx context.Context, opts options, in io.Reader, out io.Writer) error {
	trig := celebration.NewTrigger(confetti.NewJSONRenderer(out), celebration.WithFrameRate(opts.fps))
	reg := registry.New()
	celebration.Register(reg, trig)

	if opts.durationSet {
		if err := reg.Invoke(celebration.EntryPoint, registry.Args{"duration_ms": opts.duration.Milliseconds()}); err != nil {
			log.Printf("Celebrate: %v", err)
		}
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			log.Printf("Celebrate: Reading input failed: %v", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			trig.Stop()
			trig.Wait()
			return nil
		case line, ok := <-lines:
			if !ok {
				return waitOrCancel(ctx, trig)
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			invocations, err := registry.ParseInvocations(line)
			if err != nil {
				log.Printf("Celebrate: Ignoring malformed input %q: %v", line, err)
				continue
			}
			if err := reg.Dispatch(invocations); err != nil {
				log.Printf("Celebrate: %v", err)
			}
		}
	}
}

func waitOrCancel(ctx context.Context, trig *celebration.Trigger) error {
	done := make(chan struct{})
	go func() {
		trig.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		trig.Stop()
		<-done
	}
	return nil
}
