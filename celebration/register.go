// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: celebration/register.go
// Summary: Binds the celebration entry points on a command registry.

package celebration

import (
	"log"

	"github.com/framegrace/celebrate/registry"
)

// Names under which Register binds the trigger.
const (
	EntryPoint            = "triggerCelebration"
	SingleBurstEntryPoint = "triggerSingleBurst"
)

// Register exposes t to untyped call sites. triggerCelebration takes an
// optional "duration_ms"; when it is absent the default duration applies.
func Register(reg *registry.Registry, t *Trigger) {
	reg.Register(EntryPoint, func(args registry.Args) error {
		var task *Task
		if d, ok := args.Millis("duration_ms"); ok {
			task = t.CelebrateFor(d)
			log.Printf("Celebration: %s started for %v", task.ID(), d)
		} else {
			task = t.Celebrate()
			log.Printf("Celebration: %s started for %v (default)", task.ID(), DefaultDuration)
		}
		return nil
	})
	reg.Register(SingleBurstEntryPoint, func(registry.Args) error {
		t.FireSingleBurst()
		return nil
	})
}
