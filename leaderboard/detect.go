// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: leaderboard/detect.go
// Summary: New-score detection and the NEW_SCORE broadcast line format.

package leaderboard

import (
	"fmt"
	"strings"
)

const (
	NewScorePrefix = "NEW_SCORE:"
	// RefreshMessage is broadcast after a refresh that found nothing new.
	RefreshMessage = "REFRESH"

	fallbackNotification = "New high score detected!"
)

type NewScore struct {
	MachineID int64
	Machine   string
	Player    string
	Score     string
	EntryID   string
}

// DetectNewScores returns the entries of current that are missing from
// previous. A nil previous means the machine has never been seen, so nothing
// counts as new.
func DetectNewScores(machine Machine, previous []HighScoreEntry) []NewScore {
	if previous == nil || len(machine.HighScores) == 0 {
		return nil
	}
	known := make(map[string]struct{}, len(previous))
	for _, e := range previous {
		known[EntryID(e)] = struct{}{}
	}

	var found []NewScore
	for _, e := range machine.HighScores {
		id := EntryID(e)
		if _, ok := known[id]; ok {
			continue
		}
		score := e.Score
		if score == "" {
			score = "?"
		}
		found = append(found, NewScore{
			MachineID: machine.ID,
			Machine:   machine.Name(),
			Player:    ResolveUsername(e),
			Score:     score,
			EntryID:   id,
		})
	}
	return found
}

// Message renders the broadcast line NEW_SCORE:<machine>:<player>:<score>.
func (n NewScore) Message() string {
	return NewScorePrefix + n.Machine + ":" + n.Player + ":" + n.Score
}

// Notification is the sentence shown to the user.
func (n NewScore) Notification() string {
	return fmt.Sprintf("New high score on %s! %s scored %s!", n.Machine, n.Player, FormatScore(n.Score))
}

// ParseNewScore reads one NEW_SCORE line. The score keeps any colons that
// follow the third separator.
func ParseNewScore(line string) (NewScore, bool) {
	if !strings.HasPrefix(line, NewScorePrefix) {
		return NewScore{}, false
	}
	parts := strings.SplitN(line, ":", 4)
	if len(parts) < 4 {
		return NewScore{}, false
	}
	return NewScore{Machine: parts[1], Player: parts[2], Score: parts[3]}, true
}

// NotificationFor renders a NEW_SCORE line, falling back to a generic
// sentence when the line is malformed.
func NotificationFor(line string) string {
	if n, ok := ParseNewScore(line); ok {
		return n.Notification()
	}
	return fallbackNotification
}

// SplitMessage returns the NEW_SCORE lines of a broadcast, in order.
func SplitMessage(message string) []string {
	if !strings.Contains(message, NewScorePrefix) {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(message, "\n") {
		if strings.HasPrefix(line, NewScorePrefix) {
			lines = append(lines, line)
		}
	}
	return lines
}
