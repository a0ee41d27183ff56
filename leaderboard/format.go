// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package leaderboard

import (
	"strconv"

	"github.com/dustin/go-humanize"
)

// FormatScore groups the digits of an integer score ("1234567" becomes
// "1,234,567"). Non-integers are returned unchanged and an empty score is "N/A".
func FormatScore(score string) string {
	if score == "" {
		return "N/A"
	}
	n, err := strconv.ParseInt(score, 10, 64)
	if err != nil {
		return score
	}
	return humanize.Comma(n)
}
