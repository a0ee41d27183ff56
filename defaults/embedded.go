// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: defaults/embedded.go
// Summary: Embedded default configuration file.

package defaults

import _ "embed"

//go:embed celebrate.json
var celebrateJSON []byte

// Config returns the embedded celebrate.json.
func Config() []byte {
	out := make([]byte, len(celebrateJSON))
	copy(out, celebrateJSON)
	return out
}
