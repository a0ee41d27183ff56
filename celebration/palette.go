// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: celebration/palette.go
// Summary: The fixed set of confetti palettes.

package celebration

import "slices"

// Palette is a named, ordered sequence of hex colors used to tint one burst.
type Palette struct {
	Name   string
	Colors []string
}

var palettes = [...]Palette{
	{Name: "fire", Colors: []string{"#ff0000", "#ff6600", "#ffcc00"}},
	{Name: "ice", Colors: []string{"#00ccff", "#0066ff", "#ffffff"}},
	{Name: "purple", Colors: []string{"#ff00ff", "#cc00ff", "#ff66cc"}},
	{Name: "neon-green", Colors: []string{"#00ff00", "#66ff33", "#ccff00"}},
	{Name: "gold", Colors: []string{"#ffd700", "#ffec8b", "#ffffff"}},
	{Name: "sunset", Colors: []string{"#ff4500", "#ff6347", "#ffa500", "#ffd700"}},
}

// Palettes returns a copy of every predefined palette in selection order.
func Palettes() []Palette {
	out := make([]Palette, len(palettes))
	for i, p := range palettes {
		out[i] = Palette{Name: p.Name, Colors: slices.Clone(p.Colors)}
	}
	return out
}
