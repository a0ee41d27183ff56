// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/helpers.go
// Summary: Colour blending helpers shared by the overlay effects.

package effects

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// tintStyle blends both colours of style toward overlay, keeping attributes.
func tintStyle(style tcell.Style, overlay tcell.Color, intensity float32) tcell.Style {
	if intensity <= 0 {
		return style
	}
	fg, bg, attrs := style.Decompose()
	if !fg.Valid() {
		fg = tcell.ColorWhite
	}
	if !bg.Valid() {
		bg = tcell.ColorBlack
	}
	return tcell.StyleDefault.Foreground(blendColor(fg, overlay, intensity)).
		Background(blendColor(bg, overlay, intensity)).
		Bold(attrs&tcell.AttrBold != 0).
		Underline(attrs&tcell.AttrUnderline != 0).
		Reverse(attrs&tcell.AttrReverse != 0).
		Dim(attrs&tcell.AttrDim != 0).
		Italic(attrs&tcell.AttrItalic != 0)
}

// blendColor mixes overlay into base in Lab space.
func blendColor(base, overlay tcell.Color, intensity float32) tcell.Color {
	if !overlay.Valid() || intensity <= 0 {
		return base
	}
	if !base.Valid() {
		return overlay
	}
	if intensity > 1 {
		intensity = 1
	}
	mixed := toColorful(base).BlendLab(toColorful(overlay), float64(intensity)).Clamped()
	r, g, b := mixed.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func toColorful(c tcell.Color) colorful.Color {
	r, g, b := c.RGB()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func parseHexColor(value string) (tcell.Color, bool) {
	col, err := colorful.Hex(value)
	if err != nil {
		return tcell.ColorDefault, false
	}
	r, g, b := col.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b)), true
}
