// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package celebration

import (
	"math"
	"math/rand/v2"
	"testing"
)

// fixedSource returns the same float for every draw and either the lowest or
// the highest integer.
type fixedSource struct {
	f       float64
	pickMax bool
}

func (s fixedSource) Float64() float64 { return s.f }

func (s fixedSource) IntN(n int) int {
	if s.pickMax {
		return n - 1
	}
	return 0
}

var almostOne = math.Nextafter(1, 0)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestGenerateBurstParametersLowerBounds(t *testing.T) {
	p := NewGenerator(fixedSource{f: 0}).GenerateBurstParameters()

	if p.ParticleCount != 5 {
		t.Errorf("particle count = %d, want 5", p.ParticleCount)
	}
	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"startVelocity", p.StartVelocity, 20},
		{"spread", p.Spread, 60},
		{"origin.x", p.Origin.X, 0.1},
		{"origin.y", p.Origin.Y, 0.2},
		{"gravity", p.Gravity, 0.8},
		{"scalar", p.Scalar, 0.8},
		{"drift", p.Drift, -0.25},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if p.Ticks != 200 {
		t.Errorf("ticks = %d, want 200", p.Ticks)
	}
	if len(p.Colors) != 3 || p.Colors[0] != "#ff0000" {
		t.Errorf("expected fire palette, got %v", p.Colors)
	}
}

func TestGenerateBurstParametersUpperBounds(t *testing.T) {
	p := NewGenerator(fixedSource{f: almostOne, pickMax: true}).GenerateBurstParameters()

	if p.ParticleCount != 19 {
		t.Errorf("particle count = %d, want 19", p.ParticleCount)
	}
	if p.StartVelocity >= 40 || p.Spread >= 120 {
		t.Errorf("velocity/spread reached exclusive bound: %v / %v", p.StartVelocity, p.Spread)
	}
	if p.Origin.X > 0.9 || p.Origin.Y > 0.7 {
		t.Errorf("origin out of range: %+v", p.Origin)
	}
	if p.Gravity > 1.2 || p.Scalar > 1.2 || p.Drift > 0.25 {
		t.Errorf("gravity/scalar/drift out of range: %v %v %v", p.Gravity, p.Scalar, p.Drift)
	}
	if len(p.Colors) != 4 || p.Colors[0] != "#ff4500" {
		t.Errorf("expected sunset palette, got %v", p.Colors)
	}
}

func TestGenerateBurstParametersRanges(t *testing.T) {
	gen := NewGenerator(seeded())
	for i := 0; i < 10000; i++ {
		p := gen.GenerateBurstParameters()
		if p.ParticleCount < 5 || p.ParticleCount >= 20 {
			t.Fatalf("particle count %d out of [5,20)", p.ParticleCount)
		}
		if p.StartVelocity < 20 || p.StartVelocity >= 40 {
			t.Fatalf("start velocity %v out of [20,40)", p.StartVelocity)
		}
		if p.Spread < 60 || p.Spread >= 120 {
			t.Fatalf("spread %v out of [60,120)", p.Spread)
		}
		if p.Origin.X < 0.1 || p.Origin.X > 0.9 {
			t.Fatalf("origin.x %v out of [0.1,0.9]", p.Origin.X)
		}
		if p.Origin.Y < 0.2 || p.Origin.Y > 0.7 {
			t.Fatalf("origin.y %v out of [0.2,0.7]", p.Origin.Y)
		}
		if p.Gravity < 0.8 || p.Gravity > 1.2 {
			t.Fatalf("gravity %v out of [0.8,1.2]", p.Gravity)
		}
		if p.Scalar < 0.8 || p.Scalar > 1.2 {
			t.Fatalf("scalar %v out of [0.8,1.2]", p.Scalar)
		}
		if p.Drift < -0.25 || p.Drift > 0.25 {
			t.Fatalf("drift %v out of [-0.25,0.25]", p.Drift)
		}
		if p.Ticks != BurstTicks {
			t.Fatalf("ticks = %d", p.Ticks)
		}
		if len(p.Colors) == 0 {
			t.Fatalf("empty colors")
		}
	}
}

func TestSelectPaletteIsUniform(t *testing.T) {
	gen := NewGenerator(seeded())
	const draws = 60000
	counts := make(map[string]int)
	for i := 0; i < draws; i++ {
		p := gen.SelectPalette()
		if len(p.Colors) == 0 {
			t.Fatalf("palette %q has no colors", p.Name)
		}
		counts[p.Name]++
	}
	if len(counts) != 6 {
		t.Fatalf("expected 6 distinct palettes, got %d: %v", len(counts), counts)
	}
	expected := draws / 6
	for name, n := range counts {
		if n < expected-600 || n > expected+600 {
			t.Errorf("palette %q drawn %d times, expected about %d", name, n, expected)
		}
	}
}

func TestPalettesAreFixed(t *testing.T) {
	want := []string{"fire", "ice", "purple", "neon-green", "gold", "sunset"}
	got := Palettes()
	if len(got) != len(want) {
		t.Fatalf("expected %d palettes, got %d", len(want), len(got))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("palette %d = %q, want %q", i, got[i].Name, name)
		}
	}

	got[0].Colors[0] = "#000000"
	if Palettes()[0].Colors[0] != "#ff0000" {
		t.Fatalf("mutating a returned palette leaked into the fixed set")
	}
}

func TestGeneratedColorsAreCopies(t *testing.T) {
	gen := NewGenerator(fixedSource{f: 0})
	p := gen.GenerateBurstParameters()
	p.Colors[0] = "#123456"
	if again := gen.GenerateBurstParameters(); again.Colors[0] != "#ff0000" {
		t.Fatalf("palette mutated through burst colors: %v", again.Colors)
	}
}

func TestBurstsPerFrame(t *testing.T) {
	gen := NewGenerator(seeded())
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		n := gen.BurstsPerFrame()
		if n != 1 && n != 2 {
			t.Fatalf("bursts per frame = %d", n)
		}
		seen[n] = true
	}
	if !seen[1] || !seen[2] {
		t.Fatalf("expected both 1 and 2 bursts, saw %v", seen)
	}
}

func TestSingleBurst(t *testing.T) {
	p := SingleBurst()
	if p.ParticleCount != 100 || p.Spread != 70 || p.Origin.Y != 0.6 {
		t.Fatalf("unexpected single burst %+v", p)
	}
	if len(p.Colors) == 0 {
		t.Fatalf("single burst has no colors")
	}
}
