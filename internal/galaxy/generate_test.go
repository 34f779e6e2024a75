package galaxy

import (
	"bytes"
	"errors"
	"math"
	"math/rand/v2"
	"strings"
	"testing"
)

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestGenerate_Counts(t *testing.T) {
	tests := []struct {
		archetype Archetype
		count     int
		want      int
	}{
		{Spiral, 1, 1},
		{Spiral, 4000, 4000},
		{BarredSpiral, 777, 777},
		{Elliptical, 2500, 2500},
		{Irregular, 3, 3},
		{Dwarf, 10, DwarfCount},
		{Dwarf, 250000, DwarfCount},
		{Spiral, 0, DefaultCount},
	}

	for _, tt := range tests {
		t.Run(tt.archetype.String(), func(t *testing.T) {
			f := Generate(testRand(1), tt.archetype, tt.count)
			if f.Len() != tt.want {
				t.Fatalf("Len() = %d, want %d", f.Len(), tt.want)
			}
			if len(f.Positions) != tt.want*3 || len(f.Colors) != tt.want*3 {
				t.Errorf("buffer sizes = %d/%d, want %d", len(f.Positions), len(f.Colors), tt.want*3)
			}
			if f.Archetype != tt.archetype {
				t.Errorf("Archetype = %v, want %v", f.Archetype, tt.archetype)
			}
		})
	}
}

func TestGenerateSpiral_CustomParams(t *testing.T) {
	tests := []struct {
		name     string
		branches int
		bar      []int
		want     Archetype
	}{
		{"two arms", 2, nil, Spiral},
		{"single arm", 0, nil, Spiral},
		{"barred", 4, []int{0, 2}, BarredSpiral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := SpiralDefaults()
			p.Branches = tt.branches
			p.BarBranches = tt.bar
			p.Radius = 5

			f := GenerateSpiral(testRand(3), p, 500)
			if f.Len() != 500 {
				t.Fatalf("Len() = %d, want 500", f.Len())
			}
			if f.Archetype != tt.want {
				t.Errorf("Archetype = %v, want %v", f.Archetype, tt.want)
			}
			if f.MaxRadius != 5 {
				t.Errorf("MaxRadius = %v, want 5", f.MaxRadius)
			}
			for i, r := range f.Radial {
				if r < 0 || r > 5 {
					t.Fatalf("particle %d radial %v outside [0,5]", i, r)
				}
			}
		})
	}
}

func TestGenerate_FiniteAndNonNegative(t *testing.T) {
	for _, a := range All() {
		for seed := uint64(1); seed <= 3; seed++ {
			f := Generate(testRand(seed), a, 3000)
			for i := 0; i < f.Len(); i++ {
				if !f.Position(i).IsFinite() {
					t.Fatalf("%v seed %d: particle %d position not finite: %+v", a, seed, i, f.Position(i))
				}
				r, g, b := f.Color(i)
				if r < 0 || g < 0 || b < 0 {
					t.Fatalf("%v seed %d: particle %d negative color (%v, %v, %v)", a, seed, i, r, g, b)
				}
			}
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	for _, a := range All() {
		f1 := Generate(testRand(42), a, 500)
		f2 := Generate(testRand(42), a, 500)
		for i := range f1.Positions {
			if f1.Positions[i] != f2.Positions[i] || f1.Colors[i] != f2.Colors[i] {
				t.Fatalf("%v: same seed produced different output at %d", a, i)
			}
		}
	}
}

func TestGenerate_RadialWithinRadius(t *testing.T) {
	tests := []struct {
		archetype Archetype
		radius    float32
	}{
		{Spiral, SpiralDefaults().Radius},
		{BarredSpiral, BarredDefaults().Radius},
		{Dwarf, DwarfDefaults().Radius},
	}

	for _, tt := range tests {
		for seed := uint64(0); seed < 5; seed++ {
			f := Generate(testRand(seed), tt.archetype, 4000)
			for i, r := range f.Radial {
				if r < 0 || r > tt.radius {
					t.Fatalf("%v seed %d: radial[%d] = %v outside [0, %v]", tt.archetype, seed, i, r, tt.radius)
				}
			}
		}
	}
}

func TestGenerate_EllipticalInsideEllipsoid(t *testing.T) {
	p := EllipticalDefaults()
	f := Generate(testRand(7), Elliptical, 5000)

	for i := 0; i < f.Len(); i++ {
		v := f.Position(i)
		a, b, c := float64(p.A), float64(p.B), float64(p.C)
		q := (v.X/a)*(v.X/a) + (v.Y/c)*(v.Y/c) + (v.Z/b)*(v.Z/b)
		if q > 1+1e-5 {
			t.Fatalf("particle %d at %+v outside ellipsoid (q = %v)", i, v, q)
		}
	}
}

func TestGenerate_BarredColors(t *testing.T) {
	p := BarredDefaults()
	f := Generate(testRand(11), BarredSpiral, 6000)

	var bar, arm int
	for i := 0; i < f.Len(); i++ {
		r := f.Radial[i]
		cr, cg, cb := f.Color(i)

		if p.IsBar(i%p.Branches, r) {
			bar++
			if cr != p.BarTint[0] || cg != p.BarTint[1] || cb != p.BarTint[2] {
				t.Fatalf("bar particle %d color (%v, %v, %v), want %v", i, cr, cg, cb, p.BarTint)
			}
			continue
		}

		arm++
		wr, wg, wb := p.Gradient.At(1 - r/p.Radius)
		if !near(cr, wr) || !near(cg, wg) || !near(cb, wb) {
			t.Fatalf("arm particle %d color (%v, %v, %v), want (%v, %v, %v)", i, cr, cg, cb, wr, wg, wb)
		}
	}

	if bar == 0 || arm == 0 {
		t.Errorf("expected both bar and arm particles, got bar=%d arm=%d", bar, arm)
	}
}

func TestGenerate_SpiralGradient(t *testing.T) {
	p := SpiralDefaults()
	f := Generate(testRand(3), Spiral, 1000)

	for i := 0; i < f.Len(); i++ {
		cr, cg, cb := f.Color(i)
		tt := 1 - f.Radial[i]/p.Radius
		if cr != 1.0 {
			t.Fatalf("particle %d red = %v, want 1", i, cr)
		}
		if !near(cg, 0.7*tt+0.3) || !near(cb, 0.3+0.7*(1-tt)) {
			t.Fatalf("particle %d color (%v, %v) off gradient at t=%v", i, cg, cb, tt)
		}
	}
}

func TestGenerate_DiskThinsTowardEdge(t *testing.T) {
	p := SpiralDefaults()
	f := Generate(testRand(5), Spiral, 4000)

	for i := 0; i < f.Len(); i++ {
		r := f.Radial[i]
		half := (p.DiskBase + (1-r/p.Radius)*p.DiskCore) / 2
		y := f.Positions[i*3+1]
		if y < -half-1e-5 || y > half+1e-5 {
			t.Fatalf("particle %d y = %v exceeds half thickness %v", i, y, half)
		}
	}
}

func TestGenerate_IrregularColorBands(t *testing.T) {
	p := IrregularDefaults()
	f := Generate(testRand(9), Irregular, 4000)

	for i := 0; i < f.Len(); i++ {
		v := f.Position(i)
		burst := Noise(float32(v.X)*p.BurstScale, float32(v.Y)*p.BurstScale, float32(v.Z)*p.BurstScale)
		cr, cg, cb := f.Color(i)
		switch {
		case burst > p.BurstHigh:
			if cb != 1.0 {
				t.Fatalf("particle %d: bright band should have blue 1, got %v", i, cb)
			}
		case burst < p.BurstLow:
			if cr != 1.0 || cg != 0.6 || cb != 0.4 {
				t.Fatalf("particle %d: warm band color (%v, %v, %v)", i, cr, cg, cb)
			}
		}
	}
}

func TestNoiseBounded(t *testing.T) {
	rng := testRand(13)
	for i := 0; i < 10000; i++ {
		x := (rng.Float32() - 0.5) * 100
		y := (rng.Float32() - 0.5) * 100
		z := (rng.Float32() - 0.5) * 100
		n := Noise(x, y, z)
		if n < -0.99-1e-6 || n > 0.99+1e-6 {
			t.Fatalf("Noise(%v, %v, %v) = %v out of range", x, y, z, n)
		}
	}
}

func TestParseArchetype(t *testing.T) {
	tests := []struct {
		in      string
		want    Archetype
		wantErr bool
	}{
		{"spiral", Spiral, false},
		{"Barred", BarredSpiral, false},
		{"barred-spiral", BarredSpiral, false},
		{" elliptical ", Elliptical, false},
		{"IRREGULAR", Irregular, false},
		{"dwarf", Dwarf, false},
		{"lenticular", Spiral, true},
		{"", Spiral, true},
	}

	for _, tt := range tests {
		got, err := ParseArchetype(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownArchetype) {
				t.Errorf("ParseArchetype(%q) error = %v, want ErrUnknownArchetype", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseArchetype(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestArchetypeStringRoundTrip(t *testing.T) {
	for _, a := range All() {
		got, err := ParseArchetype(a.String())
		if err != nil || got != a {
			t.Errorf("ParseArchetype(%q) = %v, %v", a.String(), got, err)
		}
	}
	if Archetype(99).Valid() {
		t.Error("Archetype(99) should not be valid")
	}
}

func TestRandomCoversAll(t *testing.T) {
	rng := testRand(21)
	seen := make(map[Archetype]bool)
	for i := 0; i < 500; i++ {
		seen[Random(rng)] = true
	}
	if len(seen) != len(All()) {
		t.Errorf("Random covered %d archetypes, want %d", len(seen), len(All()))
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	WriteSummary(&buf, Generate(testRand(1), Spiral, 100), Generate(testRand(1), Dwarf, 1))

	out := buf.String()
	if !strings.Contains(out, "spiral") || !strings.Contains(out, "dwarf") {
		t.Errorf("summary missing archetype rows:\n%s", out)
	}
	if !strings.Contains(out, "100000") {
		t.Errorf("summary missing dwarf count:\n%s", out)
	}
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}
