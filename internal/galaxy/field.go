package galaxy

import (
	"github.com/litescript/ls-galaxy/internal/astro"
)

// Field is the position and color buffer for one galaxy.
//
// Buffers are interleaved float32 triples laid out the way a vertex buffer
// expects them. A Field is never modified after Generate returns; a new
// galaxy gets a new Field.
type Field struct {
	Archetype Archetype

	// Positions holds x,y,z per particle.
	Positions []float32
	// Colors holds r,g,b per particle. Channels are non-negative but may
	// exceed 1 for glow.
	Colors []float32
	// Radial holds the radial coordinate each particle was sampled at.
	// For spiral shapes this is the distance along the arm before jitter,
	// for Elliptical the fraction of the ellipsoid in [0,1], and for
	// Irregular the final distance from the origin.
	Radial []float32

	// MaxRadius is the nominal extent, used to frame the galaxy.
	MaxRadius float32
}

func newField(a Archetype, n int, maxRadius float32) *Field {
	return &Field{
		Archetype: a,
		Positions: make([]float32, n*3),
		Colors:    make([]float32, n*3),
		Radial:    make([]float32, n),
		MaxRadius: maxRadius,
	}
}

// Len returns the number of particles.
func (f *Field) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Radial)
}

// Position returns particle i's position.
func (f *Field) Position(i int) astro.Vec3 {
	i3 := i * 3
	return astro.Vec3{
		X: float64(f.Positions[i3]),
		Y: float64(f.Positions[i3+1]),
		Z: float64(f.Positions[i3+2]),
	}
}

// Color returns particle i's color channels.
func (f *Field) Color(i int) (r, g, b float32) {
	i3 := i * 3
	return f.Colors[i3], f.Colors[i3+1], f.Colors[i3+2]
}

func (f *Field) set(i int, x, y, z, r, g, b, radial float32) {
	i3 := i * 3
	f.Positions[i3] = x
	f.Positions[i3+1] = y
	f.Positions[i3+2] = z
	f.Colors[i3] = r
	f.Colors[i3+1] = g
	f.Colors[i3+2] = b
	f.Radial[i] = radial
}
