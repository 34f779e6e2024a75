// Package fx holds the post-processing parameters and per-particle effects
// a renderer applies on top of generated scenes.
package fx

import (
	"math"

	"github.com/litescript/ls-galaxy/internal/astro"
)

// Bloom is a bloom pass parameter triple.
type Bloom struct {
	Strength  float64
	Radius    float64
	Threshold float64
}

var (
	// DefaultBloom suits the additive star fields of galaxy view.
	DefaultBloom = Bloom{Strength: 1.4, Radius: 0.4, Threshold: 0.0}

	// PlanetBloom suits a lit solar system: weaker and thresholded so
	// only the sun glows.
	PlanetBloom = Bloom{Strength: 0.8, Radius: 0.35, Threshold: 0.25}
)

// WarpStretch scales the warp displacement relative to a particle's distance
// from the galaxy center.
const WarpStretch = 4.0

// WarpOffset displaces p along dir for a warp at progress in [0,1].
// Particles far from the center streak further.
func WarpOffset(p, dir astro.Vec3, progress float64) astro.Vec3 {
	return p.Add(dir.Scale(progress * p.Norm() * WarpStretch))
}

// Twinkle returns a brightness multiplier in [0.5, 1.0] for a particle at p
// at time t seconds.
func Twinkle(t float64, p astro.Vec3) float64 {
	return 0.75 + 0.25*math.Sin(t*3.0+p.X*10.0+p.Y*20.0)
}
