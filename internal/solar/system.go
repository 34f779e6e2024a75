// Package solar generates procedural solar systems: a sun, planets on
// circular orbits, and moons circling their planets.
package solar

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-galaxy/internal/astro"
	"github.com/litescript/ls-galaxy/internal/fx"
)

// BodyKind distinguishes the sun, planets and moons.
type BodyKind int

const (
	BodySun BodyKind = iota
	BodyPlanet
	BodyMoon
)

func (k BodyKind) String() string {
	switch k {
	case BodySun:
		return "sun"
	case BodyPlanet:
		return "planet"
	case BodyMoon:
		return "moon"
	default:
		return "unknown"
	}
}

// Generation ranges.
const (
	MinPlanets = 3
	MaxPlanets = 12

	SunSize = 3.0

	FirstOrbit   = 3.0
	MinOrbitStep = 10.0
	MaxOrbitStep = 14.0

	MinPlanetSize  = 0.25
	MaxPlanetSize  = 1.25
	MinPlanetSpeed = 0.05
	MaxPlanetSpeed = 0.5

	MoonChance   = 0.35
	MinMoons     = 1
	MaxMoons     = 3
	MinMoonSize  = 0.1 // fraction of planet size
	MaxMoonSize  = 0.3
	MinMoonOrbit = 1.5 // multiple of planet size
	MaxMoonOrbit = 3.0
	MinMoonSpeed = 0.2
	MaxMoonSpeed = 1.2
)

const (
	planetSat      = 0.6
	planetLight    = 0.5
	defaultSpeed   = 0.3
	defaultMoonSpd = 1.0
)

var (
	// SunColor is the sun's emissive tint.
	SunColor = colorful.Color{R: 1.0, G: 0xdd / 255.0, B: 0x88 / 255.0}
	// MoonColor is the flat grey of every moon.
	MoonColor = colorful.Color{R: 0xaa / 255.0, G: 0xaa / 255.0, B: 0xaa / 255.0}
)

// Body is a sun, planet or moon.
type Body struct {
	Kind        BodyKind
	Name        string
	Size        float64 // render radius
	OrbitRadius float64 // distance from the orbit center
	OrbitSpeed  float64 // radians per second
	Parent      int     // index of the planet a moon circles; -1 otherwise
	Color       colorful.Color
}

// System is one spawned solar system. Bodies[0] is always the sun; each
// planet is followed directly by its moons. Bodies are immutable after
// Spawn.
type System struct {
	Name   string
	Center astro.Vec3
	Bodies []Body
}

// Spawn creates a solar system around center. It also returns the bloom
// parameters recommended for a planet-lit scene.
func Spawn(rng *rand.Rand, center astro.Vec3) (*System, fx.Bloom) {
	name := fmt.Sprintf("LSG %04d", rng.IntN(10000))
	sys := &System{
		Name:   name,
		Center: center,
		Bodies: []Body{{
			Kind:   BodySun,
			Name:   name,
			Size:   SunSize,
			Parent: -1,
			Color:  SunColor,
		}},
	}

	planets := randInt(rng, MinPlanets, MaxPlanets)
	orbit := FirstOrbit
	for k := 0; k < planets; k++ {
		if k > 0 {
			orbit += randFloat(rng, MinOrbitStep, MaxOrbitStep)
		}
		size := randFloat(rng, MinPlanetSize, MaxPlanetSize)
		color := colorful.Hsl(rng.Float64()*360, planetSat, planetLight)
		speed := randFloat(rng, MinPlanetSpeed, MaxPlanetSpeed)

		planetIdx := len(sys.Bodies)
		planetName := fmt.Sprintf("%s %c", name, 'b'+rune(k))
		sys.Bodies = append(sys.Bodies, Body{
			Kind:        BodyPlanet,
			Name:        planetName,
			Size:        size,
			OrbitRadius: orbit,
			OrbitSpeed:  speed,
			Parent:      -1,
			Color:       color,
		})

		if rng.Float64() >= MoonChance {
			continue
		}
		moons := randInt(rng, MinMoons, MaxMoons)
		for m := 0; m < moons; m++ {
			sys.Bodies = append(sys.Bodies, Body{
				Kind:        BodyMoon,
				Name:        fmt.Sprintf("%s %s", planetName, romanNumerals[m]),
				Size:        randFloat(rng, size*MinMoonSize, size*MaxMoonSize),
				OrbitRadius: randFloat(rng, size*MinMoonOrbit, size*MaxMoonOrbit),
				OrbitSpeed:  randFloat(rng, MinMoonSpeed, MaxMoonSpeed),
				Parent:      planetIdx,
				Color:       MoonColor,
			})
		}
	}

	return sys, fx.PlanetBloom
}

var romanNumerals = [...]string{"I", "II", "III"}

// Planets returns the body indices of every planet, innermost first.
func (s *System) Planets() []int {
	var idx []int
	for i, b := range s.Bodies {
		if b.Kind == BodyPlanet {
			idx = append(idx, i)
		}
	}
	return idx
}

// Moons returns the body indices of the moons orbiting planet.
func (s *System) Moons(planet int) []int {
	var idx []int
	for i, b := range s.Bodies {
		if b.Kind == BodyMoon && b.Parent == planet {
			idx = append(idx, i)
		}
	}
	return idx
}

// Extent returns the outermost planet orbit radius.
func (s *System) Extent() float64 {
	var r float64
	for _, b := range s.Bodies {
		if b.Kind == BodyPlanet && b.OrbitRadius > r {
			r = b.OrbitRadius
		}
	}
	return r
}

// Positions returns the world position of every body at t seconds,
// reusing dst when it has capacity. Planets circle the center in the XZ
// plane; moons circle their parent's current position.
func (s *System) Positions(t float64, dst []astro.Vec3) []astro.Vec3 {
	dst = dst[:0]
	for _, b := range s.Bodies {
		switch b.Kind {
		case BodyPlanet:
			dst = append(dst, s.Center.Add(orbitOffset(t, b.OrbitRadius, b.OrbitSpeed, defaultSpeed)))
		case BodyMoon:
			parent := s.Center
			if b.Parent >= 0 && b.Parent < len(dst) {
				parent = dst[b.Parent]
			}
			dst = append(dst, parent.Add(orbitOffset(t, b.OrbitRadius, b.OrbitSpeed, defaultMoonSpd)))
		default:
			dst = append(dst, s.Center)
		}
	}
	return dst
}

func orbitOffset(t, radius, speed, fallback float64) astro.Vec3 {
	if speed == 0 {
		speed = fallback
	}
	a := t * speed
	return astro.Vec3{X: math.Cos(a) * radius, Z: math.Sin(a) * radius}
}

// randInt returns a uniform integer in [lo, hi].
func randInt(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}

// randFloat returns a uniform float in [lo, hi).
func randFloat(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
