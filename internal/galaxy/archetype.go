// Package galaxy generates particle fields for the procedural galaxy
// archetypes.
package galaxy

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

// Archetype selects one of the procedural galaxy shapes.
type Archetype int

const (
	Spiral Archetype = iota
	BarredSpiral
	Elliptical
	Irregular
	Dwarf
)

// ErrUnknownArchetype is returned when parsing an unrecognized archetype name.
var ErrUnknownArchetype = errors.New("unknown galaxy archetype")

var archetypeNames = [...]string{
	Spiral:       "spiral",
	BarredSpiral: "barred",
	Elliptical:   "elliptical",
	Irregular:    "irregular",
	Dwarf:        "dwarf",
}

// All returns every archetype in declaration order.
func All() []Archetype {
	return []Archetype{Spiral, BarredSpiral, Elliptical, Irregular, Dwarf}
}

func (a Archetype) String() string {
	if a < 0 || int(a) >= len(archetypeNames) {
		return fmt.Sprintf("archetype(%d)", int(a))
	}
	return archetypeNames[a]
}

// Title returns the display name used by the HUD.
func (a Archetype) Title() string {
	switch a {
	case Spiral:
		return "Spiral"
	case BarredSpiral:
		return "Barred Spiral"
	case Elliptical:
		return "Elliptical"
	case Irregular:
		return "Irregular"
	case Dwarf:
		return "Dwarf"
	default:
		return a.String()
	}
}

// Valid reports whether a names a known archetype.
func (a Archetype) Valid() bool {
	return a >= Spiral && a <= Dwarf
}

// ParseArchetype parses an archetype name. Matching is case-insensitive and
// accepts "barred-spiral" as an alias for "barred".
func ParseArchetype(s string) (Archetype, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spiral":
		return Spiral, nil
	case "barred", "barred-spiral", "barredspiral":
		return BarredSpiral, nil
	case "elliptical":
		return Elliptical, nil
	case "irregular":
		return Irregular, nil
	case "dwarf":
		return Dwarf, nil
	}
	return Spiral, fmt.Errorf("%w: %q", ErrUnknownArchetype, s)
}

// Random picks an archetype uniformly. It may return the current one.
func Random(rng *rand.Rand) Archetype {
	all := All()
	return all[rng.IntN(len(all))]
}
