// Package view implements the galaxy ↔ solar system ↔ warp state machine.
//
// State is a plain value. Every transition takes the current State plus its
// inputs and returns the next State along with advisory Effects for the
// renderer; nothing is kept in package-level variables.
package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/litescript/ls-galaxy/internal/astro"
	"github.com/litescript/ls-galaxy/internal/fx"
	"github.com/litescript/ls-galaxy/internal/galaxy"
)

// Transition thresholds, in world units unless noted.
const (
	// EnterRange is the farthest camera distance from which a solar system
	// can be entered or a warp started.
	EnterRange = 18.0

	// CoreWarpZoom and CoreRadius define the core-warp case: an enter
	// command issued closer than CoreWarpZoom to a target within
	// CoreRadius of the galactic center warps instead.
	CoreWarpZoom = 5.0
	CoreRadius   = 0.5

	// RevertDistance is the camera distance beyond which solar system view
	// falls back to galaxy view.
	RevertDistance = 60.0

	// WarpDuration is the length of the warp transition.
	WarpDuration = 700 * time.Millisecond

	// RotationRate is the galaxy's spin about +Y in radians per second.
	RotationRate = 0.048
)

// Mode identifies the active view.
type Mode int

const (
	ModeGalaxy Mode = iota
	ModeSolarSystem
	ModeWarp
)

func (m Mode) String() string {
	switch m {
	case ModeGalaxy:
		return "galaxy"
	case ModeSolarSystem:
		return "solar-system"
	case ModeWarp:
		return "warp"
	default:
		return "unknown"
	}
}

// Quality selects the particle budget for non-dwarf galaxies.
type Quality int

const (
	QualityPrototype Quality = iota
	QualityFull
)

// ErrUnknownQuality is returned when parsing an unrecognized quality name.
var ErrUnknownQuality = errors.New("unknown quality")

// ParticleCount returns the galaxy particle count for q.
func (q Quality) ParticleCount() int {
	if q == QualityFull {
		return 250000
	}
	return 4000
}

func (q Quality) String() string {
	if q == QualityFull {
		return "full"
	}
	return "prototype"
}

// ParseQuality parses "prototype" or "full".
func ParseQuality(s string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prototype", "proto":
		return QualityPrototype, nil
	case "full":
		return QualityFull, nil
	}
	return QualityPrototype, fmt.Errorf("%w: %q", ErrUnknownQuality, s)
}

// Input carries the camera measurements the machine decides on.
//
// Distances must be non-negative. Negative or NaN distances fail every
// threshold, so they never cause a transition.
type Input struct {
	CameraDistance float64    // camera to its target
	TargetDistance float64    // target to the galactic origin
	Target         astro.Vec3 // where a solar system would be spawned
	Direction      astro.Vec3 // camera view direction, used by the warp
}

// InputFromCamera measures c.
func InputFromCamera(c astro.Camera) Input {
	return Input{
		CameraDistance: c.TargetDistance(),
		TargetDistance: c.Target.Norm(),
		Target:         c.Target,
		Direction:      c.Direction(),
	}
}

func (in Input) valid() bool {
	// NaN fails both comparisons.
	return in.CameraDistance >= 0 && in.TargetDistance >= 0
}

// CommandKind enumerates user commands.
type CommandKind int

const (
	CmdSetArchetype CommandKind = iota
	CmdRandomArchetype
	CmdEnter
	CmdWarp
	CmdToggleQuality
)

func (k CommandKind) String() string {
	switch k {
	case CmdSetArchetype:
		return "set-archetype"
	case CmdRandomArchetype:
		return "random-archetype"
	case CmdEnter:
		return "enter"
	case CmdWarp:
		return "warp"
	case CmdToggleQuality:
		return "toggle-quality"
	default:
		return "unknown"
	}
}

// Command is a discrete user request.
type Command struct {
	Kind      CommandKind
	Archetype galaxy.Archetype // for CmdSetArchetype
}

// SetArchetype requests a specific archetype.
func SetArchetype(a galaxy.Archetype) Command {
	return Command{Kind: CmdSetArchetype, Archetype: a}
}

// Convenience constructors.
var (
	RandomArchetype = Command{Kind: CmdRandomArchetype}
	Enter           = Command{Kind: CmdEnter}
	WarpCommand     = Command{Kind: CmdWarp}
	ToggleQuality   = Command{Kind: CmdToggleQuality}
)

// Framing is a camera placement: look at Target from Position.
type Framing struct {
	Target   astro.Vec3
	Position astro.Vec3
}

// DefaultFraming frames a galaxy at the origin.
var DefaultFraming = Framing{
	Target:   astro.Origin,
	Position: astro.Vec3{X: 0, Y: 16, Z: 30},
}

// SystemFraming frames a solar system spawned at center.
func SystemFraming(center astro.Vec3) Framing {
	return Framing{
		Target:   center,
		Position: center.Add(astro.Vec3{Y: 8, Z: 12}),
	}
}

// OverviewFraming frames a whole solar system whose outermost orbit is
// extent from center. It looks from the same angle as SystemFraming, never
// closer, and stays inside RevertDistance so recentring does not leave
// the system.
func OverviewFraming(center astro.Vec3, extent float64) Framing {
	base := SystemFraming(center)
	off := base.Position.Sub(center)
	d := off.Norm()
	want := extent * overviewMargin
	if want > d {
		d = want
	}
	if d > overviewMaxDistance {
		d = overviewMaxDistance
	}
	return Framing{
		Target:   center,
		Position: center.Add(off.Normalized().Scale(d)),
	}
}

const (
	// overviewMargin pads the outermost orbit when framing a system.
	overviewMargin      = 1.25
	overviewMaxDistance = RevertDistance - 10
)

// Cue names a sound the UI may play for a transition.
type Cue int

const (
	CueNone Cue = iota
	CueWarp
	CueArrive
	CueDepart
)

func (c Cue) String() string {
	switch c {
	case CueWarp:
		return "warp"
	case CueArrive:
		return "arrive"
	case CueDepart:
		return "depart"
	default:
		return "none"
	}
}

// Effects is advisory output for the renderer, camera, HUD and audio.
// Nil pointers and empty strings mean "no change".
type Effects struct {
	Bloom   *fx.Bloom
	Framing *Framing
	Status  string
	Cue     Cue
}

// WarpTrigger records what started a warp.
type WarpTrigger int

const (
	// TriggerCommand is an explicit warp command.
	TriggerCommand WarpTrigger = iota
	// TriggerCore is an enter command issued at the galactic core.
	TriggerCore
)

// Warp is the in-flight warp transition.
type Warp struct {
	Elapsed   time.Duration
	Trigger   WarpTrigger
	Direction astro.Vec3 // camera direction when the warp began
}

// Progress returns how far the warp has run, in [0,1].
func (w Warp) Progress() float64 {
	p := float64(w.Elapsed) / float64(WarpDuration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
