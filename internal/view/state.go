package view

import (
	"math/rand/v2"
	"time"

	"github.com/litescript/ls-galaxy/internal/fx"
	"github.com/litescript/ls-galaxy/internal/galaxy"
	"github.com/litescript/ls-galaxy/internal/solar"
)

// HUD feedback strings.
const (
	StatusZoomToEnter = "Zoom in closer to explore a solar system!"
	StatusZoomToWarp  = "Press W to warp into a new galaxy!"
	StatusWarping     = "Warping..."
	StatusExploring   = "Exploring solar system..."
	StatusPrototype   = "Prototype Mode"
	StatusFull        = "Galaxy Mode"
)

// State is the complete scene state. Exactly one of Field and System is
// normally non-nil; during a warp the outgoing Field is kept for rendering.
type State struct {
	Mode Mode

	// Archetype is the galaxy currently shown (or being warped away from).
	Archetype galaxy.Archetype
	// LastArchetype is the galaxy to restore when leaving a solar system.
	LastArchetype galaxy.Archetype

	Field  *galaxy.Field
	System *solar.System
	Warp   Warp

	Quality Quality

	// Clock is total scene time, used for rotation, orbits and twinkle.
	Clock time.Duration
	// FieldBorn is the Clock value when Field was generated. A new galaxy
	// starts unrotated.
	FieldBorn time.Duration
}

// Initial returns galaxy view of archetype a at quality q.
func Initial(rng *rand.Rand, a galaxy.Archetype, q Quality) State {
	if !a.Valid() {
		a = galaxy.Spiral
	}
	s := State{Quality: q, LastArchetype: a}
	return s.withGalaxy(rng, a)
}

// withGalaxy replaces the scene with a freshly generated galaxy.
func (s State) withGalaxy(rng *rand.Rand, a galaxy.Archetype) State {
	s.Mode = ModeGalaxy
	s.Archetype = a
	s.Field = galaxy.Generate(rng, a, s.Quality.ParticleCount())
	s.FieldBorn = s.Clock
	s.System = nil
	s.Warp = Warp{}
	return s
}

// Apply handles a user command. Commands arriving mid-warp are ignored.
func (s State) Apply(rng *rand.Rand, cmd Command, in Input) (State, Effects) {
	if s.Mode == ModeWarp {
		return s, Effects{}
	}

	switch cmd.Kind {
	case CmdSetArchetype:
		if !cmd.Archetype.Valid() {
			return s, Effects{}
		}
		return s.regenerate(rng, cmd.Archetype)

	case CmdRandomArchetype:
		return s.regenerate(rng, galaxy.Random(rng))

	case CmdToggleQuality:
		status := StatusFull
		if s.Quality == QualityFull {
			s.Quality = QualityPrototype
			status = StatusPrototype
		} else {
			s.Quality = QualityFull
		}
		a := s.Archetype
		if s.Mode == ModeSolarSystem {
			a = s.LastArchetype
		}
		next, eff := s.regenerate(rng, a)
		eff.Status = status
		return next, eff

	case CmdEnter:
		return s.enter(rng, in)

	case CmdWarp:
		return s.warp(in)
	}
	return s, Effects{}
}

// regenerate swaps in a new galaxy, leaving any solar system.
func (s State) regenerate(rng *rand.Rand, a galaxy.Archetype) (State, Effects) {
	var eff Effects
	if s.Mode == ModeSolarSystem {
		b := fx.DefaultBloom
		eff.Bloom = &b
	}
	return s.withGalaxy(rng, a), eff
}

func (s State) enter(rng *rand.Rand, in Input) (State, Effects) {
	if s.Mode != ModeGalaxy || s.Field == nil || !in.valid() {
		return s, Effects{}
	}
	if in.CameraDistance > EnterRange {
		return s, Effects{Status: StatusZoomToEnter}
	}
	// The core-warp case takes precedence over entering a system.
	if in.CameraDistance < CoreWarpZoom && in.TargetDistance < CoreRadius {
		return s.startWarp(TriggerCore, in)
	}

	sys, bloom := solar.Spawn(rng, in.Target)
	framing := SystemFraming(in.Target)

	s.Mode = ModeSolarSystem
	s.LastArchetype = s.Archetype
	s.Field = nil
	s.System = sys
	return s, Effects{
		Bloom:   &bloom,
		Framing: &framing,
		Status:  StatusExploring,
		Cue:     CueArrive,
	}
}

func (s State) warp(in Input) (State, Effects) {
	if s.Mode != ModeGalaxy || s.Field == nil || !in.valid() {
		return s, Effects{}
	}
	if in.CameraDistance > EnterRange {
		return s, Effects{Status: StatusZoomToWarp}
	}
	return s.startWarp(TriggerCommand, in)
}

func (s State) startWarp(trigger WarpTrigger, in Input) (State, Effects) {
	s.Mode = ModeWarp
	s.Warp = Warp{Trigger: trigger, Direction: in.Direction.Normalized()}
	return s, Effects{Status: StatusWarping, Cue: CueWarp}
}

// Tick advances the scene by dt. It completes a warp once WarpDuration has
// elapsed and reverts solar system view when the camera pulls beyond
// RevertDistance.
func (s State) Tick(rng *rand.Rand, dt time.Duration, in Input) (State, Effects) {
	if dt < 0 {
		dt = 0
	}
	s.Clock += dt

	switch s.Mode {
	case ModeWarp:
		s.Warp.Elapsed += dt
		if s.Warp.Elapsed < WarpDuration {
			return s, Effects{}
		}
		next := s.withGalaxy(rng, galaxy.Random(rng))
		framing := DefaultFraming
		bloom := fx.DefaultBloom
		return next, Effects{Framing: &framing, Bloom: &bloom, Cue: CueArrive}

	case ModeSolarSystem:
		if !(in.CameraDistance > RevertDistance) {
			return s, Effects{}
		}
		next := s.withGalaxy(rng, s.LastArchetype)
		framing := DefaultFraming
		bloom := fx.DefaultBloom
		return next, Effects{Framing: &framing, Bloom: &bloom, Cue: CueDepart}
	}
	return s, Effects{}
}

// Rotation returns the galaxy's current spin angle about +Y, measured
// from when the galaxy was generated.
func (s State) Rotation() float64 {
	return RotationRate * (s.Clock - s.FieldBorn).Seconds()
}

// Seconds returns Clock in seconds.
func (s State) Seconds() float64 {
	return s.Clock.Seconds()
}

// Label returns the mode line shown in the stats HUD.
func (s State) Label() string {
	if s.Mode == ModeSolarSystem {
		return "Solar System"
	}
	return s.Archetype.Title()
}

// Prompt returns the contextual hint for galaxy view, or "" elsewhere.
func (s State) Prompt(in Input) string {
	if s.Mode != ModeGalaxy {
		return ""
	}
	d := in.CameraDistance
	switch {
	case d > RevertDistance:
		return "Scroll or press - to zoom out, + to zoom in"
	case d > 25:
		return "Zoom closer to explore star systems!"
	case d > 10:
		return "Press S to explore a star system!"
	case in.TargetDistance < 2.5:
		return StatusZoomToWarp
	default:
		return "Press S to explore this star system!"
	}
}
