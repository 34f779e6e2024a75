// Package state provides thread-safe state management for the application.
package state

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/litescript/ls-galaxy/internal/astro"
	"github.com/litescript/ls-galaxy/internal/fx"
	"github.com/litescript/ls-galaxy/internal/galaxy"
	"github.com/litescript/ls-galaxy/internal/solar"
	"github.com/litescript/ls-galaxy/internal/view"
)

// EventType represents the type of scene change event.
type EventType string

const (
	EventGalaxy       EventType = "GALAXY"
	EventEnterSystem  EventType = "ENTER_SYSTEM"
	EventRevert       EventType = "REVERT"
	EventWarpStart    EventType = "WARP_START"
	EventWarpComplete EventType = "WARP_COMPLETE"
	EventQuality      EventType = "QUALITY"
)

// Event represents a transition of the scene.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Archetype string    `json:"archetype,omitempty"`
	System    string    `json:"system,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// Manager owns the scene state, camera and random source. The UI drives it
// from a single goroutine, but snapshots may be taken from others.
type Manager struct {
	mu sync.RWMutex

	rng   *rand.Rand
	scene view.State
	cam   astro.Camera
	bloom fx.Bloom

	// Transient HUD feedback
	status      string
	statusUntil time.Duration
	statusHold  time.Duration

	// Frame rate, measured over one-second windows of wall time. Scene
	// time is capped per frame and would overstate it on slow frames.
	fps         float64
	frameCount  int
	windowStart time.Time
	frames      uint64

	// Scratch buffer for body positions
	positions []astro.Vec3

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	now func() time.Time
}

// Config holds configuration for the state manager.
type Config struct {
	Seed       uint64
	Archetype  galaxy.Archetype
	Quality    view.Quality
	MaxEvents  int
	StatusHold time.Duration
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Archetype:  galaxy.Spiral,
		Quality:    view.QualityPrototype,
		MaxEvents:  50,
		StatusHold: 2 * time.Second,
	}
}

// NewManager creates a new state manager showing cfg.Archetype. A zero
// seed picks one from the clock.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	hold := cfg.StatusHold
	if hold <= 0 {
		hold = 2 * time.Second
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	m := &Manager{
		rng:        rng,
		scene:      view.Initial(rng, cfg.Archetype, cfg.Quality),
		cam:        astro.NewCamera(view.DefaultFraming.Target, view.DefaultFraming.Position),
		bloom:      fx.DefaultBloom,
		statusHold: hold,
		maxEvents:  maxEvents,
		events:     make([]Event, 0, maxEvents),
		now:        time.Now,
	}
	m.addEvent(Event{Type: EventGalaxy, Archetype: m.scene.Archetype.String()})
	return m
}

// Apply runs a user command against the current camera and returns the
// audio cue it produced.
func (m *Manager) Apply(cmd view.Command) view.Cue {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.scene
	next, eff := prev.Apply(m.rng, cmd, view.InputFromCamera(m.cam))
	m.scene = next
	m.applyEffects(eff)
	m.detectEvents(prev, next, eff.Cue)
	return eff.Cue
}

// Tick advances the scene by dt and returns any audio cue produced by an
// automatic transition.
func (m *Manager) Tick(dt time.Duration) view.Cue {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.scene
	next, eff := prev.Tick(m.rng, dt, view.InputFromCamera(m.cam))
	m.scene = next
	m.applyEffects(eff)
	m.detectEvents(prev, next, eff.Cue)
	m.countFrame()
	return eff.Cue
}

func (m *Manager) applyEffects(eff view.Effects) {
	if eff.Bloom != nil {
		m.bloom = *eff.Bloom
	}
	if eff.Framing != nil {
		m.cam.SetFraming(eff.Framing.Target, eff.Framing.Position)
	}
	if eff.Status != "" {
		m.status = eff.Status
		m.statusUntil = m.scene.Clock + m.statusHold
	}
}

// detectEvents compares consecutive states and records what changed.
func (m *Manager) detectEvents(prev, next view.State, cue view.Cue) {
	switch {
	case prev.Mode == view.ModeGalaxy && next.Mode == view.ModeWarp:
		m.addEvent(Event{
			Type:      EventWarpStart,
			Archetype: prev.Archetype.String(),
			Detail:    triggerName(next.Warp.Trigger),
		})
	case prev.Mode == view.ModeWarp && next.Mode == view.ModeGalaxy:
		m.addEvent(Event{
			Type:      EventWarpComplete,
			Archetype: next.Archetype.String(),
			Detail:    "from " + prev.Archetype.String(),
		})
	case prev.Mode == view.ModeGalaxy && next.Mode == view.ModeSolarSystem:
		m.addEvent(Event{
			Type:      EventEnterSystem,
			Archetype: next.LastArchetype.String(),
			System:    next.System.Name,
		})
	case prev.Mode == view.ModeSolarSystem && cue == view.CueDepart:
		m.addEvent(Event{
			Type:      EventRevert,
			Archetype: next.Archetype.String(),
			System:    prev.System.Name,
		})
	case next.Quality != prev.Quality:
		m.addEvent(Event{
			Type:      EventQuality,
			Archetype: next.Archetype.String(),
			Detail:    next.Quality.String(),
		})
	case next.Field != prev.Field && next.Mode == view.ModeGalaxy:
		m.addEvent(Event{Type: EventGalaxy, Archetype: next.Archetype.String()})
	}
}

func triggerName(t view.WarpTrigger) string {
	if t == view.TriggerCore {
		return "core"
	}
	return "command"
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = m.now()
	}
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// countFrame updates the frame rate once per second of wall time. The
// first frame only opens the window.
func (m *Manager) countFrame() {
	m.frames++
	now := m.now()
	if m.windowStart.IsZero() {
		m.windowStart = now
		return
	}
	m.frameCount++
	elapsed := now.Sub(m.windowStart)
	if elapsed >= time.Second {
		m.fps = float64(m.frameCount) / elapsed.Seconds()
		m.frameCount = 0
		m.windowStart = now
	}
}

// Orbit rotates the camera around its target.
func (m *Manager) Orbit(dAzimuth, dPolar float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cam.Orbit(dAzimuth, dPolar)
}

// Zoom scales the camera distance by factor.
func (m *Manager) Zoom(factor float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cam.Zoom(factor)
}

// Pan moves the camera target across the galactic plane.
func (m *Manager) Pan(right, forward float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cam.Pan(right, forward)
}

// Recenter restores the galaxy framing, or in a solar system pulls back
// far enough to show its outermost orbit.
func (m *Manager) Recenter() {
	m.mu.Lock()
	defer m.mu.Unlock()
	f := view.DefaultFraming
	if sys := m.scene.System; m.scene.Mode == view.ModeSolarSystem && sys != nil {
		f = view.OverviewFraming(sys.Center, sys.Extent())
	}
	m.cam.SetFraming(f.Target, f.Position)
}

// Snapshot represents an immutable snapshot of current state. Field and
// System are shared but never mutated after generation.
type Snapshot struct {
	Mode      view.Mode
	Label     string
	Prompt    string
	Status    string
	Archetype galaxy.Archetype
	Quality   view.Quality

	Field     *galaxy.Field
	System    *solar.System
	Positions []astro.Vec3

	Camera        astro.Camera
	Bloom         fx.Bloom
	Rotation      float64
	Time          float64
	WarpProgress  float64
	WarpDirection astro.Vec3

	FPS    float64
	Frames uint64
	Events []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.scene
	in := view.InputFromCamera(m.cam)

	var positions []astro.Vec3
	if s.System != nil {
		m.positions = s.System.Positions(s.Seconds(), m.positions)
		positions = make([]astro.Vec3, len(m.positions))
		copy(positions, m.positions)
	}

	status := ""
	if m.status != "" && s.Clock < m.statusUntil {
		status = m.status
	}

	snap := Snapshot{
		Mode:      s.Mode,
		Label:     s.Label(),
		Prompt:    s.Prompt(in),
		Status:    status,
		Archetype: s.Archetype,
		Quality:   s.Quality,
		Field:     s.Field,
		System:    s.System,
		Positions: positions,
		Camera:    m.cam,
		Bloom:     m.bloom,
		Rotation:  s.Rotation(),
		Time:      s.Seconds(),
		FPS:       m.fps,
		Frames:    m.frames,
		Events:    m.getEventsOrdered(),
	}
	if s.Mode == view.ModeWarp {
		snap.WarpProgress = s.Warp.Progress()
		snap.WarpDirection = s.Warp.Direction
	}
	return snap
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// Mode returns the active view mode.
func (m *Manager) Mode() view.Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scene.Mode
}

// Camera returns a copy of the camera.
func (m *Manager) Camera() astro.Camera {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cam
}
