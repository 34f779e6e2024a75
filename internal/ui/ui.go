// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-galaxy/internal/audio"
	"github.com/litescript/ls-galaxy/internal/galaxy"
	"github.com/litescript/ls-galaxy/internal/logging"
	"github.com/litescript/ls-galaxy/internal/state"
	"github.com/litescript/ls-galaxy/internal/version"
	"github.com/litescript/ls-galaxy/internal/view"
)

const (
	headerLines = 2
	footerLines = 3

	// maxFrameStep caps dt so a stalled terminal does not skip a warp.
	maxFrameStep = 250 * time.Millisecond

	orbitStep = 0.08
	zoomStep  = 0.9
	panStep   = 0.05 // fraction of camera distance
)

// FrameMsg drives one animation frame.
type FrameMsg time.Time

// Options configures the root model.
type Options struct {
	FrameInterval time.Duration
	Color         bool
	Player        audio.Player
	Logger        *logging.Logger
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state  *state.Manager
	player audio.Player
	log    *logging.Logger

	// UI state
	interval  time.Duration
	width     int
	height    int
	ready     bool
	showHelp  bool
	lastFrame time.Time
	animTick  int

	// Sub-models
	galaxy GalaxyViewModel
	solar  SolarViewModel

	snapshot state.Snapshot
}

// New creates a new root UI model.
func New(stateMgr *state.Manager, opts Options) Model {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = time.Second / 30
	}
	if opts.Player == nil {
		opts.Player = audio.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return Model{
		state:    stateMgr,
		player:   opts.Player,
		log:      opts.Logger.With("ui"),
		interval: opts.FrameInterval,
		galaxy:   NewGalaxyViewModel(opts.Color),
		solar:    NewSolarViewModel(opts.Color),
		snapshot: stateMgr.Snapshot(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.interval)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.state.Zoom(zoomStep)
		case tea.MouseButtonWheelDown:
			m.state.Zoom(1 / zoomStep)
		}
		m = m.refresh()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentHeight := m.contentHeight()
		m.galaxy = m.galaxy.SetSize(msg.Width, contentHeight)
		m.solar = m.solar.SetSize(msg.Width, contentHeight)

	case FrameMsg:
		now := time.Time(msg)
		dt := m.interval
		if !m.lastFrame.IsZero() {
			dt = now.Sub(m.lastFrame)
		}
		if dt < 0 {
			dt = 0
		}
		if dt > maxFrameStep {
			dt = maxFrameStep
		}
		m.lastFrame = now
		m.animTick++

		m.play(m.state.Tick(dt))
		m = m.refresh()
		return m, frameCmd(m.interval)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "1", "2", "3", "4", "5":
		a := galaxy.All()[key[0]-'1']
		m.command(view.SetArchetype(a))
	case "r":
		m.command(view.RandomArchetype)
	case "s", "enter":
		m.command(view.Enter)
	case "w":
		m.command(view.WarpCommand)
	case "p":
		m.command(view.ToggleQuality)

	case "left":
		m.state.Orbit(-orbitStep, 0)
	case "right":
		m.state.Orbit(orbitStep, 0)
	case "up":
		m.state.Orbit(0, -orbitStep)
	case "down":
		m.state.Orbit(0, orbitStep)
	case "+", "=":
		m.state.Zoom(zoomStep)
	case "-", "_":
		m.state.Zoom(1 / zoomStep)

	case "h", "j", "k", "l":
		step := m.state.Camera().TargetDistance() * panStep
		switch key {
		case "h":
			m.state.Pan(-step, 0)
		case "l":
			m.state.Pan(step, 0)
		case "k":
			m.state.Pan(0, step)
		case "j":
			m.state.Pan(0, -step)
		}
	case "c":
		m.state.Recenter()

	case "t":
		m.solar = m.solar.ToggleLabels()
	case "?":
		m.showHelp = !m.showHelp
	}

	m = m.refresh()
	return m, nil
}

// command applies cmd to the scene and plays its cue.
func (m *Model) command(cmd view.Command) {
	cue := m.state.Apply(cmd)
	m.log.Debug("command %s -> cue %s", cmd.Kind, cue)
	m.play(cue)
}

func (m *Model) play(cue view.Cue) {
	if cue == view.CueNone {
		return
	}
	m.player.Play(cue)
}

// refresh pulls a fresh snapshot into the sub-models.
func (m Model) refresh() Model {
	m.snapshot = m.state.Snapshot()
	m.galaxy = m.galaxy.UpdateData(m.snapshot)
	m.solar = m.solar.UpdateData(m.snapshot)
	return m
}

func (m Model) contentHeight() int {
	h := m.height - headerLines - footerLines
	if h < 1 {
		h = 1
	}
	return h
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	if m.snapshot.Mode == view.ModeSolarSystem {
		content = m.solar.View()
	} else {
		content = m.galaxy.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	title := renderGradient("✦ LS-GALAXY ✦")
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)

	mode := accent.Render(m.snapshot.Label)
	info := muted.Render(fmt.Sprintf("v%s | %s quality", version.Version, m.snapshot.Quality))
	return "  " + title + "  " + mode + "  " + info + "\n"
}

// Title gradient stops: blue, purple, magenta, pink.
var gradientStops = []colorful.Color{
	mustHex("#3B82F6"),
	mustHex("#8B5CF6"),
	mustHex("#D946EF"),
	mustHex("#EC4899"),
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// gradientColor returns the title gradient colour at t in [0,1].
func gradientColor(t float64) colorful.Color {
	if t <= 0 {
		return gradientStops[0]
	}
	if t >= 1 {
		return gradientStops[len(gradientStops)-1]
	}
	seg := t * float64(len(gradientStops)-1)
	i := int(seg)
	return gradientStops[i].BlendLab(gradientStops[i+1], seg-float64(i)).Clamped()
}

func renderGradient(text string) string {
	runes := []rune(text)
	var b strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(gradientColor(t).Hex()))
		b.WriteString(style.Render(string(r)))
	}
	return b.String()
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	hudStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#d0c8ff"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229"))

	snap := m.snapshot

	var hud string
	switch {
	case snap.Mode == view.ModeWarp:
		hud = m.renderShimmerText(view.StatusWarping)
	case snap.Status != "":
		hud = accentStyle.Render(snap.Status)
	case snap.Mode == view.ModeSolarSystem && snap.System != nil:
		hud = hudStyle.Render(fmt.Sprintf("%s · %d planets · zoom out to return", snap.System.Name, len(snap.System.Planets())))
	default:
		hud = hudStyle.Render(snap.Prompt)
	}

	stats := fmt.Sprintf("Mode: %s | FPS: %.0f | Particles: %d | Distance: %.1f",
		snap.Label, snap.FPS, snap.Field.Len(), snap.Camera.TargetDistance())
	if recent := m.state.RecentEvents(1); len(recent) > 0 {
		e := recent[0]
		stats += fmt.Sprintf(" | %s %s", e.Type, e.Archetype)
	}

	var help string
	if m.showHelp {
		help = "1-5: galaxy | r: random | s: explore | w: warp | p: quality | arrows: orbit | +/-: zoom | hjkl: pan | c: center | t: labels | q: quit"
	} else {
		help = "s: explore | w: warp | +/-: zoom | arrows: orbit | ?: help | q: quit"
	}

	return "  " + hud + "\n  " + dimStyle.Render(stats) + "\n  " + dimStyle.Render(help)
}

// renderShimmerText renders text with a subtle moving shine effect.
func (m Model) renderShimmerText(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	pos := m.animTick % (len(runes) + 8)
	base := colorful.Color{R: 80 / 255.0, G: 70 / 255.0, B: 120 / 255.0}
	shine := colorful.Color{R: 180 / 255.0, G: 160 / 255.0, B: 220 / 255.0}

	var result strings.Builder
	for i, r := range runes {
		dist := i - pos + 4
		if dist < 0 {
			dist = -dist
		}
		t := 1 - float64(dist)/6
		if t < 0 {
			t = 0
		}
		col := base.BlendRgb(shine, t).Clamped()
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(col.Hex()))
		result.WriteString(style.Render(string(r)))
	}
	return result.String()
}

// RenderFrame renders one frame of snap as text, for headless use.
func RenderFrame(snap state.Snapshot, width, height int, color bool) string {
	if snap.Mode == view.ModeSolarSystem {
		return NewSolarViewModel(color).SetSize(width, height).UpdateData(snap).View()
	}
	return NewGalaxyViewModel(color).SetSize(width, height).UpdateData(snap).View()
}

func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
