package ui

import (
	"math"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-galaxy/internal/astro"
	"github.com/litescript/ls-galaxy/internal/solar"
	"github.com/litescript/ls-galaxy/internal/state"
)

const (
	glyphSun    = '☉'
	glyphPlanet = '●'
	glyphMoon   = '•'
	glyphDisc   = '█'
	glyphOrbit  = '·'

	// sunGlow is the light the sun's cells emit for the bloom pass.
	sunGlow = 2.5
)

var (
	colorOrbit = colorful.Color{R: 0.35, G: 0.33, B: 0.45}
	colorLabel = colorful.Color{R: 0.6, G: 0.6, B: 0.65}
)

// SolarViewModel renders a solar system: orbit rings, then bodies from
// farthest to nearest.
type SolarViewModel struct {
	width  int
	height int
	color  bool
	labels bool
	snap   state.Snapshot
}

// NewSolarViewModel creates a solar system renderer.
func NewSolarViewModel(color bool) SolarViewModel {
	return SolarViewModel{color: color, labels: true}
}

// SetSize updates the viewport size.
func (m SolarViewModel) SetSize(width, height int) SolarViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates with a new snapshot.
func (m SolarViewModel) UpdateData(snap state.Snapshot) SolarViewModel {
	m.snap = snap
	return m
}

// ToggleLabels shows or hides planet labels.
func (m SolarViewModel) ToggleLabels() SolarViewModel {
	m.labels = !m.labels
	return m
}

// View renders the system.
func (m SolarViewModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	c := NewCanvas(m.width, m.height)
	drawSolar(c, m.snap, m.labels)
	c.Bloom(m.snap.Bloom)
	return c.Render(m.color)
}

// bodyPos is a projected body awaiting drawing.
type bodyPos struct {
	index int
	pt    astro.ScreenPoint
	rows  float64 // projected radius in rows
}

func drawSolar(c *Canvas, snap state.Snapshot, labels bool) {
	sys := snap.System
	if sys == nil || len(snap.Positions) != len(sys.Bodies) {
		return
	}
	w, h := c.Size()
	proj := snap.Camera.NewProjector(w, h)

	// Light first so solid glyphs land on top.
	if sp, ok := proj.Project(sys.Center); ok {
		k := float32(sunGlow)
		r := float32(solar.SunColor.R) * k
		g := float32(solar.SunColor.G) * k
		b := float32(solar.SunColor.B) * k
		c.Add(sp.X, sp.Y, r, g, b)
	}

	for _, i := range sys.Planets() {
		drawOrbit(c, proj, sys.Center, sys.Bodies[i].OrbitRadius)
	}

	var bodies []bodyPos
	for i, p := range snap.Positions {
		sp, ok := proj.Project(p)
		if !ok {
			continue
		}
		bodies = append(bodies, bodyPos{
			index: i,
			pt:    sp,
			rows:  sys.Bodies[i].Size * proj.PixelScale(sp.Depth),
		})
	}
	slices.SortFunc(bodies, func(a, b bodyPos) int {
		switch {
		case a.pt.Depth > b.pt.Depth:
			return -1
		case a.pt.Depth < b.pt.Depth:
			return 1
		}
		return 0
	})

	for _, bp := range bodies {
		body := sys.Bodies[bp.index]
		drawBody(c, bp, body)
		if labels && body.Kind == solar.BodyPlanet {
			label := body.Name[strings.LastIndexByte(body.Name, ' ')+1:]
			x := bp.pt.X + int(math.Ceil(bp.rows*astro.CellAspect)) + 1
			if c.Glyph(x, bp.pt.Y) == 0 {
				c.WriteText(x, bp.pt.Y, label, colorLabel)
			}
		}
	}
}

// drawOrbit traces a circle of radius r around center in the XZ plane.
func drawOrbit(c *Canvas, proj astro.Projector, center astro.Vec3, r float64) {
	steps := int(2 * math.Pi * r * 4)
	if steps < 48 {
		steps = 48
	}
	if steps > 720 {
		steps = 720
	}
	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		p := center.Add(astro.Vec3{X: math.Cos(theta) * r, Z: math.Sin(theta) * r})
		if sp, ok := proj.Project(p); ok {
			c.SetIfEmpty(sp.X, sp.Y, glyphOrbit, colorOrbit)
		}
	}
}

// drawBody draws a single glyph for small bodies and a filled disc once
// the body spans more than a cell.
func drawBody(c *Canvas, bp bodyPos, body solar.Body) {
	col := body.Color
	if bp.rows < 0.75 {
		ch := glyphPlanet
		switch body.Kind {
		case solar.BodySun:
			ch = glyphSun
		case solar.BodyMoon:
			ch = glyphMoon
		}
		c.Set(bp.pt.X, bp.pt.Y, ch, col)
		return
	}

	r := bp.rows
	w, h := c.Size()
	// A body just past the near plane projects enormous; only visit cells
	// on the canvas.
	rx := int(math.Ceil(math.Min(r*astro.CellAspect, float64(w))))
	ry := int(math.Ceil(math.Min(r, float64(h))))
	x0, x1 := max(-rx, -bp.pt.X), min(rx, w-1-bp.pt.X)
	y0, y1 := max(-ry, -bp.pt.Y), min(ry, h-1-bp.pt.Y)
	for dy := y0; dy <= y1; dy++ {
		for dx := x0; dx <= x1; dx++ {
			fx := float64(dx) / astro.CellAspect
			fy := float64(dy)
			d := math.Hypot(fx, fy)
			if d > r {
				continue
			}
			// Simple limb darkening.
			shade := 1 - 0.45*(d/r)*(d/r)
			c.Set(bp.pt.X+dx, bp.pt.Y+dy, glyphDisc, colorful.Color{
				R: col.R * shade,
				G: col.G * shade,
				B: col.B * shade,
			})
		}
	}
	if body.Kind == solar.BodySun {
		c.Set(bp.pt.X, bp.pt.Y, glyphSun, colorful.Color{R: 1, G: 1, B: 0.9})
	}
}
