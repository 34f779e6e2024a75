package ui

import (
	"github.com/litescript/ls-galaxy/internal/fx"
	"github.com/litescript/ls-galaxy/internal/state"
	"github.com/litescript/ls-galaxy/internal/view"
)

const (
	// particleWeight is the light one particle adds at the reference
	// count. Denser fields scale it down so brightness stays comparable.
	particleWeight = 0.55
	referenceCount = 4000
)

// GalaxyViewModel renders a particle field as accumulated light.
type GalaxyViewModel struct {
	width  int
	height int
	color  bool
	snap   state.Snapshot
}

// NewGalaxyViewModel creates a galaxy renderer.
func NewGalaxyViewModel(color bool) GalaxyViewModel {
	return GalaxyViewModel{color: color}
}

// SetSize updates the viewport size.
func (m GalaxyViewModel) SetSize(width, height int) GalaxyViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates with a new snapshot.
func (m GalaxyViewModel) UpdateData(snap state.Snapshot) GalaxyViewModel {
	m.snap = snap
	return m
}

// View renders the field.
func (m GalaxyViewModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	c := NewCanvas(m.width, m.height)
	drawGalaxy(c, m.snap)
	c.Bloom(m.snap.Bloom)
	return c.Render(m.color)
}

// drawGalaxy projects every particle of the snapshot's field onto c. The
// field spins about +Y; during a warp particles streak along the warp
// direction. Full quality twinkles.
func drawGalaxy(c *Canvas, snap state.Snapshot) int {
	f := snap.Field
	n := f.Len()
	if n == 0 {
		return 0
	}

	w, h := c.Size()
	proj := snap.Camera.NewProjector(w, h)
	warping := snap.Mode == view.ModeWarp && snap.WarpProgress > 0
	twinkle := snap.Quality == view.QualityFull

	weight := particleWeight
	if n > referenceCount {
		weight *= float64(referenceCount) / float64(n)
	}

	drawn := 0
	for i := 0; i < n; i++ {
		local := f.Position(i)
		p := local.RotateY(snap.Rotation)
		if warping {
			p = fx.WarpOffset(p, snap.WarpDirection, snap.WarpProgress)
		}
		sp, ok := proj.Project(p)
		if !ok {
			continue
		}
		k := float32(weight)
		if twinkle {
			k *= float32(fx.Twinkle(snap.Time, local))
		}
		r, g, b := f.Color(i)
		c.Add(sp.X, sp.Y, r*k, g*k, b*k)
		drawn++
	}
	return drawn
}
