package astro

import (
	"math"
)

const (
	// FOVDeg is the vertical field of view.
	FOVDeg = 60.0

	// NearPlane rejects points closer than this along the view axis.
	NearPlane = 0.1

	// CellAspect is the height:width ratio of a terminal cell.
	CellAspect = 2.0

	MinDistance = 2.0
	MaxDistance = 200.0

	// Polar angle limits keep the camera off the poles where the
	// view basis degenerates.
	minPolar = 0.05
	maxPolar = math.Pi - 0.05
)

// Camera is an orbit camera circling a target point.
// Azimuth is measured in the XZ plane from +Z toward +X; Polar from +Y.
type Camera struct {
	Target   Vec3
	Distance float64
	Azimuth  float64
	Polar    float64
}

// NewCamera returns a camera framed on target from position.
func NewCamera(target, position Vec3) Camera {
	var c Camera
	c.SetFraming(target, position)
	return c
}

// SetFraming places the camera at position looking at target.
func (c *Camera) SetFraming(target, position Vec3) {
	off := position.Sub(target)
	c.Target = target
	c.Distance = clamp(off.Norm(), MinDistance, MaxDistance)
	if off.Norm() == 0 {
		c.Azimuth, c.Polar = 0, math.Pi/2
		return
	}
	c.Azimuth = math.Atan2(off.X, off.Z)
	c.Polar = clamp(math.Acos(clamp(off.Y/off.Norm(), -1, 1)), minPolar, maxPolar)
}

// Position returns the camera's world position.
func (c Camera) Position() Vec3 {
	sp := math.Sin(c.Polar)
	off := Vec3{
		X: c.Distance * sp * math.Sin(c.Azimuth),
		Y: c.Distance * math.Cos(c.Polar),
		Z: c.Distance * sp * math.Cos(c.Azimuth),
	}
	return c.Target.Add(off)
}

// Direction returns the unit view direction (camera toward target).
func (c Camera) Direction() Vec3 {
	return c.Target.Sub(c.Position()).Normalized()
}

// TargetDistance returns the distance from the camera to its target.
func (c Camera) TargetDistance() float64 {
	return c.Distance
}

// Orbit rotates the camera around its target.
func (c *Camera) Orbit(dAzimuth, dPolar float64) {
	c.Azimuth = math.Mod(c.Azimuth+dAzimuth, 2*math.Pi)
	c.Polar = clamp(c.Polar+dPolar, minPolar, maxPolar)
}

// Zoom multiplies the orbit distance by factor.
func (c *Camera) Zoom(factor float64) {
	c.Distance = clamp(c.Distance*factor, MinDistance, MaxDistance)
}

// Pan moves the target in the XZ plane relative to the view heading.
// right and forward are in world units.
func (c *Camera) Pan(right, forward float64) {
	fwd := Vec3{X: -math.Sin(c.Azimuth), Z: -math.Cos(c.Azimuth)}
	rgt := Vec3{X: math.Cos(c.Azimuth), Z: -math.Sin(c.Azimuth)}
	c.Target = c.Target.Add(fwd.Scale(forward)).Add(rgt.Scale(right))
}

// ScreenPoint is a projected position in terminal cells.
type ScreenPoint struct {
	X, Y  int
	Depth float64 // distance along the view axis
}

// Projector maps world points to a cols×rows grid for a fixed camera pose.
// Build one per frame; the basis is computed once.
type Projector struct {
	pos            Vec3
	fwd, right, up Vec3
	tanHalf        float64
	aspect         float64
	cols, rows     int
}

// NewProjector prepares a projection of the camera onto a cols×rows grid.
func (c Camera) NewProjector(cols, rows int) Projector {
	pos := c.Position()
	fwd := c.Target.Sub(pos).Normalized()
	worldUp := Vec3{Y: 1}
	right := fwd.Cross(worldUp).Normalized()
	if right.Norm() == 0 {
		right = Vec3{X: 1}
	}
	up := right.Cross(fwd)

	aspect := 1.0
	if rows > 0 {
		aspect = float64(cols) / (float64(rows) * CellAspect)
	}

	return Projector{
		pos:     pos,
		fwd:     fwd,
		right:   right,
		up:      up,
		tanHalf: math.Tan(degToRad(FOVDeg) / 2),
		aspect:  aspect,
		cols:    cols,
		rows:    rows,
	}
}

// Project returns the grid cell for p, or false when p is behind the near
// plane or off-grid.
func (p Projector) Project(v Vec3) (ScreenPoint, bool) {
	rel := v.Sub(p.pos)
	z := rel.Dot(p.fwd)
	if z <= NearPlane {
		return ScreenPoint{}, false
	}

	ndcX := rel.Dot(p.right) / (z * p.tanHalf * p.aspect)
	ndcY := rel.Dot(p.up) / (z * p.tanHalf)

	sx := int(math.Floor((ndcX + 1) / 2 * float64(p.cols)))
	sy := int(math.Floor((1 - ndcY) / 2 * float64(p.rows)))
	if sx < 0 || sx >= p.cols || sy < 0 || sy >= p.rows {
		return ScreenPoint{}, false
	}
	return ScreenPoint{X: sx, Y: sy, Depth: z}, true
}

// PixelScale returns how many rows one world unit spans at depth z.
func (p Projector) PixelScale(z float64) float64 {
	if z <= 0 {
		return 0
	}
	return float64(p.rows) / (2 * z * p.tanHalf)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
