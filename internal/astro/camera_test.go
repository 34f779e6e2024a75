package astro

import (
	"math"
	"testing"
)

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func nearVec(a, b Vec3, tol float64) bool {
	return near(a.X, b.X, tol) && near(a.Y, b.Y, tol) && near(a.Z, b.Z, tol)
}

func TestVecOps(t *testing.T) {
	tests := []struct {
		name string
		got  Vec3
		want Vec3
	}{
		{"cross x y", Vec3{X: 1}.Cross(Vec3{Y: 1}), Vec3{Z: 1}},
		{"rotate quarter turn", Vec3{X: 1}.RotateY(math.Pi / 2), Vec3{Z: -1}},
		{"rotate keeps y", Vec3{Y: 2}.RotateY(1.3), Vec3{Y: 2}},
		{"lerp midpoint", Vec3{}.Lerp(Vec3{X: 2, Y: 4, Z: -6}, 0.5), Vec3{X: 1, Y: 2, Z: -3}},
		{"normalize zero", Vec3{}.Normalized(), Vec3{}},
		{"normalize", Vec3{X: 3, Z: 4}.Normalized(), Vec3{X: 0.6, Z: 0.8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !nearVec(tt.got, tt.want, 1e-12) {
				t.Errorf("got %+v, want %+v", tt.got, tt.want)
			}
		})
	}
}

func TestVecIsFinite(t *testing.T) {
	if !(Vec3{X: 1, Y: -2, Z: 3}).IsFinite() {
		t.Error("finite vector reported non-finite")
	}
	if (Vec3{Y: math.NaN()}).IsFinite() {
		t.Error("NaN vector reported finite")
	}
	if (Vec3{Z: math.Inf(-1)}).IsFinite() {
		t.Error("Inf vector reported finite")
	}
}

func TestNewCamera(t *testing.T) {
	pos := Vec3{Y: 16, Z: 30}
	c := NewCamera(Origin, pos)

	if c.TargetDistance() != 34 {
		t.Errorf("distance = %v, want 34", c.TargetDistance())
	}
	if !nearVec(c.Position(), pos, 1e-9) {
		t.Errorf("position = %+v, want %+v", c.Position(), pos)
	}
	want := Vec3{Y: -16, Z: -30}.Normalized()
	if !nearVec(c.Direction(), want, 1e-9) {
		t.Errorf("direction = %+v, want %+v", c.Direction(), want)
	}
}

func TestCameraClamps(t *testing.T) {
	c := NewCamera(Origin, Vec3{Z: 10})

	c.Zoom(1e-6)
	if c.Distance != MinDistance {
		t.Errorf("zoom in clamp = %v, want %v", c.Distance, MinDistance)
	}
	c.Zoom(1e9)
	if c.Distance != MaxDistance {
		t.Errorf("zoom out clamp = %v, want %v", c.Distance, MaxDistance)
	}

	c.Orbit(0, -10)
	if c.Polar != minPolar {
		t.Errorf("polar clamp = %v, want %v", c.Polar, minPolar)
	}

	// Framing on the target itself picks a fixed pose.
	c.SetFraming(Origin, Origin)
	if c.Distance != MinDistance || c.Polar != math.Pi/2 {
		t.Errorf("degenerate framing = %+v", c)
	}
}

func TestCameraPan(t *testing.T) {
	tests := []struct {
		name           string
		right, forward float64
		want           Vec3
	}{
		{"right", 2, 0, Vec3{X: 2}},
		{"forward", 0, 3, Vec3{Z: -3}},
		{"both", -1, -1, Vec3{X: -1, Z: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(Origin, Vec3{Y: 5, Z: 10})
			c.Pan(tt.right, tt.forward)
			if !nearVec(c.Target, tt.want, 1e-12) {
				t.Errorf("target = %+v, want %+v", c.Target, tt.want)
			}
		})
	}
}

func TestProjector(t *testing.T) {
	c := NewCamera(Origin, Vec3{Y: 16, Z: 30})
	p := c.NewProjector(80, 24)

	sp, ok := p.Project(Origin)
	if !ok {
		t.Fatal("target not projected")
	}
	// Rounding can land the exact centre on either side of a cell edge.
	if sp.X < 39 || sp.X > 40 || sp.Y < 11 || sp.Y > 12 {
		t.Errorf("target at (%d,%d), want about (40,12)", sp.X, sp.Y)
	}
	if !near(sp.Depth, 34, 1e-9) {
		t.Errorf("depth = %v, want 34", sp.Depth)
	}

	// Above the target projects higher on screen.
	if up, ok := p.Project(Vec3{Y: 3}); !ok || up.Y >= sp.Y {
		t.Errorf("point above target at row %d, want above %d", up.Y, sp.Y)
	}

	if _, ok := p.Project(c.Position().Add(c.Direction().Scale(-5))); ok {
		t.Error("point behind the camera projected")
	}
	if _, ok := p.Project(Vec3{X: 1000}); ok {
		t.Error("point far off-screen projected")
	}
}

func TestPixelScale(t *testing.T) {
	p := NewCamera(Origin, Vec3{Z: 10}).NewProjector(80, 24)
	if p.PixelScale(0) != 0 {
		t.Error("PixelScale(0) should be 0")
	}
	if p.PixelScale(5) <= p.PixelScale(10) {
		t.Error("nearer objects should span more rows")
	}
}
