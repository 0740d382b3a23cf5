package scene

import (
	"math"
	"testing"

	"github.com/aurifex/aurifex/pkg/vmath"
)

func TestPolySplineLength(t *testing.T) {
	open := &PolySpline{Points: []vmath.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 3, Y: 0, Z: 0},
		{X: 3, Y: 4, Z: 0},
	}}
	if got := open.CalcLength(); math.Abs(got-7) > 1e-12 {
		t.Errorf("open length = %v, want 7", got)
	}

	cyclic := &PolySpline{Points: open.Points, Cyclic: true}
	if got := cyclic.CalcLength(); math.Abs(got-12) > 1e-12 {
		t.Errorf("cyclic length = %v, want 12 (closing hypotenuse is 5)", got)
	}
}

func TestBezierSplineStraightSegment(t *testing.T) {
	// Handles on the chord make the cubic degenerate to a straight
	// line, so the tessellated length equals the chord length.
	b := &BezierSpline{
		Points: []BezierPoint{
			{Co: vmath.Vec3{X: 0}, HandleRight: vmath.Vec3{X: 1}},
			{Co: vmath.Vec3{X: 3}, HandleLeft: vmath.Vec3{X: 2}},
		},
		Resolution: 16,
	}
	if got := b.CalcLength(); math.Abs(got-3) > 1e-9 {
		t.Errorf("straight bezier length = %v, want 3", got)
	}
}

func TestBezierTessellateCyclic(t *testing.T) {
	b := &BezierSpline{
		Points: []BezierPoint{
			{Co: vmath.Vec3{X: 1}, HandleLeft: vmath.Vec3{X: 1, Y: -0.5}, HandleRight: vmath.Vec3{X: 1, Y: 0.5}},
			{Co: vmath.Vec3{X: -1}, HandleLeft: vmath.Vec3{X: -1, Y: 0.5}, HandleRight: vmath.Vec3{X: -1, Y: -0.5}},
		},
		Resolution: 8,
		Cyclic:     true,
	}
	pts := b.Tessellate()

	// Two segments of 8 samples each; the first point appears once
	// and the closing sample is dropped.
	if len(pts) != 16 {
		t.Fatalf("tessellated point count = %d, want 16", len(pts))
	}
	last := pts[len(pts)-1]
	first := pts[0]
	if last.Sub(first).Length() < 1e-9 {
		t.Error("closing sample should not duplicate the first point")
	}
}

func TestBezierDefaultResolution(t *testing.T) {
	b := &BezierSpline{
		Points: []BezierPoint{
			{Co: vmath.Vec3{}, HandleRight: vmath.Vec3{X: 1}},
			{Co: vmath.Vec3{X: 3}, HandleLeft: vmath.Vec3{X: 2}},
		},
	}
	if got := len(b.Tessellate()); got != 13 {
		t.Errorf("default resolution tessellation = %d points, want 13", got)
	}
}

func TestCurveShapeRoundTrip(t *testing.T) {
	bevel := NewObject("profile", &CurveData{})
	c := &CurveData{BevelObject: bevel, BevelDepth: 0.4, Extrude: 0.2}

	saved := c.Shape()
	c.BevelObject = nil
	c.BevelDepth = 0
	c.Extrude = 0

	c.SetShape(saved)
	if c.BevelObject != bevel || c.BevelDepth != 0.4 || c.Extrude != 0.2 {
		t.Errorf("shape not restored: %+v", c.Shape())
	}
}

func TestCurveDataCopyIsDeep(t *testing.T) {
	orig := &CurveData{
		Splines: []Spline{
			&PolySpline{Points: []vmath.Vec3{{X: 1}, {X: 2}}},
		},
	}
	dup := orig.Copy()
	dup.Transform(vmath.Translation(vmath.Vec3{X: 10}))

	got := orig.Splines[0].(*PolySpline).Points[0]
	if got.X != 1 {
		t.Errorf("transforming the copy mutated the original: %v", got)
	}
}

func TestProfileExtentFromBevelObject(t *testing.T) {
	profile := NewObject("profile", &CurveData{
		Splines: []Spline{
			&PolySpline{Points: []vmath.Vec3{{X: -0.6}, {X: 0.6}}, Cyclic: true},
		},
	})
	c := &CurveData{BevelObject: profile}
	if got := c.profileExtent(); math.Abs(got-0.6) > 1e-12 {
		t.Errorf("profile extent = %v, want 0.6", got)
	}
}
