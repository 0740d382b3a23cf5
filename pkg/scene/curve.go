package scene

import "github.com/aurifex/aurifex/pkg/vmath"

// Spline is one strand of a curve object.
type Spline interface {
	// IsCyclic reports whether the spline closes back on itself.
	IsCyclic() bool
	// Tessellate returns the sampled polyline. For cyclic splines the
	// first point is not repeated at the end; the closing segment runs
	// from the last sample back to the first.
	Tessellate() []vmath.Vec3
	// CalcLength returns the length of the tessellated polyline,
	// including the closing segment for cyclic splines.
	CalcLength() float64
	// Copy returns a deep copy.
	Copy() Spline
	// Transform applies a matrix to all control data in place.
	Transform(m vmath.Mat4)
}

// PolySpline is a piecewise-linear spline through its points.
type PolySpline struct {
	Points []vmath.Vec3
	Cyclic bool
}

func (p *PolySpline) IsCyclic() bool { return p.Cyclic }

func (p *PolySpline) Tessellate() []vmath.Vec3 {
	out := make([]vmath.Vec3, len(p.Points))
	copy(out, p.Points)
	return out
}

func (p *PolySpline) CalcLength() float64 {
	return polylineLength(p.Points, p.Cyclic)
}

func (p *PolySpline) Copy() Spline {
	pts := make([]vmath.Vec3, len(p.Points))
	copy(pts, p.Points)
	return &PolySpline{Points: pts, Cyclic: p.Cyclic}
}

func (p *PolySpline) Transform(m vmath.Mat4) {
	for i := range p.Points {
		p.Points[i] = m.MulPoint(p.Points[i])
	}
}

// BezierPoint is one cubic Bezier control point with its handles.
type BezierPoint struct {
	Co          vmath.Vec3
	HandleLeft  vmath.Vec3
	HandleRight vmath.Vec3
}

// BezierSpline is a cubic Bezier spline sampled at Resolution points
// per segment.
type BezierSpline struct {
	Points     []BezierPoint
	Resolution int
	Cyclic     bool
}

func (b *BezierSpline) IsCyclic() bool { return b.Cyclic }

func (b *BezierSpline) resolution() int {
	if b.Resolution < 1 {
		return 12
	}
	return b.Resolution
}

// Tessellate samples each segment uniformly in parameter space. The
// segment endpoint is included once; for cyclic splines the closing
// segment's final sample (which coincides with the first point) is
// dropped.
func (b *BezierSpline) Tessellate() []vmath.Vec3 {
	if len(b.Points) == 0 {
		return nil
	}
	res := b.resolution()
	out := []vmath.Vec3{b.Points[0].Co}

	segs := len(b.Points) - 1
	if b.Cyclic {
		segs = len(b.Points)
	}
	for i := 0; i < segs; i++ {
		p0 := b.Points[i]
		p1 := b.Points[(i+1)%len(b.Points)]
		for j := 1; j <= res; j++ {
			if b.Cyclic && i == segs-1 && j == res {
				break
			}
			t := float64(j) / float64(res)
			out = append(out, bezierPoint(p0.Co, p0.HandleRight, p1.HandleLeft, p1.Co, t))
		}
	}
	return out
}

func (b *BezierSpline) CalcLength() float64 {
	return polylineLength(b.Tessellate(), b.Cyclic)
}

func (b *BezierSpline) Copy() Spline {
	pts := make([]BezierPoint, len(b.Points))
	copy(pts, b.Points)
	return &BezierSpline{Points: pts, Resolution: b.Resolution, Cyclic: b.Cyclic}
}

func (b *BezierSpline) Transform(m vmath.Mat4) {
	for i := range b.Points {
		b.Points[i].Co = m.MulPoint(b.Points[i].Co)
		b.Points[i].HandleLeft = m.MulPoint(b.Points[i].HandleLeft)
		b.Points[i].HandleRight = m.MulPoint(b.Points[i].HandleRight)
	}
}

// bezierPoint evaluates a cubic Bezier at parameter t.
func bezierPoint(p0, c0, c1, p1 vmath.Vec3, t float64) vmath.Vec3 {
	u := 1 - t
	a := p0.Scale(u * u * u)
	b := c0.Scale(3 * u * u * t)
	c := c1.Scale(3 * u * t * t)
	d := p1.Scale(t * t * t)
	return a.Add(b).Add(c).Add(d)
}

func polylineLength(pts []vmath.Vec3, cyclic bool) float64 {
	if len(pts) < 2 {
		return 0
	}
	var total float64
	for i := 0; i < len(pts)-1; i++ {
		total += pts[i+1].Sub(pts[i]).Length()
	}
	if cyclic {
		total += pts[0].Sub(pts[len(pts)-1]).Length()
	}
	return total
}

// CurveShape is the snapshot of the profile settings that turn a bare
// path into a solid-looking ribbon. Measurement tools zero these out
// and restore them afterwards.
type CurveShape struct {
	BevelObject *Object
	BevelDepth  float64
	Extrude     float64
}

// CurveData is a curve object's payload: splines plus the profile
// settings applied when the curve is evaluated.
type CurveData struct {
	Splines     []Spline
	BevelObject *Object
	BevelDepth  float64
	Extrude     float64
}

func (*CurveData) objectData() {}

// Shape returns the current profile settings.
func (c *CurveData) Shape() CurveShape {
	return CurveShape{
		BevelObject: c.BevelObject,
		BevelDepth:  c.BevelDepth,
		Extrude:     c.Extrude,
	}
}

// SetShape restores previously saved profile settings.
func (c *CurveData) SetShape(s CurveShape) {
	c.BevelObject = s.BevelObject
	c.BevelDepth = s.BevelDepth
	c.Extrude = s.Extrude
}

// Copy returns a deep copy of the curve payload. The bevel object
// reference is shared, matching how scenes link profile objects.
func (c *CurveData) Copy() *CurveData {
	out := &CurveData{
		Splines:     make([]Spline, len(c.Splines)),
		BevelObject: c.BevelObject,
		BevelDepth:  c.BevelDepth,
		Extrude:     c.Extrude,
	}
	for i, sp := range c.Splines {
		out.Splines[i] = sp.Copy()
	}
	return out
}

// Transform applies a matrix to every spline in place.
func (c *CurveData) Transform(m vmath.Mat4) {
	for _, sp := range c.Splines {
		sp.Transform(m)
	}
}

// Free drops the spline storage. Temporary copies made for
// measurement are released through here.
func (c *CurveData) Free() {
	c.Splines = nil
	c.BevelObject = nil
}

// Length returns the summed tessellated length of all splines.
func (c *CurveData) Length() float64 {
	var total float64
	for _, sp := range c.Splines {
		total += sp.CalcLength()
	}
	return total
}

// profileExtent returns the half-width the curve ribbon gets from the
// profile settings. A bevel object contributes its largest coordinate
// magnitude, which is the nominal radius of a profile curve centered
// at its origin.
func (c *CurveData) profileExtent() float64 {
	extent := c.Extrude + c.BevelDepth
	if c.BevelObject != nil {
		if bd, ok := c.BevelObject.Data.(*CurveData); ok {
			for _, sp := range bd.Splines {
				for _, p := range sp.Tessellate() {
					for _, v := range [3]float64{p.X, p.Y, p.Z} {
						if v < 0 {
							v = -v
						}
						if v > extent {
							extent = v
						}
					}
				}
			}
		}
	}
	return extent
}
