package bmesh

import (
	"testing"

	"github.com/aurifex/aurifex/pkg/vmath"
)

func TestNewEdgeRejectsDuplicates(t *testing.T) {
	m := New()
	a := m.NewVert(vmath.Vec3{})
	b := m.NewVert(vmath.Vec3{X: 1})

	if _, err := m.NewEdge(a, b); err != nil {
		t.Fatalf("NewEdge failed: %v", err)
	}
	if _, err := m.NewEdge(a, b); err == nil {
		t.Error("expected error for duplicate edge")
	}
	if _, err := m.NewEdge(b, a); err == nil {
		t.Error("expected error for reversed duplicate edge")
	}
	if _, err := m.NewEdge(a, a); err == nil {
		t.Error("expected error for self edge")
	}
}

func TestLinkEdgesInsertionOrder(t *testing.T) {
	m := New()
	v := m.NewVert(vmath.Vec3{})
	others := []*Vert{
		m.NewVert(vmath.Vec3{X: 1}),
		m.NewVert(vmath.Vec3{Y: 1}),
		m.NewVert(vmath.Vec3{Z: 1}),
	}
	var edges []*Edge
	for _, o := range others {
		e, err := m.NewEdge(v, o)
		if err != nil {
			t.Fatalf("NewEdge failed: %v", err)
		}
		edges = append(edges, e)
	}
	linked := v.LinkEdges()
	if len(linked) != 3 {
		t.Fatalf("expected 3 link edges, got %d", len(linked))
	}
	for i, e := range edges {
		if linked[i] != e {
			t.Errorf("link edge %d out of insertion order", i)
		}
	}
}

func TestNewFaceCreatesMissingEdges(t *testing.T) {
	m := New()
	a := m.NewVert(vmath.Vec3{})
	b := m.NewVert(vmath.Vec3{X: 1})
	c := m.NewVert(vmath.Vec3{Y: 1})

	// Pre-create one boundary edge; the face must reuse it.
	ab, err := m.NewEdge(a, b)
	if err != nil {
		t.Fatalf("NewEdge failed: %v", err)
	}

	f, err := m.NewFace(a, b, c)
	if err != nil {
		t.Fatalf("NewFace failed: %v", err)
	}
	if len(m.Edges()) != 3 {
		t.Errorf("expected 3 edges after face creation, got %d", len(m.Edges()))
	}
	if f.Edges()[0] != ab {
		t.Error("face did not reuse the existing edge")
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestNewFaceRejectsDuplicate(t *testing.T) {
	m := New()
	a := m.NewVert(vmath.Vec3{})
	b := m.NewVert(vmath.Vec3{X: 1})
	c := m.NewVert(vmath.Vec3{Y: 1})

	if _, err := m.NewFace(a, b, c); err != nil {
		t.Fatalf("NewFace failed: %v", err)
	}
	if _, err := m.NewFace(c, a, b); err == nil {
		t.Error("expected error for duplicate face over the same verts")
	}
}

func TestFaceEdgeWinding(t *testing.T) {
	m := New()
	vs := []*Vert{
		m.NewVert(vmath.Vec3{X: 1, Y: 1}),
		m.NewVert(vmath.Vec3{X: -1, Y: 1}),
		m.NewVert(vmath.Vec3{X: -1, Y: -1}),
		m.NewVert(vmath.Vec3{X: 1, Y: -1}),
	}
	f, err := m.NewFace(vs...)
	if err != nil {
		t.Fatalf("NewFace failed: %v", err)
	}
	edges := f.Edges()
	for i, e := range edges {
		next := vs[(i+1)%len(vs)]
		if e.OtherVert(vs[i]) != next {
			t.Errorf("edge %d does not connect vert %d to vert %d", i, i, (i+1)%len(vs))
		}
	}
	n := f.Normal()
	if n.Z <= 0.99 {
		t.Errorf("counterclockwise quad should have +Z normal, got %v", n)
	}
}

func TestRadialLoops(t *testing.T) {
	m := New()
	// Two quads sharing the middle edge (b, c).
	a := m.NewVert(vmath.Vec3{})
	b := m.NewVert(vmath.Vec3{X: 1})
	c := m.NewVert(vmath.Vec3{X: 1, Y: 1})
	d := m.NewVert(vmath.Vec3{Y: 1})
	e := m.NewVert(vmath.Vec3{X: 2})
	g := m.NewVert(vmath.Vec3{X: 2, Y: 1})

	f1, err := m.NewFace(a, b, c, d)
	if err != nil {
		t.Fatalf("NewFace failed: %v", err)
	}
	f2, err := m.NewFace(b, e, g, c)
	if err != nil {
		t.Fatalf("NewFace failed: %v", err)
	}

	shared := m.findEdge(b, c)
	if shared == nil {
		t.Fatal("shared edge missing")
	}
	loops := shared.LinkLoops()
	if len(loops) != 2 {
		t.Fatalf("expected 2 radial loops, got %d", len(loops))
	}
	if loops[0].Face() != f1 {
		t.Error("first radial loop should belong to the first face")
	}
	if loops[0].RadialNext().Face() != f2 {
		t.Error("RadialNext should cross to the adjacent face")
	}
	if loops[0].RadialNext().RadialNext() != loops[0] {
		t.Error("RadialNext twice should return to the start on a 2-manifold edge")
	}

	// Boundary edge: radial next of a lone loop is the loop itself.
	boundary := m.findEdge(a, b)
	bl := boundary.LinkLoops()
	if len(bl) != 1 {
		t.Fatalf("expected 1 radial loop on boundary edge, got %d", len(bl))
	}
	if bl[0].RadialNext() != bl[0] {
		t.Error("boundary RadialNext should return the loop itself")
	}

	if err := m.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestEdgeCalcLengthAndOtherVert(t *testing.T) {
	m := New()
	a := m.NewVert(vmath.Vec3{})
	b := m.NewVert(vmath.Vec3{X: 3, Y: 4})
	e, err := m.NewEdge(a, b)
	if err != nil {
		t.Fatalf("NewEdge failed: %v", err)
	}
	if got := e.CalcLength(); got != 5 {
		t.Errorf("CalcLength() = %v, want 5", got)
	}
	if e.OtherVert(a) != b || e.OtherVert(b) != a {
		t.Error("OtherVert returned the wrong endpoint")
	}
	stranger := m.NewVert(vmath.Vec3{Z: 1})
	if e.OtherVert(stranger) != nil {
		t.Error("OtherVert of a non-endpoint should be nil")
	}
}

func TestFreeIsIdempotent(t *testing.T) {
	m := New()
	m.NewVert(vmath.Vec3{})
	m.Free()
	m.Free()
	if err := m.Validate(); err == nil {
		t.Error("Validate should fail on a freed mesh")
	}
}
