package meshutil

import (
	"math"
	"testing"

	"github.com/aurifex/aurifex/pkg/bmesh"
)

func TestMakeRectCoordsAndWinding(t *testing.T) {
	bm := bmesh.New()
	defer bm.Free()

	verts := MakeRect(bm, 2, 1, 0.5)
	if len(verts) != 4 {
		t.Fatalf("MakeRect returned %d verts, want 4", len(verts))
	}

	want := [][3]float64{
		{2, 1, 0.5},
		{-2, 1, 0.5},
		{-2, -1, 0.5},
		{2, -1, 0.5},
	}
	for i, v := range verts {
		if v.Co.X != want[i][0] || v.Co.Y != want[i][1] || v.Co.Z != want[i][2] {
			t.Errorf("vert %d = %v, want %v", i, v.Co, want[i])
		}
		for j := 0; j < i; j++ {
			if verts[j] == v {
				t.Errorf("verts %d and %d are the same vertex", j, i)
			}
		}
	}

	// Counterclockwise seen from +Z.
	ab := verts[1].Co.Sub(verts[0].Co)
	bc := verts[2].Co.Sub(verts[1].Co)
	if ab.Cross(bc).Z <= 0 {
		t.Error("MakeRect winding is not counterclockwise from +Z")
	}
}

func TestMakeTriBarycenter(t *testing.T) {
	bm := bmesh.New()
	defer bm.Free()

	verts := MakeTri(bm, 3, 2, -1)
	if len(verts) != 3 {
		t.Fatalf("MakeTri returned %d verts, want 3", len(verts))
	}

	var cx, cy float64
	for _, v := range verts {
		cx += v.Co.X
		cy += v.Co.Y
		if v.Co.Z != -1 {
			t.Errorf("vert %v not on plane z=-1", v.Co)
		}
	}
	if math.Abs(cx) > 1e-12 || math.Abs(cy) > 1e-12 {
		t.Errorf("barycenter = (%v, %v), want origin", cx/3, cy/3)
	}
}

func TestMakeEdgesCyclic(t *testing.T) {
	bm := bmesh.New()
	defer bm.Free()

	verts := MakeRect(bm, 1, 1, 0)
	edges, err := MakeEdges(bm, verts)
	if err != nil {
		t.Fatalf("MakeEdges failed: %v", err)
	}
	if len(edges) != 4 {
		t.Fatalf("MakeEdges returned %d edges, want 4", len(edges))
	}
	for i, e := range edges {
		v1, v2 := e.Verts()
		a, b := verts[i], verts[(i+1)%4]
		if !(v1 == a && v2 == b) && !(v1 == b && v2 == a) {
			t.Errorf("edge %d connects wrong vertex pair", i)
		}
	}

	// Connecting the same ring twice hits the duplicate-edge check.
	if _, err := MakeEdges(bm, verts); err == nil {
		t.Error("expected error re-connecting an existing ring")
	}
}

func TestBridgeVerts(t *testing.T) {
	bm := bmesh.New()
	defer bm.Free()

	a := MakeRect(bm, 1, 1, 0)
	b := MakeRect(bm, 1, 1, 2)

	faces, rungs, err := BridgeVerts(bm, a, b)
	if err != nil {
		t.Fatalf("BridgeVerts failed: %v", err)
	}
	if len(faces) != 4 || len(rungs) != 4 {
		t.Fatalf("got %d faces, %d rungs; want 4, 4", len(faces), len(rungs))
	}

	for i, f := range faces {
		if got := len(f.Verts()); got != 4 {
			t.Errorf("face %d has %d verts, want 4", i, got)
		}
		// The rung joins the second corner of each ring step.
		j := (i + 1) % 4
		v1, v2 := rungs[i].Verts()
		if !(v1 == a[j] && v2 == b[j]) && !(v1 == b[j] && v2 == a[j]) {
			t.Errorf("rung %d does not join a[%d] to b[%d]", i, j, j)
		}
	}
}

func TestBridgeVertsUsesShorterRing(t *testing.T) {
	bm := bmesh.New()
	defer bm.Free()

	a := MakeRect(bm, 1, 1, 0)
	b := MakeTri(bm, 1, 1, 1)

	faces, rungs, err := BridgeVerts(bm, a, b)
	if err != nil {
		t.Fatalf("BridgeVerts failed: %v", err)
	}
	if len(faces) != 3 || len(rungs) != 3 {
		t.Errorf("got %d faces, %d rungs; want 3, 3", len(faces), len(rungs))
	}
}

func TestDuplicateVertsZOverride(t *testing.T) {
	bm := bmesh.New()
	defer bm.Free()

	orig := MakeRect(bm, 1, 1, 0)
	z := 3.5
	dup := DuplicateVerts(bm, orig, &z)

	if len(dup) != 4 {
		t.Fatalf("DuplicateVerts returned %d verts, want 4", len(dup))
	}
	for i, v := range dup {
		if v == orig[i] {
			t.Errorf("duplicate %d is the original vertex", i)
		}
		if v.Co.Z != 3.5 {
			t.Errorf("duplicate %d z = %v, want 3.5", i, v.Co.Z)
		}
		if v.Co.X != orig[i].Co.X || v.Co.Y != orig[i].Co.Y {
			t.Errorf("duplicate %d moved in XY: %v", i, v.Co)
		}
	}
	for i, v := range orig {
		if v.Co.Z != 0 {
			t.Errorf("original %d was modified: z = %v", i, v.Co.Z)
		}
	}
}

func TestDuplicateEdgesCarriesVerts(t *testing.T) {
	bm := bmesh.New()
	defer bm.Free()

	verts := MakeRect(bm, 1, 1, 0)
	edges, err := MakeEdges(bm, verts)
	if err != nil {
		t.Fatal(err)
	}

	z := -2.0
	dup := DuplicateEdges(bm, edges, &z)
	if len(dup) != 4 {
		t.Fatalf("DuplicateEdges returned %d edges, want 4", len(dup))
	}
	for i, e := range dup {
		v1, v2 := e.Verts()
		if v1.Co.Z != -2 || v2.Co.Z != -2 {
			t.Errorf("duplicated edge %d endpoints not at z=-2", i)
		}
	}
	if len(bm.Verts()) != 8 {
		t.Errorf("mesh has %d verts, want 8 (ring + duplicate)", len(bm.Verts()))
	}
	if len(bm.Edges()) != 8 {
		t.Errorf("mesh has %d edges, want 8 (ring + duplicate)", len(bm.Edges()))
	}
}
