// Package meshutil provides the procedural mesh-construction helpers
// used by the jewelry builders: planar primitives, ring topology,
// bridging (lofting), duplication and edge-loop traversal, plus the
// volume and curve-length measurements built on the scene layer.
//
// All functions are stateless and operate on a caller-supplied mesh;
// they never create or free the mesh itself. Ring arguments must be
// ordered consistently (same starting phase and winding); the helpers
// do not validate ring order, and misordered rings produce twisted
// geometry rather than errors.
package meshutil

import (
	"github.com/aurifex/aurifex/pkg/bmesh"
	"github.com/aurifex/aurifex/pkg/vmath"
)

// MakeRect inserts four vertices at (±x, ±y, z) and returns them in
// the fixed winding order (+x+y, -x+y, -x-y, +x-y), counterclockwise
// seen from +Z.
func MakeRect(bm *bmesh.Mesh, x, y, z float64) []*bmesh.Vert {
	return []*bmesh.Vert{
		bm.NewVert(vmath.Vec3{X: x, Y: y, Z: z}),
		bm.NewVert(vmath.Vec3{X: -x, Y: y, Z: z}),
		bm.NewVert(vmath.Vec3{X: -x, Y: -y, Z: z}),
		bm.NewVert(vmath.Vec3{X: x, Y: -y, Z: z}),
	}
}

// MakeTri inserts three vertices forming an isosceles triangle on the
// plane z, centered at the origin: front edge of half-width x at y/3,
// apex at -2y/3. The winding matches MakeRect so ring-based operations
// treat both shapes uniformly.
func MakeTri(bm *bmesh.Mesh, x, y, z float64) []*bmesh.Vert {
	return []*bmesh.Vert{
		bm.NewVert(vmath.Vec3{X: x, Y: y / 3, Z: z}),
		bm.NewVert(vmath.Vec3{X: -x, Y: y / 3, Z: z}),
		bm.NewVert(vmath.Vec3{X: 0, Y: -y / 1.5, Z: z}),
	}
}

// MakeEdges connects an ordered ring of vertices cyclically: vertex i
// to vertex (i+1) mod N. Edges are returned in ring order. An edge
// already existing between a consecutive pair is a kernel error.
func MakeEdges(bm *bmesh.Mesh, verts []*bmesh.Vert) ([]*bmesh.Edge, error) {
	edges := make([]*bmesh.Edge, 0, len(verts))
	for i := range verts {
		e, err := bm.NewEdge(verts[i], verts[(i+1)%len(verts)])
		if err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, nil
}

// BridgeVerts lofts two vertex rings with quadrilateral faces. Each
// quad is built as (a[i], a[i+1], b[i+1], b[i]), so the face's second
// edge, Edges()[1], is the newly created cross connection ("rung")
// joining a[i+1] to b[i+1]; that rung is reported per ring step
// alongside the faces. Rings of unequal length are bridged over the
// shorter ring's length, leaving the surplus vertices of the longer
// ring unconnected.
func BridgeVerts(bm *bmesh.Mesh, a, b []*bmesh.Vert) ([]*bmesh.Face, []*bmesh.Edge, error) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	faces := make([]*bmesh.Face, 0, n)
	rungs := make([]*bmesh.Edge, 0, n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		f, err := bm.NewFace(a[i], a[j], b[j], b[i])
		if err != nil {
			return nil, nil, err
		}
		faces = append(faces, f)
		rungs = append(rungs, f.Edges()[1])
	}
	return faces, rungs, nil
}

// DuplicateVerts clones the given vertices (along with any edges or
// faces fully contained in the selection) and returns only the new
// vertices. If z is non-nil the z-coordinate of every duplicate is
// overridden; the originals are untouched.
func DuplicateVerts(bm *bmesh.Mesh, verts []*bmesh.Vert, z *float64) []*bmesh.Vert {
	geom := make([]bmesh.Elem, len(verts))
	for i, v := range verts {
		geom[i] = v
	}
	dup := bm.Duplicate(geom)

	out := make([]*bmesh.Vert, 0, len(verts))
	for _, el := range dup {
		if v, ok := el.(*bmesh.Vert); ok {
			if z != nil {
				v.Co.Z = *z
			}
			out = append(out, v)
		}
	}
	return out
}

// DuplicateEdges clones the given edges (the kernel duplicates their
// vertices with them) and returns only the new edges. If z is non-nil
// it is applied to every duplicated vertex; edges carry no coordinate
// themselves.
func DuplicateEdges(bm *bmesh.Mesh, edges []*bmesh.Edge, z *float64) []*bmesh.Edge {
	geom := make([]bmesh.Elem, len(edges))
	for i, e := range edges {
		geom[i] = e
	}
	dup := bm.Duplicate(geom)

	out := make([]*bmesh.Edge, 0, len(edges))
	for _, el := range dup {
		switch g := el.(type) {
		case *bmesh.Edge:
			out = append(out, g)
		case *bmesh.Vert:
			if z != nil {
				g.Co.Z = *z
			}
		}
	}
	return out
}
