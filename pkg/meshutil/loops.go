package meshutil

import (
	"github.com/aurifex/aurifex/pkg/bmesh"
	"github.com/aurifex/aurifex/pkg/vmath"
)

// EdgeLoopExpand collects edges along the edge loop threading straight
// through the quads adjacent to e: starting from the seed, each
// iteration advances one step forward and one step backward
// (next-in-face, cross the shared edge radially, next again), so the
// result holds 1 + 2*(limit-1) edges for limit > 0.
//
// The walk terminates on the iteration count alone, not on a
// topological boundary; past the physical end of a loop the radial
// step folds back into the same face and the collected edges are
// kernel-dependent. Callers must keep limit within the loop length.
func EdgeLoopExpand(e *bmesh.Edge, limit int) []*bmesh.Edge {
	edges := []*bmesh.Edge{e}

	loops := e.LinkLoops()
	if len(loops) == 0 {
		return edges
	}
	next := loops[0]
	prev := loops[0]

	for i := 1; i < limit; i++ {
		next = next.Next().RadialNext().Next()
		prev = prev.Prev().RadialPrev().Prev()
		edges = append(edges, next.Edge(), prev.Edge())
	}
	return edges
}

// EdgeLoopWalk traces a connected path through the given vertex set,
// returning coordinate copies in walk order. The walk starts along
// verts[0]'s second incident edge, LinkEdges()[1], a fixed-index
// convention that relies on the kernel's insertion-order incidence
// lists. At every subsequent vertex it takes the first incident edge
// that is not the edge just traversed, for len(verts)-1 steps.
//
// Precondition: the vertices form a simple path or cycle in which each
// visited vertex has exactly two relevant incident edges; stray edges
// from unrelated geometry make the walk pick the wrong edge.
func EdgeLoopWalk(verts []*bmesh.Vert) []vmath.Vec3 {
	v := verts[0]
	e := v.LinkEdges()[1]

	coords := make([]vmath.Vec3, 0, len(verts))
	coords = append(coords, v.Co)

	for i := 0; i < len(verts)-1; i++ {
		ov := e.OtherVert(v)
		coords = append(coords, ov.Co)
		v = ov

		for _, oe := range ov.LinkEdges() {
			if oe != e {
				e = oe
				break
			}
		}
	}
	return coords
}
