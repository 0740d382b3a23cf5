package bmesh

import "fmt"

// Validate checks the structural integrity of the mesh: edge endpoints
// registered in both vertices' incidence lists, loop cycles closed and
// consistent with their face, and radial lists pointing back at their
// edge. It returns the first problem found, or nil.
func (m *Mesh) Validate() error {
	if m.freed {
		return fmt.Errorf("bmesh: mesh has been freed")
	}

	vertIndex := make(map[*Vert]bool, len(m.verts))
	for _, v := range m.verts {
		vertIndex[v] = true
	}

	for _, e := range m.edges {
		if e.v1 == nil || e.v2 == nil || e.v1 == e.v2 {
			return fmt.Errorf("bmesh: edge %d has invalid endpoints", e.Index)
		}
		if !vertIndex[e.v1] || !vertIndex[e.v2] {
			return fmt.Errorf("bmesh: edge %d references a vert outside the mesh", e.Index)
		}
		for _, v := range []*Vert{e.v1, e.v2} {
			linked := false
			for _, ve := range v.edges {
				if ve == e {
					linked = true
					break
				}
			}
			if !linked {
				return fmt.Errorf("bmesh: edge %d missing from vert %d incidence list", e.Index, v.Index)
			}
		}
		for _, l := range e.loops {
			if l.edge != e {
				return fmt.Errorf("bmesh: radial loop on edge %d points at a different edge", e.Index)
			}
		}
	}

	for _, f := range m.faces {
		if len(f.loops) < 3 {
			return fmt.Errorf("bmesh: face %d has fewer than 3 loops", f.Index)
		}
		for i, l := range f.loops {
			if l.face != f {
				return fmt.Errorf("bmesh: loop %d of face %d points at a different face", i, f.Index)
			}
			next := f.loops[(i+1)%len(f.loops)]
			if l.next != next || next.prev != l {
				return fmt.Errorf("bmesh: loop cycle of face %d is broken at corner %d", f.Index, i)
			}
			// The loop edge must connect this corner to the next.
			if l.edge.OtherVert(l.vert) != next.vert {
				return fmt.Errorf("bmesh: loop edge of face %d corner %d does not reach the next corner", f.Index, i)
			}
		}
	}
	return nil
}
