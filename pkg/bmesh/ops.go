package bmesh

import (
	"fmt"

	"github.com/aurifex/aurifex/pkg/vmath"
)

// Duplicate clones the given geometry and returns the new elements as
// a flat bag: vertices first (in original creation order), then edges,
// then faces.
//
// The selection is closed downward before cloning: edges and faces
// contribute their vertices, faces contribute their edges. Edges and
// faces fully contained in the resulting vertex selection are cloned
// as well, so duplicating a ring of connected vertices clones the ring
// edges with them.
func (m *Mesh) Duplicate(geom []Elem) []Elem {
	vertSet := make(map[*Vert]bool)
	edgeSet := make(map[*Edge]bool)
	faceSet := make(map[*Face]bool)

	for _, el := range geom {
		switch g := el.(type) {
		case *Vert:
			vertSet[g] = true
		case *Edge:
			edgeSet[g] = true
			vertSet[g.v1] = true
			vertSet[g.v2] = true
		case *Face:
			faceSet[g] = true
			for _, l := range g.loops {
				vertSet[l.vert] = true
				edgeSet[l.edge] = true
			}
		}
	}
	for _, e := range m.edges {
		if vertSet[e.v1] && vertSet[e.v2] {
			edgeSet[e] = true
		}
	}
faces:
	for _, f := range m.faces {
		for _, l := range f.loops {
			if !vertSet[l.vert] {
				continue faces
			}
		}
		faceSet[f] = true
	}

	// Clone vertices in creation order so the output is deterministic.
	vertMap := make(map[*Vert]*Vert, len(vertSet))
	var out []Elem
	for _, v := range m.verts {
		if !vertSet[v] {
			continue
		}
		nv := m.NewVert(v.Co)
		vertMap[v] = nv
		out = append(out, nv)
	}

	// Edges are cloned before faces, and clones connect fresh
	// vertices, so the kernel cannot reject them.
	for _, e := range m.edges {
		if !edgeSet[e] {
			continue
		}
		ne, err := m.NewEdge(vertMap[e.v1], vertMap[e.v2])
		if err != nil {
			panic(fmt.Sprintf("bmesh: duplicate edge clone: %v", err))
		}
		out = append(out, ne)
	}

	for _, f := range m.faces {
		if !faceSet[f] {
			continue
		}
		vs := make([]*Vert, len(f.loops))
		for i, l := range f.loops {
			vs[i] = vertMap[l.vert]
		}
		nf, err := m.NewFace(vs...)
		if err != nil {
			panic(fmt.Sprintf("bmesh: duplicate face clone: %v", err))
		}
		out = append(out, nf)
	}
	return out
}

// Triangulate replaces each of the given faces with triangles. Quads
// are split along their shorter diagonal; larger polygons are fanned
// from their first loop vertex.
func (m *Mesh) Triangulate(faces []*Face) error {
	// Callers may pass the live face list; removing faces shifts that
	// backing array, so iterate over a snapshot.
	faces = append([]*Face(nil), faces...)
	for _, f := range faces {
		if len(f.loops) <= 3 {
			continue
		}
		vs := f.Verts()
		m.removeFace(f)

		var tris [][3]*Vert
		if len(vs) == 4 {
			d02 := vs[2].Co.Sub(vs[0].Co).Length()
			d13 := vs[3].Co.Sub(vs[1].Co).Length()
			if d02 <= d13 {
				tris = [][3]*Vert{{vs[0], vs[1], vs[2]}, {vs[0], vs[2], vs[3]}}
			} else {
				tris = [][3]*Vert{{vs[0], vs[1], vs[3]}, {vs[1], vs[2], vs[3]}}
			}
		} else {
			for i := 1; i < len(vs)-1; i++ {
				tris = append(tris, [3]*Vert{vs[0], vs[i], vs[i+1]})
			}
		}

		for _, tri := range tris {
			if _, err := m.NewFace(tri[0], tri[1], tri[2]); err != nil {
				return fmt.Errorf("bmesh: triangulate: %w", err)
			}
		}
	}
	return nil
}

// CalcVolume returns the enclosed volume of the mesh by per-triangle
// divergence summation; non-triangular faces are fanned on the fly.
// The mesh must be closed for the result to be meaningful. With
// signed=false the absolute value is returned.
func (m *Mesh) CalcVolume(signed bool) float64 {
	var vol float64
	for _, f := range m.faces {
		vs := f.Verts()
		for i := 1; i < len(vs)-1; i++ {
			a, b, c := vs[0].Co, vs[i].Co, vs[i+1].Co
			vol += a.Dot(b.Cross(c)) / 6
		}
	}
	if !signed && vol < 0 {
		return -vol
	}
	return vol
}

// AppendGeometry merges flat evaluated geometry into the mesh: coords
// become new vertices, and edge and polygon index lists refer into
// coords. Polygon winding is preserved.
func (m *Mesh) AppendGeometry(coords []vmath.Vec3, edges [][2]int, polys [][]int) error {
	verts := make([]*Vert, len(coords))
	for i, co := range coords {
		verts[i] = m.NewVert(co)
	}
	for _, e := range edges {
		if e[0] < 0 || e[0] >= len(verts) || e[1] < 0 || e[1] >= len(verts) {
			return fmt.Errorf("bmesh: edge index out of range: %v", e)
		}
		if _, err := m.NewEdge(verts[e[0]], verts[e[1]]); err != nil {
			return fmt.Errorf("bmesh: append edge: %w", err)
		}
	}
	for _, p := range polys {
		vs := make([]*Vert, len(p))
		for i, idx := range p {
			if idx < 0 || idx >= len(verts) {
				return fmt.Errorf("bmesh: polygon index out of range: %d", idx)
			}
			vs[i] = verts[idx]
		}
		if _, err := m.NewFace(vs...); err != nil {
			return fmt.Errorf("bmesh: append polygon: %w", err)
		}
	}
	return nil
}
