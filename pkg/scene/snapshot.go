package scene

import (
	"github.com/aurifex/aurifex/pkg/bmesh"
	"github.com/aurifex/aurifex/pkg/kernel"
	"github.com/aurifex/aurifex/pkg/vmath"
)

// Polygon is one face of a snapshot, as indices into the coordinate
// array.
type Polygon struct {
	Verts  []int
	Select bool
}

// Snapshot is an evaluated, flattened copy of an object's geometry.
// It is owned by whoever created it and must be released with Free.
type Snapshot struct {
	Coords []vmath.Vec3
	Edges  [][2]int
	Polys  []Polygon

	freed bool
}

// Free releases the snapshot storage. Calling Free twice is safe.
func (s *Snapshot) Free() {
	if s.freed {
		return
	}
	s.Coords = nil
	s.Edges = nil
	s.Polys = nil
	s.freed = true
}

// Freed reports whether the snapshot has been released.
func (s *Snapshot) Freed() bool {
	return s.freed
}

// Copy returns a deep copy of the snapshot.
func (s *Snapshot) Copy() *Snapshot {
	out := &Snapshot{
		Coords: make([]vmath.Vec3, len(s.Coords)),
		Edges:  make([][2]int, len(s.Edges)),
		Polys:  make([]Polygon, len(s.Polys)),
	}
	copy(out.Coords, s.Coords)
	copy(out.Edges, s.Edges)
	for i, p := range s.Polys {
		verts := make([]int, len(p.Verts))
		copy(verts, p.Verts)
		out.Polys[i] = Polygon{Verts: verts, Select: p.Select}
	}
	return out
}

// Transform applies a matrix to every coordinate in place.
func (s *Snapshot) Transform(m vmath.Mat4) {
	for i := range s.Coords {
		s.Coords[i] = m.MulPoint(s.Coords[i])
	}
}

// EdgeLength returns the length of edge i.
func (s *Snapshot) EdgeLength(i int) float64 {
	e := s.Edges[i]
	return s.Coords[e[1]].Sub(s.Coords[e[0]]).Length()
}

// PolyCenter returns the vertex median of polygon i.
func (s *Snapshot) PolyCenter(i int) vmath.Vec3 {
	var c vmath.Vec3
	p := s.Polys[i]
	for _, vi := range p.Verts {
		c = c.Add(s.Coords[vi])
	}
	return c.Scale(1 / float64(len(p.Verts)))
}

// PolyNormal returns the unit normal of polygon i, computed with
// Newell's method so non-planar polygons get a stable result.
func (s *Snapshot) PolyNormal(i int) vmath.Vec3 {
	var n vmath.Vec3
	p := s.Polys[i]
	for j, vi := range p.Verts {
		a := s.Coords[vi]
		b := s.Coords[p.Verts[(j+1)%len(p.Verts)]]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return n.Normalized()
}

// snapshotFromBMesh flattens an editable mesh. Selection state of
// faces is carried over so selection-driven tools keep working on
// evaluated geometry.
func snapshotFromBMesh(bm *bmesh.Mesh) *Snapshot {
	snap := &Snapshot{
		Coords: make([]vmath.Vec3, 0, len(bm.Verts())),
		Edges:  make([][2]int, 0, len(bm.Edges())),
		Polys:  make([]Polygon, 0, len(bm.Faces())),
	}
	for _, v := range bm.Verts() {
		snap.Coords = append(snap.Coords, v.Co)
	}
	for _, e := range bm.Edges() {
		v1, v2 := e.Verts()
		snap.Edges = append(snap.Edges, [2]int{v1.Index, v2.Index})
	}
	for _, f := range bm.Faces() {
		verts := f.Verts()
		poly := Polygon{Verts: make([]int, len(verts)), Select: f.Select}
		for i, v := range verts {
			poly.Verts[i] = v.Index
		}
		snap.Polys = append(snap.Polys, poly)
	}
	return snap
}

// snapshotFromTriMesh converts a kernel triangle mesh. Vertices are
// welded by exact coordinate so shared edges appear once.
func snapshotFromTriMesh(m *kernel.Mesh) *Snapshot {
	snap := &Snapshot{}

	weld := make(map[[3]float32]int)
	remap := make([]int, m.VertexCount())
	for i := 0; i < m.VertexCount(); i++ {
		key := [3]float32{m.Vertices[i*3], m.Vertices[i*3+1], m.Vertices[i*3+2]}
		vi, ok := weld[key]
		if !ok {
			vi = len(snap.Coords)
			weld[key] = vi
			snap.Coords = append(snap.Coords, vmath.Vec3{
				X: float64(key[0]),
				Y: float64(key[1]),
				Z: float64(key[2]),
			})
		}
		remap[i] = vi
	}

	edgeSeen := make(map[[2]int]bool)
	addEdge := func(a, b int) {
		if a == b {
			return
		}
		if a > b {
			a, b = b, a
		}
		if edgeSeen[[2]int{a, b}] {
			return
		}
		edgeSeen[[2]int{a, b}] = true
		snap.Edges = append(snap.Edges, [2]int{a, b})
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		a := remap[m.Indices[i]]
		b := remap[m.Indices[i+1]]
		c := remap[m.Indices[i+2]]
		if a == b || b == c || a == c {
			continue
		}
		addEdge(a, b)
		addEdge(b, c)
		addEdge(c, a)
		snap.Polys = append(snap.Polys, Polygon{Verts: []int{a, b, c}})
	}
	return snap
}
