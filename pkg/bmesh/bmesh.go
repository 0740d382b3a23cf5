// Package bmesh implements the editable mesh structure used for
// procedural jewelry construction: an arena of vertices, edges and
// faces with loop-based connectivity.
//
// A Mesh is an explicitly scoped resource: create it with New, release
// it with Free. The helper layers never create or destroy a Mesh, only
// its contents. Incident elements are kept in insertion order, so
// fixed-index lookups such as LinkEdges()[1] are deterministic.
package bmesh

import (
	"fmt"

	"github.com/aurifex/aurifex/pkg/vmath"
)

// Elem is implemented by every mesh element kind. Duplicate accepts
// and returns flat bags of Elems.
type Elem interface {
	meshElem() // marker method restricting implementations to this package
}

// Vert is a topological vertex with a coordinate and a set of
// incident edges in insertion order.
type Vert struct {
	Co     vmath.Vec3
	Index  int
	Select bool

	edges []*Edge
}

func (*Vert) meshElem() {}

// LinkEdges returns the edges incident to v, in insertion order.
// The returned slice is owned by the mesh; callers must not mutate it.
func (v *Vert) LinkEdges() []*Edge {
	return v.edges
}

// Edge connects exactly two vertices. Radial loops are kept in
// insertion order, so LinkLoops()[0] is the loop of the face that
// first used this edge.
type Edge struct {
	Index  int
	Select bool

	v1, v2 *Vert
	loops  []*Loop
}

func (*Edge) meshElem() {}

// Verts returns the two endpoints of e.
func (e *Edge) Verts() (*Vert, *Vert) {
	return e.v1, e.v2
}

// OtherVert returns the endpoint of e that is not v, or nil if v is
// not an endpoint.
func (e *Edge) OtherVert(v *Vert) *Vert {
	switch v {
	case e.v1:
		return e.v2
	case e.v2:
		return e.v1
	}
	return nil
}

// CalcLength returns the length of e.
func (e *Edge) CalcLength() float64 {
	return e.v2.Co.Sub(e.v1.Co).Length()
}

// LinkLoops returns the loops around e, in insertion order.
func (e *Edge) LinkLoops() []*Loop {
	return e.loops
}

// Loop is one face corner: it binds a vertex, the edge leaving that
// vertex in face winding order, and the face itself.
type Loop struct {
	vert *Vert
	edge *Edge
	face *Face
	next *Loop
	prev *Loop
}

// Vert returns the corner vertex.
func (l *Loop) Vert() *Vert { return l.vert }

// Edge returns the edge from this corner to the next.
func (l *Loop) Edge() *Edge { return l.edge }

// Face returns the owning face.
func (l *Loop) Face() *Face { return l.face }

// Next returns the next loop around the face.
func (l *Loop) Next() *Loop { return l.next }

// Prev returns the previous loop around the face.
func (l *Loop) Prev() *Loop { return l.prev }

// RadialNext returns the next loop around this loop's edge. On a
// boundary edge with a single loop it returns the loop itself.
func (l *Loop) RadialNext() *Loop {
	loops := l.edge.loops
	for i, rl := range loops {
		if rl == l {
			return loops[(i+1)%len(loops)]
		}
	}
	return l
}

// RadialPrev returns the previous loop around this loop's edge.
func (l *Loop) RadialPrev() *Loop {
	loops := l.edge.loops
	for i, rl := range loops {
		if rl == l {
			return loops[(i+len(loops)-1)%len(loops)]
		}
	}
	return l
}

// Face is a polygon bounded by an ordered cyclic sequence of loops.
// Winding is the vertex order given to NewFace.
type Face struct {
	Index  int
	Select bool

	loops []*Loop
}

func (*Face) meshElem() {}

// Loops returns the face corners in winding order, starting at the
// first vertex passed to NewFace.
func (f *Face) Loops() []*Loop {
	return f.loops
}

// Verts returns the face vertices in winding order.
func (f *Face) Verts() []*Vert {
	vs := make([]*Vert, len(f.loops))
	for i, l := range f.loops {
		vs[i] = l.vert
	}
	return vs
}

// Edges returns the face edges in winding order: Edges()[i] connects
// Verts()[i] to Verts()[i+1].
func (f *Face) Edges() []*Edge {
	es := make([]*Edge, len(f.loops))
	for i, l := range f.loops {
		es[i] = l.edge
	}
	return es
}

// CalcCenter returns the vertex median of the face.
func (f *Face) CalcCenter() vmath.Vec3 {
	var sum vmath.Vec3
	for _, l := range f.loops {
		sum = sum.Add(l.vert.Co)
	}
	return sum.Scale(1 / float64(len(f.loops)))
}

// Normal returns the unit face normal computed with Newell's method,
// which tolerates slightly non-planar polygons.
func (f *Face) Normal() vmath.Vec3 {
	var n vmath.Vec3
	for i, l := range f.loops {
		a := l.vert.Co
		b := f.loops[(i+1)%len(f.loops)].vert.Co
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return n.Normalized()
}

// Mesh is the arena container of vertices, edges and faces for one
// editing session.
type Mesh struct {
	verts []*Vert
	edges []*Edge
	faces []*Face
	freed bool
}

// New creates an empty mesh.
func New() *Mesh {
	return &Mesh{}
}

// Free releases the mesh contents. Calling Free twice is harmless;
// using the mesh afterwards is a programming error.
func (m *Mesh) Free() {
	m.verts = nil
	m.edges = nil
	m.faces = nil
	m.freed = true
}

// Verts returns all vertices in creation order.
func (m *Mesh) Verts() []*Vert { return m.verts }

// Edges returns all edges in creation order.
func (m *Mesh) Edges() []*Edge { return m.edges }

// Faces returns all faces in creation order.
func (m *Mesh) Faces() []*Face { return m.faces }

// NewVert inserts a vertex at co and returns it.
func (m *Mesh) NewVert(co vmath.Vec3) *Vert {
	v := &Vert{Co: co, Index: len(m.verts)}
	m.verts = append(m.verts, v)
	return v
}

// findEdge returns the existing edge between a and b, or nil.
func (m *Mesh) findEdge(a, b *Vert) *Edge {
	for _, e := range a.edges {
		if e.OtherVert(a) == b {
			return e
		}
	}
	return nil
}

// NewEdge inserts an edge between a and b. It is an error to connect
// a vertex to itself or to duplicate an existing edge.
func (m *Mesh) NewEdge(a, b *Vert) (*Edge, error) {
	if a == b {
		return nil, fmt.Errorf("bmesh: edge endpoints must be distinct")
	}
	if m.findEdge(a, b) != nil {
		return nil, fmt.Errorf("bmesh: edge between verts %d and %d already exists", a.Index, b.Index)
	}
	e := &Edge{v1: a, v2: b, Index: len(m.edges)}
	a.edges = append(a.edges, e)
	b.edges = append(b.edges, e)
	m.edges = append(m.edges, e)
	return e, nil
}

// ensureEdge returns the edge between a and b, creating it if needed.
func (m *Mesh) ensureEdge(a, b *Vert) (*Edge, error) {
	if e := m.findEdge(a, b); e != nil {
		return e, nil
	}
	return m.NewEdge(a, b)
}

// NewFace inserts a face over the given vertices, creating any missing
// boundary edges. Winding is the argument order, and the face's loop
// cycle starts at the first argument; with that convention the edge
// joining verts[1] and verts[2] is always Edges()[1].
// Duplicate faces over the same vertex cycle are an error.
func (m *Mesh) NewFace(verts ...*Vert) (*Face, error) {
	if len(verts) < 3 {
		return nil, fmt.Errorf("bmesh: face needs at least 3 verts, got %d", len(verts))
	}
	for i, v := range verts {
		for _, w := range verts[:i] {
			if v == w {
				return nil, fmt.Errorf("bmesh: face verts must be distinct")
			}
		}
	}
	if m.findFace(verts) != nil {
		return nil, fmt.Errorf("bmesh: face over these verts already exists")
	}

	edges := make([]*Edge, len(verts))
	for i := range verts {
		e, err := m.ensureEdge(verts[i], verts[(i+1)%len(verts)])
		if err != nil {
			return nil, err
		}
		edges[i] = e
	}

	f := &Face{Index: len(m.faces)}
	f.loops = make([]*Loop, len(verts))
	for i := range verts {
		f.loops[i] = &Loop{vert: verts[i], edge: edges[i], face: f}
	}
	for i, l := range f.loops {
		l.next = f.loops[(i+1)%len(f.loops)]
		l.prev = f.loops[(i+len(f.loops)-1)%len(f.loops)]
		edges[i].loops = append(edges[i].loops, l)
	}
	m.faces = append(m.faces, f)
	return f, nil
}

// findFace returns an existing face using exactly the given vertex
// set, or nil.
func (m *Mesh) findFace(verts []*Vert) *Face {
	if len(verts) == 0 {
		return nil
	}
	for _, e := range verts[0].edges {
	radial:
		for _, l := range e.loops {
			f := l.face
			if len(f.loops) != len(verts) {
				continue
			}
			for _, fl := range f.loops {
				found := false
				for _, v := range verts {
					if fl.vert == v {
						found = true
						break
					}
				}
				if !found {
					continue radial
				}
			}
			return f
		}
	}
	return nil
}

// removeFace detaches f from the mesh and from its edges' radial
// lists. Vertices and edges remain.
func (m *Mesh) removeFace(f *Face) {
	for _, l := range f.loops {
		loops := l.edge.loops
		for i, rl := range loops {
			if rl == l {
				l.edge.loops = append(loops[:i], loops[i+1:]...)
				break
			}
		}
	}
	for i, mf := range m.faces {
		if mf == f {
			m.faces = append(m.faces[:i], m.faces[i+1:]...)
			break
		}
	}
	for i, mf := range m.faces {
		mf.Index = i
	}
}
