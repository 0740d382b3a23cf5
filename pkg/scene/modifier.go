package scene

import (
	"fmt"

	"github.com/aurifex/aurifex/pkg/vmath"
)

// Modifier is one step of an object's evaluation stack. Apply mutates
// the snapshot in place.
type Modifier interface {
	Name() string
	Apply(snap *Snapshot) error
}

// Array repeats the geometry Count times, each copy shifted by Offset.
// Count of 1 leaves the geometry as is.
type Array struct {
	Count  int
	Offset vmath.Vec3
}

func (a Array) Name() string { return "array" }

func (a Array) Apply(snap *Snapshot) error {
	if a.Count < 1 {
		return fmt.Errorf("scene: array modifier count must be >= 1, got %d", a.Count)
	}
	baseCoords := len(snap.Coords)
	baseEdges := len(snap.Edges)
	basePolys := len(snap.Polys)

	for n := 1; n < a.Count; n++ {
		shift := a.Offset.Scale(float64(n))
		off := len(snap.Coords)
		for i := 0; i < baseCoords; i++ {
			snap.Coords = append(snap.Coords, snap.Coords[i].Add(shift))
		}
		for i := 0; i < baseEdges; i++ {
			e := snap.Edges[i]
			snap.Edges = append(snap.Edges, [2]int{e[0] + off, e[1] + off})
		}
		for i := 0; i < basePolys; i++ {
			p := snap.Polys[i]
			verts := make([]int, len(p.Verts))
			for j, vi := range p.Verts {
				verts[j] = vi + off
			}
			snap.Polys = append(snap.Polys, Polygon{Verts: verts, Select: p.Select})
		}
	}
	return nil
}

// Axis selects a mirror plane through the origin.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Mirror appends a reflected copy of the geometry across the chosen
// axis plane. Polygon winding is reversed so normals stay outward.
type Mirror struct {
	Axis Axis
}

func (m Mirror) Name() string { return "mirror" }

func (m Mirror) Apply(snap *Snapshot) error {
	if m.Axis < AxisX || m.Axis > AxisZ {
		return fmt.Errorf("scene: mirror modifier axis out of range: %d", m.Axis)
	}
	baseCoords := len(snap.Coords)
	baseEdges := len(snap.Edges)
	basePolys := len(snap.Polys)
	off := baseCoords

	for i := 0; i < baseCoords; i++ {
		c := snap.Coords[i]
		switch m.Axis {
		case AxisX:
			c.X = -c.X
		case AxisY:
			c.Y = -c.Y
		case AxisZ:
			c.Z = -c.Z
		}
		snap.Coords = append(snap.Coords, c)
	}
	for i := 0; i < baseEdges; i++ {
		e := snap.Edges[i]
		snap.Edges = append(snap.Edges, [2]int{e[0] + off, e[1] + off})
	}
	for i := 0; i < basePolys; i++ {
		p := snap.Polys[i]
		verts := make([]int, len(p.Verts))
		for j, vi := range p.Verts {
			verts[len(p.Verts)-1-j] = vi + off
		}
		snap.Polys = append(snap.Polys, Polygon{Verts: verts, Select: p.Select})
	}
	return nil
}
