package scene

import (
	"fmt"

	"github.com/aurifex/aurifex/pkg/gem"
	"github.com/aurifex/aurifex/pkg/kernel"
	"github.com/aurifex/aurifex/pkg/vmath"
)

// Depsgraph resolves scene objects to evaluated geometry. Results are
// cached per object until Update is called or the object commits new
// edit-mode data.
type Depsgraph struct {
	scene *Scene
	cache map[*Object]*cachedEval
}

type cachedEval struct {
	snap    *Snapshot
	version uint64
}

// Update invalidates all cached evaluations.
func (dg *Depsgraph) Update() {
	for _, c := range dg.cache {
		c.snap.Free()
	}
	dg.cache = make(map[*Object]*cachedEval)
}

// EvaluatedGet returns the evaluated view of an object.
func (dg *Depsgraph) EvaluatedGet(ob *Object) *EvaluatedObject {
	return &EvaluatedObject{dg: dg, ob: ob}
}

func (dg *Depsgraph) evaluated(ob *Object) (*Snapshot, error) {
	if c, ok := dg.cache[ob]; ok && c.version == ob.editVersion {
		return c.snap, nil
	}
	snap, err := dg.evaluate(ob)
	if err != nil {
		return nil, err
	}
	for _, mod := range ob.Modifiers {
		if err := mod.Apply(snap); err != nil {
			snap.Free()
			return nil, fmt.Errorf("scene: modifier %q on %q: %w", mod.Name(), ob.Name, err)
		}
	}
	if old, ok := dg.cache[ob]; ok {
		old.snap.Free()
	}
	dg.cache[ob] = &cachedEval{snap: snap, version: ob.editVersion}
	return snap, nil
}

// evaluate produces the base snapshot for an object's payload, in the
// object's local space.
func (dg *Depsgraph) evaluate(ob *Object) (*Snapshot, error) {
	switch data := ob.Data.(type) {
	case MeshData:
		if data.BM == nil {
			return nil, fmt.Errorf("scene: mesh object %q has no mesh", ob.Name)
		}
		return snapshotFromBMesh(data.BM), nil

	case *CurveData:
		return evaluateCurve(data)

	case GemData:
		solid, err := gem.Solid(dg.scene.kernel, data.Spec)
		if err != nil {
			return nil, fmt.Errorf("scene: gem object %q: %w", ob.Name, err)
		}
		return dg.solidSnapshot(solid)

	case ProngData:
		return dg.solidSnapshot(gem.Prong(dg.scene.kernel, data.Diameter, data.Length))

	case CutterData:
		solid, err := gem.Cutter(dg.scene.kernel, data.Spec, data.HoleDepth)
		if err != nil {
			return nil, fmt.Errorf("scene: cutter object %q: %w", ob.Name, err)
		}
		return dg.solidSnapshot(solid)

	default:
		return nil, fmt.Errorf("scene: object %q has no evaluable data", ob.Name)
	}
}

func (dg *Depsgraph) solidSnapshot(s kernel.Solid) (*Snapshot, error) {
	mesh, err := dg.scene.kernel.ToMesh(s)
	if err != nil {
		return nil, err
	}
	return snapshotFromTriMesh(mesh), nil
}

// evaluateCurve tessellates the splines into edge paths. When the
// profile settings give the curve thickness, each spline becomes a
// ribbon of quads spanning the profile extent in Z.
func evaluateCurve(c *CurveData) (*Snapshot, error) {
	snap := &Snapshot{}
	extent := c.profileExtent()

	for _, sp := range c.Splines {
		pts := sp.Tessellate()
		if len(pts) < 2 {
			continue
		}
		if extent > 0 {
			appendRibbon(snap, pts, sp.IsCyclic(), extent)
		} else {
			appendPath(snap, pts, sp.IsCyclic())
		}
	}
	return snap, nil
}

func appendPath(snap *Snapshot, pts []vmath.Vec3, cyclic bool) {
	base := len(snap.Coords)
	snap.Coords = append(snap.Coords, pts...)
	for i := 0; i < len(pts)-1; i++ {
		snap.Edges = append(snap.Edges, [2]int{base + i, base + i + 1})
	}
	if cyclic {
		snap.Edges = append(snap.Edges, [2]int{base + len(pts) - 1, base})
	}
}

// appendRibbon extrudes the polyline into a strip of quads: one rail
// at -extent, one at +extent along Z, bridged pairwise.
func appendRibbon(snap *Snapshot, pts []vmath.Vec3, cyclic bool, extent float64) {
	n := len(pts)
	lo := len(snap.Coords)
	for _, p := range pts {
		snap.Coords = append(snap.Coords, vmath.Vec3{X: p.X, Y: p.Y, Z: p.Z - extent})
	}
	hi := len(snap.Coords)
	for _, p := range pts {
		snap.Coords = append(snap.Coords, vmath.Vec3{X: p.X, Y: p.Y, Z: p.Z + extent})
	}

	quads := n - 1
	if cyclic {
		quads = n
	}
	for i := 0; i < quads; i++ {
		j := (i + 1) % n
		snap.Edges = append(snap.Edges,
			[2]int{lo + i, lo + j},
			[2]int{hi + i, hi + j},
			[2]int{lo + i, hi + i},
		)
		snap.Polys = append(snap.Polys, Polygon{
			Verts: []int{lo + i, lo + j, hi + j, hi + i},
		})
	}
	if !cyclic {
		snap.Edges = append(snap.Edges, [2]int{lo + n - 1, hi + n - 1})
	}
}

// EvaluatedObject is an object resolved through a depsgraph. ToMesh
// materializes owned snapshots; ToMeshClear releases them.
type EvaluatedObject struct {
	dg    *Depsgraph
	ob    *Object
	snaps []*Snapshot
}

// Object returns the underlying scene object.
func (eo *EvaluatedObject) Object() *Object {
	return eo.ob
}

// ToMesh returns a mutable snapshot of the evaluated geometry in the
// object's local space. The caller applies MatrixWorld if world-space
// coordinates are needed, and must eventually call ToMeshClear.
func (eo *EvaluatedObject) ToMesh() (*Snapshot, error) {
	cached, err := eo.dg.evaluated(eo.ob)
	if err != nil {
		return nil, err
	}
	snap := cached.Copy()
	eo.snaps = append(eo.snaps, snap)
	return snap, nil
}

// ToMeshClear frees every snapshot handed out by ToMesh.
func (eo *EvaluatedObject) ToMeshClear() {
	for _, s := range eo.snaps {
		s.Free()
	}
	eo.snaps = nil
}
