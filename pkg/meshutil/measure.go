package meshutil

import (
	"fmt"

	"github.com/aurifex/aurifex/pkg/bmesh"
	"github.com/aurifex/aurifex/pkg/scene"
	"github.com/aurifex/aurifex/pkg/vmath"
)

// EstVolume estimates the combined enclosed volume of the given
// objects. Each object is evaluated through the depsgraph, moved into
// world space, merged into one temporary mesh, triangulated and
// integrated. The result is unsigned.
func EstVolume(dg *scene.Depsgraph, objects []*scene.Object) (float64, error) {
	bm := bmesh.New()
	defer bm.Free()

	for _, ob := range objects {
		if err := appendEvaluated(bm, dg, ob); err != nil {
			return 0, err
		}
	}

	if err := bm.Triangulate(bm.Faces()); err != nil {
		return 0, fmt.Errorf("meshutil: volume estimate: %w", err)
	}
	return bm.CalcVolume(false), nil
}

func appendEvaluated(bm *bmesh.Mesh, dg *scene.Depsgraph, ob *scene.Object) error {
	eo := dg.EvaluatedGet(ob)
	defer eo.ToMeshClear()

	snap, err := eo.ToMesh()
	if err != nil {
		return err
	}
	snap.Transform(ob.MatrixWorld)

	polys := make([][]int, len(snap.Polys))
	for i, p := range snap.Polys {
		polys[i] = p.Verts
	}
	if err := bm.AppendGeometry(snap.Coords, snap.Edges, polys); err != nil {
		return fmt.Errorf("meshutil: merging %q: %w", ob.Name, err)
	}
	return nil
}

// EstCurveLength measures the length of a curve object in world space.
//
// Curves without modifiers are measured analytically on a transformed
// copy of the spline data. Curves with modifiers must be measured on
// the evaluated geometry, so the profile settings are zeroed first to
// get a bare path, and restored afterwards even if evaluation fails.
func EstCurveLength(dg *scene.Depsgraph, ob *scene.Object) (float64, error) {
	curve, ok := ob.Data.(*scene.CurveData)
	if !ok {
		return 0, fmt.Errorf("meshutil: object %q is not a curve", ob.Name)
	}

	if len(ob.Modifiers) == 0 {
		dup := curve.Copy()
		defer dup.Free()
		dup.Transform(ob.MatrixWorld)
		return dup.Length(), nil
	}

	saved := curve.Shape()
	curve.SetShape(scene.CurveShape{})
	defer func() {
		curve.SetShape(saved)
		dg.Update()
	}()

	dg.Update()
	eo := dg.EvaluatedGet(ob)
	defer eo.ToMeshClear()

	snap, err := eo.ToMesh()
	if err != nil {
		return 0, err
	}
	snap.Transform(ob.MatrixWorld)

	var length float64
	for i := range snap.Edges {
		length += snap.EdgeLength(i)
	}
	return length, nil
}

// FacePos returns a placement matrix for every selected face of every
// object in edit mode: a translation to the face center combined with
// a rotation tracking the face normal along +Z.
func FacePos(dg *scene.Depsgraph, sc *scene.Scene) ([]vmath.Mat4, error) {
	var mats []vmath.Mat4

	for _, ob := range sc.ObjectsInMode() {
		ob.UpdateFromEditMode()
		dg.Update()

		eo := dg.EvaluatedGet(ob)
		snap, err := eo.ToMesh()
		if err != nil {
			return nil, err
		}
		snap.Transform(ob.MatrixWorld)

		for i, p := range snap.Polys {
			if !p.Select {
				continue
			}
			loc := vmath.Translation(snap.PolyCenter(i))
			rot := vmath.TrackZ(snap.PolyNormal(i))
			mats = append(mats, loc.Mul(rot))
		}
		eo.ToMeshClear()
	}
	return mats, nil
}
