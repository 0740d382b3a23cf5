// Package tessellate walks a scene and produces render-ready triangle
// meshes. One mesh is produced per object, in world space.
package tessellate

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/aurifex/aurifex/pkg/kernel"
	"github.com/aurifex/aurifex/pkg/scene"
)

// Tessellate evaluates every object in the scene through a fresh
// depsgraph and converts the result to flat-shaded triangle meshes.
// Objects that evaluate to pure wire geometry (curves without
// thickness) produce no mesh. The tessellator never mutates the scene.
func Tessellate(sc *scene.Scene, dg *scene.Depsgraph) ([]*kernel.Mesh, error) {
	if sc == nil {
		return nil, nil
	}

	var meshes []*kernel.Mesh
	for _, ob := range sc.Objects() {
		mesh, err := tessellateObject(dg, ob)
		if err != nil {
			return nil, fmt.Errorf("tessellate: object %q: %w", ob.Name, err)
		}
		if mesh != nil {
			meshes = append(meshes, mesh)
		}
	}
	return meshes, nil
}

func tessellateObject(dg *scene.Depsgraph, ob *scene.Object) (*kernel.Mesh, error) {
	eo := dg.EvaluatedGet(ob)
	defer eo.ToMeshClear()

	snap, err := eo.ToMesh()
	if err != nil {
		return nil, err
	}
	if len(snap.Polys) == 0 {
		return nil, nil
	}
	snap.Transform(ob.MatrixWorld)

	mesh := &kernel.Mesh{Name: ob.Name}
	for _, p := range snap.Polys {
		// Fan triangulation; evaluated polygons are convex.
		for i := 1; i+1 < len(p.Verts); i++ {
			emitTriangle(mesh, snap, p.Verts[0], p.Verts[i], p.Verts[i+1])
		}
	}
	return mesh, nil
}

// emitTriangle appends one flat-shaded triangle: three vertices sharing
// the face normal.
func emitTriangle(mesh *kernel.Mesh, snap *scene.Snapshot, a, b, c int) {
	var co [3][3]float32
	for i, vi := range [3]int{a, b, c} {
		v := snap.Coords[vi]
		co[i] = [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
	}

	nx, ny, nz := faceNormal(co)

	base := uint32(len(mesh.Vertices) / 3)
	for i := 0; i < 3; i++ {
		mesh.Vertices = append(mesh.Vertices, co[i][0], co[i][1], co[i][2])
		mesh.Normals = append(mesh.Normals, nx, ny, nz)
		mesh.Indices = append(mesh.Indices, base+uint32(i))
	}
}

// faceNormal returns the unit normal of the triangle, or +Z for
// degenerate triangles.
func faceNormal(co [3][3]float32) (float32, float32, float32) {
	ux := co[1][0] - co[0][0]
	uy := co[1][1] - co[0][1]
	uz := co[1][2] - co[0][2]
	vx := co[2][0] - co[0][0]
	vy := co[2][1] - co[0][1]
	vz := co[2][2] - co[0][2]

	nx := uy*vz - uz*vy
	ny := uz*vx - ux*vz
	nz := ux*vy - uy*vx

	l := math32.Sqrt(nx*nx + ny*ny + nz*nz)
	if l == 0 {
		return 0, 0, 1
	}
	return nx / l, ny / l, nz / l
}
