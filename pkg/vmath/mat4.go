package vmath

import "math"

// Mat4 is a 4x4 affine transform stored row-major: element (r, c) is
// at index r*4+c. Used for object world transforms and face placements.
type Mat4 [16]float64

// Identity returns the identity transform.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation returns a pure translation transform.
func Translation(t Vec3) Mat4 {
	m := Identity()
	m[3] = t.X
	m[7] = t.Y
	m[11] = t.Z
	return m
}

// FromBasis builds a rotation transform whose columns are the given
// basis vectors: local X maps to x, local Y to y, local Z to z.
func FromBasis(x, y, z Vec3) Mat4 {
	return Mat4{
		x.X, y.X, z.X, 0,
		x.Y, y.Y, z.Y, 0,
		x.Z, y.Z, z.Z, 0,
		0, 0, 0, 1,
	}
}

// Mul returns m × n (apply n first, then m).
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[r*4+k] * n[k*4+c]
			}
			out[r*4+c] = sum
		}
	}
	return out
}

// MulPoint transforms a point, including the translation part.
func (m Mat4) MulPoint(p Vec3) Vec3 {
	return Vec3{
		m[0]*p.X + m[1]*p.Y + m[2]*p.Z + m[3],
		m[4]*p.X + m[5]*p.Y + m[6]*p.Z + m[7],
		m[8]*p.X + m[9]*p.Y + m[10]*p.Z + m[11],
	}
}

// MulDir transforms a direction, ignoring the translation part.
func (m Mat4) MulDir(d Vec3) Vec3 {
	return Vec3{
		m[0]*d.X + m[1]*d.Y + m[2]*d.Z,
		m[4]*d.X + m[5]*d.Y + m[6]*d.Z,
		m[8]*d.X + m[9]*d.Y + m[10]*d.Z,
	}
}

// TranslationPart returns the translation column of m.
func (m Mat4) TranslationPart() Vec3 {
	return Vec3{m[3], m[7], m[11]}
}

// trackEpsilon bounds how close the tracked normal may get to the
// secondary axis before the fallback axis takes over.
const trackEpsilon = 1e-6

// TrackZ builds a rotation that aligns the local +Z axis with n.
// The local Y axis is kept as close as possible to world +Y; when n is
// parallel to world Y the world X axis disambiguates instead. This is
// the fixed secondary-axis convention used for face placements.
func TrackZ(n Vec3) Mat4 {
	z := n.Normalized()
	if z == (Vec3{}) {
		return Identity()
	}

	up := Vec3{Y: 1}
	if math.Abs(z.Dot(up)) > 1-trackEpsilon {
		up = Vec3{X: 1}
	}

	x := up.Cross(z).Normalized()
	y := z.Cross(x)
	return FromBasis(x, y, z)
}
