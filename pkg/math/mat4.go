package math

import "math"

// Mat4 is a 4x4 matrix in column-major order, the layout glTF uses for
// node.matrix.
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
type Mat4 [16]float32

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation matrix.
func Translate(x, y, z float32) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// Scale returns a scale matrix.
func Scale(x, y, z float32) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// FromTRS composes translation, rotation and scale into T * R * S.
func FromTRS(t Vec3, r Quat, s Vec3) Mat4 {
	return Translate(t.X, t.Y, t.Z).Mul(r.ToMat4()).Mul(Scale(s.X, s.Y, s.Z))
}

// Mul multiplies this matrix by another (m * other).
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			result[col*4+row] =
				m[0*4+row]*other[col*4+0] +
					m[1*4+row]*other[col*4+1] +
					m[2*4+row]*other[col*4+2] +
					m[3*4+row]*other[col*4+3]
		}
	}
	return result
}

// ApproxEqual reports whether every element of m is within tolerance of
// the matching element of other.
func (m Mat4) ApproxEqual(other Mat4, tolerance float32) bool {
	for i := range m {
		d := m[i] - other[i]
		if d > tolerance || d < -tolerance {
			return false
		}
	}
	return true
}

// Decompose splits an affine matrix into translation, rotation and scale.
// Shear is not representable and is dropped; compare FromTRS of the
// result with m to detect it.
// A negative determinant is folded into the X scale.
func (m Mat4) Decompose() (t Vec3, r Quat, s Vec3) {
	t = Vec3{m[12], m[13], m[14]}

	cx := Vec3{m[0], m[1], m[2]}
	cy := Vec3{m[4], m[5], m[6]}
	cz := Vec3{m[8], m[9], m[10]}
	s = Vec3{cx.Length(), cy.Length(), cz.Length()}
	if cx.Cross(cy).Dot(cz) < 0 {
		s.X = -s.X
	}

	// Avoid division by zero
	sx, sy, sz := s.X, s.Y, s.Z
	if math.Abs(float64(sx)) < 0.0001 {
		sx = 1
	}
	if sy < 0.0001 {
		sy = 1
	}
	if sz < 0.0001 {
		sz = 1
	}

	// r<row><col>
	r00, r10, r20 := m[0]/sx, m[1]/sx, m[2]/sx
	r01, r11, r21 := m[4]/sy, m[5]/sy, m[6]/sy
	r02, r12, r22 := m[8]/sz, m[9]/sz, m[10]/sz

	trace := r00 + r11 + r22
	switch {
	case trace > 0:
		k := float32(math.Sqrt(float64(trace+1))) * 2
		r = Quat{X: (r21 - r12) / k, Y: (r02 - r20) / k, Z: (r10 - r01) / k, W: 0.25 * k}
	case r00 > r11 && r00 > r22:
		k := float32(math.Sqrt(float64(1+r00-r11-r22))) * 2
		r = Quat{X: 0.25 * k, Y: (r01 + r10) / k, Z: (r02 + r20) / k, W: (r21 - r12) / k}
	case r11 > r22:
		k := float32(math.Sqrt(float64(1+r11-r00-r22))) * 2
		r = Quat{X: (r01 + r10) / k, Y: 0.25 * k, Z: (r12 + r21) / k, W: (r02 - r20) / k}
	default:
		k := float32(math.Sqrt(float64(1+r22-r00-r11))) * 2
		r = Quat{X: (r02 + r20) / k, Y: (r12 + r21) / k, Z: 0.25 * k, W: (r10 - r01) / k}
	}
	r = r.Normalize()
	return t, r, s
}
