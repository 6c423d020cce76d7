package vecmath

import "math"

// Quat is a unit rotation quaternion.
type Quat struct {
	X, Y, Z, W float64
}

// Identity is the no-rotation quaternion.
var Identity = Quat{W: 1}

// Mul composes q then o (o applied first).
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

// Rotate applies q to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// AxisAngle builds a rotation of deg degrees around axis.
func AxisAngle(axis Vec3, deg float64) Quat {
	a := axis.Normalised()
	half := deg * math.Pi / 360
	s := math.Sin(half)
	return Quat{a.X * s, a.Y * s, a.Z * s, math.Cos(half)}
}

// LookAt returns the orientation whose Forward axis points from eye to
// target. Degenerate inputs (coincident points, target straight up or
// down) return Identity.
func LookAt(eye, target, up Vec3) Quat {
	f := target.Sub(eye).Normalised()
	if f.IsZero() {
		return Identity
	}
	r := f.Cross(up).Normalised()
	if r.IsZero() {
		return Identity
	}
	u := r.Cross(f)
	// Basis columns: right, up, back (-forward).
	return fromBasis(r, u, f.Neg())
}

func fromBasis(c0, c1, c2 Vec3) Quat {
	m00, m01, m02 := c0.X, c1.X, c2.X
	m10, m11, m12 := c0.Y, c1.Y, c2.Y
	m20, m21, m22 := c0.Z, c1.Z, c2.Z

	trace := m00 + m11 + m22
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		return Quat{(m21 - m12) * s, (m02 - m20) * s, (m10 - m01) * s, 0.25 / s}
	case m00 > m11 && m00 > m22:
		s := 2 * math.Sqrt(1+m00-m11-m22)
		return Quat{0.25 * s, (m01 + m10) / s, (m02 + m20) / s, (m21 - m12) / s}
	case m11 > m22:
		s := 2 * math.Sqrt(1+m11-m00-m22)
		return Quat{(m01 + m10) / s, 0.25 * s, (m12 + m21) / s, (m02 - m20) / s}
	default:
		s := 2 * math.Sqrt(1+m22-m00-m11)
		return Quat{(m02 + m20) / s, (m12 + m21) / s, 0.25 * s, (m10 - m01) / s}
	}
}
