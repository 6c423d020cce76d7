package vecmath

import "math"

// Vec3 is a float64 world-space vector. Y is the vertical axis.
type Vec3 struct {
	X, Y, Z float64
}

// Up is the world up axis used for look-at orientation.
var Up = Vec3{0, 1, 0}

// Forward is the local facing direction of every object.
var Forward = Vec3{0, 0, -1}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Neg() Vec3 { return Vec3{-v.X, -v.Y, -v.Z} }

func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) LengthSq() float64 { return v.Dot(v) }

func (v Vec3) Length() float64 { return math.Sqrt(v.LengthSq()) }

// Normalised returns the unit vector of v, or the zero vector when v has no length.
func (v Vec3) Normalised() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	inv := 1.0 / l
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// IsZero reports whether every component is exactly zero.
func (v Vec3) IsZero() bool { return v == Vec3{} }

// Flat returns v with its vertical component replaced by y.
func (v Vec3) Flat(y float64) Vec3 { return Vec3{v.X, y, v.Z} }

// Distance returns the straight-line distance between a and b.
func Distance(a, b Vec3) float64 { return a.Sub(b).Length() }

// PlanarDistance ignores the vertical axis.
func PlanarDistance(a, b Vec3) float64 {
	dx, dz := a.X-b.X, a.Z-b.Z
	return math.Sqrt(dx*dx + dz*dz)
}

// AngleBetween returns the unsigned angle between a and b in degrees.
// A zero-length input yields 90.
func AngleBetween(a, b Vec3) float64 {
	c := a.Normalised().Dot(b.Normalised())
	c = math.Max(-1, math.Min(1, c))
	return math.Acos(c) * 180 / math.Pi
}

// ApproxEqual compares component-wise within eps.
func ApproxEqual(a, b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}
