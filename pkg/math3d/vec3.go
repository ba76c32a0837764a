// Package math3d provides the vector math used by the gravel3d pipeline.
package math3d

import "math"

// Vec3 represents a 3D vector.
type Vec3 struct {
	X, Y, Z float64
}

// V3 creates a new Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// Zero3 returns the zero vector.
func Zero3() Vec3 {
	return Vec3{}
}

// One3 returns (1, 1, 1).
func One3() Vec3 {
	return Vec3{1, 1, 1}
}

// Up returns the world up vector (0, 1, 0).
func Up() Vec3 {
	return Vec3{0, 1, 0}
}

// Add returns the vector sum a + b.
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns the vector difference a - b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Mul returns the component-wise product a * b.
func (a Vec3) Mul(b Vec3) Vec3 {
	return Vec3{a.X * b.X, a.Y * b.Y, a.Z * b.Z}
}

// Scale returns the scalar product a * s.
func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s}
}

// Dot returns the dot product a · b.
func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a × b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Len returns the length (magnitude) of the vector.
func (a Vec3) Len() float64 {
	return math.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z)
}

// Normalize returns the unit vector in the same direction.
// A zero vector yields NaN components; callers clamp downstream.
func (a Vec3) Normalize() Vec3 {
	return a.Scale(1 / a.Len())
}

// Negate returns the negated vector.
func (a Vec3) Negate() Vec3 {
	return Vec3{-a.X, -a.Y, -a.Z}
}

// Lerp returns the linear interpolation between a and b by t.
func (a Vec3) Lerp(b Vec3, t float64) Vec3 {
	return Vec3{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

// Rotate rotates the vector by the Euler angles in euler, in the order
// Z, X, Y: (x,y) by euler.Z, then (y,z) by euler.X, then (x,z) by euler.Y.
func (a Vec3) Rotate(euler Vec3) Vec3 {
	v := a

	xy := V2(v.X, v.Y).Rotate(euler.Z)
	v.X, v.Y = xy.X, xy.Y

	yz := V2(v.Y, v.Z).Rotate(euler.X)
	v.Y, v.Z = yz.X, yz.Y

	xz := V2(v.X, v.Z).Rotate(euler.Y)
	v.X, v.Z = xz.X, xz.Y

	return v
}

// Orbit undoes Rotate: the same planar rotations in reverse order (Y, X, Z)
// with negated angles. It re-expresses a vector in a frame that differs
// only by orientation and is not an inverse once non-uniform scale is
// involved.
func (a Vec3) Orbit(euler Vec3) Vec3 {
	v := a

	xz := V2(v.X, v.Z).Rotate(-euler.Y)
	v.X, v.Z = xz.X, xz.Y

	yz := V2(v.Y, v.Z).Rotate(-euler.X)
	v.Y, v.Z = yz.X, yz.Y

	xy := V2(v.X, v.Y).Rotate(-euler.Z)
	v.X, v.Y = xy.X, xy.Y

	return v
}

// ApproxEqual reports whether every component of a and b differs by at most eps.
func (a Vec3) ApproxEqual(b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps &&
		math.Abs(a.Y-b.Y) <= eps &&
		math.Abs(a.Z-b.Z) <= eps
}

// Min returns the component-wise minimum.
func (a Vec3) Min(b Vec3) Vec3 {
	return Vec3{
		math.Min(a.X, b.X),
		math.Min(a.Y, b.Y),
		math.Min(a.Z, b.Z),
	}
}

// Max returns the component-wise maximum.
func (a Vec3) Max(b Vec3) Vec3 {
	return Vec3{
		math.Max(a.X, b.X),
		math.Max(a.Y, b.Y),
		math.Max(a.Z, b.Z),
	}
}
