package math3d

// Mask3 selects, per axis, between two vectors.
type Mask3 struct {
	X, Y, Z bool
}

// M3 creates a new Mask3.
func M3(x, y, z bool) Mask3 {
	return Mask3{x, y, z}
}

// Select returns, for each axis, the component of ifTrue where the mask is
// set and the component of ifFalse otherwise.
func (m Mask3) Select(ifTrue, ifFalse Vec3) Vec3 {
	v := ifFalse
	if m.X {
		v.X = ifTrue.X
	}
	if m.Y {
		v.Y = ifTrue.Y
	}
	if m.Z {
		v.Z = ifTrue.Z
	}
	return v
}

// Pick is Select with a zero fallback.
func (m Mask3) Pick(ifTrue Vec3) Vec3 {
	return m.Select(ifTrue, Vec3{})
}
