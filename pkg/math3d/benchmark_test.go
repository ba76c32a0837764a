package math3d

import (
	"testing"
)

func BenchmarkVec3Rotate(b *testing.B) {
	v := V3(1, 2, 3)
	e := V3(0.3, 0.7, 1.1)

	for b.Loop() {
		_ = v.Rotate(e)
	}
}

func BenchmarkVec3Orbit(b *testing.B) {
	v := V3(1, 2, 3)
	e := V3(0.3, 0.7, 1.1)

	for b.Loop() {
		_ = v.Orbit(e)
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = v.Normalize()
	}
}

func BenchmarkVec3Cross(b *testing.B) {
	v1 := V3(1, 2, 3)
	v2 := V3(4, 5, 6)

	for b.Loop() {
		_ = v1.Cross(v2)
	}
}

func BenchmarkVec3Dot(b *testing.B) {
	v1 := V3(1, 2, 3)
	v2 := V3(4, 5, 6)

	for b.Loop() {
		_ = v1.Dot(v2)
	}
}
