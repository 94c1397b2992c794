package math

import (
	"math/rand"
	"testing"
)

func TestHermiteEndpoints(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	rv := func() Vec3 {
		return Vec3{rng.Float32()*20 - 10, rng.Float32()*20 - 10, rng.Float32()*20 - 10}
	}

	for i := 0; i < 100; i++ {
		p0, m0, p1, m1 := rv(), rv(), rv(), rv()
		if got := Hermite(0, p0, m0, p1, m1); got != p0 {
			t.Fatalf("Hermite(0) = %v, want %v", got, p0)
		}
		if got := Hermite(1, p0, m0, p1, m1); got != p1 {
			t.Fatalf("Hermite(1) = %v, want %v", got, p1)
		}
	}
}

func TestHermiteQuat(t *testing.T) {
	p0 := QuatIdentity()
	p1 := Quat{X: 0, Y: 0.7071068, Z: 0, W: 0.7071068}
	m := Quat{X: 0.1, Y: 0.2, Z: 0.3, W: 0.4}

	if got := Hermite(0, p0, m, p1, m); got != p0 {
		t.Errorf("Hermite(0) = %v, want %v", got, p0)
	}
	if got := Hermite(1, p0, m, p1, m); got != p1 {
		t.Errorf("Hermite(1) = %v, want %v", got, p1)
	}
}

func TestHermiteMidpoint(t *testing.T) {
	// With zero tangents the curve is a smoothstep between p0 and p1.
	p0 := Vec3{0, 0, 0}
	p1 := Vec3{2, 4, 8}
	got := Hermite(0.5, p0, Vec3{}, p1, Vec3{})
	want := Vec3{1, 2, 4}
	if !closeVec3(got, want) {
		t.Errorf("Hermite(0.5) = %v, want %v", got, want)
	}
}
