package math

// Interpolable is implemented by values that can be combined linearly,
// which is all the cubic Hermite basis needs.
type Interpolable[T any] interface {
	Add(T) T
	Scale(float32) T
}

// Hermite evaluates the cubic Hermite spline
//
//	p(t) = (2t³-3t²+1)p0 + (t³-2t²+t)m0 + (-2t³+3t²)p1 + (t³-t²)m1
//
// where t is in [0, 1], p0/p1 are the end points and m0/m1 the tangents
// already scaled by the interval length.
func Hermite[T Interpolable[T]](t float32, p0, m0, p1, m1 T) T {
	t2 := t * t
	t3 := t2 * t

	a := 2*t3 - 3*t2 + 1
	b := t3 - 2*t2 + t
	c := -2*t3 + 3*t2
	d := t3 - t2

	return p0.Scale(a).Add(m0.Scale(b)).Add(p1.Scale(c)).Add(m1.Scale(d))
}
