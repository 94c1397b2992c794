package animation

import (
	"errors"
	"fmt"
	stdmath "math"

	"github.com/Faultbox/gltfrig/pkg/math"
)

const (
	// StepEpsilon is how long before the next key a step holds its value.
	StepEpsilon = 1e-6

	// DefaultSamplingRate is used when an automatic (zero) rate is requested,
	// since glTF carries no scene frame rate.
	DefaultSamplingRate = 30
)

// Sampler errors.
var (
	ErrKeyCount     = errors.New("animation: sampler key count mismatch")
	ErrSamplingRate = errors.New("animation: invalid sampling rate")
)

// SampleLinear copies source keys one to one: linear interpolation between
// adjacent keys is what the output format already does.
func SampleLinear[T any](times []float32, values []T) ([]Key[T], error) {
	if len(times) == 0 || len(values) != len(times) {
		return nil, fmt.Errorf("%w: %d times, %d values", ErrKeyCount, len(times), len(values))
	}

	keys := make([]Key[T], len(times))
	for i := range keys {
		keys[i] = Key[T]{Time: times[i], Value: values[i]}
	}
	return keys, nil
}

// SampleStep emulates step interpolation with pairs of keys: each value is
// repeated just before the next key's time, so interpolating between the
// pair holds the value and the drop happens within StepEpsilon.
// N source keys produce 2N-1 keys.
func SampleStep[T any](times []float32, values []T) ([]Key[T], error) {
	n := len(times)
	if n == 0 || len(values) != n {
		return nil, fmt.Errorf("%w: %d times, %d values", ErrKeyCount, n, len(values))
	}

	keys := make([]Key[T], 2*n-1)
	for i := 0; i < n; i++ {
		keys[i*2] = Key[T]{Time: times[i], Value: values[i]}
		if i < n-1 {
			keys[i*2+1] = Key[T]{Time: times[i+1] - StepEpsilon, Value: values[i]}
		}
	}
	return keys, nil
}

// SampleCubicSpline resamples a glTF cubic spline onto a regular grid of
// rate keys per second over [0, duration].
//
// values holds an (in-tangent, value, out-tangent) triplet per source key.
// Key i is taken at time i/rate from the interval containing it; tangents
// are scaled by the interval length before Hermite evaluation. Times before
// the first source key hold its value. Rotation results must be
// renormalized by the caller.
func SampleCubicSpline[T math.Interpolable[T]](times []float32, values []T, duration, rate float32) ([]Key[T], error) {
	n := len(times)
	if n == 0 || len(values) != 3*n {
		return nil, fmt.Errorf("%w: %d times, %d values (want 3 per key)", ErrKeyCount, n, len(values))
	}
	if !(rate > 0) || stdmath.IsInf(float64(rate), 0) {
		return nil, fmt.Errorf("%w: %v", ErrSamplingRate, rate)
	}
	if duration < 0 {
		duration = 0
	}

	keys := make([]Key[T], int(stdmath.Floor(float64(duration*rate)))+1)

	if n == 1 {
		for i := range keys {
			keys[i] = Key[T]{Time: sampleTime(i, rate, duration), Value: values[1]}
		}
		return keys, nil
	}

	cur := 0
	for i := range keys {
		t := sampleTime(i, rate, duration)
		for cur < n-2 && times[cur+1] <= t {
			cur++
		}

		t0, t1 := times[cur], times[cur+1]
		dt := t1 - t0
		var u float32
		if dt > 0 {
			u = (t - t0) / dt
		}
		u = max(0, min(1, u))

		p0 := values[cur*3+1]
		m0 := values[cur*3+2].Scale(dt)
		p1 := values[(cur+1)*3+1]
		m1 := values[(cur+1)*3].Scale(dt)

		keys[i] = Key[T]{Time: t, Value: math.Hermite(u, p0, m0, p1, m1)}
	}
	return keys, nil
}

// sampleTime returns the time of grid key i, never past duration.
func sampleTime(i int, rate, duration float32) float32 {
	return min(float32(i)/rate, duration)
}

// NormalizeRotations renormalizes rotation keys in place. Interpolating
// unit quaternions component-wise does not preserve unit length.
func NormalizeRotations(keys []RotationKey) {
	for i := range keys {
		keys[i].Value = keys[i].Value.Normalize()
	}
}
