// Package animation provides keyframe tracks and the samplers that turn
// glTF animation channels into them.
package animation

import (
	"errors"
	"fmt"
	stdmath "math"

	"go.uber.org/multierr"

	"github.com/Faultbox/gltfrig/pkg/math"
)

// MaxTracks is the largest number of joint tracks an animation may hold.
const MaxTracks = 1024

// Animation validation errors.
var (
	ErrBadDuration   = errors.New("animation: invalid duration")
	ErrTooManyTracks = errors.New("animation: too many tracks")
	ErrNoKeys        = errors.New("animation: track property has no keys")
	ErrUnsortedKeys  = errors.New("animation: keys are not sorted by time")
	ErrKeyAfterEnd   = errors.New("animation: key time exceeds duration")
	ErrBadKeyValue   = errors.New("animation: invalid key value")
)

// Key is a single keyframe: a value at a time in seconds.
type Key[T any] struct {
	Time  float32 `yaml:"time"`
	Value T       `yaml:"value"`
}

// Keyframe types of a joint track.
type (
	TranslationKey = Key[math.Vec3]
	RotationKey    = Key[math.Quat]
	ScaleKey       = Key[math.Vec3]
)

// JointTrack holds the keyframes of one joint. The three properties are
// independent: each has its own key count and timing.
type JointTrack struct {
	Translations []TranslationKey `yaml:"translations"`
	Rotations    []RotationKey    `yaml:"rotations"`
	Scales       []ScaleKey       `yaml:"scales"`
}

// Animation is a set of joint tracks parallel to a skeleton's joints.
type Animation struct {
	Name     string       `yaml:"name"`
	Duration float32      `yaml:"duration"`
	Tracks   []JointTrack `yaml:"tracks"`
}

// NumKeys returns the total number of keys over all tracks.
func (a *Animation) NumKeys() int {
	n := 0
	for i := range a.Tracks {
		t := &a.Tracks[i]
		n += len(t.Translations) + len(t.Rotations) + len(t.Scales)
	}
	return n
}

// Validate checks that the animation can be sampled over [0, Duration]:
// every track property has keys, keys are sorted and within the duration,
// and values are finite. Every problem found is reported.
func (a *Animation) Validate() error {
	var err error

	if a.Duration < 0 || stdmath.IsNaN(float64(a.Duration)) || stdmath.IsInf(float64(a.Duration), 0) {
		err = multierr.Append(err, fmt.Errorf("%w: %v", ErrBadDuration, a.Duration))
	}
	if len(a.Tracks) > MaxTracks {
		err = multierr.Append(err, fmt.Errorf("%w: %d > %d", ErrTooManyTracks, len(a.Tracks), MaxTracks))
	}

	for i := range a.Tracks {
		t := &a.Tracks[i]
		err = multierr.Append(err, validateKeys(t.Translations, a.Duration, math.Vec3.IsFinite, i, "translation"))
		err = multierr.Append(err, validateKeys(t.Rotations, a.Duration, math.Quat.IsFinite, i, "rotation"))
		err = multierr.Append(err, validateKeys(t.Scales, a.Duration, math.Vec3.IsFinite, i, "scale"))
	}
	return err
}

func validateKeys[T any](keys []Key[T], duration float32, finite func(T) bool, track int, property string) error {
	if len(keys) == 0 {
		return fmt.Errorf("%w: track %d %s", ErrNoKeys, track, property)
	}

	var err error
	prev := float32(stdmath.Inf(-1))
	for i, k := range keys {
		if k.Time < prev {
			err = multierr.Append(err, fmt.Errorf("%w: track %d %s key %d", ErrUnsortedKeys, track, property, i))
		}
		if k.Time > duration {
			err = multierr.Append(err, fmt.Errorf("%w: track %d %s key %d at %v > %v",
				ErrKeyAfterEnd, track, property, i, k.Time, duration))
		}
		if !finite(k.Value) {
			err = multierr.Append(err, fmt.Errorf("%w: track %d %s key %d", ErrBadKeyValue, track, property, i))
		}
		prev = k.Time
	}
	return err
}
