package animation

import (
	"errors"
	"fmt"
)

// Channel decoding errors.
var (
	ErrUnknownInterpolation = errors.New("animation: invalid or unknown interpolation")
	ErrUnknownTargetPath    = errors.New("animation: invalid or unknown channel target path")
)

// Interpolation is the interpolation mode of a glTF animation sampler.
type Interpolation int

const (
	Linear Interpolation = iota
	Step
	CubicSpline
)

var interpolationNames = map[string]Interpolation{
	"LINEAR":      Linear,
	"STEP":        Step,
	"CUBICSPLINE": CubicSpline,
}

// ParseInterpolation maps a glTF interpolation string to an Interpolation.
// The empty string is rejected rather than defaulted to Linear.
func ParseInterpolation(s string) (Interpolation, error) {
	if i, ok := interpolationNames[s]; ok {
		return i, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownInterpolation, s)
}

// String returns the glTF spelling of the interpolation.
func (i Interpolation) String() string {
	switch i {
	case Linear:
		return "LINEAR"
	case Step:
		return "STEP"
	case CubicSpline:
		return "CUBICSPLINE"
	default:
		return fmt.Sprintf("Interpolation(%d)", int(i))
	}
}

// TargetPath is the node property animated by a channel.
type TargetPath int

const (
	Translation TargetPath = iota
	Rotation
	Scale
	Weights
)

var targetPathNames = map[string]TargetPath{
	"translation": Translation,
	"rotation":    Rotation,
	"scale":       Scale,
	"weights":     Weights,
}

// ParseTargetPath maps a glTF channel target path to a TargetPath.
func ParseTargetPath(s string) (TargetPath, error) {
	if p, ok := targetPathNames[s]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTargetPath, s)
}

// String returns the glTF spelling of the path.
func (p TargetPath) String() string {
	switch p {
	case Translation:
		return "translation"
	case Rotation:
		return "rotation"
	case Scale:
		return "scale"
	case Weights:
		return "weights"
	default:
		return fmt.Sprintf("TargetPath(%d)", int(p))
	}
}
