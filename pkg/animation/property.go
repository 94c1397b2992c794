package animation

import "fmt"

// PropertyType is the value type of a custom per-node property track.
type PropertyType int

const (
	PropertyFloat PropertyType = iota
	PropertyFloat2
	PropertyFloat3
	PropertyFloat4
	PropertyPoint
	PropertyVector
)

// String returns the property type name.
func (t PropertyType) String() string {
	switch t {
	case PropertyFloat:
		return "float1"
	case PropertyFloat2:
		return "float2"
	case PropertyFloat3:
		return "float3"
	case PropertyFloat4:
		return "float4"
	case PropertyPoint:
		return "point"
	case PropertyVector:
		return "vector"
	default:
		return fmt.Sprintf("PropertyType(%d)", int(t))
	}
}

// NodeProperty names an animatable custom property of a node.
type NodeProperty struct {
	Name string
	Type PropertyType
}

// UserTrack is a custom keyframed property track. Components beyond the
// property type's width are zero.
type UserTrack struct {
	Name string
	Type PropertyType
	Keys []Key[[4]float32]
}
