// Package skeleton provides the joint hierarchy produced by the importer.
package skeleton

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/gltfrig/pkg/math"
)

// MaxJoints is the largest number of joints a skeleton may hold.
const MaxJoints = 1024

// Skeleton validation errors.
var (
	ErrTooManyJoints  = errors.New("skeleton: too many joints")
	ErrEmptyJointName = errors.New("skeleton: empty joint name")
	ErrDuplicateJoint = errors.New("skeleton: duplicate joint name")
	ErrBadTransform   = errors.New("skeleton: invalid joint transform")
)

// Transform is a joint's local bind pose.
type Transform struct {
	Translation math.Vec3 `yaml:"translation"`
	Rotation    math.Quat `yaml:"rotation"`
	Scale       math.Vec3 `yaml:"scale"`
}

// IdentityTransform returns the transform that leaves a joint in place.
func IdentityTransform() Transform {
	return Transform{
		Translation: math.Vec3Zero(),
		Rotation:    math.QuatIdentity(),
		Scale:       math.Vec3One(),
	}
}

// Joint is a node of the skeleton tree.
type Joint struct {
	Name      string    `yaml:"name"`
	Transform Transform `yaml:"transform"`
	Children  []Joint   `yaml:"children,omitempty"`
}

// Skeleton is a forest of joints.
type Skeleton struct {
	Roots []Joint `yaml:"roots"`
}

// Walk visits every joint depth-first, parents before children, in child
// order. parent is nil for roots. Returning false from fn stops the walk.
func (s *Skeleton) Walk(fn func(j *Joint, parent *Joint) bool) {
	var visit func(j, parent *Joint) bool
	visit = func(j, parent *Joint) bool {
		if !fn(j, parent) {
			return false
		}
		for i := range j.Children {
			if !visit(&j.Children[i], j) {
				return false
			}
		}
		return true
	}
	for i := range s.Roots {
		if !visit(&s.Roots[i], nil) {
			return
		}
	}
}

// NumJoints returns the number of joints in the skeleton.
func (s *Skeleton) NumJoints() int {
	n := 0
	s.Walk(func(*Joint, *Joint) bool {
		n++
		return true
	})
	return n
}

// JointNames returns joint names in depth-first order. Animation tracks are
// parallel to this slice.
func (s *Skeleton) JointNames() []string {
	names := make([]string, 0, s.NumJoints())
	s.Walk(func(j *Joint, _ *Joint) bool {
		names = append(names, j.Name)
		return true
	})
	return names
}

// Parents returns, for each joint in JointNames order, the index of its
// parent or -1 for roots.
func (s *Skeleton) Parents() []int {
	index := make(map[*Joint]int)
	var parents []int
	s.Walk(func(j *Joint, parent *Joint) bool {
		index[j] = len(parents)
		if parent == nil {
			parents = append(parents, -1)
		} else {
			parents = append(parents, index[parent])
		}
		return true
	})
	return parents
}

// Validate checks that the skeleton is usable: bounded size, non-empty
// unique names and finite transforms. Every problem found is reported.
func (s *Skeleton) Validate() error {
	var err error

	if n := s.NumJoints(); n > MaxJoints {
		err = multierr.Append(err, fmt.Errorf("%w: %d > %d", ErrTooManyJoints, n, MaxJoints))
	}

	seen := make(map[string]struct{})
	s.Walk(func(j *Joint, _ *Joint) bool {
		switch _, dup := seen[j.Name]; {
		case j.Name == "":
			err = multierr.Append(err, ErrEmptyJointName)
		case dup:
			err = multierr.Append(err, fmt.Errorf("%w: %q", ErrDuplicateJoint, j.Name))
		}
		seen[j.Name] = struct{}{}

		t := j.Transform
		if !t.Translation.IsFinite() || !t.Rotation.IsFinite() || !t.Scale.IsFinite() {
			err = multierr.Append(err, fmt.Errorf("%w: %q", ErrBadTransform, j.Name))
		}
		return true
	})

	return err
}
