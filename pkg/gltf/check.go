package gltf

import (
	"fmt"
)

func indexErr(what string, index int) error {
	return fmt.Errorf("%w: %s %d", ErrInvalidIndex, what, index)
}

// Check verifies that every index referenced by d is in range and that
// accessor counts and buffer view strides are not negative or out of
// bounds. Decoders run it before returning a document.
func (d *Document) Check() error {
	if s := d.Scene; s != nil && (*s < 0 || *s >= len(d.Scenes)) {
		return indexErr("scene", *s)
	}
	for i := range d.Scenes {
		for _, n := range d.Scenes[i].Nodes {
			if !d.validNode(n) {
				return fmt.Errorf("scene %d: %w", i, indexErr("node", n))
			}
		}
	}
	for i := range d.Nodes {
		n := &d.Nodes[i]
		for _, c := range n.Children {
			if !d.validNode(c) || c == i {
				return fmt.Errorf("node %d: %w", i, indexErr("child", c))
			}
		}
		if n.Skin != nil && (*n.Skin < 0 || *n.Skin >= len(d.Skins)) {
			return fmt.Errorf("node %d: %w", i, indexErr("skin", *n.Skin))
		}
	}
	for i := range d.Skins {
		s := &d.Skins[i]
		for _, j := range s.Joints {
			if !d.validNode(j) {
				return fmt.Errorf("skin %d: %w", i, indexErr("joint", j))
			}
		}
		if s.Skeleton != nil && !d.validNode(*s.Skeleton) {
			return fmt.Errorf("skin %d: %w", i, indexErr("skeleton", *s.Skeleton))
		}
	}
	for i := range d.Animations {
		if err := d.checkAnimation(&d.Animations[i]); err != nil {
			return fmt.Errorf("animation %d: %w", i, err)
		}
	}
	for i := range d.Accessors {
		a := &d.Accessors[i]
		if v := a.BufferView; v != nil && (*v < 0 || *v >= len(d.BufferViews)) {
			return fmt.Errorf("accessor %d: %w", i, indexErr("buffer view", *v))
		}
		if a.Count < 0 || a.ByteOffset < 0 {
			return fmt.Errorf("%w: accessor %d: count %d, byte offset %d", ErrOutOfRange, i, a.Count, a.ByteOffset)
		}
	}
	for i := range d.BufferViews {
		bv := &d.BufferViews[i]
		if b := bv.Buffer; b < 0 || b >= len(d.Buffers) {
			return fmt.Errorf("buffer view %d: %w", i, indexErr("buffer", b))
		}
		if s := bv.ByteStride; s != 0 && (s < MinByteStride || s > MaxByteStride) {
			return fmt.Errorf("%w: buffer view %d: byte stride %d", ErrOutOfRange, i, s)
		}
	}
	return nil
}

func (d *Document) checkAnimation(a *Animation) error {
	for i, c := range a.Channels {
		if c.Sampler < 0 || c.Sampler >= len(a.Samplers) {
			return fmt.Errorf("channel %d: %w", i, indexErr("sampler", c.Sampler))
		}
		if n := c.Target.Node; n != nil && !d.validNode(*n) {
			return fmt.Errorf("channel %d: %w", i, indexErr("node", *n))
		}
	}
	for i, s := range a.Samplers {
		if s.Input < 0 || s.Input >= len(d.Accessors) {
			return fmt.Errorf("sampler %d: %w", i, indexErr("input accessor", s.Input))
		}
		if s.Output < 0 || s.Output >= len(d.Accessors) {
			return fmt.Errorf("sampler %d: %w", i, indexErr("output accessor", s.Output))
		}
	}
	return nil
}

func (d *Document) validNode(i int) bool {
	return i >= 0 && i < len(d.Nodes)
}
