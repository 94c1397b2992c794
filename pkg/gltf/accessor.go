package gltf

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// ComponentSize returns the size in bytes of a componentType value,
// or 0 if it is unknown.
func ComponentSize(componentType int) int {
	switch componentType {
	case BYTE, UNSIGNED_BYTE:
		return 1
	case SHORT, UNSIGNED_SHORT:
		return 2
	case UNSIGNED_INT, FLOAT:
		return 4
	default:
		return 0
	}
}

// ComponentCount returns the number of components of an accessor type,
// or 0 if it is unknown.
func ComponentCount(typ string) int {
	switch typ {
	case SCALAR:
		return 1
	case VEC2:
		return 2
	case VEC3:
		return 3
	case VEC4, MAT2:
		return 4
	case MAT3:
		return 9
	case MAT4:
		return 16
	default:
		return 0
	}
}

// ElementSize returns the size in bytes of a single element of a.
func (a *Accessor) ElementSize() int {
	return ComponentSize(a.ComponentType) * ComponentCount(a.Type)
}

// View decodes the elements of accessor index as values of type T.
//
// T must be a fixed-size type (see encoding/binary) whose size equals the
// accessor's element size; otherwise an error wrapping ErrLayoutMismatch is
// returned and nothing is reinterpreted. Accessors without a buffer view
// decode to zero values, and sparse substitutions are applied.
func View[T any](doc *Document, index int) ([]T, error) {
	if index < 0 || index >= len(doc.Accessors) {
		return nil, fmt.Errorf("%w: accessor %d", ErrInvalidIndex, index)
	}
	acc := &doc.Accessors[index]

	var zero T
	want := binary.Size(zero)
	have := acc.ElementSize()
	if want <= 0 || have != want {
		return nil, fmt.Errorf("%w: accessor %d: expected element size %d, got %d",
			ErrLayoutMismatch, index, want, have)
	}
	if acc.Count < 0 {
		return nil, fmt.Errorf("%w: accessor %d: negative count", ErrOutOfRange, index)
	}

	var data []byte
	stride := 0
	if acc.BufferView != nil {
		var err error
		if data, stride, err = doc.viewBytes(*acc.BufferView); err != nil {
			return nil, fmt.Errorf("accessor %d: %w", index, err)
		}
		if err := fitElements(acc.Count, len(data), acc.ByteOffset, stride, want); err != nil {
			return nil, fmt.Errorf("accessor %d: %w", index, err)
		}
	} else if acc.Count > MaxZeroCount {
		return nil, fmt.Errorf("%w: accessor %d: count %d without buffer view", ErrOutOfRange, index, acc.Count)
	}

	out := make([]T, acc.Count)
	if acc.BufferView != nil {
		if err := readElements(out, data, acc.ByteOffset, stride, want); err != nil {
			return nil, fmt.Errorf("accessor %d: %w", index, err)
		}
	}

	if acc.Sparse != nil {
		if err := applySparse(doc, acc.Sparse, out, want); err != nil {
			return nil, fmt.Errorf("accessor %d: sparse: %w", index, err)
		}
	}
	return out, nil
}

// MaxZeroCount bounds the element count of accessors without a buffer
// view, which decode to zeros rather than reading stored data.
const MaxZeroCount = 1 << 24

// Byte stride limits of interleaved buffer views.
const (
	MinByteStride = 4
	MaxByteStride = 252
)

// viewBytes returns the bytes covered by buffer view index and its stride.
func (d *Document) viewBytes(index int) ([]byte, int, error) {
	if index < 0 || index >= len(d.BufferViews) {
		return nil, 0, fmt.Errorf("%w: buffer view %d", ErrInvalidIndex, index)
	}
	bv := &d.BufferViews[index]
	if bv.Buffer < 0 || bv.Buffer >= len(d.Buffers) {
		return nil, 0, fmt.Errorf("%w: buffer %d", ErrInvalidIndex, bv.Buffer)
	}
	data := d.Buffers[bv.Buffer].Data
	if data == nil {
		return nil, 0, fmt.Errorf("%w: buffer %d", ErrMissingBuffer, bv.Buffer)
	}
	if bv.ByteOffset < 0 || bv.ByteLength < 0 || bv.ByteOffset > len(data) || bv.ByteLength > len(data)-bv.ByteOffset {
		return nil, 0, fmt.Errorf("%w: buffer view %d spans %d bytes at %d of %d",
			ErrOutOfRange, index, bv.ByteLength, bv.ByteOffset, len(data))
	}
	end := bv.ByteOffset + bv.ByteLength
	if s := bv.ByteStride; s != 0 && (s < MinByteStride || s > MaxByteStride) {
		return nil, 0, fmt.Errorf("%w: buffer view %d: byte stride %d", ErrOutOfRange, index, s)
	}
	return data[bv.ByteOffset:end], bv.ByteStride, nil
}

// fitElements reports whether n elements of size bytes, the first at offset
// and each following stride bytes apart (0 for tightly packed), lie within
// dataLen bytes. The bounds are compared without computing the end offset,
// which may not fit in an int.
func fitElements(n, dataLen, offset, stride, size int) error {
	if n == 0 {
		return nil
	}
	if stride == 0 {
		stride = size
	}
	if stride < size {
		return fmt.Errorf("%w: stride %d is smaller than element size %d", ErrOutOfRange, stride, size)
	}
	if offset < 0 || offset > dataLen || size > dataLen-offset || n-1 > (dataLen-offset-size)/stride {
		return fmt.Errorf("%w: %d elements of %d bytes at offset %d, stride %d, exceed %d bytes",
			ErrOutOfRange, n, size, offset, stride, dataLen)
	}
	return nil
}

// readElements decodes len(out) little-endian elements of size bytes from
// data, starting at offset and advancing by stride (0 for tightly packed).
func readElements[T any](out []T, data []byte, offset, stride, size int) error {
	n := len(out)
	if err := fitElements(n, len(data), offset, stride, size); err != nil || n == 0 {
		return err
	}
	if stride == 0 {
		stride = size
	}

	if stride == size {
		return binary.Read(bytes.NewReader(data[offset:offset+n*size]), binary.LittleEndian, out)
	}
	for i := range out {
		at := offset + i*stride
		if err := binary.Read(bytes.NewReader(data[at:at+size]), binary.LittleEndian, &out[i]); err != nil {
			return err
		}
	}
	return nil
}

// applySparse overwrites the elements of out referenced by s.
func applySparse[T any](doc *Document, s *Sparse, out []T, size int) error {
	if s.Count < 0 || s.Count > len(out) {
		return fmt.Errorf("%w: count %d", ErrOutOfRange, s.Count)
	}

	data, _, err := doc.viewBytes(s.Indices.BufferView)
	if err != nil {
		return err
	}
	indices := make([]uint32, s.Count)
	switch s.Indices.ComponentType {
	case UNSIGNED_BYTE:
		raw := make([]uint8, s.Count)
		if err := readElements(raw, data, s.Indices.ByteOffset, 0, 1); err != nil {
			return err
		}
		for i, v := range raw {
			indices[i] = uint32(v)
		}
	case UNSIGNED_SHORT:
		raw := make([]uint16, s.Count)
		if err := readElements(raw, data, s.Indices.ByteOffset, 0, 2); err != nil {
			return err
		}
		for i, v := range raw {
			indices[i] = uint32(v)
		}
	case UNSIGNED_INT:
		if err := readElements(indices, data, s.Indices.ByteOffset, 0, 4); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: indices component type %d", ErrLayoutMismatch, s.Indices.ComponentType)
	}

	data, _, err = doc.viewBytes(s.Values.BufferView)
	if err != nil {
		return err
	}
	values := make([]T, s.Count)
	if err := readElements(values, data, s.Values.ByteOffset, 0, size); err != nil {
		return err
	}

	for i, idx := range indices {
		if int(idx) >= len(out) {
			return fmt.Errorf("%w: index %d >= count %d", ErrOutOfRange, idx, len(out))
		}
		out[idx] = values[i]
	}
	return nil
}
