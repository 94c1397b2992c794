package gltf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// GLB header: magic, version, total length.
type glbHeader [3]uint32

const glbHeaderSize = 12

// GLB chunk header: length, type. Then payload.
type glbChunk [2]uint32

const (
	glbMagic   = 0x46546c67 // "glTF"
	glbVersion = 2

	chunkJSON = 0x4e4f534a // "JSON"
	chunkBIN  = 0x004e4942 // "BIN\0"
)

// IsGLB reports whether head begins with the header of a version 2
// binary container.
func IsGLB(head []byte) bool {
	if len(head) < glbHeaderSize {
		return false
	}
	le := binary.LittleEndian
	return le.Uint32(head) == glbMagic && le.Uint32(head[4:]) == glbVersion
}

// splitGLB returns the JSON chunk and the optional BIN chunk of a GLB blob.
func splitGLB(data []byte) (jsonChunk, binChunk []byte, err error) {
	r := bytes.NewReader(data)
	var h glbHeader
	if err := binary.Read(r, binary.LittleEndian, h[:]); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidGLB, err)
	}
	if h[0] != glbMagic {
		return nil, nil, fmt.Errorf("%w: bad magic 0x%08x", ErrInvalidGLB, h[0])
	}
	if h[1] != glbVersion {
		return nil, nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidGLB, h[1])
	}
	if int(h[2]) > len(data) {
		return nil, nil, fmt.Errorf("%w: declared length %d exceeds %d bytes", ErrInvalidGLB, h[2], len(data))
	}

	for r.Len() > 0 {
		var c glbChunk
		if err := binary.Read(r, binary.LittleEndian, c[:]); err != nil {
			return nil, nil, fmt.Errorf("%w: chunk header: %v", ErrInvalidGLB, err)
		}
		if int(c[0]) > r.Len() {
			return nil, nil, fmt.Errorf("%w: chunk of %d bytes is truncated", ErrInvalidGLB, c[0])
		}
		payload := make([]byte, c[0])
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidGLB, err)
		}

		switch c[1] {
		case chunkJSON:
			if jsonChunk == nil {
				jsonChunk = payload
			}
		case chunkBIN:
			if binChunk == nil {
				binChunk = payload
			}
		}
		// Unknown chunk types must be ignored.
	}

	if len(jsonChunk) == 0 {
		return nil, nil, fmt.Errorf("%w: missing JSON chunk", ErrInvalidGLB)
	}
	return jsonChunk, binChunk, nil
}
