package gltf

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Decode decodes a JSON glTF document from r.
// Buffers are not resolved; call LoadBuffers for external or embedded data.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("gltf: decoding JSON: %w", err)
	}
	return &doc, nil
}

// DecodeGLB decodes a binary glTF container from r.
// The BIN chunk, if any, becomes the data of the first buffer when that
// buffer has no URI.
func DecodeGLB(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	jsonChunk, binChunk, err := splitGLB(data)
	if err != nil {
		return nil, err
	}
	doc, err := Decode(bytes.NewReader(jsonChunk))
	if err != nil {
		return nil, err
	}
	if binChunk != nil && len(doc.Buffers) > 0 && doc.Buffers[0].URI == "" {
		doc.Buffers[0].Data = binChunk
	}
	return doc, nil
}

// Open reads a .glb or .gltf file, resolves its buffers relative to the
// file's directory and checks its indices.
// Files with any other extension are decoded as a binary container when
// they start with a GLB header and as JSON otherwise.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var doc *Document
	if isBinary(path, r) {
		doc, err = DecodeGLB(r)
	} else {
		doc, err = Decode(r)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if err := doc.LoadBuffers(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := doc.Check(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// KnownExtension reports whether path ends in .gltf or .glb.
func KnownExtension(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return true
	}
	return false
}

func isBinary(path string, r *bufio.Reader) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb":
		return true
	case ".gltf":
		return false
	}
	head, _ := r.Peek(glbHeaderSize)
	return IsGLB(head)
}

// LoadBuffers fills Buffer.Data for every buffer that has none yet,
// decoding base64 data URIs and reading other URIs relative to dir.
func (d *Document) LoadBuffers(dir string) error {
	for i := range d.Buffers {
		b := &d.Buffers[i]
		if b.Data != nil {
			continue
		}
		if b.URI == "" {
			return fmt.Errorf("buffer %d: %w", i, ErrMissingBuffer)
		}

		data, err := readURI(b.URI, dir)
		if err != nil {
			return fmt.Errorf("buffer %d: %w", i, err)
		}
		if len(data) < b.ByteLength {
			return fmt.Errorf("buffer %d: %w: have %d bytes, want %d", i, ErrTruncatedBuffer, len(data), b.ByteLength)
		}
		b.Data = data
	}
	return nil
}

func readURI(uri, dir string) ([]byte, error) {
	if strings.HasPrefix(uri, "data:") {
		comma := strings.IndexByte(uri, ',')
		if comma < 0 || !strings.HasSuffix(uri[:comma], ";base64") {
			return nil, fmt.Errorf("unsupported data URI %.32q", uri)
		}
		return base64.StdEncoding.DecodeString(uri[comma+1:])
	}

	p, err := url.PathUnescape(uri)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(dir, filepath.FromSlash(p)))
}
