// Package gltf provides the glTF 2.0 document model consumed by the
// skeleton and animation importers, along with JSON/GLB decoding and
// typed accessor views over buffer data.
package gltf

import (
	"errors"
)

// glTF format errors.
var (
	ErrInvalidIndex    = errors.New("gltf: invalid index")
	ErrLayoutMismatch  = errors.New("gltf: accessor layout mismatch")
	ErrOutOfRange      = errors.New("gltf: accessor data out of range")
	ErrInvalidGLB      = errors.New("gltf: invalid GLB container")
	ErrMissingBuffer   = errors.New("gltf: buffer data not available")
	ErrTruncatedBuffer = errors.New("gltf: truncated buffer data")
)

// Document is the root glTF object.
// Only the parts that describe hierarchy and animation are decoded;
// meshes, materials and images are ignored.
type Document struct {
	ExtensionsUsed     []string     `json:"extensionsUsed,omitempty"`
	ExtensionsRequired []string     `json:"extensionsRequired,omitempty"`
	Asset              Asset        `json:"asset"`
	Accessors          []Accessor   `json:"accessors,omitempty"`
	Animations         []Animation  `json:"animations,omitempty"`
	Buffers            []Buffer     `json:"buffers,omitempty"`
	BufferViews        []BufferView `json:"bufferViews,omitempty"`
	Nodes              []Node       `json:"nodes,omitempty"`
	Scene              *int         `json:"scene,omitempty"`
	Scenes             []Scene      `json:"scenes,omitempty"`
	Skins              []Skin       `json:"skins,omitempty"`
}

// Asset is glTF.asset.
type Asset struct {
	Copyright  string `json:"copyright,omitempty"`
	Generator  string `json:"generator,omitempty"`
	Version    string `json:"version"`
	MinVersion string `json:"minVersion,omitempty"`
}

// Accessor is an element of glTF.accessors.
type Accessor struct {
	BufferView    *int      `json:"bufferView,omitempty"`
	ByteOffset    int       `json:"byteOffset,omitempty"` // Default is 0.
	ComponentType int       `json:"componentType"`
	Normalized    bool      `json:"normalized,omitempty"`
	Count         int       `json:"count"`
	Type          string    `json:"type"`
	Max           []float32 `json:"max,omitempty"`
	Min           []float32 `json:"min,omitempty"`
	Sparse        *Sparse   `json:"sparse,omitempty"`
	Name          string    `json:"name,omitempty"`
}

// Sparse is accessor.sparse.
type Sparse struct {
	Count   int `json:"count"`
	Indices struct {
		BufferView    int `json:"bufferView"`
		ByteOffset    int `json:"byteOffset,omitempty"` // Default is 0.
		ComponentType int `json:"componentType"`
	} `json:"indices"`
	Values struct {
		BufferView int `json:"bufferView"`
		ByteOffset int `json:"byteOffset,omitempty"` // Default is 0.
	} `json:"values"`
}

// accessor.*.componentType values.
const (
	BYTE           = 5120
	UNSIGNED_BYTE  = 5121
	SHORT          = 5122
	UNSIGNED_SHORT = 5123
	UNSIGNED_INT   = 5125
	FLOAT          = 5126
)

// accessor.type values.
const (
	SCALAR = "SCALAR"
	VEC2   = "VEC2"
	VEC3   = "VEC3"
	VEC4   = "VEC4"
	MAT2   = "MAT2"
	MAT3   = "MAT3"
	MAT4   = "MAT4"
)

// Animation is an element of glTF.animations.
type Animation struct {
	Channels []Channel          `json:"channels"`
	Samplers []AnimationSampler `json:"samplers"`
	Name     string             `json:"name,omitempty"`
}

// Channel is an element of animation.channels.
type Channel struct {
	Sampler int           `json:"sampler"`
	Target  ChannelTarget `json:"target"`
}

// ChannelTarget is animation.channel.target.
type ChannelTarget struct {
	Node *int   `json:"node,omitempty"`
	Path string `json:"path"`
}

// AnimationSampler is an element of animation.samplers.
// Interpolation is kept verbatim; an empty value is not defaulted here.
type AnimationSampler struct {
	Input         int    `json:"input"`
	Interpolation string `json:"interpolation,omitempty"`
	Output        int    `json:"output"`
}

// animation.channel.target.path values.
const (
	PathTranslation = "translation"
	PathRotation    = "rotation"
	PathScale       = "scale"
	PathWeights     = "weights"
)

// animation.sampler.interpolation values.
const (
	LINEAR      = "LINEAR"
	STEP        = "STEP"
	CUBICSPLINE = "CUBICSPLINE"
)

// Buffer is an element of glTF.buffers.
// Data holds the resolved bytes and is filled by the decoders.
type Buffer struct {
	URI        string `json:"uri,omitempty"`
	ByteLength int    `json:"byteLength"`
	Name       string `json:"name,omitempty"`

	Data []byte `json:"-"`
}

// BufferView is an element of glTF.bufferViews.
type BufferView struct {
	Buffer     int    `json:"buffer"`
	ByteOffset int    `json:"byteOffset,omitempty"` // Default is 0.
	ByteLength int    `json:"byteLength"`
	ByteStride int    `json:"byteStride,omitempty"` // 0 for tightly packed.
	Target     int    `json:"target,omitempty"`
	Name       string `json:"name,omitempty"`
}

// Node is an element of glTF.nodes.
// A nil TRS field means the glTF default for that property.
type Node struct {
	Camera      *int         `json:"camera,omitempty"`
	Children    []int        `json:"children,omitempty"`
	Skin        *int         `json:"skin,omitempty"`
	Mesh        *int         `json:"mesh,omitempty"`
	Matrix      *[16]float32 `json:"matrix,omitempty"`      // Default is identity.
	Rotation    *[4]float32  `json:"rotation,omitempty"`    // Default is [0, 0, 0, 1].
	Scale       *[3]float32  `json:"scale,omitempty"`       // Default is [1, 1, 1].
	Translation *[3]float32  `json:"translation,omitempty"` // Default is [0, 0, 0].
	Weights     []float32    `json:"weights,omitempty"`
	Name        string       `json:"name,omitempty"`
}

// Scene is an element of glTF.scenes.
type Scene struct {
	Nodes []int  `json:"nodes,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Skin is an element of glTF.skins.
// A nil Skeleton means no explicit root joint.
type Skin struct {
	InverseBindMatrices *int   `json:"inverseBindMatrices,omitempty"`
	Skeleton            *int   `json:"skeleton,omitempty"`
	Joints              []int  `json:"joints"`
	Name                string `json:"name,omitempty"`
}

// DefaultScene returns the index of the scene to import from.
// Documents without a default scene use the first one.
func (d *Document) DefaultScene() int {
	if d.Scene != nil {
		return *d.Scene
	}
	return 0
}

// NodeByName returns the index of the first node named name, or -1.
func (d *Document) NodeByName(name string) int {
	for i := range d.Nodes {
		if d.Nodes[i].Name == name {
			return i
		}
	}
	return -1
}

// AnimationByName returns the index of the first animation named name, or -1.
func (d *Document) AnimationByName(name string) int {
	for i := range d.Animations {
		if d.Animations[i].Name == name {
			return i
		}
	}
	return -1
}

// Index returns a pointer to an int holding i.
// It is convenient for filling optional index fields.
func Index(i int) *int {
	return &i
}
