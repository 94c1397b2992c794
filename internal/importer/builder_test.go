package importer

import (
	"encoding/binary"
	stdmath "math"
	"testing"

	"github.com/Faultbox/gltfrig/pkg/gltf"
)

// docBuilder assembles small in-memory documents with a single buffer.
type docBuilder struct {
	doc  gltf.Document
	data []byte
}

func newDocBuilder() *docBuilder {
	return &docBuilder{doc: gltf.Document{Asset: gltf.Asset{Version: "2.0"}}}
}

// node appends a node and returns its index.
func (b *docBuilder) node(name string, children ...int) int {
	b.doc.Nodes = append(b.doc.Nodes, gltf.Node{Name: name, Children: children})
	return len(b.doc.Nodes) - 1
}

func (b *docBuilder) scene(nodes ...int) {
	b.doc.Scenes = append(b.doc.Scenes, gltf.Scene{Nodes: nodes})
}

func (b *docBuilder) skin(joints ...int) *gltf.Skin {
	b.doc.Skins = append(b.doc.Skins, gltf.Skin{Joints: joints})
	return &b.doc.Skins[len(b.doc.Skins)-1]
}

// floats appends a float accessor of type typ and returns its index.
func (b *docBuilder) floats(typ string, values ...float32) int {
	offset := len(b.data)
	for _, v := range values {
		b.data = binary.LittleEndian.AppendUint32(b.data, stdmath.Float32bits(v))
	}
	b.doc.BufferViews = append(b.doc.BufferViews, gltf.BufferView{
		ByteOffset: offset,
		ByteLength: len(values) * 4,
	})
	b.doc.Accessors = append(b.doc.Accessors, gltf.Accessor{
		BufferView:    gltf.Index(len(b.doc.BufferViews) - 1),
		ComponentType: gltf.FLOAT,
		Count:         len(values) / gltf.ComponentCount(typ),
		Type:          typ,
	})
	return len(b.doc.Accessors) - 1
}

// times appends a timestamp accessor declaring its last value as maximum.
func (b *docBuilder) times(values ...float32) int {
	i := b.floats(gltf.SCALAR, values...)
	if len(values) > 0 {
		b.doc.Accessors[i].Max = []float32{values[len(values)-1]}
	}
	return i
}

// channel describes one animation channel for animation.
type channel struct {
	node   int
	path   string
	interp string
	input  int
	output int
}

func (b *docBuilder) animation(name string, channels ...channel) {
	var a gltf.Animation
	a.Name = name
	for i, c := range channels {
		a.Samplers = append(a.Samplers, gltf.AnimationSampler{
			Input:         c.input,
			Interpolation: c.interp,
			Output:        c.output,
		})
		a.Channels = append(a.Channels, gltf.Channel{
			Sampler: i,
			Target:  gltf.ChannelTarget{Node: gltf.Index(c.node), Path: c.path},
		})
	}
	b.doc.Animations = append(b.doc.Animations, a)
}

func (b *docBuilder) build() *gltf.Document {
	b.doc.Buffers = []gltf.Buffer{{ByteLength: len(b.data), Data: b.data}}
	return &b.doc
}

// chain builds the hierarchy A -> B -> C under a scene holding A.
func chain() *docBuilder {
	b := newDocBuilder()
	b.node("A", 1)
	b.node("B", 2)
	b.node("C")
	b.scene(0)
	return b
}

func newImporter(t *testing.T, doc *gltf.Document, opts ...Option) *Importer {
	t.Helper()
	imp, err := New(doc, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return imp
}
