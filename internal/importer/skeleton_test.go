package importer

import (
	"errors"
	"slices"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/gltfrig/pkg/gltf"
	"github.com/Faultbox/gltfrig/pkg/math"
	"github.com/Faultbox/gltfrig/pkg/skeleton"
)

func TestImportSkeletonUnnamedNode(t *testing.T) {
	b := newDocBuilder()
	b.node("")
	b.scene(0)

	core, logs := observer.New(zap.InfoLevel)
	imp := newImporter(t, b.build(), WithLogger(zap.New(core)))

	skel, err := imp.ImportSkeleton(NodeTypes{Any: true})
	if err != nil {
		t.Fatalf("ImportSkeleton failed: %v", err)
	}
	if len(skel.Roots) != 1 || skel.Roots[0].Name != "node_0" {
		t.Fatalf("got roots %+v, want single root node_0", skel.Roots)
	}
	if skel.Roots[0].Transform != skeleton.IdentityTransform() {
		t.Errorf("got transform %+v, want identity", skel.Roots[0].Transform)
	}

	renames := logs.FilterMessage("renamed entity").All()
	if len(renames) != 2 {
		t.Fatalf("got %d rename entries, want 2 (scene and node)", len(renames))
	}
	fields := renames[1].ContextMap()
	if fields["kind"] != "Node" || fields["to"] != "node_0" {
		t.Errorf("got rename fields %v", fields)
	}
	if _, ok := fields["session"]; !ok {
		t.Error("expected session field on log entry")
	}
}

func TestImportSkeletonFromSkin(t *testing.T) {
	b := newDocBuilder()
	b.node("A", 1)
	b.node("B", 2)
	b.node("C")
	b.node("Armature", 0)
	b.node("Light")
	b.scene(3, 4)
	b.skin(2, 1, 0)

	skel, err := newImporter(t, b.build()).ImportSkeleton(NodeTypes{})
	if err != nil {
		t.Fatalf("ImportSkeleton failed: %v", err)
	}

	want := []string{"A", "B", "C"}
	if got := skel.JointNames(); !slices.Equal(got, want) {
		t.Errorf("got joints %v, want %v", got, want)
	}
}

func TestImportSkeletonSceneRoots(t *testing.T) {
	b := newDocBuilder()
	b.node("root1", 1)
	b.node("child")
	b.node("root2")
	b.scene(2, 0)

	skel, err := newImporter(t, b.build()).ImportSkeleton(NodeTypes{})
	if err != nil {
		t.Fatalf("ImportSkeleton failed: %v", err)
	}

	// Roots are imported in ascending node order.
	want := []string{"root1", "child", "root2"}
	if got := skel.JointNames(); !slices.Equal(got, want) {
		t.Errorf("got joints %v, want %v", got, want)
	}
}

func TestImportSkeletonNestedRoots(t *testing.T) {
	b := chain()
	b.skin(0, 1, 2)
	b.skin(2).Skeleton = gltf.Index(1)

	skel, err := newImporter(t, b.build()).ImportSkeleton(NodeTypes{})
	if err != nil {
		t.Fatalf("ImportSkeleton failed: %v", err)
	}
	if len(skel.Roots) != 1 || skel.NumJoints() != 3 {
		t.Errorf("got %d roots and %d joints, want 1 and 3", len(skel.Roots), skel.NumJoints())
	}
}

func TestImportSkeletonSceneSelection(t *testing.T) {
	b := newDocBuilder()
	b.node("first")
	b.node("second")
	b.scene(0)
	b.scene(1)
	b.doc.Scene = gltf.Index(1)

	tests := []struct {
		name string
		opts []Option
		want string
	}{
		{"default scene", nil, "second"},
		{"override", []Option{WithScene(0)}, "first"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skel, err := newImporter(t, b.build(), tt.opts...).ImportSkeleton(NodeTypes{})
			if err != nil {
				t.Fatalf("ImportSkeleton failed: %v", err)
			}
			if got := skel.Roots[0].Name; got != tt.want {
				t.Errorf("got root %q, want %q", got, tt.want)
			}
		})
	}
}

func TestImportSkeletonErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func() *gltf.Document
		opts  []Option
		want  error
	}{
		{"no scene", func() *gltf.Document {
			b := newDocBuilder()
			b.node("a")
			return b.build()
		}, nil, ErrNoScene},
		{"scene out of range", func() *gltf.Document {
			return chain().build()
		}, []Option{WithScene(3)}, ErrNoScene},
		{"empty scene", func() *gltf.Document {
			b := newDocBuilder()
			b.scene()
			return b.build()
		}, nil, ErrEmptyScene},
		{"cycle", func() *gltf.Document {
			b := newDocBuilder()
			b.node("a", 1)
			b.node("b", 0)
			b.scene(0)
			return b.build()
		}, nil, ErrCyclicHierarchy},
		{"duplicate joint", func() *gltf.Document {
			b := newDocBuilder()
			b.node("a", 2)
			b.node("b", 2)
			b.node("shared")
			b.scene(0, 1)
			return b.build()
		}, nil, ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newImporter(t, tt.build(), tt.opts...).ImportSkeleton(NodeTypes{})
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestImportSkeletonBindPose(t *testing.T) {
	b := chain()
	b.doc.Nodes[0].Translation = &[3]float32{1, 2, 3}
	b.doc.Nodes[1].Rotation = &[4]float32{0, 0.7071068, 0, 0.7071068}
	b.doc.Nodes[2].Scale = &[3]float32{2, 2, 2}

	skel, err := newImporter(t, b.build()).ImportSkeleton(NodeTypes{})
	if err != nil {
		t.Fatalf("ImportSkeleton failed: %v", err)
	}

	a := skel.Roots[0]
	if want := (math.Vec3{X: 1, Y: 2, Z: 3}); a.Transform.Translation != want {
		t.Errorf("A translation = %+v, want %+v", a.Transform.Translation, want)
	}
	if a.Transform.Rotation != math.QuatIdentity() || a.Transform.Scale != math.Vec3One() {
		t.Errorf("A rotation/scale = %+v, want defaults", a.Transform)
	}
	if want := (math.Quat{Y: 0.7071068, W: 0.7071068}); a.Children[0].Transform.Rotation != want {
		t.Errorf("B rotation = %+v, want %+v", a.Children[0].Transform.Rotation, want)
	}
	if want := (math.Vec3{X: 2, Y: 2, Z: 2}); a.Children[0].Children[0].Transform.Scale != want {
		t.Errorf("C scale = %+v, want %+v", a.Children[0].Children[0].Transform.Scale, want)
	}
}

func TestImportSkeletonMatrix(t *testing.T) {
	m := math.Translate(4, 5, 6).Mul(math.Scale(2, 2, 2))

	b := chain()
	b.doc.Nodes[1].Matrix = (*[16]float32)(&m)

	skel, err := newImporter(t, b.build()).ImportSkeleton(NodeTypes{})
	if err != nil {
		t.Fatalf("ImportSkeleton failed: %v", err)
	}
	pose := skel.Roots[0].Children[0].Transform
	if want := (math.Vec3{X: 4, Y: 5, Z: 6}); !closeVec3(pose.Translation, want) {
		t.Errorf("translation = %+v, want %+v", pose.Translation, want)
	}
	if want := (math.Vec3{X: 2, Y: 2, Z: 2}); !closeVec3(pose.Scale, want) {
		t.Errorf("scale = %+v, want %+v", pose.Scale, want)
	}

	// The same matrix on an animated node is rejected.
	b.animation("move", channel{node: 1, path: gltf.PathRotation, interp: gltf.LINEAR,
		input: b.times(0), output: b.floats(gltf.VEC4, 0, 0, 0, 1)})
	if _, err := newImporter(t, b.build()).ImportSkeleton(NodeTypes{}); !errors.Is(err, ErrAnimatedMatrix) {
		t.Errorf("error = %v, want ErrAnimatedMatrix", err)
	}
}

func TestSkinRoot(t *testing.T) {
	doc := chain().build()

	tests := []struct {
		name   string
		skin   gltf.Skin
		want   int
		wantOK bool
	}{
		{"reverse joint order", gltf.Skin{Joints: []int{2, 1, 0}}, 0, true},
		{"leaf only", gltf.Skin{Joints: []int{2}}, 2, true},
		{"partial chain", gltf.Skin{Joints: []int{2, 1}}, 1, true},
		{"explicit root", gltf.Skin{Joints: []int{2, 1, 0}, Skeleton: gltf.Index(1)}, 1, true},
		{"explicit root without joints", gltf.Skin{Skeleton: gltf.Index(2)}, 2, true},
		{"empty", gltf.Skin{}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SkinRoot(doc, &tt.skin)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("got (%d, %v), want (%d, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestImportSkeletonMatrixShear(t *testing.T) {
	tests := []struct {
		name  string
		shear float32
		warns int
	}{
		{"affine", 0, 0},
		{"sheared", 0.5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := math.Translate(1, 2, 3).Mul(math.Scale(2, -2, 2))
			m[4] = tt.shear

			b := chain()
			b.doc.Nodes[1].Matrix = (*[16]float32)(&m)

			core, logs := observer.New(zap.WarnLevel)
			if _, err := newImporter(t, b.build(), WithLogger(zap.New(core))).ImportSkeleton(NodeTypes{}); err != nil {
				t.Fatalf("ImportSkeleton failed: %v", err)
			}
			entries := logs.FilterMessage("matrix shear dropped").All()
			if len(entries) != tt.warns {
				t.Fatalf("got %d shear warnings, want %d", len(entries), tt.warns)
			}
			if tt.warns > 0 && entries[0].ContextMap()["node"] != "B" {
				t.Errorf("got fields %v, want node B", entries[0].ContextMap())
			}
		})
	}
}

func closeVec3(a, b math.Vec3) bool {
	const eps = 1e-5
	d := math.Vec3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
	return d.X < eps && d.X > -eps && d.Y < eps && d.Y > -eps && d.Z < eps && d.Z > -eps
}

func TestNewRejectsInvalidDocument(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc *gltf.Document)
		want   error
	}{
		{"channel sampler", func(doc *gltf.Document) {
			doc.Animations[0].Channels[0].Sampler = 5
		}, gltf.ErrInvalidIndex},
		{"sampler output", func(doc *gltf.Document) {
			doc.Animations[0].Samplers[0].Output = 42
		}, gltf.ErrInvalidIndex},
		{"child", func(doc *gltf.Document) {
			doc.Nodes[2].Children = []int{9}
		}, gltf.ErrInvalidIndex},
		{"byte stride", func(doc *gltf.Document) {
			doc.BufferViews[0].ByteStride = 1 << 40
		}, gltf.ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := chain()
			b.animation("walk", channel{node: 1, path: gltf.PathRotation, interp: gltf.LINEAR,
				input: b.times(0), output: b.floats(gltf.VEC4, 0, 0, 0, 1)})
			doc := b.build()
			tt.mutate(doc)

			imp, err := New(doc)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if imp != nil {
				t.Error("expected no importer")
			}
		})
	}
}
