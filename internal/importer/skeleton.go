package importer

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/gltfrig/pkg/gltf"
	"github.com/Faultbox/gltfrig/pkg/math"
	"github.com/Faultbox/gltfrig/pkg/skeleton"
)

// NodeTypes selects which kinds of scene nodes a host wants in the
// skeleton. glTF nodes carry no such type information, so the whole
// hierarchy below the roots is always imported.
type NodeTypes struct {
	Skeleton bool
	Marker   bool
	Camera   bool
	Geometry bool
	Light    bool
	Null     bool
	Any      bool
}

// ImportSkeleton builds the skeleton of the active scene.
//
// Roots are the root joints of the skins used by the scene or, when the
// scene uses no skin, every root node of the scene. Each root is imported
// depth-first with its children in source order.
func (imp *Importer) ImportSkeleton(types NodeTypes) (*skeleton.Skeleton, error) {
	doc := imp.doc
	if len(doc.Scenes) == 0 {
		return nil, ErrNoScene
	}

	index := doc.DefaultScene()
	if imp.scene != nil {
		index = *imp.scene
	}
	if index < 0 || index >= len(doc.Scenes) {
		return nil, fmt.Errorf("%w: scene %d of %d", ErrNoScene, index, len(doc.Scenes))
	}
	scene := &doc.Scenes[index]
	if len(scene.Nodes) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyScene, scene.Name)
	}

	imp.log.Debug("importing skeleton",
		zap.String("scene", scene.Name),
		zap.Any("types", types))

	roots, err := imp.skeletonRoots(scene)
	if err != nil {
		return nil, err
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("%w: scene %q", ErrNoRoots, scene.Name)
	}

	skel := &skeleton.Skeleton{Roots: make([]skeleton.Joint, 0, len(roots))}
	visiting := make(map[int]bool)
	for _, root := range roots {
		joint, err := imp.importNode(root, visiting)
		if err != nil {
			return nil, err
		}
		skel.Roots = append(skel.Roots, joint)
	}

	if err := skel.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	imp.log.Info("imported skeleton",
		zap.Int("roots", len(skel.Roots)),
		zap.Int("joints", skel.NumJoints()))
	return skel, nil
}

// skeletonRoots returns the sorted root nodes of the scene's skeleton.
// A root below another root is dropped.
func (imp *Importer) skeletonRoots(scene *gltf.Scene) ([]int, error) {
	reachable, err := imp.descendants(scene.Nodes)
	if err != nil {
		return nil, err
	}

	var skins []int
	for i := range imp.doc.Skins {
		joints := imp.doc.Skins[i].Joints
		if len(joints) > 0 && reachable[joints[0]] {
			skins = append(skins, i)
		}
	}

	var roots []int
	if len(skins) == 0 {
		roots = slices.Clone(scene.Nodes)
	} else {
		for _, s := range skins {
			if root, ok := SkinRoot(imp.doc, &imp.doc.Skins[s]); ok {
				roots = append(roots, root)
			}
		}
	}
	slices.Sort(roots)
	roots = slices.Compact(roots)

	nested := make(map[int]bool)
	for _, root := range roots {
		below, err := imp.descendants(imp.doc.Nodes[root].Children)
		if err != nil {
			return nil, err
		}
		for n := range below {
			nested[n] = true
		}
	}
	return slices.DeleteFunc(roots, func(n int) bool {
		if nested[n] {
			imp.log.Debug("dropping nested root", zap.String("node", imp.doc.Nodes[n].Name))
			return true
		}
		return false
	}), nil
}

// descendants returns every node reachable from nodes, nodes included.
func (imp *Importer) descendants(nodes []int) (map[int]bool, error) {
	seen := make(map[int]bool)
	onPath := make(map[int]bool)

	var visit func(n int) error
	visit = func(n int) error {
		if onPath[n] {
			return fmt.Errorf("%w: at node %q", ErrCyclicHierarchy, imp.doc.Nodes[n].Name)
		}
		if seen[n] {
			return nil
		}
		seen[n] = true
		onPath[n] = true
		for _, c := range imp.doc.Nodes[n].Children {
			if err := visit(c); err != nil {
				return err
			}
		}
		delete(onPath, n)
		return nil
	}

	for _, n := range nodes {
		if err := visit(n); err != nil {
			return nil, err
		}
	}
	return seen, nil
}

// SkinRoot returns the root joint of skin: its explicit skeleton node if
// set, otherwise the topmost ancestor of its first joint among the parents
// declared by the joints' children. It reports false when the skin has
// neither an explicit root nor any joint.
func SkinRoot(doc *gltf.Document, skin *gltf.Skin) (int, bool) {
	if skin.Skeleton != nil {
		return *skin.Skeleton, true
	}
	if len(skin.Joints) == 0 {
		return 0, false
	}

	parents := make(map[int]int)
	for _, j := range skin.Joints {
		for _, c := range doc.Nodes[j].Children {
			parents[c] = j
		}
	}

	root := skin.Joints[0]
	for steps := 0; steps <= len(parents); steps++ {
		p, ok := parents[root]
		if !ok {
			break
		}
		root = p
	}
	return root, true
}

// importNode converts node index and its subtree into a joint.
func (imp *Importer) importNode(index int, visiting map[int]bool) (skeleton.Joint, error) {
	node := &imp.doc.Nodes[index]
	if visiting[index] {
		return skeleton.Joint{}, fmt.Errorf("%w: at node %q", ErrCyclicHierarchy, node.Name)
	}
	visiting[index] = true
	defer delete(visiting, index)

	pose, err := imp.bindPose(index)
	if err != nil {
		return skeleton.Joint{}, err
	}

	joint := skeleton.Joint{Name: node.Name, Transform: pose}
	if len(node.Children) > 0 {
		joint.Children = make([]skeleton.Joint, 0, len(node.Children))
	}
	for _, c := range node.Children {
		child, err := imp.importNode(c, visiting)
		if err != nil {
			return skeleton.Joint{}, err
		}
		joint.Children = append(joint.Children, child)
	}
	return joint, nil
}

// bindPose returns the local rest transform of a node. Absent properties
// take their glTF defaults. A matrix is decomposed, unless the node is
// animated: channels replace TRS properties, which a matrix does not have.
func (imp *Importer) bindPose(index int) (skeleton.Transform, error) {
	node := &imp.doc.Nodes[index]

	if node.Matrix != nil {
		if imp.animated[index] {
			return skeleton.Transform{}, fmt.Errorf("%w: node %q", ErrAnimatedMatrix, node.Name)
		}
		m := math.Mat4(*node.Matrix)
		t, r, s := m.Decompose()
		if !math.FromTRS(t, r, s).ApproxEqual(m, matrixTolerance*magnitude(m)) {
			imp.log.Warn("matrix shear dropped", zap.String("node", node.Name))
		}
		return skeleton.Transform{Translation: t, Rotation: r, Scale: s}, nil
	}

	pose := skeleton.IdentityTransform()
	if node.Translation != nil {
		pose.Translation = math.Vec3FromArray(*node.Translation)
	}
	if node.Rotation != nil {
		pose.Rotation = math.QuatFromArray(*node.Rotation)
	}
	if node.Scale != nil {
		pose.Scale = math.Vec3FromArray(*node.Scale)
	}
	return pose, nil
}

// matrixTolerance is the relative error allowed when recomposing a
// decomposed node matrix.
const matrixTolerance = 1e-4

// magnitude returns the largest absolute element of m, at least 1.
func magnitude(m math.Mat4) float32 {
	mag := float32(1)
	for _, v := range m {
		mag = max(mag, v, -v)
	}
	return mag
}
