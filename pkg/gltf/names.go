package gltf

import "strconv"

// Name prefixes used for unnamed entities.
const (
	ScenePrefix     = "scene_"
	NodePrefix      = "node_"
	AnimationPrefix = "animation_"
)

// Rename records a name changed by FixupNames.
type Rename struct {
	Kind  string // "Scene", "Node" or "Animation"
	Index int
	From  string
	To    string
}

// FixupNames makes every name in names non-empty and unique, in place.
//
// An empty name becomes prefix followed by its index. While a name is
// already taken, "_<index>" is appended. Entries are processed in order, so
// an earlier entry always keeps a contested name. The returned slice lists
// the entries that changed; it is empty when names were already valid.
func FixupNames(names []string, prefix string) []Rename {
	seen := make(map[string]struct{}, len(names))
	var renames []Rename
	for i, orig := range names {
		name := orig
		if name == "" {
			name = prefix + strconv.Itoa(i)
		}
		for {
			if _, taken := seen[name]; !taken {
				break
			}
			name += "_" + strconv.Itoa(i)
		}
		seen[name] = struct{}{}

		if name != orig {
			names[i] = name
			renames = append(renames, Rename{Index: i, From: orig, To: name})
		}
	}
	return renames
}

// FixupNames renames scenes, nodes and animations of d so that each
// collection has unique, non-empty names. It must run before any lookup by
// name.
func (d *Document) FixupNames() []Rename {
	var renames []Rename

	names := make([]string, len(d.Scenes))
	for i := range d.Scenes {
		names[i] = d.Scenes[i].Name
	}
	for _, r := range FixupNames(names, ScenePrefix) {
		d.Scenes[r.Index].Name = r.To
		r.Kind = "Scene"
		renames = append(renames, r)
	}

	names = make([]string, len(d.Nodes))
	for i := range d.Nodes {
		names[i] = d.Nodes[i].Name
	}
	for _, r := range FixupNames(names, NodePrefix) {
		d.Nodes[r.Index].Name = r.To
		r.Kind = "Node"
		renames = append(renames, r)
	}

	names = make([]string, len(d.Animations))
	for i := range d.Animations {
		names[i] = d.Animations[i].Name
	}
	for _, r := range FixupNames(names, AnimationPrefix) {
		d.Animations[r.Index].Name = r.To
		r.Kind = "Animation"
		renames = append(renames, r)
	}

	return renames
}
