package importer

import (
	"go.uber.org/zap"

	"github.com/Faultbox/gltfrig/pkg/animation"
	"github.com/Faultbox/gltfrig/pkg/skeleton"
)

// NodeProperties lists the custom animatable properties of a node.
// glTF nodes have none.
func (imp *Importer) NodeProperties(node string) []animation.NodeProperty {
	return nil
}

// ImportTrack imports a custom property track. It always fails with
// ErrUnsupportedTrack.
func (imp *Importer) ImportTrack(anim, node, property string, typ animation.PropertyType, skel *skeleton.Skeleton, samplingRate float32) (*animation.UserTrack, error) {
	imp.log.Warn("custom track import is not supported for glTF",
		zap.String("animation", anim),
		zap.String("node", node),
		zap.String("property", property),
		zap.Stringer("type", typ))
	return nil, ErrUnsupportedTrack
}
