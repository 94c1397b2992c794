// Package importer converts a glTF document into a skeleton and its
// animations.
//
// An Importer is a single-threaded conversion session over one document.
// Names are made unique when the session starts, so joints, tracks and
// animations can be matched by name afterwards.
package importer

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/gltfrig/pkg/animation"
	"github.com/Faultbox/gltfrig/pkg/gltf"
)

// Import errors.
var (
	ErrNoScene             = errors.New("importer: no scene found")
	ErrEmptyScene          = errors.New("importer: scene has no nodes")
	ErrNoRoots             = errors.New("importer: no skeleton roots found")
	ErrAnimatedMatrix      = errors.New("importer: animated node uses a matrix transform")
	ErrCyclicHierarchy     = errors.New("importer: node hierarchy contains a cycle")
	ErrAnimationNotFound   = errors.New("importer: animation not found")
	ErrInvalidSamplingRate = errors.New("importer: invalid sampling rate")
	ErrInternal            = errors.New("importer: output failed validation")
	ErrUnsupportedTrack    = errors.New("importer: custom property tracks are not supported for glTF")

	ErrUnknownInterpolation = animation.ErrUnknownInterpolation
	ErrUnknownTargetPath    = animation.ErrUnknownTargetPath
)

// Option configures an Importer.
type Option func(*Importer)

// WithLogger sets the logger used for diagnostics. The default discards
// everything.
func WithLogger(log *zap.Logger) Option {
	return func(imp *Importer) {
		if log != nil {
			imp.log = log
		}
	}
}

// WithScene selects the scene to import the skeleton from instead of the
// document's default scene.
func WithScene(index int) Option {
	return func(imp *Importer) {
		imp.scene = &index
	}
}

// Importer is a conversion session over one glTF document.
type Importer struct {
	doc     *gltf.Document
	log     *zap.Logger
	session uuid.UUID
	scene   *int

	// animated holds the nodes targeted by at least one channel.
	animated map[int]bool

	rateDefaulted bool
}

// New starts a session over doc. Documents built in memory are checked
// first, so the session never follows a dangling index. Scene, node and
// animation names of doc are rewritten to be unique and non-empty; every
// rename is logged.
func New(doc *gltf.Document, opts ...Option) (*Importer, error) {
	if err := doc.Check(); err != nil {
		return nil, err
	}

	imp := &Importer{
		doc:     doc,
		log:     zap.NewNop(),
		session: uuid.New(),
	}
	for _, opt := range opts {
		opt(imp)
	}
	imp.log = imp.log.With(zap.String("session", imp.session.String()))

	for _, r := range doc.FixupNames() {
		imp.log.Info("renamed entity",
			zap.String("kind", r.Kind),
			zap.Int("index", r.Index),
			zap.String("from", r.From),
			zap.String("to", r.To))
	}

	imp.animated = make(map[int]bool)
	for i := range doc.Animations {
		for _, ch := range doc.Animations[i].Channels {
			if ch.Target.Node != nil {
				imp.animated[*ch.Target.Node] = true
			}
		}
	}
	return imp, nil
}

// Load opens the glTF file at path and starts a session over it.
// Files with an extension other than .gltf or .glb are decoded by content.
func Load(path string, opts ...Option) (*Importer, error) {
	opened := &Importer{log: zap.NewNop()}
	for _, opt := range opts {
		opt(opened)
	}

	if !gltf.KnownExtension(path) {
		opened.log.Warn("unknown file extension, detecting format from content", zap.String("path", path))
	}

	doc, err := gltf.Open(path)
	if err != nil {
		return nil, err
	}
	opened.log.Debug("loaded document",
		zap.String("path", path),
		zap.Int("nodes", len(doc.Nodes)),
		zap.Int("animations", len(doc.Animations)))

	return New(doc, opts...)
}

// Document returns the session's document.
func (imp *Importer) Document() *gltf.Document {
	return imp.doc
}

// Session returns the identifier attached to every log entry of the
// session.
func (imp *Importer) Session() uuid.UUID {
	return imp.session
}
