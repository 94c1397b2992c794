package importer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/gltfrig/pkg/animation"
	"github.com/Faultbox/gltfrig/pkg/gltf"
	"github.com/Faultbox/gltfrig/pkg/math"
	"github.com/Faultbox/gltfrig/pkg/skeleton"
)

// AnimationNames returns the names of the document's animations.
func (imp *Importer) AnimationNames() []string {
	names := make([]string, len(imp.doc.Animations))
	for i := range imp.doc.Animations {
		names[i] = imp.doc.Animations[i].Name
	}
	return names
}

// ImportAnimation builds the animation called name for skel.
//
// Tracks follow the depth-first joint order of skel. Channels are matched
// to joints by node name. A joint property no channel animates gets a
// single key at time 0 holding the node's bind pose value. samplingRate is
// only used to resample cubic splines; 0 selects
// animation.DefaultSamplingRate.
func (imp *Importer) ImportAnimation(name string, skel *skeleton.Skeleton, samplingRate float32) (*animation.Animation, error) {
	if samplingRate < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSamplingRate, samplingRate)
	}
	if samplingRate == 0 {
		samplingRate = animation.DefaultSamplingRate
		if !imp.rateDefaulted {
			imp.log.Info("using default sampling rate", zap.Float32("rate", samplingRate))
			imp.rateDefaulted = true
		}
	}

	index := imp.doc.AnimationByName(name)
	if index < 0 {
		return nil, fmt.Errorf("%w: %q", ErrAnimationNotFound, name)
	}
	src := &imp.doc.Animations[index]
	log := imp.log.With(zap.String("animation", name))

	byNode := make(map[string][]*gltf.Channel)
	for i := range src.Channels {
		ch := &src.Channels[i]
		if ch.Target.Node == nil {
			log.Debug("skipping channel without target node", zap.Int("channel", i))
			continue
		}
		node := imp.doc.Nodes[*ch.Target.Node].Name
		byNode[node] = append(byNode[node], ch)
	}

	joints := skel.JointNames()
	anim := &animation.Animation{
		Name:   name,
		Tracks: make([]animation.JointTrack, len(joints)),
	}

	for i, joint := range joints {
		track := &anim.Tracks[i]
		for _, ch := range byNode[joint] {
			duration, err := imp.sampleChannel(src, ch, track, samplingRate)
			if err != nil {
				return nil, fmt.Errorf("animation %q, joint %q: %w", name, joint, err)
			}
			anim.Duration = max(anim.Duration, duration)
		}
		if err := imp.fillBindPose(track, joint); err != nil {
			return nil, fmt.Errorf("animation %q: %w", name, err)
		}
	}

	if err := anim.Validate(); err != nil {
		return nil, fmt.Errorf("%w: animation %q: %w", ErrInternal, name, err)
	}

	log.Info("imported animation",
		zap.Float32("duration", anim.Duration),
		zap.Int("tracks", len(anim.Tracks)),
		zap.Int("keys", anim.NumKeys()))
	return anim, nil
}

// channelSampling carries what the property samplers need from a channel.
type channelSampling struct {
	doc      *gltf.Document
	interp   animation.Interpolation
	output   int
	times    []float32
	duration float32
	rate     float32
}

// propertySamplers writes the keys of a channel into the track property its
// target path selects.
var propertySamplers = map[animation.TargetPath]func(s *channelSampling, track *animation.JointTrack) error{
	animation.Translation: func(s *channelSampling, track *animation.JointTrack) (err error) {
		track.Translations, err = sampleKeys[math.Vec3](s)
		return err
	},
	animation.Rotation: func(s *channelSampling, track *animation.JointTrack) (err error) {
		track.Rotations, err = sampleKeys[math.Quat](s)
		if err == nil && s.interp == animation.CubicSpline {
			animation.NormalizeRotations(track.Rotations)
		}
		return err
	},
	animation.Scale: func(s *channelSampling, track *animation.JointTrack) (err error) {
		track.Scales, err = sampleKeys[math.Vec3](s)
		return err
	},
}

// sampleChannel samples one channel into track and returns the channel's
// duration. Weights channels are skipped with a zero duration.
func (imp *Importer) sampleChannel(src *gltf.Animation, ch *gltf.Channel, track *animation.JointTrack, rate float32) (float32, error) {
	path, err := animation.ParseTargetPath(ch.Target.Path)
	if err != nil {
		return 0, err
	}
	sample, ok := propertySamplers[path]
	if !ok {
		imp.log.Debug("skipping channel", zap.Stringer("path", path))
		return 0, nil
	}

	sampler := &src.Samplers[ch.Sampler]
	interp, err := animation.ParseInterpolation(sampler.Interpolation)
	if err != nil {
		return 0, err
	}

	times, err := gltf.View[float32](imp.doc, sampler.Input)
	if err != nil {
		return 0, fmt.Errorf("%s input: %w", path, err)
	}

	s := &channelSampling{
		doc:      imp.doc,
		interp:   interp,
		output:   sampler.Output,
		times:    times,
		duration: channelDuration(&imp.doc.Accessors[sampler.Input], times),
		rate:     rate,
	}
	if err := sample(s, track); err != nil {
		return 0, fmt.Errorf("%s %s: %w", interp, path, err)
	}
	return s.duration, nil
}

// sampleKeys reads the channel output as T and converts it to keys.
func sampleKeys[T math.Interpolable[T]](s *channelSampling) ([]animation.Key[T], error) {
	values, err := gltf.View[T](s.doc, s.output)
	if err != nil {
		return nil, err
	}

	switch s.interp {
	case animation.Linear:
		return animation.SampleLinear(s.times, values)
	case animation.Step:
		return animation.SampleStep(s.times, values)
	case animation.CubicSpline:
		return animation.SampleCubicSpline(s.times, values, s.duration, s.rate)
	}
	return nil, fmt.Errorf("%w: %v", animation.ErrUnknownInterpolation, s.interp)
}

// channelDuration is the declared maximum of the input accessor, or the
// last timestamp when no maximum is declared or it understates the data.
func channelDuration(input *gltf.Accessor, times []float32) float32 {
	var d float32
	if len(input.Max) > 0 {
		d = input.Max[0]
	}
	if n := len(times); n > 0 {
		d = max(d, times[n-1])
	}
	return d
}

// fillBindPose gives every empty property of track one key at time 0
// holding the bind pose value of the joint's node.
func (imp *Importer) fillBindPose(track *animation.JointTrack, joint string) error {
	pose := skeleton.IdentityTransform()
	if node := imp.doc.NodeByName(joint); node >= 0 {
		var err error
		if pose, err = imp.bindPose(node); err != nil {
			return err
		}
	}

	if len(track.Translations) == 0 {
		track.Translations = []animation.TranslationKey{{Time: 0, Value: pose.Translation}}
	}
	if len(track.Rotations) == 0 {
		track.Rotations = []animation.RotationKey{{Time: 0, Value: pose.Rotation}}
	}
	if len(track.Scales) == 0 {
		track.Scales = []animation.ScaleKey{{Time: 0, Value: pose.Scale}}
	}
	return nil
}
