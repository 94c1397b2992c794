package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/gltfrig/internal/config"
	"github.com/Faultbox/gltfrig/internal/importer"
	"github.com/Faultbox/gltfrig/pkg/animation"
	"github.com/Faultbox/gltfrig/pkg/skeleton"
)

const rigPath = "../../pkg/gltf/testdata/rig.glb"

func TestExport(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Dir = filepath.Join(t.TempDir(), "out")

	imp, err := importer.Load(rigPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	written, err := export(cfg, imp, "rig")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	want := []string{
		filepath.Join(cfg.Output.Dir, "rig.skeleton.yaml"),
		filepath.Join(cfg.Output.Dir, "rig_walk.animation.yaml"),
	}
	if len(written) != len(want) {
		t.Fatalf("got %v, want %v", written, want)
	}
	for i := range want {
		if written[i] != want[i] {
			t.Errorf("file %d = %s, want %s", i, written[i], want[i])
		}
	}

	data, err := os.ReadFile(want[0])
	if err != nil {
		t.Fatalf("reading skeleton: %v", err)
	}
	var skel skeleton.Skeleton
	if err := yaml.Unmarshal(data, &skel); err != nil {
		t.Fatalf("decoding skeleton: %v", err)
	}
	if got := skel.JointNames(); len(got) != 3 || got[0] != "hips" {
		t.Errorf("got joints %v, want [hips spine node_2]", got)
	}

	data, err = os.ReadFile(want[1])
	if err != nil {
		t.Fatalf("reading animation: %v", err)
	}
	var anim animation.Animation
	if err := yaml.Unmarshal(data, &anim); err != nil {
		t.Fatalf("decoding animation: %v", err)
	}
	if anim.Name != "walk" || anim.Duration != 1 || len(anim.Tracks) != 3 {
		t.Errorf("got animation %q duration %v with %d tracks", anim.Name, anim.Duration, len(anim.Tracks))
	}
}

func TestExportUnknownAnimation(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Dir = filepath.Join(t.TempDir(), "out")
	cfg.Import.Animations = []string{"run"}

	imp, err := importer.Load(rigPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if _, err := export(cfg, imp, "rig"); !errors.Is(err, importer.ErrAnimationNotFound) {
		t.Errorf("error = %v, want ErrAnimationNotFound", err)
	}
	if _, err := os.Stat(cfg.Output.Dir); !os.IsNotExist(err) {
		t.Error("expected no output to be written")
	}
}

func TestFileSafe(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"walk", "walk"},
		{"Armature|Run Fast", "Armature_Run_Fast"},
		{"a/b\\c", "a_b_c"},
		{"cafe\u0301", "caf\u00e9"},
	}
	for _, tt := range tests {
		if got := fileSafe(tt.in); got != tt.want {
			t.Errorf("fileSafe(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
