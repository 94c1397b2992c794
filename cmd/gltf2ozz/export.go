package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/gltfrig/internal/config"
	"github.com/Faultbox/gltfrig/internal/importer"
)

// export imports the skeleton and the selected animations of imp and writes
// each as a YAML file to the output directory. Nothing is written unless
// every import succeeds. It returns the paths written.
func export(cfg *config.Config, imp *importer.Importer, base string) ([]string, error) {
	skel, err := imp.ImportSkeleton(importer.NodeTypes{Skeleton: true})
	if err != nil {
		return nil, err
	}

	files := map[string]any{
		base + cfg.Output.SkeletonSuffix: skel,
	}
	order := []string{base + cfg.Output.SkeletonSuffix}

	for _, name := range selectAnimations(cfg, imp) {
		anim, err := imp.ImportAnimation(name, skel, cfg.Import.SamplingRate)
		if err != nil {
			return nil, err
		}
		file := base + "_" + fileSafe(name) + cfg.Output.AnimationSuffix
		if _, dup := files[file]; dup {
			return nil, fmt.Errorf("animation %q: output file %s already used", name, file)
		}
		files[file] = anim
		order = append(order, file)
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return nil, err
	}

	written := make([]string, 0, len(order))
	for _, file := range order {
		data, err := yaml.Marshal(files[file])
		if err != nil {
			return written, fmt.Errorf("encoding %s: %w", file, err)
		}
		path := filepath.Join(cfg.Output.Dir, file)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// selectAnimations returns the configured animation names, or every
// animation of the document when none are configured.
func selectAnimations(cfg *config.Config, imp *importer.Importer) []string {
	if len(cfg.Import.Animations) > 0 {
		return cfg.Import.Animations
	}
	return imp.AnimationNames()
}

// fileSafe replaces characters that cannot appear in a file name. Names are
// composed (NFC) first so the same animation name always maps to the same
// file.
func fileSafe(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, norm.NFC.String(name))
}
