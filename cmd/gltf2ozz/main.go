// gltf2ozz converts glTF skeletons and animations into runtime rigs.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/Faultbox/gltfrig/internal/config"
	"github.com/Faultbox/gltfrig/internal/importer"
	"github.com/Faultbox/gltfrig/internal/logger"
	"github.com/Faultbox/gltfrig/pkg/skeleton"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	if command == "help" || command == "-h" || command == "--help" {
		printUsage()
		return
	}

	// A config next to the converted file takes priority over shared ones.
	var input string
	if command != "config" && len(args) > 0 {
		input = args[0]
	}
	cfg, err := config.Load(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	logger.Debug("config loaded",
		zap.String("source", cfg.Source),
		zap.Float32("sampling_rate", cfg.Import.SamplingRate),
		zap.Int("scene", cfg.Import.Scene),
		zap.String("out", cfg.Output.Dir))

	switch command {
	case "info":
		err = withFile(cfg, args, cmdInfo)
	case "skeleton", "skel":
		err = withFile(cfg, args, cmdSkeleton)
	case "animations", "anims":
		err = withFile(cfg, args, cmdAnimations)
	case "export", "x":
		err = withFile(cfg, args, cmdExport)
	case "config":
		err = cmdConfig(cfg, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func printUsage() {
	fmt.Println(`gltf2ozz - glTF skeleton and animation converter

Usage:
  gltf2ozz [flags] <command> [arguments]

Commands:
  info <file>        Show scenes, skins and animations of a glTF file
  skeleton <file>    Print the imported joint hierarchy
  animations <file>  Import every animation and print a summary
  export <file>      Write skeleton and animations as YAML to the output dir
  config [path]      Write the effective configuration

Flags:
  -config <path>  Config file (default: <file>.gltfrig.yaml or gltfrig.yaml
                  next to the input, ./gltfrig.yaml, then user config dir)
  -rate <hz>      Cubic spline sampling rate (0 = 30 Hz)
  -scene <index>  Scene to import the skeleton from
  -out <dir>      Output directory
  -log <path>     Log file
  -debug          Enable debug logging

Examples:
  gltf2ozz info character.glb
  gltf2ozz -rate 60 export character.gltf
  gltf2ozz -out build/rigs export character.glb`)
}

// withFile opens the glTF file named by args and runs fn on a session over
// it.
func withFile(cfg *config.Config, args []string, fn func(*config.Config, *importer.Importer, string) error) error {
	if len(args) < 1 {
		return errors.New("missing glTF file argument")
	}
	path := args[0]
	if len(args) > 1 {
		logger.Warn("ignoring extra arguments", zap.Strings("args", args[1:]))
	}

	opts := []importer.Option{importer.WithLogger(logger.Named("importer"))}
	if cfg.Import.Scene >= 0 {
		opts = append(opts, importer.WithScene(cfg.Import.Scene))
	}

	imp, err := importer.Load(path, opts...)
	if err != nil {
		return err
	}
	logger.Debug("session opened", zap.String("path", path), zap.Stringer("session", imp.Session()))
	return fn(cfg, imp, path)
}

func cmdInfo(_ *config.Config, imp *importer.Importer, path string) error {
	doc := imp.Document()

	fmt.Printf("File:       %s\n", path)
	fmt.Printf("Generator:  %s\n", doc.Asset.Generator)
	fmt.Printf("Scenes:     %d (default %d)\n", len(doc.Scenes), doc.DefaultScene())
	fmt.Printf("Nodes:      %d\n", len(doc.Nodes))
	fmt.Printf("Skins:      %d\n", len(doc.Skins))
	fmt.Printf("Animations: %d\n", len(doc.Animations))

	var size uint64
	for i := range doc.Buffers {
		size += uint64(len(doc.Buffers[i].Data))
	}
	fmt.Printf("Buffers:    %d (%s)\n", len(doc.Buffers), humanize.Bytes(size))
	fmt.Println()

	for i := range doc.Skins {
		skin := &doc.Skins[i]
		root := "(none)"
		if r, ok := importer.SkinRoot(doc, skin); ok {
			root = doc.Nodes[r].Name
		}
		fmt.Printf("  skin %-20s joints %-4d root %s\n", skin.Name, len(skin.Joints), root)
	}
	for i := range doc.Animations {
		a := &doc.Animations[i]
		fmt.Printf("  anim %-20s channels %-4d samplers %d\n", a.Name, len(a.Channels), len(a.Samplers))
	}
	return nil
}

func cmdSkeleton(_ *config.Config, imp *importer.Importer, _ string) error {
	skel, err := imp.ImportSkeleton(importer.NodeTypes{Skeleton: true})
	if err != nil {
		return err
	}

	depth := make(map[*skeleton.Joint]int)
	skel.Walk(func(j, parent *skeleton.Joint) bool {
		if parent != nil {
			depth[j] = depth[parent] + 1
		}
		t := j.Transform
		fmt.Printf("%s%s  t(%.3g %.3g %.3g) r(%.3g %.3g %.3g %.3g) s(%.3g %.3g %.3g)\n",
			strings.Repeat("  ", depth[j]), j.Name,
			t.Translation.X, t.Translation.Y, t.Translation.Z,
			t.Rotation.X, t.Rotation.Y, t.Rotation.Z, t.Rotation.W,
			t.Scale.X, t.Scale.Y, t.Scale.Z)
		return true
	})
	fmt.Printf("\n%d joints\n", skel.NumJoints())
	return nil
}

func cmdAnimations(cfg *config.Config, imp *importer.Importer, _ string) error {
	skel, err := imp.ImportSkeleton(importer.NodeTypes{Skeleton: true})
	if err != nil {
		return err
	}

	for _, name := range selectAnimations(cfg, imp) {
		anim, err := imp.ImportAnimation(name, skel, cfg.Import.SamplingRate)
		if err != nil {
			return err
		}
		fmt.Printf("  %-24s duration %6.3fs  tracks %-4d keys %d\n",
			anim.Name, anim.Duration, len(anim.Tracks), anim.NumKeys())
	}
	return nil
}

func cmdExport(cfg *config.Config, imp *importer.Importer, path string) error {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	written, err := export(cfg, imp, base)
	if err != nil {
		return err
	}
	for _, f := range written {
		fmt.Println(f)
	}
	return nil
}

func cmdConfig(cfg *config.Config, args []string) error {
	if len(args) > 0 {
		if err := cfg.SaveTo(args[0]); err != nil {
			return err
		}
		logger.Info("config written", zap.String("path", args[0]))
		return nil
	}

	path, err := cfg.Save()
	if err != nil {
		return err
	}
	logger.Info("config written", zap.String("path", path))
	return nil
}
