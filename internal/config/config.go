// Package config handles converter configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// ErrInvalid is wrapped by every configuration validation error.
var ErrInvalid = errors.New("invalid config")

// Config holds all converter settings.
type Config struct {
	Import  ImportConfig  `yaml:"import"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`

	// Source is the file the config was read from, empty for defaults.
	Source string `yaml:"-"`
}

// ImportConfig holds glTF import settings.
type ImportConfig struct {
	SamplingRate float32  `yaml:"sampling_rate"` // Keys per second for cubic splines, 0 for default
	Scene        int      `yaml:"scene"`         // Scene to import, -1 for the document's default
	Animations   []string `yaml:"animations"`    // Animations to export, empty for all
}

// OutputConfig holds export settings.
type OutputConfig struct {
	Dir             string `yaml:"dir"`
	SkeletonSuffix  string `yaml:"skeleton_suffix"`
	AnimationSuffix string `yaml:"animation_suffix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Import: ImportConfig{
			SamplingRate: 0,
			Scene:        -1,
		},
		Output: OutputConfig{
			Dir:             ".",
			SkeletonSuffix:  ".skeleton.yaml",
			AnimationSuffix: ".animation.yaml",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var err error
	if c.Import.SamplingRate < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: import.sampling_rate %v is negative", ErrInvalid, c.Import.SamplingRate))
	}
	if c.Import.Scene < -1 {
		err = multierr.Append(err, fmt.Errorf("%w: import.scene %d", ErrInvalid, c.Import.Scene))
	}
	if c.Output.SkeletonSuffix == "" {
		err = multierr.Append(err, fmt.Errorf("%w: output.skeleton_suffix is empty", ErrInvalid))
	}
	if c.Output.AnimationSuffix == "" {
		err = multierr.Append(err, fmt.Errorf("%w: output.animation_suffix is empty", ErrInvalid))
	}
	if c.Output.SkeletonSuffix != "" && c.Output.SkeletonSuffix == c.Output.AnimationSuffix {
		err = multierr.Append(err, fmt.Errorf("%w: output suffixes must differ", ErrInvalid))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		err = multierr.Append(err, fmt.Errorf("%w: logging.level %q", ErrInvalid, c.Logging.Level))
	}
	return err
}
