package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the per-directory config file looked up next to the input
// and in the working directory.
const FileName = "gltfrig.yaml"

// Load loads configuration for converting input with priority:
// defaults < file < flags. Without an explicit -config path the file is
// looked up next to input first, see findConfigFile.
func Load(input string) (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile(input)
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
		cfg.Source = configPath
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile returns the first existing config among
//
//	<input dir>/<input name>.gltfrig.yaml
//	<input dir>/gltfrig.yaml
//	./gltfrig.yaml
//	<ConfigDir>/config.yaml
//
// The input candidates are skipped when input is empty.
func findConfigFile(input string) string {
	var candidates []string
	if input != "" {
		dir := filepath.Dir(input)
		base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		candidates = append(candidates,
			filepath.Join(dir, base+"."+FileName),
			filepath.Join(dir, FileName))
	}
	candidates = append(candidates,
		FileName,
		filepath.Join(ConfigDir(), "config.yaml"))

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "gltfrig")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "gltfrig")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "gltfrig")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "gltfrig")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
