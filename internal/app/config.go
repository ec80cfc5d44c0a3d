package app

import (
	"errors"
	"path/filepath"
)

// Config holds everything an App instance needs for one run.
type Config struct {
	// RecipePath is a .hcl recipe file or a directory of them.
	RecipePath string
	// SourceDir is the fixture checkout the build runs against.
	SourceDir string
	// BuildDir is the CMake build directory.
	BuildDir string
	// ManifestPath is the mepo components.yaml. Empty means
	// <SourceDir>/components.yaml.
	ManifestPath string

	// VariantOverrides are CLI-supplied name=value variant assignments.
	VariantOverrides map[string]string

	LogFormat string
	LogLevel  string

	DryRun    bool
	SkipClone bool

	MepoBin  string
	CMakeBin string
}

// NewConfig validates a Config and fills in derived defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.RecipePath == "" {
		return nil, errors.New("RecipePath is a required configuration field and cannot be empty")
	}
	if cfg.SourceDir == "" {
		cfg.SourceDir = "."
	}
	if cfg.BuildDir == "" {
		cfg.BuildDir = "build"
	}
	if cfg.ManifestPath == "" {
		cfg.ManifestPath = filepath.Join(cfg.SourceDir, "components.yaml")
	}
	return &cfg, nil
}
