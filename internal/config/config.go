// Package config loads the optional .archdoc.yml project file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where a project's config is looked up by convention.
const DefaultPath = ".archdoc.yml"

// Config describes a project to the archdoc CLI. Every field has a flag or
// positional-argument equivalent; explicit arguments win when both are given.
type Config struct {
	// IRFiles are serialized IR payloads, in merge order.
	IRFiles []string `yaml:"ir_files"`
	// Root anchors catalog validation (gitignore lookup).
	Root string `yaml:"root"`
	// DocsDir is the persisted documentation tree for tree-strategy drift.
	DocsDir string `yaml:"docs_dir"`
	// ArchitectureFile is the canonical document for document-strategy drift.
	ArchitectureFile string `yaml:"architecture_file"`
	// DriftStrategy is "document" (default) or "tree".
	DriftStrategy string `yaml:"drift_strategy"`
	// Fitness lists the fitness functions to run; empty means all.
	Fitness []string `yaml:"fitness"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		DocsDir:          "docs/architecture",
		ArchitectureFile: "ARCHITECTURE.md",
		DriftStrategy:    "document",
	}
}

// Load reads a YAML config file with strict field checking and fills in
// defaults for anything unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	defaults := Default()
	if cfg.DocsDir == "" {
		cfg.DocsDir = defaults.DocsDir
	}
	if cfg.ArchitectureFile == "" {
		cfg.ArchitectureFile = defaults.ArchitectureFile
	}
	if cfg.DriftStrategy == "" {
		cfg.DriftStrategy = defaults.DriftStrategy
	}

	return cfg, nil
}

// LoadOrDefault loads path when it exists and falls back to defaults when it
// does not. Any other read or parse failure is an error.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}
