// Package config loads optional YAML configuration. Precedence is
// CLI flag > repo-local file > global file, resolved by the CLI layer.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape. Pointer fields
// distinguish "unset" from zero values when merging with flags.
type FileConfig struct {
	Patterns *string `yaml:"patterns"`
	Exclude  *string `yaml:"exclude"`
	MaxBytes *int64  `yaml:"max_bytes"`
	Workers  *int    `yaml:"workers"`
	Encoding *string `yaml:"encoding"`
	NoColor  *bool   `yaml:"no_color"`
	FailOn   *string `yaml:"fail_on"`
	Format   *string `yaml:"format"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a config file in the scan root. It supports
// .piiscan.yml/.yaml and piiscan.yml/.yaml.
func LoadLocal(root string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".piiscan.yml", ".piiscan.yaml", "piiscan.yml", "piiscan.yaml"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config from XDG base directory or
// ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "piiscan", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}
