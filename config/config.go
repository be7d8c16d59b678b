// Package config loads the optional .methodray.yml project file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the per-project configuration file, looked up in the project
// root.
const FileName = ".methodray.yml"

// Config carries the host-tunable settings. Every field is optional; the
// zero value means "use the default".
type Config struct {
	// CacheDir overrides the per-user signature cache directory.
	CacheDir string `yaml:"cache_dir,omitempty"`
	// RBSVersion pins the upstream signature version used for cache
	// validity instead of asking the harvester.
	RBSVersion string `yaml:"rbs_version,omitempty"`
	// Harvester is the command line that produces signature records.
	Harvester []string `yaml:"harvester,omitempty"`
	// Color forces colored output on or off; unset follows the TTY.
	Color *bool `yaml:"color,omitempty"`
}

// Load reads dir/.methodray.yml. A missing file yields the zero config.
func Load(dir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	return &cfg, nil
}
