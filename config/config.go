// Package config manages mergeflow's persisted settings.
//
// Settings live in config.yaml under the paths-resolved config directory.
// Everything here can also be overridden per-run via command-line flags;
// the file just provides durable defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/albertborsos/mergeflow/paths"
)

// Config holds the application configuration
type Config struct {
	// WorkDir is the repository to operate in. Empty means the current
	// working directory at invocation time.
	WorkDir string `yaml:"work_dir,omitempty"`

	// Remote is the remote whose branches are offered for merging.
	Remote string `yaml:"remote,omitempty"`

	// BranchPrefix restricts the source-branch checklist to branches
	// whose name starts with this prefix (e.g. "feature-").
	BranchPrefix string `yaml:"branch_prefix,omitempty"`

	// PrimaryBranches are the candidate names tried, in order, when the
	// repository's default branch cannot be detected from the remote HEAD.
	PrimaryBranches []string `yaml:"primary_branches,omitempty"`

	// NotificationsEnabled turns on a desktop notification when a merge
	// run completes.
	NotificationsEnabled bool `yaml:"notifications_enabled,omitempty"`

	filePath string
}

// Defaults applied when the config file is missing or fields are unset.
const (
	DefaultRemote = "origin"
)

// DefaultPrimaryBranches returns the conventional default-branch candidates.
func DefaultPrimaryBranches() []string {
	return []string{"main", "master"}
}

// Load reads the config from disk, or returns one with defaults if it
// doesn't exist.
func Load() (*Config, error) {
	path, err := paths.ConfigFilePath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from an explicit path. Primarily used by tests.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{filePath: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg.applyDefaults()
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills in zero-value fields. Called after unmarshaling and
// before Validate, which only reads.
func (c *Config) applyDefaults() {
	if c.Remote == "" {
		c.Remote = DefaultRemote
	}
	if len(c.PrimaryBranches) == 0 {
		c.PrimaryBranches = DefaultPrimaryBranches()
	}
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	if c.Remote == "" {
		return fmt.Errorf("remote must not be empty")
	}
	for _, name := range c.PrimaryBranches {
		if name == "" {
			return fmt.Errorf("primary_branches must not contain empty names")
		}
	}
	return nil
}

// Save writes the config back to disk, creating the directory if needed.
func (c *Config) Save() error {
	if c.filePath == "" {
		path, err := paths.ConfigFilePath()
		if err != nil {
			return err
		}
		c.filePath = path
	}

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", c.filePath, err)
	}
	return nil
}
