// Package config loads the application configuration from
// ~/.config/filepanel/config.yaml, merging the file over built-in
// defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/filepanel/filepanel/pkg/explorer/history"
)

type Config struct {
	Directories struct {
		Start string `yaml:"start"` // Directory opened when no state is persisted
	} `yaml:"directories"`
	Listing struct {
		ShowHidden          bool `yaml:"show_hidden"`           // List dotfiles by default
		CaseInsensitiveSort bool `yaml:"case_insensitive_sort"` // Fold case when ordering and matching names
	} `yaml:"listing"`
	History struct {
		Size int `yaml:"size"` // Upper bound on remembered directories
	} `yaml:"history"`
	State struct {
		File string `yaml:"file"` // Override for the persisted-state file path
	} `yaml:"state"`
}

// New returns the default configuration.
func New() *Config {
	cfg := &Config{}
	cfg.History.Size = history.DefaultMaxSize
	return cfg
}

// Load loads configuration from the default location
// (~/.config/filepanel/config.yaml).
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return LoadFile(filepath.Join(home, ".config", "filepanel", "config.yaml"))
}

// LoadFile loads configuration from a specific file path. A missing
// file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if loaded.Directories.Start != "" {
		cfg.Directories.Start = loaded.Directories.Start
	}
	cfg.Listing.ShowHidden = loaded.Listing.ShowHidden
	cfg.Listing.CaseInsensitiveSort = loaded.Listing.CaseInsensitiveSort
	if loaded.History.Size > 0 {
		cfg.History.Size = loaded.History.Size
	}
	if loaded.State.File != "" {
		cfg.State.File = loaded.State.File
	}
	return cfg, nil
}
