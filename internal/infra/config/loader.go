// Package config loads incidentctl configuration from TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/tbuendia/incidentctl/internal/domain"
)

// Loader loads configuration from TOML files. The local file in the data
// directory takes precedence over the global one.
type Loader struct {
	dataDir       string // Data directory holding the local config file
	globalConfDir string // Global config directory (e.g. ~/.config/incidentctl)
}

// NewLoader creates a new Loader.
func NewLoader(dataDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a Loader with a custom global config
// directory. This is useful for testing.
func NewLoaderWithGlobalDir(dataDir, globalConfDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "incidentctl")
}

// Load returns the merged configuration: defaults, overridden by the
// global file, overridden by the local file. Missing files are fine.
func (l *Loader) Load() (*domain.Config, error) {
	base := domain.NewDefaultConfig()

	if l.globalConfDir != "" {
		global, err := l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if global != nil {
			mergeConfig(base, global)
		}
	}

	local, err := l.loadFile(filepath.Join(l.dataDir, domain.ConfigFileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if local != nil {
		mergeConfig(base, local)
	}

	return base, nil
}

func (l *Loader) loadFile(path string) (*domain.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg domain.Config
	if err := toml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// mergeConfig overlays non-zero fields of override onto base.
func mergeConfig(base, override *domain.Config) {
	if override.Storage.Dir != "" {
		base.Storage.Dir = override.Storage.Dir
	}
	if override.Storage.MaxBackups != 0 {
		base.Storage.MaxBackups = override.Storage.MaxBackups
	}
	if override.Escalation.Critical != 0 {
		base.Escalation.Critical = override.Escalation.Critical
	}
	if override.Escalation.High != 0 {
		base.Escalation.High = override.Escalation.High
	}
	if override.Escalation.Medium != 0 {
		base.Escalation.Medium = override.Escalation.Medium
	}
	if override.Escalation.Low != 0 {
		base.Escalation.Low = override.Escalation.Low
	}
	if override.Escalation.CriticalGrace != 0 {
		base.Escalation.CriticalGrace = override.Escalation.CriticalGrace
	}
	if override.Escalation.SweepOnStart {
		base.Escalation.SweepOnStart = true
	}
	if override.Log.Level != "" {
		base.Log.Level = override.Log.Level
	}
}
