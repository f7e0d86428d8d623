package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Loader finds and reads the configuration file.
type Loader struct {
	Version      string // build version; "dev" enables ./.twibbonrc
	OverridePath string // set at link time if needed
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load reads the first configuration file found. Without one it returns
// the defaults.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// GetConfigPath returns the path to the configuration file, or empty string if not found.
func (l *Loader) GetConfigPath() string {
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}

	if l.Version == "dev" {
		wd, _ := os.Getwd()
		local := filepath.Join(wd, ".twibbonrc")
		if _, err := os.Stat(local); err == nil {
			return local
		}
	}

	for _, p := range userPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// SavePath is where "config save" writes: the file in use, or the default
// per-user location.
func (l *Loader) SavePath() (string, error) {
	if p := l.GetConfigPath(); p != "" {
		return p, nil
	}
	paths := userPaths()
	if len(paths) == 0 {
		return "", fmt.Errorf("cannot determine home directory")
	}
	return paths[0], nil
}

// Save writes cfg to path, creating the directory when needed.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(cfg.String()), 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

func userPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return nil
	}
	dir := filepath.Join(home, ".config", "twibbon")
	return []string{
		filepath.Join(dir, "config.rc"),
		filepath.Join(dir, "twibbon.rc"),
	}
}
