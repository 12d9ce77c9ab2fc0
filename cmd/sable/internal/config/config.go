// Package config loads the optional sable.yaml project configuration and
// resolves defaults from the enclosing Go module.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// Config represents the optional sable.yaml configuration.
type Config struct {
	App   AppConfig   `yaml:"app"`
	Debug DebugConfig `yaml:"debug"`
}

// AppConfig contains application metadata and window defaults.
type AppConfig struct {
	Name         string  `yaml:"name,omitempty"`
	WindowTitle  string  `yaml:"window_title,omitempty"`
	WindowWidth  float64 `yaml:"window_width,omitempty"`
	WindowHeight float64 `yaml:"window_height,omitempty"`
}

// DebugConfig contains debug-server settings.
type DebugConfig struct {
	Port int `yaml:"port,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root         string
	ModulePath   string
	AppName      string
	WindowTitle  string
	WindowWidth  float64
	WindowHeight float64
	DebugPort    int
}

// LoadOptional reads sable.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, "sable.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read sable.yaml: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse sable.yaml: %w", err)
	}

	return &cfg, nil
}

// Resolve loads sable.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	title := strings.TrimSpace(cfg.App.WindowTitle)
	if title == "" {
		title = appName
	}

	width := cfg.App.WindowWidth
	if width <= 0 {
		width = 800
	}
	height := cfg.App.WindowHeight
	if height <= 0 {
		height = 600
	}

	return &Resolved{
		Root:         dir,
		ModulePath:   modulePath,
		AppName:      appName,
		WindowTitle:  title,
		WindowWidth:  width,
		WindowHeight: height,
		DebugPort:    cfg.Debug.Port,
	}, nil
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	modName, _, ok := module.SplitPathVersion(modulePath)
	if ok {
		parts := strings.Split(modName, "/")
		if len(parts) > 0 {
			base = parts[len(parts)-1]
		}
	}
	return base
}
