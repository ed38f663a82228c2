package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/ByLCY/pagedraw/fonts"
	"github.com/ByLCY/pagedraw/renderer"
)

// Backend names accepted in the config file and on the command line.
const (
	BackendCanvas = "canvas"
	BackendGG     = "gg"
)

const appName = "pagedraw"

type Config struct {
	// Logical page width
	Width float64 `yaml:"width,omitempty" json:"width,omitempty"`
	// Logical page height
	Height float64 `yaml:"height,omitempty" json:"height,omitempty"`
	// Pixels per logical unit in the output image
	Scale float64 `yaml:"scale,omitempty" json:"scale,omitempty"`
	// Stroke width in logical units
	LineWidth float64 `yaml:"lineWidth,omitempty" json:"lineWidth,omitempty"`
	// Rendering backend: canvas (default) or gg
	Backend string `yaml:"backend,omitempty" json:"backend,omitempty"`
	// Built-in font name (goregular, gomono, ...) or path to a TTF file
	Font string `yaml:"font,omitempty" json:"font,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Width:     renderer.DefaultPageWidth,
		Height:    renderer.DefaultPageHeight,
		Scale:     renderer.DefaultScale,
		LineWidth: renderer.DefaultLineWidth,
		Backend:   BackendCanvas,
		Font:      fonts.Default,
	}
}

// Load loads the configuration.
// When path is set only that file is read. Otherwise it searches:
// 1. $XDG_CONFIG_HOME/pagedraw/config-{profile}.yml
// 2. $XDG_CONFIG_HOME/pagedraw/config.yml
// If no config file is found, it returns Default().
func Load(path, profile string) (*Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
		return cfg, cfg.Validate()
	}

	var configBasePaths []string
	if profile != "" {
		configBasePaths = append(configBasePaths, filepath.Join(configPath(), fmt.Sprintf("config-%s", profile)))
	}
	configBasePaths = append(configBasePaths, filepath.Join(configPath(), "config"))
	for _, basePath := range configBasePaths {
		for _, ext := range []string{".yml", ".yaml"} {
			p := basePath + ext
			if b, err := os.ReadFile(p); err == nil {
				if err := yaml.Unmarshal(b, cfg); err != nil {
					return nil, fmt.Errorf("failed to unmarshal config: %w", err)
				}
				return cfg, cfg.Validate()
			}
		}
	}
	return cfg, nil
}

// Validate reports values that cannot produce an image.
func (c *Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("page size must not be negative: %gx%g", c.Width, c.Height)
	}
	if c.Scale < 0 {
		return fmt.Errorf("scale must not be negative: %g", c.Scale)
	}
	switch c.Backend {
	case "", BackendCanvas, BackendGG:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendCanvas, BackendGG)
	}
	return nil
}

// RendererOptions resolves the font and returns options for a backend.
func (c *Config) RendererOptions() (renderer.Options, error) {
	data, err := fonts.Load(c.Font)
	if err != nil {
		return renderer.Options{}, err
	}
	return renderer.Options{
		Width:     c.Width,
		Height:    c.Height,
		Scale:     c.Scale,
		LineWidth: c.LineWidth,
		Font:      data,
	}.WithDefaults(), nil
}

// configPath returns the path to the configuration directory.
func configPath() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", appName)
	}
	return filepath.Join(home, ".config", appName)
}
