package engine

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/stratum/engine/renderer"
)

type ApplicationConfig struct {
	// The application name used in windowing, if applicable.
	Name string `toml:"name"`
	// One of "debug", "info", "warn", "error".
	LogLevel string `toml:"log_level"`
	// Size of the asset loading worker pool.
	Workers  int            `toml:"workers"`
	Window   WindowConfig   `toml:"window"`
	Renderer RendererConfig `toml:"renderer"`
	Assets   AssetsConfig   `toml:"assets"`
}

type WindowConfig struct {
	// Window starting position x axis, if applicable.
	X int `toml:"x"`
	// Window starting position y axis, if applicable.
	Y int `toml:"y"`
	// Window starting width, if applicable.
	Width int `toml:"width"`
	// Window starting height, if applicable.
	Height int  `toml:"height"`
	VSync  bool `toml:"vsync"`
}

type RendererConfig struct {
	ClearColour    [4]float32 `toml:"clear_colour"`
	MaxTextureSize int        `toml:"max_texture_size"`
}

type AssetsConfig struct {
	Dir       string        `toml:"dir"`
	HotReload bool          `toml:"hot_reload"`
	Shaders   []ShaderAsset `toml:"shaders"`
}

// ShaderAsset is a shader loaded into the shader cache at startup. A failure
// to load one aborts the start.
type ShaderAsset struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// Resolve returns path relative to the assets directory unless it is absolute.
func (c AssetsConfig) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir, path)
}

func DefaultConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Name:     "Stratum",
		LogLevel: "info",
		Workers:  4,
		Window: WindowConfig{
			X:      100,
			Y:      100,
			Width:  1600,
			Height: 900,
			VSync:  true,
		},
		Renderer: RendererConfig{
			ClearColour:    renderer.DefaultClearColor,
			MaxTextureSize: 4096,
		},
		Assets: AssetsConfig{
			Dir: "assets",
		},
	}
}

// LoadConfig reads a TOML config file on top of DefaultConfig.
func LoadConfig(path string) (*ApplicationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *ApplicationConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Renderer.MaxTextureSize < 0 {
		return fmt.Errorf("max_texture_size must not be negative")
	}
	seen := make(map[string]bool, len(c.Assets.Shaders))
	for _, s := range c.Assets.Shaders {
		if s.Name == "" || s.Path == "" {
			return fmt.Errorf("shader entries need a name and a path")
		}
		if seen[s.Name] {
			return fmt.Errorf("shader '%s' is listed twice", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}
