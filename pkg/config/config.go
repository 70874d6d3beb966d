// Package config loads bubblepack settings from a TOML file. Flags
// override config values, which override the built-in defaults.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/jthierer/bubblepack/pkg/errors"
)

// DefaultFileName is the config file looked up in the working directory
// and under the user config dir when --config is not given.
const DefaultFileName = "bubblepack.toml"

// Config holds all file-configurable settings.
type Config struct {
	Canvas CanvasConfig `toml:"canvas"`
	Render RenderConfig `toml:"render"`
	Synth  SynthConfig  `toml:"synth"`
	Cache  CacheConfig  `toml:"cache"`
}

// CanvasConfig controls layout geometry.
type CanvasConfig struct {
	Size   float64 `toml:"size"`
	Margin float64 `toml:"margin"`
}

// RenderConfig controls output rendering.
type RenderConfig struct {
	Format  string  `toml:"format"`
	Style   string  `toml:"style"`
	Palette string  `toml:"palette"`
	Scale   float64 `toml:"scale"`
	Labels  bool    `toml:"labels"`
	Legend  bool    `toml:"legend"`
}

// SynthConfig controls synthetic row generation.
type SynthConfig struct {
	MinRows int   `toml:"min_rows"`
	Seed    int64 `toml:"seed"`
}

// CacheConfig selects and tunes the cache backend.
type CacheConfig struct {
	// Backend is "file", "redis", or "none".
	Backend string `toml:"backend"`

	// Dir is the file backend's directory. Empty means a bubblepack
	// subdirectory of the user cache dir.
	Dir string `toml:"dir"`

	// RedisURL is the redis backend's connection URL.
	RedisURL string `toml:"redis_url"`

	// TTL overrides how long entries stay valid across all pipeline
	// stages. Zero keeps the per-stage defaults.
	TTL duration `toml:"ttl"`
}

// duration lets TOML carry values like "24h".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Canvas: CanvasConfig{
			Size:   512,
			Margin: 20,
		},
		Render: RenderConfig{
			Format:  "svg",
			Style:   "light",
			Palette: "tab20",
			Scale:   2.0,
			Labels:  true,
			Legend:  true,
		},
		Synth: SynthConfig{
			MinRows: 15,
			Seed:    42,
		},
		Cache: CacheConfig{
			Backend: "file",
		},
	}
}

// Load reads the config file at path on top of the defaults. An empty
// path searches the standard locations and falls back to pure defaults
// when no file exists; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = findConfigFile()
		if path == "" {
			return cfg, nil
		}
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if explicit && os.IsNotExist(err) {
			return cfg, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to parse config file %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q in %s",
			undecoded[0].String(), path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the pipeline cannot honor.
func (c Config) Validate() error {
	if c.Canvas.Size <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas size must be positive")
	}
	if c.Canvas.Margin < 0 || c.Canvas.Margin*2 >= c.Canvas.Size {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas margin must fit within the canvas")
	}
	if c.Render.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render scale must be positive")
	}
	if c.Synth.MinRows < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "synth min_rows must not be negative")
	}
	switch c.Cache.Backend {
	case "file", "redis", "none":
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"unknown cache backend %q (expected file, redis, or none)", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Cache.RedisURL == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "redis backend requires cache.redis_url")
	}
	return nil
}

// CacheDir resolves the file backend directory, defaulting to the user
// cache dir.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "bubblepack"), nil
}

// findConfigFile checks the working directory, then the user config dir.
func findConfigFile() string {
	if _, err := os.Stat(DefaultFileName); err == nil {
		return DefaultFileName
	}
	if base, err := os.UserConfigDir(); err == nil {
		candidate := filepath.Join(base, "bubblepack", DefaultFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
