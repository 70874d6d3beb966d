package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jthierer/bubblepack/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bubblepack.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Canvas.Size != 512 || cfg.Canvas.Margin != 20 {
		t.Errorf("unexpected canvas defaults: %+v", cfg.Canvas)
	}
	if cfg.Render.Format != "svg" || cfg.Render.Palette != "tab20" {
		t.Errorf("unexpected render defaults: %+v", cfg.Render)
	}
	if cfg.Synth.MinRows != 15 || cfg.Synth.Seed != 42 {
		t.Errorf("unexpected synth defaults: %+v", cfg.Synth)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[canvas]
size = 1024

[render]
format = "png"
scale = 3.0

[cache]
backend = "none"
ttl = "1h"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Canvas.Size != 1024 {
		t.Errorf("canvas size = %v, want 1024", cfg.Canvas.Size)
	}
	// Unset keys keep their defaults.
	if cfg.Canvas.Margin != 20 {
		t.Errorf("canvas margin = %v, want default 20", cfg.Canvas.Margin)
	}
	if cfg.Render.Format != "png" || cfg.Render.Scale != 3.0 {
		t.Errorf("render config = %+v", cfg.Render)
	}
	if cfg.Cache.Backend != "none" {
		t.Errorf("cache backend = %q, want none", cfg.Cache.Backend)
	}
	if cfg.Cache.TTL.Duration != time.Hour {
		t.Errorf("cache ttl = %v, want 1h", cfg.Cache.TTL.Duration)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("expected FILE_NOT_FOUND, got %v", err)
	}
}

func TestLoadUnknownKey(t *testing.T) {
	path := writeConfig(t, `
[canvas]
sizes = 1024
`)
	_, err := Load(path)
	if errors.GetCode(err) != errors.ErrCodeInvalidConfig {
		t.Errorf("expected INVALID_CONFIG for unknown key, got %v", err)
	}
}

func TestLoadMalformedTOML(t *testing.T) {
	path := writeConfig(t, `[canvas`)
	_, err := Load(path)
	if errors.GetCode(err) != errors.ErrCodeInvalidConfig {
		t.Errorf("expected INVALID_CONFIG for malformed file, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"zero size", func(c *Config) { c.Canvas.Size = 0 }, false},
		{"margin swallows canvas", func(c *Config) { c.Canvas.Margin = 256 }, false},
		{"negative scale", func(c *Config) { c.Render.Scale = -1 }, false},
		{"negative min rows", func(c *Config) { c.Synth.MinRows = -1 }, false},
		{"unknown backend", func(c *Config) { c.Cache.Backend = "memcached" }, false},
		{"redis without url", func(c *Config) { c.Cache.Backend = "redis" }, false},
		{"redis with url", func(c *Config) {
			c.Cache.Backend = "redis"
			c.Cache.RedisURL = "redis://localhost:6379/0"
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestCacheDirExplicit(t *testing.T) {
	cfg := Default()
	cfg.Cache.Dir = "/tmp/bubblepack-test"
	dir, err := cfg.CacheDir()
	if err != nil {
		t.Fatalf("CacheDir failed: %v", err)
	}
	if dir != "/tmp/bubblepack-test" {
		t.Errorf("CacheDir = %q", dir)
	}
}
