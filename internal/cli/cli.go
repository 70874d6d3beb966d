// Package cli implements the bubblepack command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jthierer/bubblepack/pkg/buildinfo"
	"github.com/jthierer/bubblepack/pkg/cache"
	"github.com/jthierer/bubblepack/pkg/config"
	"github.com/jthierer/bubblepack/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "bubblepack"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is the --config flag value; empty means auto-discovery.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "bubblepack",
		Short:        "Bubblepack renders investment portfolios as packed bubble charts",
		Long:         `Bubblepack is a CLI tool for turning weighted datasets into circle-packed bubble charts, plus the statistical views (box plots, scatter plots, correlation heatmaps) that usually travel with them.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: bubblepack.toml if present)")

	// Every command reads its logger back out of the context.
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	// Register all subcommands
	root.AddCommand(c.packCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.synthCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config and Runner Factories
// =============================================================================

// loadConfig reads the config file named by --config, or the discovered
// default, on top of built-in defaults.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath)
}

// newRunner creates a pipeline runner for CLI use. The logger travels in
// ctx, placed there by the root command.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, loggerFromContext(ctx)), nil
}

func newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Cache.Backend == "none" {
		return cache.NewNullCache(), nil
	}
	if cfg.Cache.Backend == "redis" {
		store, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
		if err != nil {
			return nil, err
		}
		// Redis failures are transient; retry them before giving up.
		return cache.WithTTL(cache.WithRetry(store), cfg.Cache.TTL.Duration), nil
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	store, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return cache.WithTTL(store, cfg.Cache.TTL.Duration), nil
}

// pipelineOptions maps config values onto pipeline options. Flags are
// applied on top by each command.
func pipelineOptions(cfg config.Config) pipeline.Options {
	labels := cfg.Render.Labels
	legend := cfg.Render.Legend
	return pipeline.Options{
		MinRows:    cfg.Synth.MinRows,
		Seed:       cfg.Synth.Seed,
		CanvasSize: cfg.Canvas.Size,
		Margin:     cfg.Canvas.Margin,
		Formats:    []string{cfg.Render.Format},
		Style:      cfg.Render.Style,
		Palette:    cfg.Render.Palette,
		Scale:      cfg.Render.Scale,
		Labels:     &labels,
		Legend:     &legend,
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/bubblepack/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// outputPath derives the output file path from the --output flag, the
// input path, and the format extension.
func outputPath(output, input, format string) string {
	if output != "" {
		return output
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "." + format
}
