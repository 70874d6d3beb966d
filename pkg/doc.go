// Package pkg provides the core libraries for bubblepack chart generation.
//
// # Overview
//
// Bubblepack turns weighted datasets into circle-packed bubble charts. The
// pkg directory is organized around a three-stage pipeline:
//
//  1. [dataset] - Rows, JSON loading, aggregation and seeded synthesis
//  2. [geom] - The greedy circle-packing algorithm
//  3. [chart] - Layout assembly and SVG/PNG/CSV sinks
//  4. [pipeline] - Orchestration (load → layout → render) with caching
//
// # Quick Start
//
// Load a dataset and render it:
//
//	import (
//	    "context"
//	    "github.com/jthierer/bubblepack/pkg/cache"
//	    "github.com/jthierer/bubblepack/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	result, _ := runner.Execute(context.Background(), pipeline.Options{
//	    Input:   "portfolio.json",
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	svg := result.Artifacts[pipeline.FormatSVG]
//
// # Main Packages
//
// [geom] - Tangent-based greedy packing: each circle is placed against the
// previously placed ones, falling back to expanding rings when no tangent
// position is collision-free.
//
// [dataset] - The sector/asset/investment row model, with gaussian synthesis
// to top up small datasets.
//
// [chart] - Layout types (bubbles with resolved positions and radii), color
// palettes and styles, plus the render sinks: SVG, PNG (via fogleman/gg),
// layout JSON, and RAWGraphs-ready CSV/TSV exports. The sink package also
// renders box plots, scatter plots and correlation heatmaps for the stats
// command.
//
// [stats] - Descriptive statistics, seeded distributions and Pearson
// correlation matrices over named column frames.
//
// [pipeline] - Stage orchestration with content-addressed caching: datasets,
// layouts and artifacts are keyed by input hashes so repeated runs are
// served from cache.
//
// [cache] - Cache backends (file, Redis, null) shared by the CLI and the
// HTTP server.
//
// [config] - TOML configuration with flag overrides.
//
// [errors] - Structured error codes shared across packages.
//
// [observability] - Pluggable pipeline, cache and HTTP hooks.
package pkg
