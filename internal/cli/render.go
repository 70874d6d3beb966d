package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string  // output file path (or base path for multiple formats)
	formats string  // comma-separated output formats
	size    float64 // canvas size in pixels
	margin  float64 // canvas margin in pixels
	style   string  // visual style: "light" or "dark"
	palette string  // color palette name
	scale   float64 // PNG supersampling factor
	minRows int     // minimum dataset rows before synthesis
	seed    int64   // random seed for synthetic rows
	noSynth bool    // skip synthetic row generation
	labels  bool    // draw bubble labels
	legend  bool    // draw the sector legend
	refresh bool    // bypass the dataset cache
	noCache bool    // disable caching entirely
}

// renderCommand creates the render command, which runs the full
// load → layout → render pipeline.
//
// Default settings come from the config file on top of pipeline
// defaults: 512px canvas, 20px margin, svg format, light style, tab20
// palette, labels and legend on.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{labels: true, legend: true}

	cmd := &cobra.Command{
		Use:   "render [dataset.json]",
		Short: "Render a dataset as a packed bubble chart",
		Long: `Render runs the complete pipeline: load the dataset, top it up with
synthetic rows if needed, pack the bubbles, and write every requested
format. With no argument it opens an interactive picker over the JSON
files in the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			} else {
				selected, err := selectDataset()
				if err != nil {
					return err
				}
				input = selected
			}
			return c.runRender(cmd, input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, json, csv, tsv (comma-separated)")
	cmd.Flags().Float64Var(&opts.size, "size", 0, "canvas size in pixels")
	cmd.Flags().Float64Var(&opts.margin, "margin", 0, "canvas margin in pixels")
	cmd.Flags().StringVar(&opts.style, "style", "", "visual style: light (default), dark")
	cmd.Flags().StringVar(&opts.palette, "palette", "", "color palette: tab20 (default), set2, set3")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG supersampling factor")
	cmd.Flags().IntVar(&opts.minRows, "min-rows", 0, "minimum dataset rows before synthesis")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed for synthetic rows")
	cmd.Flags().BoolVar(&opts.noSynth, "no-synth", false, "skip synthetic row generation")
	cmd.Flags().BoolVar(&opts.labels, "labels", opts.labels, "draw bubble labels")
	cmd.Flags().BoolVar(&opts.legend, "legend", opts.legend, "draw the sector legend")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "reload the dataset even if cached")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	runner, err := c.newRunner(cmd.Context(), cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	pipeOpts := pipelineOptions(cfg)
	pipeOpts.Input = input
	if opts.formats != "" {
		pipeOpts.Formats = parseFormats(opts.formats)
	}
	pipeOpts.NoSynth = opts.noSynth
	pipeOpts.Refresh = opts.refresh
	if cmd.Flags().Changed("labels") {
		pipeOpts.Labels = &opts.labels
	}
	if cmd.Flags().Changed("legend") {
		pipeOpts.Legend = &opts.legend
	}
	pipeOpts.Logger = loggerFromContext(cmd.Context())
	if opts.size != 0 {
		pipeOpts.CanvasSize = opts.size
	}
	if opts.margin != 0 {
		pipeOpts.Margin = opts.margin
	}
	if opts.style != "" {
		pipeOpts.Style = opts.style
	}
	if opts.palette != "" {
		pipeOpts.Palette = opts.palette
	}
	if opts.scale != 0 {
		pipeOpts.Scale = opts.scale
	}
	if opts.minRows != 0 {
		pipeOpts.MinRows = opts.minRows
	}
	if opts.seed != 0 {
		pipeOpts.Seed = opts.seed
	}

	spinner := newSpinnerWithContext(cmd.Context(), fmt.Sprintf("Rendering %s", input))
	spinner.Start()

	result, err := runner.Execute(cmd.Context(), pipeOpts)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Render failed: %v", err))
		return err
	}
	spinner.Stop()

	for _, format := range pipeOpts.Formats {
		path := renderOutputPath(opts.output, input, format, len(pipeOpts.Formats))
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	printSuccess("Rendered %d format(s)", len(pipeOpts.Formats))
	printChartStats(result.Stats.BubbleCount, result.Stats.Fallbacks, result.Stats.LastResorts,
		result.CacheInfo.RenderHit)
	if result.Stats.RowCount > result.Stats.BubbleCount {
		printDetail("Dataset rows: %d", result.Stats.RowCount)
	}
	return nil
}

// renderOutputPath derives one output file path per format. With a single
// format, --output is used verbatim; with several, it acts as a base path.
func renderOutputPath(output, input, format string, formatCount int) string {
	if output == "" {
		return outputPath("", input, format)
	}
	if formatCount == 1 {
		return output
	}
	// With multiple formats the --output value names the base path.
	base := strings.TrimSuffix(output, filepath.Ext(output))
	return base + "." + format
}
