package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jthierer/bubblepack/pkg/chart"
)

// layoutCommand creates the layout command, which runs the load and
// layout stages and writes the positioned chart as JSON.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		size    float64
		margin  float64
		minRows int
		seed    int64
		noSynth bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "layout <dataset.json>",
		Short: "Compute a bubble chart layout and write it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), cfg, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			logger := loggerFromContext(cmd.Context())

			opts := pipelineOptions(cfg)
			opts.Input = args[0]
			opts.NoSynth = noSynth
			opts.Logger = logger
			if size != 0 {
				opts.CanvasSize = size
			}
			if margin != 0 {
				opts.Margin = margin
			}
			if minRows != 0 {
				opts.MinRows = minRows
			}
			if seed != 0 {
				opts.Seed = seed
			}

			prog := newProgress(logger)
			d, _, loadHit, err := runner.LoadWithCacheInfo(cmd.Context(), opts)
			if err != nil {
				return err
			}
			l, stats, layoutHit, err := runner.GenerateLayoutWithCacheInfo(cmd.Context(), d, opts)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Packed %d bubbles", len(l.Bubbles)))

			path := outputPath(output, args[0], "layout.json")
			if err := chart.WriteLayoutFile(l, path); err != nil {
				return err
			}

			printSuccess("Layout written")
			printFile(path)
			printChartStats(len(l.Bubbles), stats.Fallbacks, stats.LastResorts, loadHit && layoutHit)
			printNextStep("Render it", fmt.Sprintf("bubblepack render %s", args[0]))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <dataset>.layout.json)")
	cmd.Flags().Float64Var(&size, "size", 0, "canvas size in pixels")
	cmd.Flags().Float64Var(&margin, "margin", 0, "canvas margin in pixels")
	cmd.Flags().IntVar(&minRows, "min-rows", 0, "minimum dataset rows before synthesis")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for synthetic rows")
	cmd.Flags().BoolVar(&noSynth, "no-synth", false, "skip synthetic row generation")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
