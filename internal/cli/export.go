package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jthierer/bubblepack/pkg/chart/sink"
	"github.com/jthierer/bubblepack/pkg/dataset"
	"github.com/jthierer/bubblepack/pkg/pipeline"
)

// exportCommand creates the export command, which writes the dataset as
// a delimiter-separated file ready for RAWGraphs-style tools: sectors
// ascending, investments descending within each sector.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output  string
		tsv     bool
		minRows int
		seed    int64
		noSynth bool
	)

	cmd := &cobra.Command{
		Use:   "export <dataset.json>",
		Short: "Export the dataset as CSV or TSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dataset.LoadJSONFile(args[0])
			if err != nil {
				return err
			}
			if err := d.Validate(); err != nil {
				return err
			}
			d = d.Aggregate()
			if !noSynth {
				d = dataset.EnsureMinRows(d, minRows, seed)
			}

			format := "csv"
			render := sink.RenderCSV
			if tsv {
				format = "tsv"
				render = sink.RenderTSV
			}

			data, err := render(d)
			if err != nil {
				return err
			}

			path := outputPath(output, args[0], format)
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}

			printSuccess("Exported %d rows", len(d))
			printFile(path)
			printNewline()
			printInfo("RAWGraphs circle packing — quick mapping:")
			printDetail("Open https://rawgraphs.io/ and choose \"Circle Packing\"")
			printDetail("Hierarchy / Color: sector")
			printDetail("Label: asset")
			printDetail("Size: investment")
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <dataset>.csv)")
	cmd.Flags().BoolVar(&tsv, "tsv", false, "write tab-separated output")
	cmd.Flags().IntVar(&minRows, "min-rows", pipeline.DefaultMinRows, "pad small datasets up to this many rows")
	cmd.Flags().Int64Var(&seed, "seed", pipeline.DefaultSeed, "random seed for synthetic rows")
	cmd.Flags().BoolVar(&noSynth, "no-synth", false, "skip synthetic row generation")

	return cmd
}
