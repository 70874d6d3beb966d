package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jthierer/bubblepack/pkg/chart/sink"
	"github.com/jthierer/bubblepack/pkg/errors"
	"github.com/jthierer/bubblepack/pkg/stats"
)

func (c *CLI) statsCommand() *cobra.Command {
	var (
		corrOut    string
		heatmapOut string
		boxplotOut string
		scatterOut string
		xCol, yCol string
		title      string
	)

	cmd := &cobra.Command{
		Use:   "stats <frame.json>",
		Short: "Summarize a column frame and chart it",
		Long: `Print five-number summaries for every column of a frame file (see
"bubblepack synth") and optionally emit a correlation matrix CSV, a
correlation heatmap, a box plot of all columns, or a scatter plot of
two columns.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			frame, err := stats.LoadFrameFile(args[0])
			if err != nil {
				return err
			}
			if err := frame.Validate(); err != nil {
				return err
			}

			printSummaries(frame)

			if corrOut != "" || heatmapOut != "" {
				m, err := frame.Corr()
				if err != nil {
					return err
				}
				if corrOut != "" {
					if err := writeCorrCSV(m, corrOut); err != nil {
						return err
					}
					printFile(corrOut)
				}
				if heatmapOut != "" {
					opts := []sink.HeatmapOption{}
					if title != "" {
						opts = append(opts, sink.WithHeatmapTitle(title))
					}
					data, err := sink.RenderHeatmap(m, opts...)
					if err != nil {
						return err
					}
					if err := os.WriteFile(heatmapOut, data, 0644); err != nil {
						return fmt.Errorf("write %s: %w", heatmapOut, err)
					}
					printFile(heatmapOut)
				}
			}

			if boxplotOut != "" {
				groups := make([]sink.BoxGroup, 0, frame.Len())
				for _, name := range frame.Names() {
					groups = append(groups, sink.BoxGroup{Label: name, Samples: frame.Column(name)})
				}
				opts := []sink.BoxPlotOption{}
				if title != "" {
					opts = append(opts, sink.WithBoxTitle(title))
				}
				data, err := sink.RenderBoxPlot(groups, opts...)
				if err != nil {
					return err
				}
				if err := os.WriteFile(boxplotOut, data, 0644); err != nil {
					return fmt.Errorf("write %s: %w", boxplotOut, err)
				}
				printFile(boxplotOut)
			}

			if scatterOut != "" {
				names := frame.Names()
				if xCol == "" {
					xCol = names[0]
				}
				if yCol == "" {
					yCol = names[1]
				}
				xs, ys := frame.Column(xCol), frame.Column(yCol)
				if xs == nil || ys == nil {
					return errors.New(errors.ErrCodeInvalidInput,
						"scatter columns %q/%q not found in frame", xCol, yCol)
				}
				opts := []sink.ScatterOption{
					sink.WithScatterLabels(xCol, yCol),
					sink.WithScatterStats(),
				}
				if title != "" {
					opts = append(opts, sink.WithScatterTitle(title))
				}
				data, err := sink.RenderScatter(xs, ys, opts...)
				if err != nil {
					return err
				}
				if err := os.WriteFile(scatterOut, data, 0644); err != nil {
					return fmt.Errorf("write %s: %w", scatterOut, err)
				}
				printFile(scatterOut)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&corrOut, "corr", "", "write the correlation matrix CSV to this file")
	cmd.Flags().StringVar(&heatmapOut, "heatmap", "", "write a correlation heatmap PNG to this file")
	cmd.Flags().StringVar(&boxplotOut, "boxplot", "", "write a box plot PNG of all columns to this file")
	cmd.Flags().StringVar(&scatterOut, "scatter", "", "write a scatter plot PNG to this file")
	cmd.Flags().StringVar(&xCol, "x", "", "scatter x column (default: first column)")
	cmd.Flags().StringVar(&yCol, "y", "", "scatter y column (default: second column)")
	cmd.Flags().StringVar(&title, "title", "", "chart title")

	return cmd
}

// printSummaries prints one line of descriptive statistics per column.
func printSummaries(f *stats.Frame) {
	for _, name := range f.Names() {
		values := f.Column(name)
		s := stats.Summary(values)
		printDetail("%-24s n=%-5d mean=%-12.2f min=%-10.2f median=%-10.2f max=%.2f",
			name, len(values), stats.Mean(values), s.Min, s.Median, s.Max)
	}
}

func writeCorrCSV(m stats.CorrMatrix, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()
	if err := m.WriteCSV(file); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
