package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jthierer/bubblepack/pkg/geom"
)

// packCommand creates the pack command for packing raw radii.
func (c *CLI) packCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "pack <radius>...",
		Short: "Pack raw radii and print the resulting positions",
		Long: `Pack places circles with the given radii one by one, in the order
given (sort them largest-first for the tightest result). The first circle
lands at the origin; every later circle tries tangent positions against
the already-placed circles, then an expanding ring around the cluster,
then an overflow row along the x axis.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			radii := make([]float64, len(args))
			for i, arg := range args {
				r, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("invalid radius %q: %w", arg, err)
				}
				radii[i] = r
			}

			packing, err := geom.PackDetailed(radii)
			if err != nil {
				return err
			}

			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(packingJSON{
					Positions:   packing.Positions,
					Fallbacks:   packing.Fallbacks,
					LastResorts: packing.LastResorts,
				})
			}

			for i, p := range packing.Positions {
				fmt.Printf("%d\tr=%g\tx=%.4f\ty=%.4f\n", i, radii[i], p.X, p.Y)
			}
			printChartStats(len(packing.Positions), packing.Fallbacks, packing.LastResorts, false)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print positions as JSON")
	return cmd
}

type packingJSON struct {
	Positions   []geom.Point `json:"positions"`
	Fallbacks   int          `json:"fallbacks"`
	LastResorts int          `json:"last_resorts"`
}
