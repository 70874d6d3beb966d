package dataset

import (
	"fmt"
	"math/rand"

	"github.com/jthierer/bubblepack/pkg/stats"
)

// Synthesis floor: generated investments never fall below this.
const minSyntheticInvestment = 50_000

// fallbackMeanInvestment seeds the distribution when the dataset is empty.
const fallbackMeanInvestment = 1_000_000

// EnsureMinRows returns d extended with synthetic rows until it has at least
// min rows. Synthetic investments are sampled from a gaussian fitted to the
// existing distribution and sectors are drawn from the existing sector set,
// so the filler blends in with real data. The seed fully determines the
// generated rows.
//
// The input is not modified; if d already has min rows it is returned as is.
func EnsureMinRows(d Dataset, min int, seed int64) Dataset {
	if len(d) >= min {
		return d
	}

	rng := rand.New(rand.NewSource(seed))

	mean := float64(fallbackMeanInvestment)
	std := mean / 6
	if len(d) > 0 {
		weights := d.Weights()
		mean = stats.Mean(weights)
		if s := stats.StdDev(weights); s > 0 {
			std = s
		} else {
			std = max(1, mean/6)
		}
	}

	sectors := d.Sectors()
	if len(sectors) == 0 {
		sectors = []string{DefaultSector}
	}

	out := append(Dataset(nil), d...)
	for i := 1; len(out) < min; i++ {
		sector := sectors[rng.Intn(len(sectors))]
		invest := int64(stats.Normal(rng, mean, std))
		if invest < minSyntheticInvestment {
			invest = minSyntheticInvestment
		}
		out = append(out, Row{
			Sector:     sector,
			Asset:      fmt.Sprintf("%s Synthetic %d", sector, i),
			Investment: invest,
		})
	}
	return out
}
