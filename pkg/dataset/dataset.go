// Package dataset defines the tabular input format for bubble charts and
// exports: rows of (sector, asset, investment). It covers loading from JSON,
// aggregating duplicate assets, and topping a small dataset up with seeded
// synthetic rows.
package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/jthierer/bubblepack/pkg/errors"
)

// Defaults applied for missing fields during loading.
const (
	DefaultSector = "Other"
	DefaultAsset  = "Asset"
)

// Row is a single dataset record.
type Row struct {
	Sector     string `json:"sector"`
	Asset      string `json:"asset"`
	Investment int64  `json:"investment"`
}

// Dataset is an ordered collection of rows.
type Dataset []Row

// rawRow accepts the loose typing found in real data files: investment may
// arrive as a number or a numeric string.
type rawRow struct {
	Sector     string          `json:"sector"`
	Asset      string          `json:"asset"`
	Investment json.RawMessage `json:"investment"`
}

// LoadJSON reads a dataset from JSON: an array of objects with sector,
// asset, and investment fields. Missing sectors default to "Other", missing
// assets to "Asset", and unparseable investments to 0.
func LoadJSON(r io.Reader) (Dataset, error) {
	var raw []rawRow
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "failed to decode dataset JSON")
	}

	rows := make(Dataset, 0, len(raw))
	for _, rr := range raw {
		row := Row{
			Sector:     rr.Sector,
			Asset:      rr.Asset,
			Investment: coerceInvestment(rr.Investment),
		}
		if row.Sector == "" {
			row.Sector = DefaultSector
		}
		if row.Asset == "" {
			row.Asset = DefaultAsset
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// LoadJSONFile reads a dataset from a JSON file.
func LoadJSONFile(path string) (Dataset, error) {
	if err := errors.ValidateDatasetPath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "dataset file not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "failed to open %s", path)
	}
	defer f.Close()

	d, err := LoadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return d, nil
}

// coerceInvestment converts a raw JSON value to an int64, truncating floats
// and parsing numeric strings. Anything else becomes 0.
func coerceInvestment(raw json.RawMessage) int64 {
	if len(raw) == 0 {
		return 0
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int64(f)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return int64(v)
		}
	}
	return 0
}

// Validate checks every row: sector names must be well-formed and
// investments non-negative.
func (d Dataset) Validate() error {
	for i, row := range d {
		if err := errors.ValidateSectorName(row.Sector); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		if row.Investment < 0 {
			return errors.New(errors.ErrCodeInvalidDataset, "row %d: negative investment %d", i, row.Investment)
		}
	}
	return nil
}

// Aggregate sums the investments of duplicate (sector, asset) pairs,
// preserving first-appearance order.
func (d Dataset) Aggregate() Dataset {
	type key struct{ sector, asset string }

	index := make(map[key]int)
	out := make(Dataset, 0, len(d))
	for _, row := range d {
		k := key{row.Sector, row.Asset}
		if i, ok := index[k]; ok {
			out[i].Investment += row.Investment
			continue
		}
		index[k] = len(out)
		out = append(out, row)
	}
	return out
}

// Sectors returns the distinct sector names in sorted order.
func (d Dataset) Sectors() []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range d {
		if !seen[row.Sector] {
			seen[row.Sector] = true
			out = append(out, row.Sector)
		}
	}
	sort.Strings(out)
	return out
}

// Weights returns the investment values as floats, in row order.
func (d Dataset) Weights() []float64 {
	out := make([]float64, len(d))
	for i, row := range d {
		out[i] = float64(row.Investment)
	}
	return out
}

// SortBySize sorts rows by descending investment, stably, in place. The
// circle packer expects its input largest-first, so this is the canonical
// pre-layout ordering.
func (d Dataset) SortBySize() {
	sort.SliceStable(d, func(i, j int) bool {
		return d[i].Investment > d[j].Investment
	})
}

// SortForExport sorts rows by sector ascending then investment descending,
// stably, in place. This is the presentation ordering used by the CSV/TSV
// exports.
func (d Dataset) SortForExport() {
	sort.SliceStable(d, func(i, j int) bool {
		if d[i].Sector != d[j].Sector {
			return d[i].Sector < d[j].Sector
		}
		return d[i].Investment > d[j].Investment
	})
}
