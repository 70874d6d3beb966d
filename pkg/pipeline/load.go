package pipeline

import (
	"bytes"
	"fmt"
	"os"

	"github.com/jthierer/bubblepack/pkg/dataset"
)

// LoadDataset reads the raw input, validates it, and tops it up with
// synthetic rows if it falls short of opts.MinRows. The returned hash
// identifies the raw input bytes, not the synthesized result, so cache
// keys stay stable across runs with the same file.
func LoadDataset(opts Options) (dataset.Dataset, string, error) {
	raw, err := rawInput(opts)
	if err != nil {
		return nil, "", err
	}
	d, err := loadFromRaw(raw, opts)
	if err != nil {
		return nil, "", err
	}
	return d, inputHash(raw), nil
}

// loadFromRaw parses, validates, and synthesizes from already-read bytes.
func loadFromRaw(raw []byte, opts Options) (dataset.Dataset, error) {
	d, err := dataset.LoadJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	// Duplicate (sector, asset) rows are summed before synthesis so the
	// row count and investment distribution reflect distinct assets.
	d = d.Aggregate()

	if !opts.NoSynth && len(d) < opts.MinRows {
		before := len(d)
		d = dataset.EnsureMinRows(d, opts.MinRows, opts.Seed)
		opts.Logger.Debug("generated synthetic rows",
			"original", before,
			"synthetic", len(d)-before)
	}
	return d, nil
}

func rawInput(opts Options) ([]byte, error) {
	if len(opts.Data) > 0 {
		return opts.Data, nil
	}
	raw, err := os.ReadFile(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return raw, nil
}
