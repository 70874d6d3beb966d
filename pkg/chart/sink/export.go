package sink

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/jthierer/bubblepack/pkg/dataset"
)

// exportColumns is the RAWGraphs circle-packing column mapping: sector maps
// to hierarchy/color, asset to label, investment to size.
var exportColumns = []string{"sector", "asset", "investment"}

// RenderCSV renders the dataset as RAWGraphs-ready CSV: a header row, then
// rows sorted by sector ascending and investment descending. The input is
// not modified.
func RenderCSV(d dataset.Dataset) ([]byte, error) {
	return renderDelimited(d, ',')
}

// RenderTSV renders the same export tab-separated, for tools that mangle
// commas in pasted data.
func RenderTSV(d dataset.Dataset) ([]byte, error) {
	return renderDelimited(d, '\t')
}

func renderDelimited(d dataset.Dataset, comma rune) ([]byte, error) {
	sorted := append(dataset.Dataset(nil), d...)
	sorted.SortForExport()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = comma

	if err := w.Write(exportColumns); err != nil {
		return nil, err
	}
	for _, row := range sorted {
		record := []string{row.Sector, row.Asset, strconv.FormatInt(row.Investment, 10)}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
