package stats

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/jthierer/bubblepack/pkg/errors"
)

// Frame is an ordered collection of named float columns. It is the working
// representation for correlation analysis: column order is preserved so the
// emitted matrix is stable.
type Frame struct {
	names   []string
	columns map[string][]float64
}

// NewFrame creates an empty frame.
func NewFrame() *Frame {
	return &Frame{columns: make(map[string][]float64)}
}

// AddColumn appends a named column. Re-adding an existing name replaces its
// values but keeps the original position.
func (f *Frame) AddColumn(name string, values []float64) {
	if _, ok := f.columns[name]; !ok {
		f.names = append(f.names, name)
	}
	f.columns[name] = append([]float64(nil), values...)
}

// Names returns the column names in insertion order.
func (f *Frame) Names() []string {
	return append([]string(nil), f.names...)
}

// Column returns the values of a named column, or nil if absent.
func (f *Frame) Column(name string) []float64 {
	return f.columns[name]
}

// Len returns the number of columns.
func (f *Frame) Len() int { return len(f.names) }

// Validate checks that the frame is usable for correlation: at least two
// columns, all of equal non-zero length.
func (f *Frame) Validate() error {
	if len(f.names) < 2 {
		return errors.New(errors.ErrCodeInvalidDataset, "correlation requires at least 2 columns, got %d", len(f.names))
	}
	n := len(f.columns[f.names[0]])
	if n == 0 {
		return errors.New(errors.ErrCodeInvalidDataset, "column %q is empty", f.names[0])
	}
	for _, name := range f.names[1:] {
		if len(f.columns[name]) != n {
			return errors.New(errors.ErrCodeInvalidDataset,
				"column %q has %d rows, expected %d", name, len(f.columns[name]), n)
		}
	}
	return nil
}

// CorrMatrix is a square Pearson correlation matrix with labeled axes.
type CorrMatrix struct {
	Names  []string
	Values [][]float64 // Values[i][j] = correlation of Names[i] and Names[j]
}

// At returns the correlation between the i-th and j-th columns.
func (m CorrMatrix) At(i, j int) float64 { return m.Values[i][j] }

// Corr computes the pairwise Pearson correlation matrix of the frame.
func (f *Frame) Corr() (CorrMatrix, error) {
	if err := f.Validate(); err != nil {
		return CorrMatrix{}, err
	}

	n := len(f.names)
	m := CorrMatrix{
		Names:  f.Names(),
		Values: make([][]float64, n),
	}
	for i := range m.Values {
		m.Values[i] = make([]float64, n)
		for j := range m.Values[i] {
			if i == j {
				m.Values[i][j] = 1
				continue
			}
			m.Values[i][j] = Pearson(f.columns[f.names[i]], f.columns[f.names[j]])
		}
	}
	return m, nil
}

// WriteCSV writes the matrix in the conventional layout: an empty corner
// cell, column names across the top, and one labeled row per column.
func (m CorrMatrix) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := append([]string{""}, m.Names...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, name := range m.Names {
		row := make([]string, 0, len(m.Names)+1)
		row = append(row, name)
		for j := range m.Names {
			row = append(row, strconv.FormatFloat(m.Values[i][j], 'g', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
