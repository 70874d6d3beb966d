package stats

import (
	"encoding/json"
	"io"
	"os"

	"github.com/jthierer/bubblepack/pkg/errors"
)

// frameColumn is the on-disk representation of one column. Frames are
// serialized as an ordered column list rather than a JSON object so that
// column order survives a round trip.
type frameColumn struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

type frameFile struct {
	Columns []frameColumn `json:"columns"`
}

// MarshalJSON encodes the frame as {"columns": [{"name", "values"}, ...]}
// in insertion order.
func (f *Frame) MarshalJSON() ([]byte, error) {
	ff := frameFile{Columns: make([]frameColumn, 0, len(f.names))}
	for _, name := range f.names {
		ff.Columns = append(ff.Columns, frameColumn{Name: name, Values: f.columns[name]})
	}
	return json.Marshal(ff)
}

// UnmarshalJSON decodes the column-list representation produced by
// MarshalJSON, replacing any existing contents.
func (f *Frame) UnmarshalJSON(data []byte) error {
	var ff frameFile
	if err := json.Unmarshal(data, &ff); err != nil {
		return err
	}
	f.names = nil
	f.columns = make(map[string][]float64)
	for _, col := range ff.Columns {
		f.AddColumn(col.Name, col.Values)
	}
	return nil
}

// ReadFrame decodes a frame from r.
func ReadFrame(r io.Reader) (*Frame, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "failed to read frame")
	}
	f := NewFrame()
	if err := json.Unmarshal(data, f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "failed to parse frame JSON")
	}
	return f, nil
}

// LoadFrameFile reads a frame from a JSON file on disk.
func LoadFrameFile(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "frame file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "failed to open %s", path)
	}
	defer file.Close()
	return ReadFrame(file)
}
