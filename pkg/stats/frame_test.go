package stats

import (
	"strings"
	"testing"

	"github.com/jthierer/bubblepack/pkg/errors"
)

func TestFrameColumnOrder(t *testing.T) {
	f := NewFrame()
	f.AddColumn("b", []float64{1, 2})
	f.AddColumn("a", []float64{3, 4})
	f.AddColumn("c", []float64{5, 6})

	names := f.Names()
	want := []string{"b", "a", "c"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestFrameReplaceKeepsPosition(t *testing.T) {
	f := NewFrame()
	f.AddColumn("a", []float64{1})
	f.AddColumn("b", []float64{2})
	f.AddColumn("a", []float64{9})

	if f.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", f.Len())
	}
	if f.Names()[0] != "a" {
		t.Errorf("Names()[0] = %q, want %q", f.Names()[0], "a")
	}
	if f.Column("a")[0] != 9 {
		t.Errorf("Column(a)[0] = %v, want 9", f.Column("a")[0])
	}
}

func TestFrameValidate(t *testing.T) {
	tests := []struct {
		name    string
		build   func() *Frame
		wantErr bool
	}{
		{
			name: "valid",
			build: func() *Frame {
				f := NewFrame()
				f.AddColumn("a", []float64{1, 2, 3})
				f.AddColumn("b", []float64{4, 5, 6})
				return f
			},
		},
		{
			name: "single column",
			build: func() *Frame {
				f := NewFrame()
				f.AddColumn("a", []float64{1, 2})
				return f
			},
			wantErr: true,
		},
		{
			name: "length mismatch",
			build: func() *Frame {
				f := NewFrame()
				f.AddColumn("a", []float64{1, 2, 3})
				f.AddColumn("b", []float64{4})
				return f
			},
			wantErr: true,
		},
		{
			name: "empty columns",
			build: func() *Frame {
				f := NewFrame()
				f.AddColumn("a", nil)
				f.AddColumn("b", nil)
				return f
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build().Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidDataset) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidDataset)
			}
		})
	}
}

func TestCorr(t *testing.T) {
	f := NewFrame()
	f.AddColumn("x", []float64{1, 2, 3, 4})
	f.AddColumn("double", []float64{2, 4, 6, 8})
	f.AddColumn("inverse", []float64{8, 6, 4, 2})

	m, err := f.Corr()
	if err != nil {
		t.Fatalf("Corr() error = %v", err)
	}

	if len(m.Names) != 3 {
		t.Fatalf("len(Names) = %d, want 3", len(m.Names))
	}
	for i := range m.Names {
		if m.At(i, i) != 1 {
			t.Errorf("At(%d, %d) = %v, want 1 on the diagonal", i, i, m.At(i, i))
		}
	}
	if got := m.At(0, 1); !almostEqual(got, 1, 1e-12) {
		t.Errorf("corr(x, double) = %v, want 1", got)
	}
	if got := m.At(0, 2); !almostEqual(got, -1, 1e-12) {
		t.Errorf("corr(x, inverse) = %v, want -1", got)
	}
	if got, want := m.At(1, 2), m.At(2, 1); got != want {
		t.Errorf("matrix is not symmetric: %v vs %v", got, want)
	}
}

func TestCorrMatrixWriteCSV(t *testing.T) {
	f := NewFrame()
	f.AddColumn("a", []float64{1, 2, 3})
	f.AddColumn("b", []float64{3, 2, 1})

	m, err := f.Corr()
	if err != nil {
		t.Fatalf("Corr() error = %v", err)
	}

	var sb strings.Builder
	if err := m.WriteCSV(&sb); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[0] != ",a,b" {
		t.Errorf("header = %q, want %q", lines[0], ",a,b")
	}
	if !strings.HasPrefix(lines[1], "a,1,") {
		t.Errorf("row = %q, want prefix %q", lines[1], "a,1,")
	}
}
