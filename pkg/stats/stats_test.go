package stats

import (
	"math"
	"math/rand"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestMean(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		want float64
	}{
		{"empty", nil, 0},
		{"single", []float64{5}, 5},
		{"simple", []float64{1, 2, 3, 4}, 2.5},
		{"negative", []float64{-2, 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mean(tt.xs); !almostEqual(got, tt.want, 1e-12) {
				t.Errorf("Mean(%v) = %v, want %v", tt.xs, got, tt.want)
			}
		})
	}
}

func TestStdDev(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		want float64
	}{
		{"empty", nil, 0},
		{"single", []float64{5}, 0},
		{"constant", []float64{3, 3, 3}, 0},
		{"known", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 2.13808993529939},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StdDev(tt.xs); !almostEqual(got, tt.want, 1e-9) {
				t.Errorf("StdDev(%v) = %v, want %v", tt.xs, got, tt.want)
			}
		})
	}
}

func TestQuantile(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}

	tests := []struct {
		name string
		q    float64
		want float64
	}{
		{"min", 0, 1},
		{"q1", 0.25, 2},
		{"median", 0.5, 3},
		{"q3", 0.75, 4},
		{"max", 1, 5},
		{"interpolated", 0.1, 1.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quantile(xs, tt.q); !almostEqual(got, tt.want, 1e-12) {
				t.Errorf("Quantile(%v) = %v, want %v", tt.q, got, tt.want)
			}
		})
	}
}

func TestQuantileUnsortedInput(t *testing.T) {
	xs := []float64{5, 1, 4, 2, 3}
	if got := Quantile(xs, 0.5); got != 3 {
		t.Errorf("Quantile(unsorted, 0.5) = %v, want 3", got)
	}
	// Input must not be mutated.
	if xs[0] != 5 {
		t.Error("Quantile mutated its input")
	}
}

func TestSummary(t *testing.T) {
	s := Summary([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9})

	if s.Min != 1 || s.Max != 9 || s.Median != 5 {
		t.Errorf("Summary = %+v, want min 1, median 5, max 9", s)
	}
	if s.Q1 != 3 || s.Q3 != 7 {
		t.Errorf("Summary quartiles = %v/%v, want 3/7", s.Q1, s.Q3)
	}
	if s.IQR() != 4 {
		t.Errorf("IQR() = %v, want 4", s.IQR())
	}
}

func TestPearson(t *testing.T) {
	tests := []struct {
		name   string
		xs, ys []float64
		want   float64
	}{
		{"perfect positive", []float64{1, 2, 3}, []float64{2, 4, 6}, 1},
		{"perfect negative", []float64{1, 2, 3}, []float64{6, 4, 2}, -1},
		{"zero variance", []float64{1, 1, 1}, []float64{1, 2, 3}, 0},
		{"length mismatch", []float64{1, 2}, []float64{1, 2, 3}, 0},
		{"too short", []float64{1}, []float64{2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Pearson(tt.xs, tt.ys); !almostEqual(got, tt.want, 1e-12) {
				t.Errorf("Pearson = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPearsonLinearWithNoise(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	n := 500
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range xs {
		xs[i] = Normal(rng, 50, 15)
		ys[i] = 2.5*xs[i] + Normal(rng, 0, 20)
	}

	r := Pearson(xs, ys)
	if r < 0.8 {
		t.Errorf("Pearson = %v, want strong positive correlation (>= 0.8)", r)
	}
}

func TestGamma(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	const shape, scale = 5.0, 50.0
	n := 20000
	sum := 0.0
	for i := 0; i < n; i++ {
		v := Gamma(rng, shape, scale)
		if v <= 0 {
			t.Fatalf("Gamma returned non-positive value %v", v)
		}
		sum += v
	}

	// E[Gamma(shape, scale)] = shape*scale = 250; loose tolerance for sampling noise.
	mean := sum / float64(n)
	if !almostEqual(mean, shape*scale, 10) {
		t.Errorf("sample mean = %v, want about %v", mean, shape*scale)
	}
}

func TestGammaShapeBelowOne(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		if v := Gamma(rng, 0.5, 2); v < 0 {
			t.Fatalf("Gamma(0.5, 2) returned negative value %v", v)
		}
	}
}

func TestGammaInvalidParams(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if v := Gamma(rng, 0, 1); v != 0 {
		t.Errorf("Gamma(0, 1) = %v, want 0", v)
	}
	if v := Gamma(rng, 1, -1); v != 0 {
		t.Errorf("Gamma(1, -1) = %v, want 0", v)
	}
}

func TestSamplersDeterministic(t *testing.T) {
	a := rand.New(rand.NewSource(7))
	b := rand.New(rand.NewSource(7))

	for i := 0; i < 100; i++ {
		if Normal(a, 0, 1) != Normal(b, 0, 1) {
			t.Fatal("Normal is not deterministic for equal seeds")
		}
	}
}
