package stats

import (
	"math"
	"math/rand"
)

// Normal samples a normally distributed value with the given mean and
// standard deviation.
func Normal(rng *rand.Rand, mean, std float64) float64 {
	return mean + std*rng.NormFloat64()
}

// Uniform samples a uniformly distributed value in [lo, hi).
func Uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

// IntBetween samples a uniformly distributed integer in [lo, hi).
func IntBetween(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo)
}

// Gamma samples a gamma-distributed value with the given shape and scale,
// using the Marsaglia-Tsang squeeze method. Shape values below 1 are boosted
// via the standard power-of-uniform transformation.
func Gamma(rng *rand.Rand, shape, scale float64) float64 {
	if shape <= 0 || scale <= 0 {
		return 0
	}

	if shape < 1 {
		// Boost: Gamma(a) = Gamma(a+1) * U^(1/a).
		u := rng.Float64()
		return Gamma(rng, shape+1, scale) * math.Pow(u, 1/shape)
	}

	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9*d)
	for {
		var x, v float64
		for {
			x = rng.NormFloat64()
			v = 1 + c*x
			if v > 0 {
				break
			}
		}
		v = v * v * v
		u := rng.Float64()
		if u < 1-0.0331*x*x*x*x {
			return d * v * scale
		}
		if math.Log(u) < 0.5*x*x+d*(1-v+math.Log(v)) {
			return d * v * scale
		}
	}
}
