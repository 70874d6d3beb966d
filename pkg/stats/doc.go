// Package stats provides the small statistical toolkit behind the chart
// commands: summary statistics, Pearson correlation over named columns, and
// seeded random samplers for synthetic dataset generation.
//
// None of the functions hold package-level random state. Samplers take an
// explicit *rand.Rand so reproducibility is always a caller decision.
package stats
