// Package geom implements greedy circle packing.
//
// The packer places circles one at a time in input order, never revisiting
// earlier placements. Callers are expected to sort radii largest-first;
// the packer itself does not sort. For each circle the search proceeds in
// three stages:
//
//  1. Tangent search: candidate centers tangent to each already-placed
//     circle, sampled at fixed angles. The first candidate that overlaps
//     nothing wins.
//  2. Expanding ring fallback: candidate centers on rings of growing radius
//     around the origin, capped at a fixed number of attempts.
//  3. Last resort: a position far along the x-axis, recorded without an
//     overlap check, so the packer always terminates with one position per
//     input radius.
//
// The result is a heuristic, order-dependent layout: different input orders
// produce different (still non-overlapping) packings. There is no global
// optimization and no internal randomness, so identical inputs always yield
// identical outputs and concurrent calls are safe.
package geom
