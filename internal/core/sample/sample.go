// Package sample contains the pure logic for deterministic row sampling.
// This is part of the Functional Core - no I/O, only pure functions.
package sample

import "math/rand"

// Deterministic returns a uniform random subset of exactly max rows, drawn
// with a PRNG seeded from seed. Given the same input order, max, and seed,
// the result is identical across runs. If the input already fits under the
// cap (or the cap is not positive) the input is returned unchanged.
//
// The subset is produced by a partial Fisher-Yates shuffle over a copy, so
// the input slice is never modified.
func Deterministic[T any](rows []T, max int, seed int64) []T {
	if max <= 0 || len(rows) <= max {
		return rows
	}

	picked := make([]T, len(rows))
	copy(picked, rows)

	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < max; i++ {
		j := i + rng.Intn(len(picked)-i)
		picked[i], picked[j] = picked[j], picked[i]
	}
	return picked[:max]
}
