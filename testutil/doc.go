// Package testutil provides testing utilities for dmmap.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating file contents with reproducible
// randomness.
//
// # Random Content Generation
//
//	rng := testutil.NewRNG(seed)
//	buf := make([]byte, 4096)
//	rng.FillBytes(buf)          // pseudo-random bytes
//	data := rng.Bytes(4096)     // allocate and fill
//
// # Deterministic Content
//
//	data := testutil.Pattern(4096) // fixed pattern, no RNG state consumed
package testutil
