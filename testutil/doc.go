// Package testutil provides testing utilities for the widget store.
//
// This package is intended for use in tests and benchmarks only.
// It provides seeded generators for widgets and query boxes, and brute-force
// oracles to verify collection reads against.
//
// # Random Widgets
//
//	rng := testutil.NewRNG(seed)
//	req := rng.CreateRequest(100)   // centers in [-100, 100]
//	box := rng.Box(100)             // well-formed box in [-100, 100]²
//
// # Oracles
//
//	want := testutil.Contained(all, box) // z-ordered containment result
package testutil
