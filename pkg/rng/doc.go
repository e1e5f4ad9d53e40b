// Package rng is the math kernel: the linear congruential generator, which
// matches the game bit-for-bit, and a table-based fixed-point reciprocal
// square root whose table is derived offline, so it matches the game only to
// within a 2^-10 relative error, not bit-for-bit. Every layout, gate
// placement, and spawn draw
// in pkg/generator advances through a single *State threaded by pointer; the
// kernel never keeps process-global state.
package rng
