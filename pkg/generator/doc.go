// Package generator turns a (seed, FloorSpec) pair into a frozen layout by
// running the eight-phase build pipeline: initialization, target counts,
// unit selection, placement, cap sealing, gate placement, spawn-point
// population, and finalization. Phase order and every PRNG draw within a
// phase is load-bearing; changing either breaks reproduction of a given
// seed's layout. The pipeline never fails or panics — a pathological seed
// still yields a layout, possibly a visibly malformed one.
package generator
