// Copyright © 2025-2026 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

// Package partition splits integer quantities into near-equal whole
// parts with no rounding loss or gain.
//
// # Overview
//
// Splitting an integer budget across n consumers, or across n time
// slices, rarely divides evenly. This package answers "how much does
// part i get" such that:
//
//   - The parts sum to exactly the original value
//   - No two parts differ by more than 1
//   - The "extra" units from the remainder are spread evenly across
//     the index space rather than front-loaded
//
// # Why spreading matters
//
// When the index space represents time (one index per scheduling
// tick), clustering the extra units at the start or end of a cycle
// shows up as periodic burstiness on the wire. Spread placement keeps
// the instantaneous rate close to the nominal rate at every point of
// the cycle.
//
// # Determinism
//
// Both Part and Spread are pure functions of their arguments. Any
// index can be queried independently, in any order, and identical
// inputs always produce identical outputs. There is no iteration
// state to carry between calls.
//
// # Example
//
//	// Split 10 units across 4 parts: 3, 2, 3, 2.
//	for i := int64(0); i < 4; i++ {
//		fmt.Println(partition.Part(10, 4, i))
//	}
package partition
