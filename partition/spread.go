// Copyright © 2025-2026 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package partition

// Class describes one of the two values taking part in a spread: how
// many slots carry the value, and the value itself.
type Class struct {
	Count int64
	Value int64
}

// Spread reports which of the two class values occupies the given
// index when scarce.Count slots of scarce.Value are distributed as
// evenly as possible among common.Count slots of common.Value. The
// span of indexes is [0, scarce.Count+common.Count).
//
// The placement is described by a short list of frequencies. The
// first frequency f1 places a scarce slot at every f1-th index; the
// remaining indexes are renumbered and the next frequency applies to
// them, until the scarce population is exhausted. A frequency list of
// [3] means "every 3rd slot"; [2, 15] means "every 2nd slot, then
// every 15th of what remains".
func Spread(scarce, common Class, index int64) int64 {
	if scarce.Count <= 0 {
		// evenly divisible, nothing to spread
		return common.Value
	}
	for _, f := range frequencies(scarce.Count+common.Count, scarce.Count) {
		if index%f == 0 {
			return scarce.Value
		}
		// renumber within the slots this pass left unclaimed
		index -= index/f + 1
	}
	return common.Value
}

// frequencies computes the placement spacing for count scarce slots
// over a span of slots indexes. Each pass claims one slot every
// ceil(slots/count) indexes; whatever population the pass could not
// satisfy recurses on the unclaimed remainder.
func frequencies(slots, count int64) []int64 {
	var freqs []int64
	for count > 0 {
		f := ceilDiv(slots, count)
		freqs = append(freqs, f)
		claimed := ceilDiv(slots, f)
		slots -= claimed
		count -= claimed
	}
	return freqs
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}
