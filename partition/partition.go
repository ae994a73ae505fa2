// Copyright © 2025-2026 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package partition

import "fmt"

// Part returns the share at the given index when value is split into
// parts near-equal whole numbers. The shares over all indexes in
// [0, parts) sum to exactly value, and differ from one another by at
// most 1. Indexes carrying the extra unit from an uneven split are
// spread across the index space, see Spread.
//
// Preconditions: value >= 0, parts >= 1 and 0 <= index < parts. A
// violation is a caller bug and panics.
func Part(value, parts, index int64) int64 {
	if value < 0 {
		panic(fmt.Sprintf("partition: negative value %d", value))
	}
	if parts < 1 {
		panic(fmt.Sprintf("partition: non-positive parts %d", parts))
	}
	if index < 0 || index >= parts {
		panic(fmt.Sprintf("partition: index %d out of range [0, %d)", index, parts))
	}

	lower := value / parts
	remainder := value % parts
	if remainder == 0 {
		return lower
	}

	higher := Class{Count: remainder, Value: lower + 1}
	common := Class{Count: parts - remainder, Value: lower}
	// The class with the smaller population is the one whose slots
	// need spreading. On an exact tie the higher value is treated as
	// scarce.
	if higher.Count <= common.Count {
		return Spread(higher, common, index)
	}
	return Spread(common, higher, index)
}
