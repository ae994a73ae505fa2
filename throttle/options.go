// Copyright © 2025-2026 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package throttle

import "github.com/go-core-stack/throttle/errors"

const (
	// Unlimited disables throttling for the group when used as the
	// BytesPerSecond option value.
	Unlimited int64 = 0

	// DefaultTicksPerSecond is the scheduling resolution used when
	// the option is left unset.
	DefaultTicksPerSecond = 40
)

// Options carries the group configuration. Fields are pointers so the
// same type serves both construction and partial reconfiguration: a
// nil field keeps the current (or default) value.
type Options struct {
	// BytesPerSecond is the aggregate outbound byte budget shared by
	// all channels of the group. Unlimited (0) disables throttling.
	BytesPerSecond *int64

	// TicksPerSecond is the number of scheduling quanta per second,
	// at least 1.
	TicksPerSecond *int
}

// apply merges the given options into the live group configuration,
// rejecting invalid values before any field is touched. lock held.
func (g *Group) apply(opts Options) error {
	if opts.BytesPerSecond != nil && *opts.BytesPerSecond < 0 {
		return errors.Wrapf(errors.InvalidArgument,
			"bytes per second must not be negative, got %d", *opts.BytesPerSecond)
	}
	if opts.TicksPerSecond != nil && *opts.TicksPerSecond < 1 {
		return errors.Wrapf(errors.InvalidArgument,
			"ticks per second must be at least 1, got %d", *opts.TicksPerSecond)
	}
	if opts.BytesPerSecond != nil {
		g.bytesPerSecond = *opts.BytesPerSecond
	}
	if opts.TicksPerSecond != nil {
		g.ticksPerSecond = *opts.TicksPerSecond
		// lowering the resolution mid-second can strand the tick
		// counter past the new cycle end; fold it into the next
		// second so the partition index stays in range
		if g.tickIndex >= g.ticksPerSecond {
			g.tickIndex = 0
			g.secondIndex++
		}
	}
	return nil
}
