// Package throttle paces outbound byte emission so that a set of
// concurrently active transfers never exceeds a shared byte-per-second
// ceiling, with the available bandwidth split fairly across transfers
// as they come and go.
//
// # Overview
//
// The package consists of three main components:
//
//   - Group: owns the configured byte budget, the set of in-flight
//     channels and the scheduling clock
//   - Channel: buffers the bytes of one transfer and emits them toward
//     its destination writer at the pace the group dictates
//   - Adapters: an http.ResponseWriter wrapper for throttled response
//     bodies, and a paced io.Reader for inbound-side convenience
//
// # Scheduling Strategy
//
// Time is divided into ticks, 1/ticksPerSecond of a second each. On
// every due tick the group splits the second's byte budget across the
// in-flight channels, then splits each channel's share across the
// ticks of the second, using exact integer partitioning (see the
// partition package): no byte of the budget is lost or invented by
// rounding, and over any full second a stable set of channels
// receives exactly bytesPerSecond in total.
//
// Uneven splits leave some channels one byte ahead of others within a
// second. The group rotates which channels those are on every
// completed second, so no channel is systematically favoured.
//
// # Timer Jitter
//
// The clock fires several times per tick and processes a tick only
// once its full duration has elapsed. When the host scheduler delays
// a tick beyond its nominal duration, the allowance of the late tick
// is scaled by the observed delay, so throughput converges back to
// the configured rate instead of decaying under load.
//
// # Unlimited Groups
//
// A group with no byte ceiling does not schedule at all: channel
// writes drain straight to their destination and the clock never
// runs.
//
// # Example Usage
//
//	// Cap aggregate output at 1MB/s across any number of transfers.
//	grp, _ := throttle.NewGroup(throttle.Options{
//		BytesPerSecond: utils.Pointer(int64(1024 * 1024)),
//	})
//	defer grp.Destroy()
//
//	ch, _ := grp.NewChannel(conn)
//	io.Copy(ch, file) // paced to the channel's fair share
//	ch.Close()
//
// # Concurrency
//
// One mutex per group serializes writes, lifecycle transitions and
// tick processing. Channel destinations are written under that mutex
// and therefore must not block; buffering toward a slow sink is the
// caller's concern.
package throttle
