// Copyright © 2025-2026 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package throttle

import (
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/go-core-stack/throttle/clock"
	"github.com/go-core-stack/throttle/errors"
)

// Group distributes one outbound byte budget across its attached
// channels. It owns the live configuration, the ordered in-flight set
// and the scheduling clock; channels read the configuration through
// the group and never mutate it.
type Group struct {
	mu  sync.Mutex
	clk clock.Clock

	bytesPerSecond int64 // Unlimited (0) disables throttling
	ticksPerSecond int

	channels map[string]*Channel // every live channel, keyed by id
	inflight []*Channel          // insertion order, rotation depends on it

	// scheduling state, valid only while running
	tickIndex   int
	secondIndex int
	lastTick    time.Time
	ticker      *time.Ticker
	stop        chan struct{}
	running     bool

	destroyed bool
}

// NewGroup constructs a group with the given configuration. Unset
// options default to an unlimited budget at DefaultTicksPerSecond
// resolution.
func NewGroup(opts Options) (*Group, error) {
	return newGroup(opts, clock.RealClock())
}

func newGroup(opts Options, clk clock.Clock) (*Group, error) {
	g := &Group{
		clk:            clk,
		ticksPerSecond: DefaultTicksPerSecond,
		channels:       make(map[string]*Channel),
	}
	if err := g.apply(opts); err != nil {
		return nil, err
	}
	return g, nil
}

// Configure merges the given options into the live configuration.
// The new values take effect on the next tick; in-flight channels are
// not disturbed.
func (g *Group) Configure(opts Options) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.destroyed {
		return errors.Wrapf(errors.Closed, "throttle group is destroyed")
	}
	if err := g.apply(opts); err != nil {
		return err
	}
	if g.running {
		g.ticker.Reset(g.timerInterval())
	}
	return nil
}

// NewChannel allocates a channel that emits toward dst at the pace
// the group dictates. The channel joins the in-flight set on its
// first write and must be closed or aborted when done.
func (g *Group) NewChannel(dst io.Writer) (*Channel, error) {
	if dst == nil {
		return nil, errors.Wrapf(errors.InvalidArgument, "channel destination must not be nil")
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.destroyed {
		return nil, errors.Wrapf(errors.Closed, "throttle group is destroyed")
	}
	c := &Channel{
		id:    uuid.New().String(),
		g:     g,
		sched: g,
		dst:   dst,
	}
	c.drained = sync.NewCond(&g.mu)
	g.channels[c.id] = c
	return c, nil
}

// Destroy force-destroys every attached channel, discarding their
// buffered bytes, and halts the clock. The group is unusable
// afterwards.
func (g *Group) Destroy() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.destroyed {
		return
	}
	for _, c := range g.channels {
		c.teardown()
	}
	g.stopClock()
	g.destroyed = true
}

// BytesPerSecond returns the current aggregate byte budget,
// Unlimited when throttling is disabled.
func (g *Group) BytesPerSecond() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.bytesPerSecond
}

// TicksPerSecond returns the current scheduling resolution.
func (g *Group) TicksPerSecond() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ticksPerSecond
}

// IsThrottled reports whether the group currently enforces a byte
// budget.
func (g *Group) IsThrottled() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.throttled()
}

// InFlight returns the number of channels currently eligible for a
// byte allowance.
func (g *Group) InFlight() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.inflight)
}

func (g *Group) throttled() bool {
	return g.bytesPerSecond != Unlimited
}

// channelStarted adds a channel to the in-flight set, waking the
// clock when it is the first member. lock held.
func (g *Group) channelStarted(c *Channel) {
	g.inflight = append(g.inflight, c)
	if len(g.inflight) == 1 {
		g.startClock()
	}
}

// channelStopped drops a channel from the in-flight set and stops the
// clock with the last member. Not finding the channel is a no-op so
// teardown paths stay idempotent. lock held.
func (g *Group) channelStopped(c *Channel) {
	for i, cur := range g.inflight {
		if cur != c {
			continue
		}
		g.inflight = append(g.inflight[:i], g.inflight[i+1:]...)
		if len(g.inflight) == 0 {
			g.stopClock()
		}
		return
	}
}
