package throttle

import (
	"context"
	"io"
	"sync"

	"github.com/go-core-stack/throttle/errors"
)

// scheduler is the narrow surface a channel uses to signal its
// lifecycle transitions. Implemented by Group.
type scheduler interface {
	channelStarted(c *Channel)
	channelStopped(c *Channel)
}

// Channel buffers the outbound bytes of one transfer and emits them
// toward its destination at the pace the owning group dictates. It
// implements io.WriteCloser: Write queues bytes and returns
// immediately, Close marks the end of data. A channel is destroyed
// once it has fully drained after Close, on Abort, or with the group;
// any use after that fails with a Closed error.
type Channel struct {
	id    string
	g     *Group
	sched scheduler
	dst   io.Writer

	pending []byte
	cursor  int

	inflight  bool
	ended     bool
	destroyed bool
	discarded bool // destroyed with undelivered bytes in the buffer
	sinkErr   error

	drained *sync.Cond // signalled when the buffer empties or the channel dies
}

// ID returns the channel's identity within the group.
func (c *Channel) ID() string {
	return c.id
}

// Write queues p for paced emission. Under an unlimited budget the
// bytes drain straight through to the destination instead.
func (c *Channel) Write(p []byte) (int, error) {
	g := c.g
	g.mu.Lock()
	defer g.mu.Unlock()
	if c.destroyed {
		return 0, errors.Wrapf(errors.Closed, "channel %s: write after destroy", c.id)
	}
	if c.ended {
		return 0, errors.Wrapf(errors.Closed, "channel %s: write after close", c.id)
	}
	if c.sinkErr != nil {
		return 0, c.sinkErr
	}

	c.pending = append(c.pending, p...)

	if !g.throttled() {
		c.emit(int64(c.buffered()))
		return len(p), c.sinkErr
	}
	if !c.inflight {
		c.inflight = true
		c.sched.channelStarted(c)
	}
	return len(p), nil
}

// Close marks the end of data. The channel completes, and is
// destroyed, once its buffer drains; a channel that never carried
// data completes immediately without ever having been in flight.
// Closing an already destroyed channel is a no-op.
func (c *Channel) Close() error {
	g := c.g
	g.mu.Lock()
	defer g.mu.Unlock()
	if c.destroyed {
		return nil
	}
	c.ended = true
	if c.buffered() == 0 {
		c.teardown()
	}
	return c.sinkErr
}

// Abort immediately destroys the channel, discarding any buffered but
// unsent bytes and releasing its share of the budget for the next
// tick. Aborting twice, or after completion, is a no-op.
func (c *Channel) Abort() {
	g := c.g
	g.mu.Lock()
	defer g.mu.Unlock()
	c.teardown()
}

// Flush blocks until every byte buffered so far has been emitted, the
// channel is destroyed, or the context is cancelled. A channel torn
// down with undelivered bytes still in its buffer fails the flush
// with a Closed error.
func (c *Channel) Flush(ctx context.Context) error {
	g := c.g
	stop := context.AfterFunc(ctx, func() {
		g.mu.Lock()
		c.drained.Broadcast()
		g.mu.Unlock()
	})
	defer stop()

	g.mu.Lock()
	defer g.mu.Unlock()
	for !c.destroyed && c.buffered() > 0 && ctx.Err() == nil {
		c.drained.Wait()
	}
	if c.sinkErr != nil {
		return c.sinkErr
	}
	if c.discarded {
		return errors.Wrapf(errors.Closed,
			"channel %s: destroyed before draining", c.id)
	}
	return ctx.Err()
}

// Buffered returns the number of bytes queued and not yet emitted.
func (c *Channel) Buffered() int {
	c.g.mu.Lock()
	defer c.g.mu.Unlock()
	return c.buffered()
}

// Destroyed reports whether the channel has completed, been aborted,
// or been torn down with its group.
func (c *Channel) Destroyed() bool {
	c.g.mu.Lock()
	defer c.g.mu.Unlock()
	return c.destroyed
}

func (c *Channel) buffered() int {
	return len(c.pending) - c.cursor
}

// emit drains up to max buffered bytes to the destination. Called by
// the scheduler on each tick, and directly on the write path when the
// group is unlimited. lock held.
func (c *Channel) emit(max int64) {
	if c.destroyed || max <= 0 {
		return
	}
	n := int64(c.buffered())
	if n > max {
		n = max
	}
	if n > 0 {
		chunk := c.pending[c.cursor : c.cursor+int(n)]
		c.cursor += int(n)
		if _, err := c.dst.Write(chunk); err != nil {
			c.sinkErr = err
			c.teardown()
			return
		}
	}
	if c.buffered() == 0 {
		c.pending = c.pending[:0]
		c.cursor = 0
		c.drained.Broadcast()
		if c.ended {
			c.teardown()
		}
	}
}

// teardown irrecoverably destroys the channel: buffered bytes are
// dropped, the in-flight slot is released and waiters are woken.
// Idempotent. lock held.
func (c *Channel) teardown() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.discarded = c.buffered() > 0
	c.pending = nil
	c.cursor = 0
	if c.inflight {
		c.inflight = false
		c.sched.channelStopped(c)
	}
	delete(c.g.channels, c.id)
	c.drained.Broadcast()
}
