// Copyright © 2025-2026 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package throttle

import (
	"time"

	"github.com/go-core-stack/throttle/partition"
)

const (
	// clockOversample is how many times per tick the timer fires.
	// Each firing is a no-op unless a full tick has elapsed, which
	// keeps tick boundaries close to nominal under host timer jitter.
	clockOversample = 5

	// minTimerInterval caps how fast the oversampled timer may fire.
	minTimerInterval = time.Millisecond
)

// tickDuration returns the length of one scheduling quantum. lock held.
func (g *Group) tickDuration() time.Duration {
	return time.Second / time.Duration(g.ticksPerSecond)
}

func (g *Group) timerInterval() time.Duration {
	interval := g.tickDuration() / clockOversample
	if interval < minTimerInterval {
		interval = minTimerInterval
	}
	return interval
}

// startClock transitions the group from idle to ticking: counters are
// reset, the oversampled timer starts, and the first tick fires
// immediately so a fresh transfer does not idle out the first tick
// duration. lock held.
func (g *Group) startClock() {
	g.tickIndex = 0
	g.secondIndex = 0
	g.lastTick = g.clk.Now()
	g.running = true
	g.stop = make(chan struct{})
	g.ticker = time.NewTicker(g.timerInterval())
	go g.run(g.ticker, g.stop)

	g.processTick(1)
	if g.running {
		g.advanceCounters()
	}
}

// stopClock transitions the group back to idle. The run goroutine
// owns the ticker and stops it on the way out. lock held.
func (g *Group) stopClock() {
	if !g.running {
		return
	}
	g.running = false
	close(g.stop)
	g.ticker = nil
	g.tickIndex = 0
	g.secondIndex = 0
	g.lastTick = time.Time{}
}

func (g *Group) run(ticker *time.Ticker, stop chan struct{}) {
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			g.tick(g.clk.Now())
		}
	}
}

// tick is the due check driven by the oversampled timer.
func (g *Group) tick(now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.advance(now)
}

// advance processes one tick if at least a full tick duration has
// elapsed since the last processed one. A late tick is compensated by
// scaling its allowance with the observed delay. lock held.
func (g *Group) advance(now time.Time) {
	if !g.running {
		return
	}
	d := g.tickDuration()
	elapsed := now.Sub(g.lastTick)
	if elapsed < d {
		return
	}
	multiplier := float64(elapsed) / float64(d)

	g.processTick(multiplier)
	if !g.running {
		// finishing the last channel stopped the clock mid-tick,
		// counters are already reset
		return
	}
	g.advanceCounters()
	// move by the observed elapsed time instead of resampling the
	// clock, so catch-up multiplication does not compound drift
	g.lastTick = g.lastTick.Add(elapsed)
}

// processTick computes and dispatches every in-flight channel's byte
// allowance for the current tick. lock held.
//
// The budget is partitioned twice: once across the in-flight channels
// to get each channel's share of the second, once across the ticks of
// the second to get this tick's slice of that share. The channel
// partition is rotated by the completed-second counter so uneven
// splits favour every channel in turn.
func (g *Group) processTick(multiplier float64) {
	for i := 0; i < len(g.inflight); i++ {
		c := g.inflight[i]

		quota := int64(1) << 62
		if g.throttled() {
			n := int64(len(g.inflight))
			rotated := (int64(i) + int64(g.secondIndex)%n) % n
			perSecond := partition.Part(g.bytesPerSecond, n, rotated)
			perTick := partition.Part(perSecond, int64(g.ticksPerSecond), int64(g.tickIndex))
			quota = int64(float64(perTick) * multiplier)
		}

		before := len(g.inflight)
		c.emit(quota)
		if len(g.inflight) < before {
			// the set shrank under us and the next channel now
			// occupies this position, revisit it
			i--
		}
	}
}

// advanceCounters steps the tick index, wrapping into the next
// second. lock held.
func (g *Group) advanceCounters() {
	g.tickIndex++
	if g.tickIndex >= g.ticksPerSecond {
		g.tickIndex = 0
		g.secondIndex++
	}
}
