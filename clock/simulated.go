// Copyright © 2025-2026 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package clock

import (
	"sync"
	"time"
)

// SimulatedClock is a clock whose time changes only when AdvanceTime
// or SetTime is called. The zero value is a clock initialized to the
// zero time.
type SimulatedClock struct {
	mu sync.RWMutex
	t  time.Time
}

func (sc *SimulatedClock) Now() time.Time {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.t
}

// SetTime sets the current time of the clock to the given value.
func (sc *SimulatedClock) SetTime(t time.Time) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.t = t
}

// AdvanceTime moves the current time of the clock forward by the
// supplied duration.
func (sc *SimulatedClock) AdvanceTime(d time.Duration) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.t = sc.t.Add(d)
}
