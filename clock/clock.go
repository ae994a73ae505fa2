// Copyright © 2025-2026 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package clock

import "time"

// Clock is the time source consumed by the throttle scheduler. It is
// an interface so tests can drive scheduling decisions with a
// simulated time that never sleeps.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// RealClock returns a clock that follows the system time.
func RealClock() Clock {
	return realClock{}
}
