// Copyright © 2025-2026 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package clock

import (
	"testing"
	"time"
)

func TestSimulatedClockZeroValue(t *testing.T) {
	var sc SimulatedClock
	if !sc.Now().IsZero() {
		t.Fatalf("zero value clock should report zero time, got %v", sc.Now())
	}
}

func TestSimulatedClockSetAndAdvance(t *testing.T) {
	ref := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)

	var sc SimulatedClock
	sc.SetTime(ref)
	if got := sc.Now(); !got.Equal(ref) {
		t.Fatalf("Now after SetTime: got %v want %v", got, ref)
	}

	sc.AdvanceTime(1500 * time.Millisecond)
	want := ref.Add(1500 * time.Millisecond)
	if got := sc.Now(); !got.Equal(want) {
		t.Fatalf("Now after AdvanceTime: got %v want %v", got, want)
	}

	sc.AdvanceTime(25 * time.Millisecond)
	want = want.Add(25 * time.Millisecond)
	if got := sc.Now(); !got.Equal(want) {
		t.Fatalf("Now after second AdvanceTime: got %v want %v", got, want)
	}
}

func TestRealClockFollowsSystemTime(t *testing.T) {
	c := RealClock()
	before := time.Now()
	got := c.Now()
	after := time.Now()
	if got.Before(before) || got.After(after) {
		t.Fatalf("RealClock.Now %v outside [%v, %v]", got, before, after)
	}
}
