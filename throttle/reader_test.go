// Copyright © 2025-2026 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package throttle

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	coreerrors "github.com/go-core-stack/throttle/errors"
)

func TestPacedReaderInvalidArguments(t *testing.T) {
	tests := []struct {
		name  string
		rate  int64
		burst int
	}{
		{"zero rate", 0, 10},
		{"negative rate", -5, 10},
		{"zero burst", 100, 0},
		{"negative burst", 100, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPacedReader(context.Background(), bytes.NewReader(nil), tt.rate, tt.burst)
			if err == nil {
				t.Fatalf("expected construction to fail")
			}
			if !coreerrors.IsInvalidArgument(err) {
				t.Fatalf("expected InvalidArgument error, got %v", err)
			}
		})
	}
}

// TestPacedReaderChunking verifies a read larger than the burst is
// capped at the burst size.
func TestPacedReaderChunking(t *testing.T) {
	data := bytes.Repeat([]byte("a"), 200)
	r, err := NewPacedReader(context.Background(), bytes.NewReader(data), 1000, 50)
	if err != nil {
		t.Fatalf("failed to create reader: %v", err)
	}

	buf := make([]byte, 100)
	n, err := r.Read(buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if n > 50 {
		t.Fatalf("expected at most 50 bytes (burst size) per read, got %d", n)
	}
}

func TestPacedReaderEmptyBuffer(t *testing.T) {
	r, err := NewPacedReader(context.Background(), bytes.NewReader([]byte("abc")), 100, 10)
	if err != nil {
		t.Fatalf("failed to create reader: %v", err)
	}
	n, err := r.Read(nil)
	if n != 0 || err != nil {
		t.Fatalf("zero-length read: got (%d, %v), want (0, nil)", n, err)
	}
}

// TestPacedReaderRate reads half a second's worth of bytes and makes
// sure it did not complete instantly.
func TestPacedReaderRate(t *testing.T) {
	data := bytes.Repeat([]byte("a"), 500)
	r, err := NewPacedReader(context.Background(), bytes.NewReader(data), 1000, 100)
	if err != nil {
		t.Fatalf("failed to create reader: %v", err)
	}

	start := time.Now()
	buf := make([]byte, 500)
	n, err := io.ReadFull(r, buf)
	elapsed := time.Since(start)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if n != 500 {
		t.Fatalf("expected to read 500 bytes, got %d", n)
	}
	// At 1000 bytes/sec with a 100-byte burst, 500 bytes should take
	// ~0.4s after the initial burst
	if elapsed < 100*time.Millisecond {
		t.Fatalf("read completed too fast (%v), pacing likely broken", elapsed)
	}
}

func TestPacedReaderContextCancellation(t *testing.T) {
	data := bytes.Repeat([]byte("a"), 1000)
	ctx, cancel := context.WithCancel(context.Background())
	r, err := NewPacedReader(ctx, bytes.NewReader(data), 10, 5)
	if err != nil {
		t.Fatalf("failed to create reader: %v", err)
	}

	cancel()

	buf := make([]byte, 100)
	_, err = r.Read(buf)
	if err == nil {
		t.Fatal("expected error after context cancellation")
	}
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPacedReaderSetRate(t *testing.T) {
	r, err := NewPacedReader(context.Background(), bytes.NewReader([]byte("abc")), 100, 10)
	if err != nil {
		t.Fatalf("failed to create reader: %v", err)
	}
	if err := r.SetRate(0); err == nil {
		t.Fatal("expected SetRate(0) to fail")
	}
	if err := r.SetRate(5000); err != nil {
		t.Fatalf("unexpected SetRate error: %v", err)
	}
}
