package throttle

import (
	"context"
	"io"

	"golang.org/x/time/rate"

	"github.com/go-core-stack/throttle/errors"
)

// PacedReader caps the rate at which bytes are pulled from a single
// underlying reader. It is a standalone convenience for the inbound
// side of a transfer and takes no part in group scheduling; use a
// group Channel to pace the outbound side.
type PacedReader struct {
	ctx context.Context
	r   io.Reader
	lim *rate.Limiter
}

// NewPacedReader wraps r so reads proceed at bytesPerSecond, with at
// most burst bytes granted to one Read call.
func NewPacedReader(ctx context.Context, r io.Reader, bytesPerSecond int64, burst int) (*PacedReader, error) {
	if bytesPerSecond < 1 {
		return nil, errors.Wrapf(errors.InvalidArgument,
			"bytes per second must be at least 1, got %d", bytesPerSecond)
	}
	if burst < 1 {
		return nil, errors.Wrapf(errors.InvalidArgument,
			"burst must be at least 1, got %d", burst)
	}
	return &PacedReader{
		ctx: ctx,
		r:   r,
		lim: rate.NewLimiter(rate.Limit(bytesPerSecond), burst),
	}, nil
}

// SetRate changes the sustained rate, effective for subsequent reads.
func (r *PacedReader) SetRate(bytesPerSecond int64) error {
	if bytesPerSecond < 1 {
		return errors.Wrapf(errors.InvalidArgument,
			"bytes per second must be at least 1, got %d", bytesPerSecond)
	}
	r.lim.SetLimit(rate.Limit(bytesPerSecond))
	return nil
}

// Read acquires tokens for the request size, capped at the burst,
// before reading. Tokens for a short read are still consumed; the
// over-reservation keeps enforcement simple and bursts impossible.
func (r *PacedReader) Read(p []byte) (int, error) {
	chunk := len(p)
	if chunk > r.lim.Burst() {
		chunk = r.lim.Burst()
	}
	if chunk == 0 {
		return 0, nil
	}
	if err := r.lim.WaitN(r.ctx, chunk); err != nil {
		return 0, err
	}
	return r.r.Read(p[:chunk])
}
