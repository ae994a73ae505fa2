package throttle

import (
	"context"
	"net/http"
)

// writeChunkSize bounds how many bytes a single wrapper write queues
// before waiting for the channel to drain, so one large response body
// does not sit fully buffered in memory.
const writeChunkSize = 32 * 1024

type ThrottledResponseWriter interface {
	http.ResponseWriter
	Close() error
}

type twWriter struct {
	ctx  context.Context
	w    http.ResponseWriter
	c    *Channel
	stop func() bool
}

// WrapResponseWriter throttles an HTTP response body through one of
// the group's channels. The returned writer blocks in Write until the
// queued bytes have gone out, giving the handler natural
// backpressure; cancelling ctx aborts the channel and fails any
// in-progress write. Close must be called when the response is done.
func (g *Group) WrapResponseWriter(ctx context.Context, w http.ResponseWriter) (ThrottledResponseWriter, error) {
	c, err := g.NewChannel(flushWriter{w})
	if err != nil {
		return nil, err
	}
	tw := &twWriter{ctx: ctx, w: w, c: c}
	tw.stop = context.AfterFunc(ctx, c.Abort)
	return tw, nil
}

func (w *twWriter) Header() http.Header {
	return w.w.Header()
}

func (w *twWriter) WriteHeader(code int) {
	w.w.WriteHeader(code)
}

// Write queues p in bounded chunks and waits out each chunk's
// emission. When a chunk fails partway the bytes already queued count
// as written even if they never reached the wire; rate enforcement
// takes precedence over byte-level precision here, same as on the
// reader side.
func (w *twWriter) Write(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		chunk := len(p) - written
		if chunk > writeChunkSize {
			chunk = writeChunkSize
		}
		n, err := w.c.Write(p[written : written+chunk])
		written += n
		if err != nil {
			return written, err
		}
		if err := w.c.Flush(w.ctx); err != nil {
			return written, err
		}
	}
	return written, nil
}

func (w *twWriter) Close() error {
	defer w.stop()
	if err := w.c.Close(); err != nil {
		return err
	}
	return w.c.Flush(w.ctx)
}

// flushWriter pushes every emitted chunk out to the client right
// away, reducing buffering latency for streaming responses.
type flushWriter struct {
	w http.ResponseWriter
}

func (fw flushWriter) Write(p []byte) (int, error) {
	n, err := fw.w.Write(p)
	if f, ok := fw.w.(http.Flusher); ok {
		f.Flush()
	}
	return n, err
}
