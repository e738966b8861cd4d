// Package stream implements server-sent event delivery over a live HTTP
// response. A Stream is the exclusive owner of its connection: all writes
// go through Push, and the connection is released by exactly one Close
// regardless of how many paths race to trigger it.
package stream

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrClosed is returned by Push when the stream has already been closed.
// Callers may ignore it: a push racing a close is dropped, not a fault.
var ErrClosed = errors.New("stream closed")

// Stream is one open SSE response channel. States: open, then closed.
// Push and Close are safe to call concurrently; the closed flag is the
// single release gate, flipped by exactly one compare-and-swap.
type Stream struct {
	id      string
	w       http.ResponseWriter
	flusher http.Flusher
	logger  zerolog.Logger

	mu     sync.Mutex // serializes writes to the response
	timer  *time.Timer
	closed atomic.Bool
	done   chan struct{}
}

// Open binds a stream to an in-progress HTTP response, sets the SSE
// framing headers and flushes them. It does not wait for the client;
// it returns as soon as the headers are on the wire.
func Open(w http.ResponseWriter, logger zerolog.Logger) (*Stream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errors.New("response writer does not support flushing")
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	id := uuid.NewString()
	return &Stream{
		id:      id,
		w:       w,
		flusher: flusher,
		logger:  logger.With().Str("stream_id", id).Logger(),
		done:    make(chan struct{}),
	}, nil
}

// ID returns the stream's identifier, used for log correlation.
func (s *Stream) ID() string { return s.id }

// Push writes one event frame and flushes it. Messages are delivered in
// call order. Pushing on a closed stream is a logged no-op returning
// ErrClosed; a write failure (client gone) closes the stream locally.
func (s *Stream) Push(event, data string) error {
	if s.closed.Load() {
		s.logger.Warn().Str("event", event).Msg("push on closed stream dropped")
		return ErrClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check under the lock: a Close may have won the race.
	if s.closed.Load() {
		s.logger.Warn().Str("event", event).Msg("push on closed stream dropped")
		return ErrClosed
	}

	if event != "" {
		if _, err := fmt.Fprintf(s.w, "event: %s\n", event); err != nil {
			s.fail(err)
			return ErrClosed
		}
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		s.fail(err)
		return ErrClosed
	}
	s.flusher.Flush()
	return nil
}

// PushJSON marshals the payload and pushes it as one frame.
func (s *Stream) PushJSON(event string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}
	return s.Push(event, string(b))
}

// Close flushes pending framing and releases the stream. Safe to call
// multiple times and concurrently with an in-flight Push: a racing push
// either completes before the close or observes the closed state and is
// dropped.
func (s *Stream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.release() {
		return
	}
	s.flusher.Flush()
	s.logger.Debug().Msg("stream closed")
}

// CloseAfter schedules an automatic Close, bounding the stream's
// lifetime. The scheduled close honors the same idempotency guarantees
// as an explicit one; only the first CloseAfter on an open stream arms
// the timer.
func (s *Stream) CloseAfter(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() || s.timer != nil {
		return
	}
	s.timer = time.AfterFunc(d, s.Close)
}

// Done is closed once the stream has been released. Handlers block on it
// to keep the response alive until a scheduled or explicit close fires.
func (s *Stream) Done() <-chan struct{} { return s.done }

// Closed reports whether the stream has been released.
func (s *Stream) Closed() bool { return s.closed.Load() }

// fail closes the stream after a transport write error.
// Must be called with mu held.
func (s *Stream) fail(err error) {
	s.logger.Warn().Err(err).Msg("stream write failed, closing")
	s.release()
}

// release performs the single open-to-closed transition.
// Must be called with mu held. Returns false if already closed.
func (s *Stream) release() bool {
	if !s.closed.CompareAndSwap(false, true) {
		return false
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	close(s.done)
	return true
}
