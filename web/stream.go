package web

import (
	"net/http"

	"github.com/evetools/killfeed/domain/stream"
)

// StreamTest serves the diagnostic event stream. It emits three ordered
// frames and then holds the connection open until the scheduled close
// fires or the client disconnects. The deferred Close guarantees exactly
// one release on every exit path.
func (h *Handler) StreamTest(w http.ResponseWriter, r *http.Request) {
	s, err := stream.Open(w, h.logger)
	if err != nil {
		writeStatusMessage(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}
	defer s.Close()

	if h.metrics != nil {
		h.metrics.StreamsOpen.Inc()
		defer h.metrics.StreamsOpen.Dec()
	}

	s.CloseAfter(h.streamLifetime)

	frames := []struct {
		event string
		data  string
	}{
		{"connected", `{"status":"listening"}`},
		{"message", `{"text":"stream diagnostics ok"}`},
		{"done", `{"status":"complete"}`},
	}
	for _, f := range frames {
		if err := s.Push(f.event, f.data); err != nil {
			return
		}
		if h.metrics != nil {
			h.metrics.StreamMessages.Inc()
		}
	}

	select {
	case <-s.Done():
	case <-r.Context().Done():
	}
}
