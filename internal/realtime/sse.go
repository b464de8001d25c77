package realtime

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const DefaultStreamBuffer = 64

type StreamOptions struct {
	// BufferSize is the number of frames queued per connection before new
	// frames are dropped.
	BufferSize int
	// Heartbeat writes a ": ping" comment on this interval. Zero disables it.
	Heartbeat time.Duration
	// Filter, when set, skips events it returns false for.
	Filter func(Event) bool
	// OnDrop is called for each frame dropped on a full buffer.
	OnDrop func(Event)
}

// ServeHTTP streams every broadcast event to one client as
// "data: <json>\n\n" frames until the request context ends. The subscription
// is removed exactly once when the client goes away.
func (r *Registry) ServeHTTP(w http.ResponseWriter, req *http.Request, opts StreamOptions) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported!", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	size := opts.BufferSize
	if size <= 0 {
		size = DefaultStreamBuffer
	}
	outbound := make(chan []byte, size)

	unsubscribe := r.Subscribe(func(ev Event) {
		if opts.Filter != nil && !opts.Filter(ev) {
			return
		}
		raw, err := json.Marshal(ev)
		if err != nil {
			r.log.Warn("Failed to marshal SSE event", "event_type", ev.Type(), "error", err)
			return
		}
		frame := fmt.Appendf(nil, "data: %s\n\n", raw)
		select {
		case outbound <- frame:
		default:
			r.log.Warn("Dropping SSE event; outbound buffer full", "event_type", ev.Type())
			if opts.OnDrop != nil {
				opts.OnDrop(ev)
			}
		}
	})
	defer unsubscribe()

	var heartbeat <-chan time.Time
	if opts.Heartbeat > 0 {
		t := time.NewTicker(opts.Heartbeat)
		defer t.Stop()
		heartbeat = t.C
	}

	ctx := req.Context()
	for {
		select {
		case <-ctx.Done():
			r.log.Debug("SSE client context done", "err", ctx.Err())
			return
		case <-heartbeat:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case frame := <-outbound:
			if _, err := w.Write(frame); err != nil {
				r.log.Debug("SSE write failed", "error", err)
				return
			}
			flusher.Flush()
		}
	}
}
