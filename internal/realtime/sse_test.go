package realtime

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func waitForLen(t *testing.T, r *Registry, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if r.Len() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("registry size: want=%d got=%d", want, r.Len())
}

func openStream(t *testing.T, srv *httptest.Server) (*http.Response, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	if err != nil {
		cancel()
		t.Fatalf("new request: %v", err)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		cancel()
		t.Fatalf("open stream: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp, cancel
}

func readFrame(t *testing.T, br *bufio.Reader) string {
	t.Helper()
	type result struct {
		frame string
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		var sb strings.Builder
		for {
			line, err := br.ReadString('\n')
			if err != nil {
				ch <- result{err: err}
				return
			}
			sb.WriteString(line)
			if line == "\n" {
				ch <- result{frame: sb.String()}
				return
			}
		}
	}()
	select {
	case res := <-ch:
		if res.err != nil {
			t.Fatalf("read frame: %v", res.err)
		}
		return res.frame
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for SSE frame")
	}
	return ""
}

// expectNoFrame fails if anything arrives on br within d.
func expectNoFrame(t *testing.T, br *bufio.Reader, d time.Duration) {
	t.Helper()
	ch := make(chan string, 1)
	go func() {
		line, err := br.ReadString('\n')
		if err == nil {
			ch <- line
		}
	}()
	select {
	case line := <-ch:
		t.Fatalf("unexpected extra output: %q", line)
	case <-time.After(d):
	}
}

func TestServeHTTPWritesOneFramePerEvent(t *testing.T) {
	r := newTestRegistry(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.ServeHTTP(w, req, StreamOptions{})
	}))
	defer srv.Close()

	resp, cancel := openStream(t, srv)
	defer cancel()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("Content-Type: got=%q", ct)
	}
	if cc := resp.Header.Get("Cache-Control"); cc != "no-cache" {
		t.Fatalf("Cache-Control: got=%q", cc)
	}
	waitForLen(t, r, 1)

	r.Broadcast(Event{"type": "stream.started", "stream": map[string]any{"id": "abc"}})

	br := bufio.NewReader(resp.Body)
	frame := readFrame(t, br)
	if !strings.HasPrefix(frame, "data: ") || !strings.HasSuffix(frame, "\n\n") {
		t.Fatalf("unexpected frame framing: %q", frame)
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSuffix(strings.TrimPrefix(frame, "data: "), "\n\n")), &got); err != nil {
		t.Fatalf("frame payload is not JSON: %v", err)
	}
	if got["type"] != "stream.started" {
		t.Fatalf("payload type: got=%v", got["type"])
	}
	stream, _ := got["stream"].(map[string]any)
	if stream["id"] != "abc" {
		t.Fatalf("payload stream: got=%v", got["stream"])
	}
	expectNoFrame(t, br, 100*time.Millisecond)
}

func TestServeHTTPUnsubscribesOnDisconnect(t *testing.T) {
	r := newTestRegistry(t)
	before := r.Len()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.ServeHTTP(w, req, StreamOptions{})
	}))
	defer srv.Close()

	_, cancel := openStream(t, srv)
	waitForLen(t, r, before+1)

	cancel()
	waitForLen(t, r, before)

	r.Broadcast(Event{"type": "stream.ended"})
	if r.Len() != before {
		t.Fatalf("registry size after disconnect: want=%d got=%d", before, r.Len())
	}
}

func TestServeHTTPFilterSkipsEvents(t *testing.T) {
	r := newTestRegistry(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.ServeHTTP(w, req, StreamOptions{Filter: func(ev Event) bool { return ev["church_id"] == "c1" }})
	}))
	defer srv.Close()

	resp, cancel := openStream(t, srv)
	defer cancel()
	waitForLen(t, r, 1)

	r.Broadcast(Event{"type": "stream.started", "church_id": "c2"})
	r.Broadcast(Event{"type": "stream.ended", "church_id": "c1"})

	frame := readFrame(t, bufio.NewReader(resp.Body))
	if !strings.Contains(frame, `"stream.ended"`) {
		t.Fatalf("expected only the matching event, got %q", frame)
	}
}

func TestSlowClientDropsInsteadOfBlocking(t *testing.T) {
	r := newTestRegistry(t)
	var dropped atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.ServeHTTP(w, req, StreamOptions{BufferSize: 1, OnDrop: func(Event) { dropped.Add(1) }})
	}))
	defer srv.Close()

	_, cancel := openStream(t, srv)
	defer cancel()
	waitForLen(t, r, 1)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10000; i++ {
			r.Broadcast(Event{"type": "flood", "n": i})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("Broadcast blocked on a client that is not reading")
	}
	if dropped.Load() == 0 {
		t.Fatalf("expected frames to be dropped for a client that is not reading")
	}
}

func TestServeHTTPHeartbeatWritesPingComments(t *testing.T) {
	r := newTestRegistry(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.ServeHTTP(w, req, StreamOptions{Heartbeat: 20 * time.Millisecond})
	}))
	defer srv.Close()

	resp, cancel := openStream(t, srv)
	defer cancel()

	if frame := readFrame(t, bufio.NewReader(resp.Body)); frame != ": ping\n\n" {
		t.Fatalf("expected ping comment, got %q", frame)
	}
}

func TestServeHTTPNoHeartbeatByDefault(t *testing.T) {
	r := newTestRegistry(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.ServeHTTP(w, req, StreamOptions{})
	}))
	defer srv.Close()

	resp, cancel := openStream(t, srv)
	defer cancel()
	waitForLen(t, r, 1)

	expectNoFrame(t, bufio.NewReader(resp.Body), 100*time.Millisecond)
}
