package mail

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yungbote/shepherd-backend/internal/platform/logger"
)

func newTestSender(t *testing.T, url string, retries int) *sendGrid {
	t.Helper()
	s, ok := New(logger.Nop(), Config{
		APIKey:           "sg-key",
		BaseURL:          url,
		DefaultFromEmail: "office@grace.example",
		DefaultFromName:  "Grace Church",
		MaxRetries:       retries,
	}).(*sendGrid)
	if !ok {
		t.Fatalf("expected SendGrid sender")
	}
	s.sleep = func(context.Context, time.Duration) error { return nil }
	return s
}

func TestSendGridSend(t *testing.T) {
	var got mailSendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/mail/send" || r.Header.Get("Authorization") != "Bearer sg-key" {
			t.Errorf("unexpected request %s %q", r.URL.Path, r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Header().Set("X-Message-Id", "msg-1")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	res, err := newTestSender(t, srv.URL, 0).Send(context.Background(), Message{
		To:      []Address{{Email: "member@grace.example"}},
		Subject: "Picnic",
		Text:    "See you Sunday",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if res.StatusCode != http.StatusAccepted || res.MessageID != "msg-1" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got.From.Email != "office@grace.example" || got.From.Name != "Grace Church" {
		t.Fatalf("default from not applied: %+v", got.From)
	}
	if len(got.Personalizations) != 1 || got.Personalizations[0].To[0].Email != "member@grace.example" {
		t.Fatalf("personalizations: %+v", got.Personalizations)
	}
	if len(got.Content) != 1 || got.Content[0].Type != "text/plain" {
		t.Fatalf("content: %+v", got.Content)
	}
}

func TestSendGridRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	_, err := newTestSender(t, srv.URL, 3).Send(context.Background(), Message{
		To: []Address{{Email: "a@b.example"}}, Subject: "s", Text: "t",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 calls, got %d", calls.Load())
	}
}

func TestSendGridClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":[{"message":"bad from"}]}`))
	}))
	defer srv.Close()

	_, err := newTestSender(t, srv.URL, 3).Send(context.Background(), Message{
		To: []Address{{Email: "a@b.example"}}, Subject: "s", Text: "t",
	})
	var he *HTTPError
	if !errors.As(err, &he) || he.StatusCode != http.StatusBadRequest || he.Message != "bad from" {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("client errors must not retry, got %d calls", calls.Load())
	}
}

func TestNewWithoutKeyIsNotConfigured(t *testing.T) {
	_, err := New(logger.Nop(), Config{}).Send(context.Background(), Message{})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestSendGridOnePersonalizationPerRecipient(t *testing.T) {
	var got mailSendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	to := []Address{{Email: "ann@grace.example"}, {Email: "bo@grace.example"}, {Email: "cy@grace.example"}}
	if _, err := newTestSender(t, srv.URL, 0).Send(context.Background(), Message{To: to, Subject: "s", Text: "t"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(got.Personalizations) != len(to) {
		t.Fatalf("expected %d personalizations, got %d", len(to), len(got.Personalizations))
	}
	for i, p := range got.Personalizations {
		if len(p.To) != 1 || p.To[0].Email != to[i].Email {
			t.Fatalf("personalization %d: %+v", i, p.To)
		}
	}
}

func TestSendGridRetryWaitHonorsCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "10")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := newTestSender(t, srv.URL, 3)
	s.sleep = sleepCtx
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := s.Send(ctx, Message{To: []Address{{Email: "a@b.example"}}, Subject: "s", Text: "t"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("retry wait ignored cancellation: %s", elapsed)
	}
}
