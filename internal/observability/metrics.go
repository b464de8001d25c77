package observability

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Metrics holds the process's Prometheus series. A nil *Metrics is valid and
// records nothing, so callers never need to check whether metrics are on.
type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge

	sseSubscribers *Gauge
	sseDropped     *CounterVec
	eventsEmitted  *CounterVec
	busPublishErrs *CounterVec

	generations       *CounterVec
	generationLatency *HistogramVec
}

// NewMetrics returns nil when enabled is false.
func NewMetrics(enabled bool) *Metrics {
	if !enabled {
		return nil
	}
	return &Metrics{
		apiRequests: NewCounterVec("shepherd_api_requests_total", "API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"shepherd_api_request_duration_seconds",
			"API request latency in seconds by method/route.",
			[]string{"method", "route"},
			[]float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		),
		apiInflight:    NewGauge("shepherd_api_inflight_requests", "In-flight API requests, open event streams included."),
		sseSubscribers: NewGauge("shepherd_sse_subscribers", "Open server-sent event connections."),
		sseDropped:     NewCounterVec("shepherd_sse_dropped_frames_total", "Frames dropped because a client's queue was full.", []string{"event_type"}),
		eventsEmitted:  NewCounterVec("shepherd_events_emitted_total", "Realtime events emitted by type.", []string{"event_type"}),
		busPublishErrs: NewCounterVec("shepherd_event_bus_publish_errors_total", "Failed publishes to the cross-instance event bus.", []string{"event_type"}),
		generations:    NewCounterVec("shepherd_content_generations_total", "AI content generation attempts by model/status.", []string{"model", "status"}),
		generationLatency: NewHistogramVec(
			"shepherd_content_generation_duration_seconds",
			"AI content generation latency in seconds.",
			[]string{"model", "status"},
			[]float64{0.5, 1, 2, 5, 10, 20, 40, 80, 120},
		),
	}
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	writers := []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests, m.apiLatency, m.apiInflight,
		m.sseSubscribers, m.sseDropped, m.eventsEmitted, m.busPublishErrs,
		m.generations, m.generationLatency,
	}
	for _, wr := range writers {
		if err := wr.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	m.apiRequests.Inc(method, route, strconv.Itoa(status))
	m.apiLatency.Observe(dur.Seconds(), method, route)
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) SSEConnected() {
	if m == nil {
		return
	}
	m.sseSubscribers.Inc()
}

func (m *Metrics) SSEDisconnected() {
	if m == nil {
		return
	}
	m.sseSubscribers.Dec()
}

func (m *Metrics) SSESubscribers() float64 {
	if m == nil {
		return 0
	}
	return m.sseSubscribers.Value()
}

func (m *Metrics) IncSSEDropped(eventType string) {
	if m == nil {
		return
	}
	m.sseDropped.Inc(eventType)
}

func (m *Metrics) IncEventEmitted(eventType string) {
	if m == nil {
		return
	}
	m.eventsEmitted.Inc(eventType)
}

func (m *Metrics) EventsEmitted(eventType string) float64 {
	if m == nil {
		return 0
	}
	return m.eventsEmitted.Value(eventType)
}

func (m *Metrics) IncBusPublishError(eventType string) {
	if m == nil {
		return
	}
	m.busPublishErrs.Inc(eventType)
}

func (m *Metrics) ObserveGeneration(model, status string, dur time.Duration) {
	if m == nil {
		return
	}
	model = strings.TrimSpace(model)
	m.generations.Inc(model, status)
	if dur > 0 {
		m.generationLatency.Observe(dur.Seconds(), model, status)
	}
}

func (m *Metrics) Generations(model, status string) float64 {
	if m == nil {
		return 0
	}
	return m.generations.Value(model, status)
}
