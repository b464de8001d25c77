package handlers

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/shepherd-backend/internal/http/response"
	"github.com/yungbote/shepherd-backend/internal/observability"
	"github.com/yungbote/shepherd-backend/internal/platform/logger"
	"github.com/yungbote/shepherd-backend/internal/realtime"
	"github.com/yungbote/shepherd-backend/internal/services"
)

const (
	webhookSignatureHeader = "Mux-Signature"
	maxWebhookBody         = 1 << 20
)

type RealtimeOptions struct {
	BufferSize int
	Heartbeat  time.Duration
}

type RealtimeHandler struct {
	log      *logger.Logger
	registry *realtime.Registry
	streams  services.StreamService
	metrics  *observability.Metrics
	opts     RealtimeOptions
}

func NewRealtimeHandler(log *logger.Logger, registry *realtime.Registry, streams services.StreamService, metrics *observability.Metrics, opts RealtimeOptions) *RealtimeHandler {
	return &RealtimeHandler{
		log:      log.With("handler", "RealtimeHandler"),
		registry: registry,
		streams:  streams,
		metrics:  metrics,
		opts:     opts,
	}
}

// GET /api/streaming/events
func (h *RealtimeHandler) Events(c *gin.Context) {
	stream := realtime.StreamOptions{
		BufferSize: h.opts.BufferSize,
		Heartbeat:  h.opts.Heartbeat,
		OnDrop:     func(ev realtime.Event) { h.metrics.IncSSEDropped(ev.Type()) },
	}
	if raw := strings.TrimSpace(c.Query("church_id")); raw != "" {
		churchID, err := uuid.Parse(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_church_id", errInvalidID)
			return
		}
		want := churchID.String()
		stream.Filter = func(ev realtime.Event) bool {
			got, _ := ev["church_id"].(string)
			return got == want
		}
	}

	h.metrics.SSEConnected()
	defer h.metrics.SSEDisconnected()
	h.log.Debug("SSE stream open", "remote", c.ClientIP(), "church_id", c.Query("church_id"))
	h.registry.ServeHTTP(c.Writer, c.Request, stream)
}

// POST /api/streaming/webhook
func (h *RealtimeHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody+1))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_payload", errReadBody)
		return
	}
	if len(body) > maxWebhookBody {
		response.RespondError(c, http.StatusRequestEntityTooLarge, "payload_too_large", errPayloadTooLarge)
		return
	}
	res, err := h.streams.HandleWebhook(c.Request.Context(), body, c.GetHeader(webhookSignatureHeader))
	if err != nil {
		response.RespondAPIError(c, err, "webhook_failed")
		return
	}
	response.RespondOK(c, res)
}

// GET /api/streaming/status?church_id=
func (h *RealtimeHandler) Status(c *gin.Context) {
	churchID, err := uuid.Parse(strings.TrimSpace(c.Query("church_id")))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_church_id", errInvalidID)
		return
	}
	live, err := h.streams.LiveStatus(c.Request.Context(), churchID)
	if err != nil {
		response.RespondAPIError(c, err, "stream_status_failed")
		return
	}
	response.RespondOK(c, gin.H{"live": len(live) > 0, "streams": live})
}
