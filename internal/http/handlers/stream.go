package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/shepherd-backend/internal/http/response"
	"github.com/yungbote/shepherd-backend/internal/services"
)

type StreamHandler struct {
	streams services.StreamService
}

func NewStreamHandler(streams services.StreamService) *StreamHandler {
	return &StreamHandler{streams: streams}
}

// GET /api/streams
func (h *StreamHandler) List(c *gin.Context) {
	out, err := h.streams.List(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err, "list_streams_failed")
		return
	}
	response.RespondOK(c, gin.H{"streams": out})
}

// POST /api/streams
func (h *StreamHandler) Create(c *gin.Context) {
	var req services.LiveStreamInput
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.streams.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, err, "create_stream_failed")
		return
	}
	response.RespondCreated(c, gin.H{"stream": s})
}

// GET /api/streams/:id
func (h *StreamHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "invalid_stream_id")
	if !ok {
		return
	}
	s, err := h.streams.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err, "get_stream_failed")
		return
	}
	response.RespondOK(c, gin.H{"stream": s})
}

// PATCH /api/streams/:id
func (h *StreamHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", "invalid_stream_id")
	if !ok {
		return
	}
	var req services.LiveStreamPatch
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.streams.Update(c.Request.Context(), id, req)
	if err != nil {
		response.RespondAPIError(c, err, "update_stream_failed")
		return
	}
	response.RespondOK(c, gin.H{"stream": s})
}

// DELETE /api/streams/:id
func (h *StreamHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", "invalid_stream_id")
	if !ok {
		return
	}
	if err := h.streams.Delete(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err, "delete_stream_failed")
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
