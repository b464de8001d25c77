package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/shepherd-backend/internal/http/response"
	"github.com/yungbote/shepherd-backend/internal/services"
)

type ContentHandler struct {
	content services.ContentService
}

func NewContentHandler(content services.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

// POST /api/content/sermons/generate
func (h *ContentHandler) GenerateSermon(c *gin.Context) {
	var req services.SermonInput
	if !bindJSON(c, &req) {
		return
	}
	row, err := h.content.GenerateSermon(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, err, "generation_failed")
		return
	}
	response.RespondCreated(c, gin.H{"content": row})
}

// POST /api/content/emails/generate
func (h *ContentHandler) GenerateEmail(c *gin.Context) {
	var req services.EmailInput
	if !bindJSON(c, &req) {
		return
	}
	row, err := h.content.GenerateEmail(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, err, "generation_failed")
		return
	}
	response.RespondCreated(c, gin.H{"content": row})
}

// POST /api/content/worship-sets/generate
func (h *ContentHandler) GenerateWorshipSet(c *gin.Context) {
	var req services.WorshipSetInput
	if !bindJSON(c, &req) {
		return
	}
	row, err := h.content.GenerateWorshipSet(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, err, "generation_failed")
		return
	}
	response.RespondCreated(c, gin.H{"content": row})
}

// GET /api/content?kind=
func (h *ContentHandler) List(c *gin.Context) {
	rows, err := h.content.List(c.Request.Context(), c.Query("kind"))
	if err != nil {
		response.RespondAPIError(c, err, "list_content_failed")
		return
	}
	response.RespondOK(c, gin.H{"content": rows})
}

// GET /api/content/:id
func (h *ContentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "invalid_content_id")
	if !ok {
		return
	}
	row, err := h.content.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err, "get_content_failed")
		return
	}
	response.RespondOK(c, gin.H{"content": row})
}

// DELETE /api/content/:id
func (h *ContentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", "invalid_content_id")
	if !ok {
		return
	}
	if err := h.content.Delete(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err, "delete_content_failed")
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
