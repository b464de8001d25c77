package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/shepherd-backend/internal/http/response"
	"github.com/yungbote/shepherd-backend/internal/services"
)

type EmailHandler struct {
	delivery services.EmailDeliveryService
}

func NewEmailHandler(delivery services.EmailDeliveryService) *EmailHandler {
	return &EmailHandler{delivery: delivery}
}

// POST /api/content/:id/send
func (h *EmailHandler) Send(c *gin.Context) {
	id, ok := pathID(c, "id", "invalid_content_id")
	if !ok {
		return
	}
	var req services.SendEmailInput
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.delivery.SendContent(c.Request.Context(), id, req)
	if err != nil {
		response.RespondAPIError(c, err, "send_email_failed")
		return
	}
	response.RespondOK(c, res)
}
