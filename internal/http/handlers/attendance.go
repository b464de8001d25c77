package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/shepherd-backend/internal/http/response"
	"github.com/yungbote/shepherd-backend/internal/services"
)

type AttendanceHandler struct {
	attendance services.AttendanceService
}

func NewAttendanceHandler(attendance services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// POST /api/attendance
func (h *AttendanceHandler) Record(c *gin.Context) {
	var req services.AttendanceInput
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.attendance.Record(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, err, "record_attendance_failed")
		return
	}
	response.RespondOK(c, res)
}

// GET /api/attendance?date=
func (h *AttendanceHandler) ListByDate(c *gin.Context) {
	records, err := h.attendance.ListByDate(c.Request.Context(), c.Query("date"))
	if err != nil {
		response.RespondAPIError(c, err, "list_attendance_failed")
		return
	}
	response.RespondOK(c, gin.H{"records": records})
}

// GET /api/attendance/summary?from=&to=
func (h *AttendanceHandler) Summary(c *gin.Context) {
	counts, err := h.attendance.Summary(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		response.RespondAPIError(c, err, "attendance_summary_failed")
		return
	}
	response.RespondOK(c, gin.H{"counts": counts})
}

// GET /api/members/:id/attendance
func (h *AttendanceHandler) MemberHistory(c *gin.Context) {
	id, ok := pathID(c, "id", "invalid_member_id")
	if !ok {
		return
	}
	records, err := h.attendance.MemberHistory(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err, "member_attendance_failed")
		return
	}
	response.RespondOK(c, gin.H{"records": records})
}
