package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/shepherd-backend/internal/data/repos"
	"github.com/yungbote/shepherd-backend/internal/http/response"
	"github.com/yungbote/shepherd-backend/internal/services"
)

type MemberHandler struct {
	members services.MemberService
}

func NewMemberHandler(members services.MemberService) *MemberHandler {
	return &MemberHandler{members: members}
}

// GET /api/members?q=&status=&limit=&offset=
func (h *MemberHandler) List(c *gin.Context) {
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}
	offset, ok := queryInt(c, "offset")
	if !ok {
		return
	}
	page, err := h.members.List(c.Request.Context(), repos.MemberFilter{
		Query:  c.Query("q"),
		Status: c.Query("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		response.RespondAPIError(c, err, "list_members_failed")
		return
	}
	response.RespondOK(c, page)
}

// POST /api/members
func (h *MemberHandler) Create(c *gin.Context) {
	var req services.MemberInput
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.members.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, err, "create_member_failed")
		return
	}
	response.RespondCreated(c, gin.H{"member": m})
}

// GET /api/members/:id
func (h *MemberHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "invalid_member_id")
	if !ok {
		return
	}
	m, err := h.members.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err, "get_member_failed")
		return
	}
	response.RespondOK(c, gin.H{"member": m})
}

// PATCH /api/members/:id
func (h *MemberHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", "invalid_member_id")
	if !ok {
		return
	}
	var req services.MemberPatch
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.members.Update(c.Request.Context(), id, req)
	if err != nil {
		response.RespondAPIError(c, err, "update_member_failed")
		return
	}
	response.RespondOK(c, gin.H{"member": m})
}

// DELETE /api/members/:id
func (h *MemberHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", "invalid_member_id")
	if !ok {
		return
	}
	if err := h.members.Delete(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err, "delete_member_failed")
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
