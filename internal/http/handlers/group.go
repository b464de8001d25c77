package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/shepherd-backend/internal/http/response"
	"github.com/yungbote/shepherd-backend/internal/services"
)

type GroupHandler struct {
	groups services.GroupService
}

func NewGroupHandler(groups services.GroupService) *GroupHandler {
	return &GroupHandler{groups: groups}
}

// GET /api/groups
func (h *GroupHandler) List(c *gin.Context) {
	out, err := h.groups.List(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err, "list_groups_failed")
		return
	}
	response.RespondOK(c, gin.H{"groups": out})
}

// POST /api/groups
func (h *GroupHandler) Create(c *gin.Context) {
	var req services.GroupInput
	if !bindJSON(c, &req) {
		return
	}
	g, err := h.groups.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, err, "create_group_failed")
		return
	}
	response.RespondCreated(c, gin.H{"group": g})
}

// GET /api/groups/:id
func (h *GroupHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "invalid_group_id")
	if !ok {
		return
	}
	g, err := h.groups.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err, "get_group_failed")
		return
	}
	response.RespondOK(c, gin.H{"group": g})
}

// PATCH /api/groups/:id
func (h *GroupHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", "invalid_group_id")
	if !ok {
		return
	}
	var req services.GroupPatch
	if !bindJSON(c, &req) {
		return
	}
	g, err := h.groups.Update(c.Request.Context(), id, req)
	if err != nil {
		response.RespondAPIError(c, err, "update_group_failed")
		return
	}
	response.RespondOK(c, gin.H{"group": g})
}

// DELETE /api/groups/:id
func (h *GroupHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", "invalid_group_id")
	if !ok {
		return
	}
	if err := h.groups.Delete(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err, "delete_group_failed")
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// GET /api/groups/:id/members
func (h *GroupHandler) ListMembers(c *gin.Context) {
	id, ok := pathID(c, "id", "invalid_group_id")
	if !ok {
		return
	}
	members, err := h.groups.ListMembers(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err, "list_group_members_failed")
		return
	}
	response.RespondOK(c, gin.H{"members": members})
}

// POST /api/groups/:id/members
func (h *GroupHandler) AddMember(c *gin.Context) {
	id, ok := pathID(c, "id", "invalid_group_id")
	if !ok {
		return
	}
	var req services.GroupMemberInput
	if !bindJSON(c, &req) {
		return
	}
	members, err := h.groups.AddMember(c.Request.Context(), id, req)
	if err != nil {
		response.RespondAPIError(c, err, "add_group_member_failed")
		return
	}
	response.RespondOK(c, gin.H{"members": members})
}

// DELETE /api/groups/:id/members/:memberID
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	id, ok := pathID(c, "id", "invalid_group_id")
	if !ok {
		return
	}
	memberID, ok := pathID(c, "memberID", "invalid_member_id")
	if !ok {
		return
	}
	if err := h.groups.RemoveMember(c.Request.Context(), id, memberID); err != nil {
		response.RespondAPIError(c, err, "remove_group_member_failed")
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
