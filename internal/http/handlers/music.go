package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/shepherd-backend/internal/http/response"
	"github.com/yungbote/shepherd-backend/internal/services"
)

type MusicHandler struct {
	music services.MusicService
}

func NewMusicHandler(music services.MusicService) *MusicHandler {
	return &MusicHandler{music: music}
}

// GET /api/songs?q=
func (h *MusicHandler) ListSongs(c *gin.Context) {
	songs, err := h.music.ListSongs(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.RespondAPIError(c, err, "list_songs_failed")
		return
	}
	response.RespondOK(c, gin.H{"songs": songs})
}

// POST /api/songs
func (h *MusicHandler) CreateSong(c *gin.Context) {
	var req services.SongInput
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.music.CreateSong(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, err, "create_song_failed")
		return
	}
	response.RespondCreated(c, gin.H{"song": s})
}

// GET /api/songs/:id
func (h *MusicHandler) GetSong(c *gin.Context) {
	id, ok := pathID(c, "id", "invalid_song_id")
	if !ok {
		return
	}
	s, err := h.music.GetSong(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err, "get_song_failed")
		return
	}
	response.RespondOK(c, gin.H{"song": s})
}

// PATCH /api/songs/:id
func (h *MusicHandler) UpdateSong(c *gin.Context) {
	id, ok := pathID(c, "id", "invalid_song_id")
	if !ok {
		return
	}
	var req services.SongPatch
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.music.UpdateSong(c.Request.Context(), id, req)
	if err != nil {
		response.RespondAPIError(c, err, "update_song_failed")
		return
	}
	response.RespondOK(c, gin.H{"song": s})
}

// DELETE /api/songs/:id
func (h *MusicHandler) DeleteSong(c *gin.Context) {
	id, ok := pathID(c, "id", "invalid_song_id")
	if !ok {
		return
	}
	if err := h.music.DeleteSong(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err, "delete_song_failed")
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// GET /api/service-plans?from=&to=
func (h *MusicHandler) ListPlans(c *gin.Context) {
	plans, err := h.music.ListPlans(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		response.RespondAPIError(c, err, "list_service_plans_failed")
		return
	}
	response.RespondOK(c, gin.H{"service_plans": plans})
}

// POST /api/service-plans
func (h *MusicHandler) CreatePlan(c *gin.Context) {
	var req services.ServicePlanInput
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.music.CreatePlan(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, err, "create_service_plan_failed")
		return
	}
	response.RespondCreated(c, gin.H{"service_plan": p})
}

// GET /api/service-plans/:id
func (h *MusicHandler) GetPlan(c *gin.Context) {
	id, ok := pathID(c, "id", "invalid_service_plan_id")
	if !ok {
		return
	}
	p, err := h.music.GetPlan(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err, "get_service_plan_failed")
		return
	}
	response.RespondOK(c, gin.H{"service_plan": p})
}

// PUT /api/service-plans/:id
func (h *MusicHandler) ReplacePlan(c *gin.Context) {
	id, ok := pathID(c, "id", "invalid_service_plan_id")
	if !ok {
		return
	}
	var req services.ServicePlanInput
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.music.ReplacePlan(c.Request.Context(), id, req)
	if err != nil {
		response.RespondAPIError(c, err, "replace_service_plan_failed")
		return
	}
	response.RespondOK(c, gin.H{"service_plan": p})
}

// DELETE /api/service-plans/:id
func (h *MusicHandler) DeletePlan(c *gin.Context) {
	id, ok := pathID(c, "id", "invalid_service_plan_id")
	if !ok {
		return
	}
	if err := h.music.DeletePlan(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err, "delete_service_plan_failed")
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
