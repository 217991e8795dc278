package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matchbook-app/matchbook-client/internal/domain"
	"github.com/matchbook-app/matchbook-client/internal/infrastructure/gemini"
	"github.com/matchbook-app/matchbook-client/internal/usecase/onboarding"
	"github.com/matchbook-app/matchbook-client/internal/usecase/syncengine"
)

type ProfileHandler struct {
	machine *onboarding.Machine
	engine  *syncengine.Engine
	gemini  *gemini.GeminiClient
}

func NewProfileHandler(machine *onboarding.Machine, engine *syncengine.Engine, geminiClient *gemini.GeminiClient) *ProfileHandler {
	return &ProfileHandler{
		machine: machine,
		engine:  engine,
		gemini:  geminiClient,
	}
}

// GetProfile handles GET /api/profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile := h.machine.Profile()
	if profile == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no current profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// SubmitProfile handles POST /api/profile: the full onboarding form.
func (h *ProfileHandler) SubmitProfile(c *gin.Context) {
	var in onboarding.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.machine.SubmitProfile(c.Request.Context(), &in); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"step":    h.machine.Step(),
		"profile": h.machine.Profile(),
	})
}

// PatchProfile handles PATCH /api/profile: the in-place edits on the
// waiting screen, applied optimistically with rollback on failure.
func (h *ProfileHandler) PatchProfile(c *gin.Context) {
	var patch domain.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	updated, err := h.engine.Update(c.Request.Context(), &patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// RefreshProfile handles POST /api/profile/refresh: a synchronous re-sync
// from the remote service, e.g. after the UI surfaced a sync error.
func (h *ProfileHandler) RefreshProfile(c *gin.Context) {
	if err := h.engine.Refresh(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.machine.Profile())
}

type suggestBioRequest struct {
	Name      string   `json:"name" binding:"required"`
	Interests []string `json:"interests" binding:"required"`
	Location  string   `json:"location" binding:"required"`
}

// SuggestBio handles POST /api/profile/suggest-bio. Available only when a
// Gemini API key is configured.
func (h *ProfileHandler) SuggestBio(c *gin.Context) {
	if h.gemini == nil {
		c.JSON(http.StatusNotImplemented, ErrorResponse{Error: "bio suggestions are not configured"})
		return
	}

	var req suggestBioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	bios, err := h.gemini.GenerateBio(c.Request.Context(), req.Name, req.Interests, req.Location)
	if err != nil {
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "failed to generate bios"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bios": bios})
}
