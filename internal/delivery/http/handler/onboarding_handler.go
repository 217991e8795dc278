package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matchbook-app/matchbook-client/internal/usecase/onboarding"
)

type OnboardingHandler struct {
	machine *onboarding.Machine
}

func NewOnboardingHandler(machine *onboarding.Machine) *OnboardingHandler {
	return &OnboardingHandler{machine: machine}
}

type checkEmailRequest struct {
	Email string `json:"email" binding:"required"`
}

type signInRequest struct {
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword"`
}

type personalityRequest struct {
	Personality  map[string]string `json:"personality"`
	IdealPartner string            `json:"idealPartner"`
}

// CheckEmail handles POST /api/auth/check-email.
func (h *OnboardingHandler) CheckEmail(c *gin.Context) {
	var req checkEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.machine.SubmitEmail(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}

	session := h.machine.Session()
	c.JSON(http.StatusOK, gin.H{
		"step":         session.Step,
		"isNewAccount": session.IsNewAccount,
	})
}

// SignIn handles POST /api/auth/signin.
func (h *OnboardingHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.machine.SubmitPassword(c.Request.Context(), req.Password, req.ConfirmPassword); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"step":    h.machine.Step(),
		"profile": h.machine.Profile(),
	})
}

// EditEmail handles POST /api/auth/edit-email, returning to the email
// screen and discarding any entered password.
func (h *OnboardingHandler) EditEmail(c *gin.Context) {
	h.machine.EditEmail()
	c.JSON(http.StatusOK, gin.H{"step": h.machine.Step()})
}

// SignOut handles POST /api/auth/signout.
func (h *OnboardingHandler) SignOut(c *gin.Context) {
	if err := h.machine.SignOut(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"step": h.machine.Step()})
}

// SubmitPersonality handles PUT /api/profile/personality.
func (h *OnboardingHandler) SubmitPersonality(c *gin.Context) {
	var req personalityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.machine.SubmitPersonality(c.Request.Context(), req.Personality, req.IdealPartner); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"step":    h.machine.Step(),
		"profile": h.machine.Profile(),
	})
}

// SkipPersonality handles POST /api/profile/personality/skip.
func (h *OnboardingHandler) SkipPersonality(c *gin.Context) {
	if err := h.machine.SkipPersonality(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"step": h.machine.Step()})
}

// State handles GET /api/state: the read-only step and profile the UI
// renders from.
func (h *OnboardingHandler) State(c *gin.Context) {
	session := h.machine.Session()
	c.JSON(http.StatusOK, gin.H{
		"step":         session.Step,
		"email":        session.Email,
		"isNewAccount": session.IsNewAccount,
		"profile":      h.machine.Profile(),
	})
}
