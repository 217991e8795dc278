package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matchbook-app/matchbook-client/internal/domain"
)

// ErrorResponse is the error body shape shared by all handlers.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// respondError maps the domain error taxonomy onto HTTP statuses. Field
// validation gets a 422 with the field→message map so the UI can render
// inline errors; everything else keeps the prior known-good state visible.
func respondError(c *gin.Context, err error) {
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:  "validation failed",
			Fields: verrs,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrAuthRejected):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication rejected"})
	case errors.Is(err, domain.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "profile is out of date, it has been refreshed"})
	case errors.Is(err, domain.ErrNoProfile):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "no current profile, sign in first"})
	case domain.IsRetryable(err):
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "profile service unreachable, please retry"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
