package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/motefuku/motefuku/storefront-api/internal/catalog"
	"github.com/motefuku/motefuku/storefront-api/internal/domain"
	"github.com/motefuku/motefuku/storefront-api/internal/middleware"
	"github.com/motefuku/motefuku/storefront-api/internal/service"
	"github.com/rs/zerolog/log"
)

// EmailHandler handles lead-capture HTTP requests
type EmailHandler struct {
	emailService *service.EmailService
}

// NewEmailHandler creates a new EmailHandler
func NewEmailHandler(emailService *service.EmailService) *EmailHandler {
	return &EmailHandler{emailService: emailService}
}

// RegisterEmailRequest represents the lead-capture request body
type RegisterEmailRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Source string `json:"source"`
}

// RegisterEmail handles POST /api/v1/email/register
func (h *EmailHandler) RegisterEmail(c echo.Context) error {
	sessionID := middleware.GetSessionID(c)

	var req RegisterEmailRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	result, err := h.emailService.RegisterEmail(c.Request().Context(), sessionID, req.Name, req.Email, req.Source)
	if err != nil {
		if errors.Is(err, domain.ErrNameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		}
		if errors.Is(err, domain.ErrEmailRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "email", Message: "A valid email address is required"},
			})
		}
		var apiErr *catalog.Error
		if errors.As(err, &apiErr) {
			log.Warn().Err(err).Str("session_id", sessionID).Msg("Upstream email registration failed")
			return NewUpstreamError(c, apiErr.StatusCode, apiErr.Detail)
		}
		log.Error().Err(err).Str("session_id", sessionID).Msg("Failed to register email")
		return NewInternalError(c, "Failed to register email")
	}

	log.Info().Str("session_id", sessionID).Str("source", req.Source).Msg("Email registered")

	return c.JSON(http.StatusOK, result)
}

// GetContact handles GET /api/v1/email/contact
func (h *EmailHandler) GetContact(c echo.Context) error {
	sessionID := middleware.GetSessionID(c)

	contact := h.emailService.GetContact(c.Request().Context(), sessionID)
	return c.JSON(http.StatusOK, contact)
}
