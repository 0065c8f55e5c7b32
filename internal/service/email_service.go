package service

import (
	"context"
	"strings"

	"github.com/motefuku/motefuku/storefront-api/internal/catalog"
	"github.com/motefuku/motefuku/storefront-api/internal/domain"
	"github.com/rs/zerolog/log"
)

// EmailService handles the lead-capture form: it registers the address
// with the upstream backend and keeps the contact in session state so
// the upsell purchase flow can reuse it.
type EmailService struct {
	states  domain.StateRepository
	catalog catalog.API
}

// NewEmailService creates a new EmailService
func NewEmailService(states domain.StateRepository, catalogAPI catalog.API) *EmailService {
	return &EmailService{states: states, catalog: catalogAPI}
}

// RegisterEmail validates the form, forwards it upstream, and persists
// the contact. The upstream response (download links included) passes
// through verbatim. A failed contact write is logged but does not undo a
// successful registration.
func (s *EmailService) RegisterEmail(ctx context.Context, sessionID, name, email, source string) (*catalog.EmailRegisterResult, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrEmailRequired
	}
	if source == "" {
		source = "top_page"
	}

	result, err := s.catalog.RegisterEmail(ctx, catalog.EmailRegisterRequest{
		Name:   name,
		Email:  email,
		Source: source,
	})
	if err != nil {
		return nil, err
	}

	// Contact fields are stored as plain strings, not JSON.
	if err := s.states.Save(ctx, sessionID, domain.StateKeyUserEmail, []byte(email)); err != nil {
		log.Warn().Err(err).Str("session_id", sessionID).Msg("Failed to persist contact email")
	}
	if err := s.states.Save(ctx, sessionID, domain.StateKeyUserName, []byte(name)); err != nil {
		log.Warn().Err(err).Str("session_id", sessionID).Msg("Failed to persist contact name")
	}

	return result, nil
}

// GetContact returns the stored contact; missing fields come back empty.
func (s *EmailService) GetContact(ctx context.Context, sessionID string) domain.Contact {
	contact := domain.Contact{}
	if raw, err := s.states.Load(ctx, sessionID, domain.StateKeyUserEmail); err == nil {
		contact.Email = string(raw)
	}
	if raw, err := s.states.Load(ctx, sessionID, domain.StateKeyUserName); err == nil {
		contact.Name = string(raw)
	}
	return contact
}
