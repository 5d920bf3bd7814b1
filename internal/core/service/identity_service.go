package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vozciudadana/civic-core/internal/core/domain"
	"github.com/vozciudadana/civic-core/internal/core/ports"
)

type identityService struct {
	identities ports.IdentityRepository
	audit      ports.AuditRepository
	log        zerolog.Logger
}

// NewIdentityService returns an IdentityService implementation.
func NewIdentityService(identities ports.IdentityRepository, audit ports.AuditRepository, log zerolog.Logger) ports.IdentityService {
	return &identityService{identities: identities, audit: audit, log: log}
}

// Check reports whether the national ID can authenticate or must register.
func (s *identityService) Check(ctx context.Context, rawID string) (*ports.IdentityStatus, error) {
	nationalID, err := domain.ParseNationalID(rawID)
	if err != nil {
		return nil, err
	}
	identity, err := s.identities.FindByNationalID(ctx, nationalID)
	if errors.Is(err, domain.ErrIdentityNotFound) {
		return &ports.IdentityStatus{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("check identity: %w", err)
	}
	return &ports.IdentityStatus{
		Exists:           true,
		HasAuthenticator: identity.HasAuthenticator(),
		DisplayName:      identity.DisplayName,
	}, nil
}

func (s *identityService) Profile(ctx context.Context, nationalID string) (*ports.IdentityProfile, error) {
	identity, err := s.identities.FindByNationalID(ctx, nationalID)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	return &ports.IdentityProfile{Identity: identity, Level: domain.LevelOf(identity.XP)}, nil
}

// Verify is the only writer of the verification flag.
func (s *identityService) Verify(ctx context.Context, in ports.VerifyIdentityInput) (*ports.IdentityProfile, error) {
	nationalID, err := domain.ParseNationalID(in.NationalID)
	if err != nil {
		return nil, err
	}
	identity, err := s.identities.SetVerified(ctx, nationalID, true, strings.TrimSpace(in.DisplayName))
	if err != nil {
		return nil, fmt.Errorf("verify identity: %w", err)
	}

	event := &domain.AuditEvent{
		ID:        uuid.NewString(),
		Action:    domain.AuditIdentityVerified,
		Actor:     in.Actor,
		Subject:   nationalID,
		Outcome:   "success",
		Details:   map[string]any{"display_name": identity.DisplayName},
		Timestamp: time.Now().UTC(),
	}
	if err := s.audit.Insert(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("national_id", nationalID).Msg("failed to insert audit event")
	}

	s.log.Info().Str("national_id", nationalID).Str("actor", in.Actor).Msg("identity verified")
	return &ports.IdentityProfile{Identity: identity, Level: domain.LevelOf(identity.XP)}, nil
}
