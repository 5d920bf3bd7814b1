package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/vozciudadana/civic-core/internal/core/domain"
	"github.com/vozciudadana/civic-core/internal/core/ports"
)

const masterDisplayName = "Master Admin"

// CeremonyOptions configures the ceremony engine.
type CeremonyOptions struct {
	JWTSecret    string
	TokenTTL     time.Duration
	ChallengeTTL time.Duration
	// Admins holds canonical national IDs granted the admin role on creation.
	Admins []string
	// MasterSecretHash is a bcrypt hash. Empty disables master login.
	MasterSecretHash string
}

// CeremonyService implements passwordless registration and authentication.
type CeremonyService struct {
	identities ports.IdentityRepository
	challenges ports.ChallengeStore
	verifier   ports.CredentialVerifier
	limiter    ports.AttemptLimiter
	audit      ports.AuditRepository
	opts       CeremonyOptions
	log        zerolog.Logger
	now        func() time.Time
}

func NewCeremonyService(
	identities ports.IdentityRepository,
	challenges ports.ChallengeStore,
	verifier ports.CredentialVerifier,
	limiter ports.AttemptLimiter,
	audit ports.AuditRepository,
	opts CeremonyOptions,
	log zerolog.Logger,
) *CeremonyService {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	if opts.ChallengeTTL <= 0 {
		opts.ChallengeTTL = 5 * time.Minute
	}
	return &CeremonyService{
		identities: identities,
		challenges: challenges,
		verifier:   verifier,
		limiter:    limiter,
		audit:      audit,
		opts:       opts,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

var _ ports.CeremonyService = (*CeremonyService)(nil)

func (s *CeremonyService) BeginRegistration(ctx context.Context, rawID, displayName string) (json.RawMessage, error) {
	nationalID, err := domain.ParseNationalID(rawID)
	if err != nil {
		return nil, err
	}
	user := ports.CeremonyUser{NationalID: nationalID, DisplayName: displayNameOr(displayName, nationalID)}

	start, err := s.verifier.BeginRegistration(user)
	if err != nil {
		return nil, fmt.Errorf("begin registration: %w", err)
	}
	if err := s.putChallenge(ctx, nationalID, domain.CeremonyRegistration, start); err != nil {
		return nil, fmt.Errorf("begin registration: %w", err)
	}
	return start.Options, nil
}

func (s *CeremonyService) FinishRegistration(ctx context.Context, rawID, displayName string, response json.RawMessage) (*ports.CeremonyResult, error) {
	nationalID, err := domain.ParseNationalID(rawID)
	if err != nil {
		return nil, err
	}
	challenge, err := s.takeChallenge(ctx, nationalID, domain.CeremonyRegistration)
	if err != nil {
		return nil, fmt.Errorf("finish registration: %w", err)
	}

	name := displayNameOr(displayName, nationalID)
	auth, err := s.verifier.FinishRegistration(ports.CeremonyUser{NationalID: nationalID, DisplayName: name}, challenge.Session, response)
	if err != nil {
		s.log.Warn().Err(err).Str("national_id", nationalID).Msg("registration verification failed")
		return nil, fmt.Errorf("finish registration: %w", err)
	}

	role := domain.RoleFor(nationalID, s.opts.Admins)
	identity, err := s.identities.BindAuthenticator(ctx, nationalID, name, role, auth)
	if err != nil {
		return nil, fmt.Errorf("finish registration: bind authenticator: %w", err)
	}

	s.log.Info().Str("national_id", nationalID).Str("role", identity.Role).Msg("authenticator registered")
	return s.result(identity)
}

func (s *CeremonyService) BeginAuthentication(ctx context.Context, rawID string) (json.RawMessage, error) {
	nationalID, err := domain.ParseNationalID(rawID)
	if err != nil {
		return nil, err
	}
	identity, err := s.boundIdentity(ctx, nationalID)
	if err != nil {
		return nil, fmt.Errorf("begin authentication: %w", err)
	}

	start, err := s.verifier.BeginAuthentication(ceremonyUser(identity))
	if err != nil {
		return nil, fmt.Errorf("begin authentication: %w", err)
	}
	if err := s.putChallenge(ctx, nationalID, domain.CeremonyAuthentication, start); err != nil {
		return nil, fmt.Errorf("begin authentication: %w", err)
	}
	return start.Options, nil
}

func (s *CeremonyService) FinishAuthentication(ctx context.Context, rawID string, response json.RawMessage) (*ports.CeremonyResult, error) {
	nationalID, err := domain.ParseNationalID(rawID)
	if err != nil {
		return nil, err
	}
	challenge, err := s.takeChallenge(ctx, nationalID, domain.CeremonyAuthentication)
	if err != nil {
		return nil, fmt.Errorf("finish authentication: %w", err)
	}
	identity, err := s.boundIdentity(ctx, nationalID)
	if err != nil {
		return nil, fmt.Errorf("finish authentication: %w", err)
	}

	assertion, err := s.verifier.FinishAuthentication(ceremonyUser(identity), challenge.Session, response)
	if err != nil {
		s.log.Warn().Err(err).Str("national_id", nationalID).Msg("assertion verification failed")
		return nil, fmt.Errorf("finish authentication: %w", err)
	}

	stored := identity.Authenticator.SignCount
	if !domain.CounterAdvanced(stored, assertion.SignCount) {
		s.log.Warn().
			Str("national_id", nationalID).
			Uint32("stored", stored).
			Uint32("reported", assertion.SignCount).
			Msg("signature counter did not advance, possible cloned authenticator")
		return nil, fmt.Errorf("finish authentication: %w", domain.ErrReplaySuspected)
	}

	if err := s.identities.UpdateSignCount(ctx, identity.ID, assertion.SignCount); err != nil {
		return nil, fmt.Errorf("finish authentication: update sign count: %w", err)
	}
	identity.Authenticator.SignCount = assertion.SignCount

	return s.result(identity)
}

// MasterLogin lets an allow-listed administrator in without a ceremony.
// Every attempt is rate limited per national ID and audited.
func (s *CeremonyService) MasterLogin(ctx context.Context, in ports.MasterLoginInput) (*ports.CeremonyResult, error) {
	nationalID, err := domain.ParseNationalID(in.NationalID)
	if err != nil {
		return nil, err
	}

	res, err := s.masterLogin(ctx, nationalID, in.Secret)
	s.auditMasterLogin(ctx, nationalID, in.RemoteAddr, err)
	return res, err
}

func (s *CeremonyService) masterLogin(ctx context.Context, nationalID, secret string) (*ports.CeremonyResult, error) {
	if s.opts.MasterSecretHash == "" || domain.RoleFor(nationalID, s.opts.Admins) != domain.RoleAdmin {
		return nil, domain.ErrInvalidCredentials
	}

	allowed, err := s.limiter.Register(ctx, nationalID)
	if err != nil {
		return nil, fmt.Errorf("master login: %w", err)
	}
	if !allowed {
		return nil, domain.ErrTooManyAttempts
	}

	if bcrypt.CompareHashAndPassword([]byte(s.opts.MasterSecretHash), []byte(secret)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := s.limiter.Reset(ctx, nationalID); err != nil {
		s.log.Warn().Err(err).Str("national_id", nationalID).Msg("failed to reset master login attempts")
	}

	identity, err := s.identities.EnsureIdentity(ctx, nationalID, masterDisplayName, domain.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("master login: %w", err)
	}
	return s.result(identity)
}

func (s *CeremonyService) auditMasterLogin(ctx context.Context, nationalID, remoteAddr string, err error) {
	outcome := "success"
	switch {
	case errors.Is(err, domain.ErrTooManyAttempts):
		outcome = "rate_limited"
	case err != nil:
		outcome = "denied"
	}
	event := &domain.AuditEvent{
		ID:        uuid.NewString(),
		Action:    domain.AuditMasterLogin,
		Actor:     nationalID,
		Subject:   nationalID,
		Outcome:   outcome,
		Details:   map[string]any{"remote_addr": remoteAddr},
		Timestamp: s.now(),
	}
	if auditErr := s.audit.Insert(ctx, event); auditErr != nil {
		s.log.Warn().Err(auditErr).Str("national_id", nationalID).Msg("failed to insert audit event")
	}
	s.log.Info().Str("national_id", nationalID).Str("outcome", outcome).Msg("master login attempt")
}

func (s *CeremonyService) putChallenge(ctx context.Context, nationalID string, kind domain.CeremonyKind, start *ports.CeremonyStart) error {
	return s.challenges.Put(ctx, &domain.Challenge{
		NationalID: nationalID,
		Kind:       kind,
		Value:      start.Challenge,
		Session:    start.Session,
		CreatedAt:  s.now(),
	}, s.opts.ChallengeTTL)
}

// takeChallenge consumes the outstanding challenge before anything is
// verified. A challenge from the other ceremony is consumed too.
func (s *CeremonyService) takeChallenge(ctx context.Context, nationalID string, kind domain.CeremonyKind) (*domain.Challenge, error) {
	c, err := s.challenges.Take(ctx, nationalID)
	if err != nil {
		return nil, err
	}
	if c.Kind != kind {
		return nil, domain.ErrChallengeNotFound
	}
	return c, nil
}

func (s *CeremonyService) boundIdentity(ctx context.Context, nationalID string) (*domain.Identity, error) {
	identity, err := s.identities.FindByNationalID(ctx, nationalID)
	if errors.Is(err, domain.ErrIdentityNotFound) {
		return nil, domain.ErrNoAuthenticatorBound
	}
	if err != nil {
		return nil, err
	}
	if !identity.HasAuthenticator() {
		return nil, domain.ErrNoAuthenticatorBound
	}
	return identity, nil
}

func (s *CeremonyService) result(identity *domain.Identity) (*ports.CeremonyResult, error) {
	token, err := s.generateToken(identity)
	if err != nil {
		return nil, err
	}
	return &ports.CeremonyResult{
		Verified: true,
		Identity: identity,
		Level:    domain.LevelOf(identity.XP),
		Token:    token,
	}, nil
}

func (s *CeremonyService) generateToken(identity *domain.Identity) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  identity.NationalID,
		"uid":  identity.ID,
		"role": identity.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.opts.TokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.opts.JWTSecret))
}

func ceremonyUser(identity *domain.Identity) ports.CeremonyUser {
	return ports.CeremonyUser{
		NationalID:    identity.NationalID,
		DisplayName:   identity.DisplayName,
		Authenticator: identity.Authenticator,
	}
}

func displayNameOr(name, nationalID string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return "Citizen " + nationalID
}
