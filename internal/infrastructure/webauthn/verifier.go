// Package webauthn adapts github.com/go-webauthn/webauthn to the core's
// CredentialVerifier port.
package webauthn

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"

	"github.com/vozciudadana/civic-core/internal/core/domain"
	"github.com/vozciudadana/civic-core/internal/core/ports"
)

// Config describes the relying party.
type Config struct {
	RPID          string
	RPDisplayName string
	RPOrigins     []string
}

type Verifier struct {
	wa *webauthn.WebAuthn
}

func NewVerifier(cfg Config) (*Verifier, error) {
	if cfg.RPID == "" || len(cfg.RPOrigins) == 0 {
		return nil, errors.New("webauthn: relying party id and origins are required")
	}
	wa, err := webauthn.New(&webauthn.Config{
		RPID:                  cfg.RPID,
		RPDisplayName:         cfg.RPDisplayName,
		RPOrigins:             cfg.RPOrigins,
		AttestationPreference: protocol.PreferNoAttestation,
		AuthenticatorSelection: protocol.AuthenticatorSelection{
			ResidentKey:      protocol.ResidentKeyRequirementPreferred,
			UserVerification: protocol.VerificationPreferred,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("webauthn: %w", err)
	}
	return &Verifier{wa: wa}, nil
}

var _ ports.CredentialVerifier = (*Verifier)(nil)

// user exposes a ceremony subject to the library. The user handle is derived
// from the national ID, so it is stable across re-registrations.
type user struct {
	ports.CeremonyUser
}

func (u user) WebAuthnID() []byte          { return []byte("user-" + u.NationalID) }
func (u user) WebAuthnName() string        { return u.NationalID }
func (u user) WebAuthnDisplayName() string { return u.DisplayName }

func (u user) WebAuthnCredentials() []webauthn.Credential {
	a := u.Authenticator
	if a == nil || len(a.CredentialID) == 0 {
		return nil
	}
	return []webauthn.Credential{{
		ID:        a.CredentialID,
		PublicKey: a.PublicKey,
		Flags: webauthn.CredentialFlags{
			BackupEligible: a.BackupEligible,
			BackupState:    a.BackupState,
		},
		Authenticator: webauthn.Authenticator{SignCount: a.SignCount},
	}}
}

func (v *Verifier) BeginRegistration(u ports.CeremonyUser) (*ports.CeremonyStart, error) {
	creation, session, err := v.wa.BeginRegistration(user{u})
	if err != nil {
		return nil, fmt.Errorf("webauthn: begin registration: %w", err)
	}
	return start(creation.Response, session)
}

func (v *Verifier) FinishRegistration(u ports.CeremonyUser, rawSession []byte, response json.RawMessage) (*domain.Authenticator, error) {
	session, err := decodeSession(rawSession)
	if err != nil {
		return nil, err
	}
	parsed, err := protocol.ParseCredentialCreationResponseBody(bytes.NewReader(response))
	if err != nil {
		return nil, verificationFailed(err)
	}
	cred, err := v.wa.CreateCredential(user{u}, *session, parsed)
	if err != nil {
		return nil, verificationFailed(err)
	}
	return &domain.Authenticator{
		CredentialID:   cred.ID,
		PublicKey:      cred.PublicKey,
		SignCount:      cred.Authenticator.SignCount,
		BackupEligible: cred.Flags.BackupEligible,
		BackupState:    cred.Flags.BackupState,
	}, nil
}

// BeginAuthentication restricts the assertion to the bound credential.
func (v *Verifier) BeginAuthentication(u ports.CeremonyUser) (*ports.CeremonyStart, error) {
	if u.Authenticator == nil {
		return nil, domain.ErrNoAuthenticatorBound
	}
	assertion, session, err := v.wa.BeginLogin(user{u}, webauthn.WithUserVerification(protocol.VerificationPreferred))
	if err != nil {
		return nil, fmt.Errorf("webauthn: begin login: %w", err)
	}
	return start(assertion.Response, session)
}

// FinishAuthentication verifies the assertion signature and reports the
// authenticator's counter. Counter policy is left to the caller.
func (v *Verifier) FinishAuthentication(u ports.CeremonyUser, rawSession []byte, response json.RawMessage) (*ports.AssertionResult, error) {
	session, err := decodeSession(rawSession)
	if err != nil {
		return nil, err
	}
	parsed, err := protocol.ParseCredentialRequestResponseBody(bytes.NewReader(response))
	if err != nil {
		return nil, verificationFailed(err)
	}
	if _, err := v.wa.ValidateLogin(user{u}, *session, parsed); err != nil {
		return nil, verificationFailed(err)
	}
	return &ports.AssertionResult{SignCount: parsed.Response.AuthenticatorData.Counter}, nil
}

func start(options any, session *webauthn.SessionData) (*ports.CeremonyStart, error) {
	opts, err := json.Marshal(options)
	if err != nil {
		return nil, fmt.Errorf("webauthn: encode options: %w", err)
	}
	s, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("webauthn: encode session: %w", err)
	}
	return &ports.CeremonyStart{Options: opts, Challenge: session.Challenge, Session: s}, nil
}

func decodeSession(raw []byte) (*webauthn.SessionData, error) {
	var s webauthn.SessionData
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("webauthn: decode session: %w", err)
	}
	return &s, nil
}

func verificationFailed(err error) error {
	var perr *protocol.Error
	if errors.As(err, &perr) && perr.DevInfo != "" {
		return fmt.Errorf("%w: %s: %s", domain.ErrAttestationVerificationFailed, perr.Details, perr.DevInfo)
	}
	return fmt.Errorf("%w: %v", domain.ErrAttestationVerificationFailed, err)
}
