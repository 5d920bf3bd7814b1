package ports

import (
	"encoding/json"

	"github.com/vozciudadana/civic-core/internal/core/domain"
)

// CeremonyUser is the subject of a credential ceremony.
type CeremonyUser struct {
	NationalID    string
	DisplayName   string
	Authenticator *domain.Authenticator
}

// CeremonyStart is what the verifier produces when a ceremony begins.
type CeremonyStart struct {
	// Options is sent to the client verbatim.
	Options json.RawMessage
	// Challenge is the random value the client must sign.
	Challenge string
	// Session is opaque verifier state needed to finish the ceremony.
	Session []byte
}

// AssertionResult is the outcome of a verified authentication assertion.
type AssertionResult struct {
	// SignCount is the counter reported by the authenticator.
	SignCount uint32
}

// CredentialVerifier performs the cryptographic half of the ceremonies.
// Verification failures wrap domain.ErrAttestationVerificationFailed.
type CredentialVerifier interface {
	BeginRegistration(user CeremonyUser) (*CeremonyStart, error)
	FinishRegistration(user CeremonyUser, session []byte, response json.RawMessage) (*domain.Authenticator, error)
	BeginAuthentication(user CeremonyUser) (*CeremonyStart, error)
	FinishAuthentication(user CeremonyUser, session []byte, response json.RawMessage) (*AssertionResult, error)
}
