package domain

import (
	"errors"
	"time"
)

var (
	ErrChallengeNotFound             = errors.New("challenge not found")
	ErrAttestationVerificationFailed = errors.New("attestation verification failed")
	ErrReplaySuspected               = errors.New("signature counter did not increase")
)

// CeremonyKind distinguishes registration challenges from authentication ones.
type CeremonyKind string

const (
	CeremonyRegistration   CeremonyKind = "registration"
	CeremonyAuthentication CeremonyKind = "authentication"
)

// Challenge is an outstanding ceremony for one identity. At most one exists
// per identity; starting a new ceremony overwrites it and finishing one
// consumes it.
type Challenge struct {
	NationalID string       `json:"national_id"`
	Kind       CeremonyKind `json:"kind"`
	Value      string       `json:"value"`
	// Session is the verifier's opaque state for the ceremony.
	Session   []byte    `json:"session"`
	CreatedAt time.Time `json:"created_at"`
}

// CounterAdvanced reports whether an authenticator's reported signature
// counter proves it is not a clone of the stored one. Authenticators without
// counter support report zero forever.
func CounterAdvanced(stored, reported uint32) bool {
	if stored == 0 && reported == 0 {
		return true
	}
	return reported > stored
}
