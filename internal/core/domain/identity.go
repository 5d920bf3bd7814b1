package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin   = "admin"
	RoleCitizen = "citizen"
)

var (
	ErrIdentityNotFound     = errors.New("identity not found")
	ErrVoterNotFound        = errors.New("voter not found")
	ErrNoAuthenticatorBound = errors.New("no authenticator bound to identity")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrTooManyAttempts      = errors.New("too many attempts")
)

// Authenticator is the credential bound to an identity by a registration
// ceremony. Re-registering replaces it.
type Authenticator struct {
	CredentialID   []byte `json:"-"`
	PublicKey      []byte `json:"-"`
	SignCount      uint32 `json:"sign_count"`
	BackupEligible bool   `json:"-"`
	BackupState    bool   `json:"-"`
}

// Identity models a citizen keyed by canonical national ID.
type Identity struct {
	ID            string         `json:"id"`
	NationalID    string         `json:"national_id"`
	DisplayName   string         `json:"display_name"`
	Role          string         `json:"role"`
	XP            int            `json:"xp"`
	Verified      bool           `json:"verified"`
	Authenticator *Authenticator `json:"-"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     *time.Time     `json:"-"`
}

// HasAuthenticator reports whether a credential is bound.
func (i *Identity) HasAuthenticator() bool {
	return i.Authenticator != nil && len(i.Authenticator.CredentialID) > 0
}

func (i *Identity) IsDeleted() bool {
	return i.DeletedAt != nil
}

// RoleFor returns the role assigned to a newly created identity.
func RoleFor(nationalID string, admins []string) string {
	for _, a := range admins {
		if a == nationalID {
			return RoleAdmin
		}
	}
	return RoleCitizen
}
