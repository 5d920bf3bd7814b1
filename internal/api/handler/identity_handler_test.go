package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/vozciudadana/civic-core/internal/core/domain"
	"github.com/vozciudadana/civic-core/internal/core/ports"
)

func TestIdentityHandler_Check(t *testing.T) {
	stub := &stubIdentityService{
		checkFn: func(_ context.Context, id string) (*ports.IdentityStatus, error) {
			if id != "12345672" {
				t.Fatalf("unexpected id %q", id)
			}
			return &ports.IdentityStatus{Exists: true, HasAuthenticator: true, DisplayName: "Ana"}, nil
		},
	}
	c, rec := newContext(http.MethodGet, "/v1/auth/check-identity/12345672", "")
	c.SetParamNames("id_key")
	c.SetParamValues("12345672")

	if err := NewIdentityHandler(stub).Check(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decode(t, rec)
	if resp["exists"] != true || resp["has_authenticator"] != true || resp["display_name"] != "Ana" {
		t.Fatalf("unexpected body: %v", resp)
	}
}

func TestIdentityHandler_Check_InvalidFormat(t *testing.T) {
	stub := &stubIdentityService{
		checkFn: func(context.Context, string) (*ports.IdentityStatus, error) {
			return nil, domain.ErrInvalidIdentityFormat
		},
	}
	c, _ := newContext(http.MethodGet, "/v1/auth/check-identity/x", "")
	c.SetParamNames("id_key")
	c.SetParamValues("x")

	if err := NewIdentityHandler(stub).Check(c); !errors.Is(err, domain.ErrInvalidIdentityFormat) {
		t.Fatalf("expected ErrInvalidIdentityFormat, got %v", err)
	}
}

func TestIdentityHandler_Me(t *testing.T) {
	stub := &stubIdentityService{
		profileFn: func(_ context.Context, id string) (*ports.IdentityProfile, error) {
			identity := &domain.Identity{ID: "64f0", NationalID: id, XP: 400, Role: domain.RoleCitizen}
			return &ports.IdentityProfile{Identity: identity, Level: domain.LevelOf(identity.XP)}, nil
		},
	}
	c, rec := newContext(http.MethodGet, "/v1/identities/me", "")
	authenticate(c, "12345672", domain.RoleCitizen)

	if err := NewIdentityHandler(stub).Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	level := decode(t, rec)["level"].(map[string]any)
	if level["level"].(float64) != 5 || level["name"] != "Civic Defender" {
		t.Fatalf("unexpected level: %v", level)
	}
}

func TestIdentityHandler_Verify(t *testing.T) {
	stub := &stubIdentityService{
		verifyFn: func(_ context.Context, in ports.VerifyIdentityInput) (*ports.IdentityProfile, error) {
			if in.NationalID != "12345672" || in.Actor != "11111111" || in.DisplayName != "Ana Diaz" {
				t.Fatalf("unexpected input: %+v", in)
			}
			identity := &domain.Identity{ID: "64f0", NationalID: in.NationalID, DisplayName: in.DisplayName, Verified: true}
			return &ports.IdentityProfile{Identity: identity, Level: domain.LevelOf(0)}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/v1/identities/12345672/verify", `{"display_name":"Ana Diaz"}`)
	c.SetParamNames("id_key")
	c.SetParamValues("12345672")
	authenticate(c, "11111111", domain.RoleAdmin)

	if err := NewIdentityHandler(stub).Verify(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if decode(t, rec)["verified"] != true {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
