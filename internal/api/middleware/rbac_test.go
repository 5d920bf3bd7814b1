package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/vozciudadana/civic-core/internal/core/domain"
)

func TestRBAC(t *testing.T) {
	tests := []struct {
		name    string
		role    any
		allowed []string
		wantErr error
	}{
		{name: "admin allowed", role: domain.RoleAdmin, allowed: []string{domain.RoleAdmin}},
		{name: "any listed role", role: domain.RoleCitizen, allowed: []string{domain.RoleAdmin, domain.RoleCitizen}},
		{name: "citizen forbidden", role: domain.RoleCitizen, allowed: []string{domain.RoleAdmin}, wantErr: domain.ErrForbidden},
		{name: "missing claim", role: nil, allowed: []string{domain.RoleAdmin}, wantErr: domain.ErrForbidden},
		{name: "non-string claim", role: 42, allowed: []string{domain.RoleAdmin}, wantErr: domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodPut, "/", nil), rec)
			if tt.role != nil {
				c.Set(CtxRole, tt.role)
			}

			called := false
			handler := RBAC(tt.allowed...)(func(c echo.Context) error {
				called = true
				return c.NoContent(http.StatusOK)
			})

			err := handler(c)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if called {
					t.Fatalf("next handler should not run")
				}
				return
			}
			if err != nil || !called {
				t.Fatalf("expected pass-through, got err=%v called=%v", err, called)
			}
		})
	}
}
