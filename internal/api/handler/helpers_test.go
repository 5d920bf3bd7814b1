package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/vozciudadana/civic-core/internal/api/middleware"
	"github.com/vozciudadana/civic-core/internal/core/domain"
	"github.com/vozciudadana/civic-core/internal/core/ports"
)

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func authenticate(c echo.Context, nationalID, role string) {
	c.Set(middleware.CtxNationalID, nationalID)
	c.Set(middleware.CtxRole, role)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func expectHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected echo.HTTPError, got %v", err)
	}
	if he.Code != code {
		t.Fatalf("expected %d, got %d", code, he.Code)
	}
}

// ---------------------------------------------------------------------------
// Stub services
// ---------------------------------------------------------------------------

type stubCeremonyService struct {
	beginRegistrationFn    func(ctx context.Context, id, name string) (json.RawMessage, error)
	finishRegistrationFn   func(ctx context.Context, id, name string, resp json.RawMessage) (*ports.CeremonyResult, error)
	beginAuthenticationFn  func(ctx context.Context, id string) (json.RawMessage, error)
	finishAuthenticationFn func(ctx context.Context, id string, resp json.RawMessage) (*ports.CeremonyResult, error)
	masterLoginFn          func(ctx context.Context, in ports.MasterLoginInput) (*ports.CeremonyResult, error)
}

func (s *stubCeremonyService) BeginRegistration(ctx context.Context, id, name string) (json.RawMessage, error) {
	return s.beginRegistrationFn(ctx, id, name)
}

func (s *stubCeremonyService) FinishRegistration(ctx context.Context, id, name string, resp json.RawMessage) (*ports.CeremonyResult, error) {
	return s.finishRegistrationFn(ctx, id, name, resp)
}

func (s *stubCeremonyService) BeginAuthentication(ctx context.Context, id string) (json.RawMessage, error) {
	return s.beginAuthenticationFn(ctx, id)
}

func (s *stubCeremonyService) FinishAuthentication(ctx context.Context, id string, resp json.RawMessage) (*ports.CeremonyResult, error) {
	return s.finishAuthenticationFn(ctx, id, resp)
}

func (s *stubCeremonyService) MasterLogin(ctx context.Context, in ports.MasterLoginInput) (*ports.CeremonyResult, error) {
	return s.masterLoginFn(ctx, in)
}

type stubVoteService struct {
	toggleFn func(ctx context.Context, in ports.ToggleVoteInput) (*ports.VoteResult, error)
}

func (s *stubVoteService) Toggle(ctx context.Context, in ports.ToggleVoteInput) (*ports.VoteResult, error) {
	return s.toggleFn(ctx, in)
}

type stubContentService struct {
	createPostFn    func(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error)
	createCommentFn func(ctx context.Context, in ports.CreateCommentInput) (*domain.Comment, error)
}

func (s *stubContentService) CreatePost(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error) {
	return s.createPostFn(ctx, in)
}

func (s *stubContentService) CreateComment(ctx context.Context, in ports.CreateCommentInput) (*domain.Comment, error) {
	return s.createCommentFn(ctx, in)
}

type stubModerationService struct {
	setStateFn func(ctx context.Context, in ports.SetStateInput) (*ports.StateChangeResult, error)
}

func (s *stubModerationService) SetState(ctx context.Context, in ports.SetStateInput) (*ports.StateChangeResult, error) {
	return s.setStateFn(ctx, in)
}

type stubIdentityService struct {
	checkFn   func(ctx context.Context, id string) (*ports.IdentityStatus, error)
	profileFn func(ctx context.Context, id string) (*ports.IdentityProfile, error)
	verifyFn  func(ctx context.Context, in ports.VerifyIdentityInput) (*ports.IdentityProfile, error)
}

func (s *stubIdentityService) Check(ctx context.Context, id string) (*ports.IdentityStatus, error) {
	return s.checkFn(ctx, id)
}

func (s *stubIdentityService) Profile(ctx context.Context, id string) (*ports.IdentityProfile, error) {
	return s.profileFn(ctx, id)
}

func (s *stubIdentityService) Verify(ctx context.Context, in ports.VerifyIdentityInput) (*ports.IdentityProfile, error) {
	return s.verifyFn(ctx, in)
}
