package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vozciudadana/civic-core/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"wrapped replay", fmt.Errorf("finish authentication: %w", domain.ErrReplaySuspected), http.StatusUnauthorized, "REPLAY_SUSPECTED"},
		{"bad identity", domain.ErrInvalidIdentityFormat, http.StatusBadRequest, "INVALID_IDENTITY_FORMAT"},
		{"missing challenge", domain.ErrChallengeNotFound, http.StatusConflict, "CHALLENGE_NOT_FOUND"},
		{"rate limited", domain.ErrTooManyAttempts, http.StatusTooManyRequests, "TOO_MANY_ATTEMPTS"},
		{"voter", fmt.Errorf("toggle vote: %w", domain.ErrVoterNotFound), http.StatusNotFound, "VOTER_NOT_FOUND"},
		{"bad state", domain.ErrInvalidPostState, http.StatusUnprocessableEntity, "INVALID_POST_STATE"},
		{"echo error", echo.NewHTTPError(http.StatusUnprocessableEntity, "title is required"), http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY"},
		{"unknown", errors.New("mongo exploded"), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body["code"] != tc.code {
				t.Fatalf("expected code %s, got %s", tc.code, body["code"])
			}
			if tc.code == "INTERNAL" && body["error"] != "internal server error" {
				t.Fatalf("internal error leaked: %s", body["error"])
			}
		})
	}
}
