package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vozciudadana/civic-core/internal/api/handler"
	"github.com/vozciudadana/civic-core/internal/core/domain"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// knownErrors maps domain errors to deterministic HTTP responses. Order
// matters only where one sentinel could wrap another.
var knownErrors = []errorMapping{
	{domain.ErrInvalidIdentityFormat, http.StatusBadRequest, "INVALID_IDENTITY_FORMAT"},
	{domain.ErrChallengeNotFound, http.StatusConflict, "CHALLENGE_NOT_FOUND"},
	{domain.ErrNoAuthenticatorBound, http.StatusConflict, "NO_AUTHENTICATOR_BOUND"},
	{domain.ErrAttestationVerificationFailed, http.StatusUnauthorized, "ATTESTATION_VERIFICATION_FAILED"},
	{domain.ErrReplaySuspected, http.StatusUnauthorized, "REPLAY_SUSPECTED"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{domain.ErrTooManyAttempts, http.StatusTooManyRequests, "TOO_MANY_ATTEMPTS"},
	{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	{domain.ErrVoterNotFound, http.StatusNotFound, "VOTER_NOT_FOUND"},
	{domain.ErrIdentityNotFound, http.StatusNotFound, "IDENTITY_NOT_FOUND"},
	{domain.ErrTargetNotFound, http.StatusNotFound, "TARGET_NOT_FOUND"},
	{domain.ErrPostNotFound, http.StatusNotFound, "POST_NOT_FOUND"},
	{domain.ErrCommentNotFound, http.StatusNotFound, "COMMENT_NOT_FOUND"},
	{domain.ErrInvalidTargetKind, http.StatusUnprocessableEntity, "INVALID_TARGET_KIND"},
	{domain.ErrInvalidPostState, http.StatusUnprocessableEntity, "INVALID_POST_STATE"},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status and error code.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>", "code": "<CODE>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := resolveError(err, log, c)
		_ = c.JSON(status, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, handler.ErrorResponse) {
	for _, m := range knownErrors {
		if errors.Is(err, m.err) {
			return m.status, handler.ErrorResponse{Error: m.err.Error(), Code: m.code}
		}
	}

	// Echo's own errors (bind failures, 404 from router, validation, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, handler.ErrorResponse{Error: fmt.Sprintf("%v", he.Message), Code: statusCode(he.Code)}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, handler.ErrorResponse{Error: "internal server error", Code: "INTERNAL"}
}

// statusCode turns "Unprocessable Entity" into "UNPROCESSABLE_ENTITY".
func statusCode(status int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}
