package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vozciudadana/civic-core/internal/api/metrics"
	"github.com/vozciudadana/civic-core/internal/core/domain"
	"github.com/vozciudadana/civic-core/internal/core/ports"
)

type AuthHandler struct {
	ceremonies ports.CeremonyService
}

func NewAuthHandler(ceremonies ports.CeremonyService) *AuthHandler {
	return &AuthHandler{ceremonies: ceremonies}
}

// BeginRegistration issues creation options for a new authenticator.
//
// @Summary      Begin registration ceremony
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registrationBeginRequest  true  "Identity to register"
// @Success      200   {object}  object  "PublicKeyCredentialCreationOptions"
// @Failure      400   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /v1/auth/registration/begin [post]
func (h *AuthHandler) BeginRegistration(c echo.Context) error {
	var req registrationBeginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	opts, err := h.ceremonies.BeginRegistration(c.Request().Context(), req.IDKey, req.DisplayName)
	observeCeremony("registration_begin", err)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, opts)
}

// FinishRegistration verifies the attestation and binds the authenticator.
//
// @Summary      Finish registration ceremony
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registrationFinishRequest  true  "Attestation response"
// @Success      200   {object}  ceremonyResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /v1/auth/registration/finish [post]
func (h *AuthHandler) FinishRegistration(c echo.Context) error {
	var req registrationFinishRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.ceremonies.FinishRegistration(c.Request().Context(), req.IDKey, req.DisplayName, req.Response)
	observeCeremony("registration_finish", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCeremonyResponse(res))
}

// BeginAuthentication issues request options scoped to the bound credential.
//
// @Summary      Begin authentication ceremony
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authenticationBeginRequest  true  "Identity to authenticate"
// @Success      200   {object}  object  "PublicKeyCredentialRequestOptions"
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /v1/auth/authentication/begin [post]
func (h *AuthHandler) BeginAuthentication(c echo.Context) error {
	var req authenticationBeginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	opts, err := h.ceremonies.BeginAuthentication(c.Request().Context(), req.IDKey)
	observeCeremony("authentication_begin", err)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, opts)
}

// FinishAuthentication verifies the assertion and returns a session token.
//
// @Summary      Finish authentication ceremony
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authenticationFinishRequest  true  "Assertion response"
// @Success      200   {object}  ceremonyResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /v1/auth/authentication/finish [post]
func (h *AuthHandler) FinishAuthentication(c echo.Context) error {
	var req authenticationFinishRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.ceremonies.FinishAuthentication(c.Request().Context(), req.IDKey, req.Response)
	observeCeremony("authentication_finish", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCeremonyResponse(res))
}

// MasterLogin is the rate-limited administrator override.
//
// @Summary      Master login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      masterLoginRequest  true  "Allow-listed identity and secret"
// @Success      200   {object}  ceremonyResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      429   {object}  ErrorResponse
// @Router       /v1/auth/master-login [post]
func (h *AuthHandler) MasterLogin(c echo.Context) error {
	var req masterLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.ceremonies.MasterLogin(c.Request().Context(), ports.MasterLoginInput{
		NationalID: req.IDKey,
		Secret:     req.Secret,
		RemoteAddr: c.RealIP(),
	})
	metrics.MasterLoginAttemptsTotal.WithLabelValues(outcomeLabel(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCeremonyResponse(res))
}

func observeCeremony(ceremony string, err error) {
	metrics.CeremonyOutcomesTotal.WithLabelValues(ceremony, outcomeLabel(err)).Inc()
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrInvalidIdentityFormat):
		return "invalid_identity"
	case errors.Is(err, domain.ErrChallengeNotFound):
		return "challenge_not_found"
	case errors.Is(err, domain.ErrNoAuthenticatorBound):
		return "no_authenticator"
	case errors.Is(err, domain.ErrAttestationVerificationFailed):
		return "verification_failed"
	case errors.Is(err, domain.ErrReplaySuspected):
		return "replay_suspected"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "rate_limited"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "denied"
	default:
		return "error"
	}
}
