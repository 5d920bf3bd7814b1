package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vozciudadana/civic-core/internal/core/ports"
)

type IdentityHandler struct {
	identities ports.IdentityService
}

func NewIdentityHandler(identities ports.IdentityService) *IdentityHandler {
	return &IdentityHandler{identities: identities}
}

// Check reports whether a national ID should log in or register.
//
// @Summary      Check identity
// @Tags         auth
// @Produce      json
// @Param        id_key  path      string  true  "National ID"
// @Success      200     {object}  checkIdentityResponse
// @Failure      400     {object}  ErrorResponse
// @Router       /v1/auth/check-identity/{id_key} [get]
func (h *IdentityHandler) Check(c echo.Context) error {
	st, err := h.identities.Check(c.Request().Context(), c.Param("id_key"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, checkIdentityResponse{
		Exists:           st.Exists,
		HasAuthenticator: st.HasAuthenticator,
		DisplayName:      st.DisplayName,
	})
}

// Me returns the caller's identity and level.
//
// @Summary      Current identity
// @Tags         identities
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  identityResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/identities/me [get]
func (h *IdentityHandler) Me(c echo.Context) error {
	nationalID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	p, err := h.identities.Profile(c.Request().Context(), nationalID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toIdentityResponse(p.Identity, p.Level))
}

// Verify marks an identity as officially verified.
//
// @Summary      Verify identity
// @Tags         identities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id_key  path      string                 true   "National ID"
// @Param        body    body      verifyIdentityRequest  false  "Verified display name"
// @Success      200     {object}  identityResponse
// @Failure      403     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /v1/identities/{id_key}/verify [post]
func (h *IdentityHandler) Verify(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req verifyIdentityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.identities.Verify(c.Request().Context(), ports.VerifyIdentityInput{
		NationalID:  c.Param("id_key"),
		DisplayName: req.DisplayName,
		Actor:       actor,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toIdentityResponse(p.Identity, p.Level))
}
