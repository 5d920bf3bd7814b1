package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vozciudadana/civic-core/internal/api/middleware"
	"github.com/vozciudadana/civic-core/internal/core/domain"
)

// ctxIdentity extracts the national ID injected by the Auth middleware. Its
// absence means the route was mounted without Auth.
func ctxIdentity(c echo.Context) (nationalID string, err error) {
	nationalID, _ = c.Get(middleware.CtxNationalID).(string)
	if nationalID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return nationalID, nil
}

// bindAndValidate decodes the body into req and runs the validator.
// Identity format errors pass through so they map to their own code.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		if errors.Is(err, domain.ErrInvalidIdentityFormat) {
			return err
		}
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}
