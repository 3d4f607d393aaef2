package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartcare/clinic-api/internal/api/middleware"
	"github.com/smartcare/clinic-api/internal/core/domain"
)

// callerFrom returns the identity injected by the Auth middleware, or nil on
// public routes.
func callerFrom(c echo.Context) *domain.Identity {
	id, _ := c.Get(middleware.IdentityKey).(*domain.Identity)
	return id
}

// requireCaller is the fast-fail check for handlers mounted behind Auth: the
// identity must be present, otherwise the route was wired without the
// middleware.
func requireCaller(c echo.Context) (*domain.Identity, error) {
	id := callerFrom(c)
	if id == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

func credentialFrom(c echo.Context) string {
	credential, _ := c.Get(middleware.CredentialKey).(string)
	return credential
}

// bindAndValidate decodes the request body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}
