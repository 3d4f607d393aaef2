package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/smartcare/clinic-api/internal/core/domain"
	"github.com/smartcare/clinic-api/internal/core/ports"
)

// Context keys written by Auth.
const (
	IdentityKey   = "identity"
	RoleKey       = "role"
	CredentialKey = "credential"
)

// Auth resolves the request credential through sessions and injects the
// identity into the context. In session mode the credential is read from the
// cookie named cookieName; in token mode from the Authorization header.
// Errors other than domain.ErrUnauthenticated are returned unchanged.
func Auth(sessions ports.SessionManager, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			credential, err := extractCredential(c, sessions.Mode(), cookieName)
			if err != nil {
				return err
			}

			id, err := sessions.Verify(c.Request().Context(), credential)
			if errors.Is(err, domain.ErrUnauthenticated) {
				return unauthenticated()
			}
			if err != nil {
				return err
			}

			c.Set(IdentityKey, id)
			c.Set(RoleKey, string(id.Role))
			c.Set(CredentialKey, credential)

			return next(c)
		}
	}
}

func extractCredential(c echo.Context, mode domain.AuthMode, cookieName string) (string, error) {
	if mode == domain.AuthModeSession {
		cookie, err := c.Cookie(cookieName)
		if err != nil || cookie.Value == "" {
			return "", unauthenticated()
		}
		return cookie.Value, nil
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", unauthenticated()
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", unauthenticated()
	}
	return parts[1], nil
}

// unauthenticated is the one response for every credential failure.
func unauthenticated() error {
	return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
}
