package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/smartcare/clinic-api/internal/api/metrics"
	"github.com/smartcare/clinic-api/internal/core/domain"
	"github.com/smartcare/clinic-api/internal/core/ports"
)

// CookieConfig describes the session cookie used in session mode. Secure
// cookies are sent with SameSite=None so a frontend on another origin can
// carry them.
type CookieConfig struct {
	Name   string
	Secure bool
}

type AuthHandler struct {
	authService ports.AuthService
	cookie      CookieConfig
}

func NewAuthHandler(authService ports.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

// Register creates a new doctor account.
//
// @Summary      Register a doctor
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), ports.NewUser{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		Role:        domain.Role(req.Role),
		DisplayName: req.DisplayName,
		Speciality:  req.Speciality,
	})
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotAllowed) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "only doctor accounts can be registered")
		}
		return err
	}

	metrics.RegistrationsTotal.Inc()
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Login authenticates an identity. In token mode the response carries a
// bearer token; in session mode a session cookie is set instead.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.authService.Login(c.Request().Context(), req.identifier(), req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		}
		return err
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	resp := loginResponse{
		Role:      string(result.Identity.Role),
		ExpiresAt: result.ExpiresAt,
		User:      toIdentityResponse(result.Identity),
	}
	if h.authService.Mode() == domain.AuthModeSession {
		c.SetCookie(h.sessionCookie(result.Credential, result.ExpiresAt))
	} else {
		resp.Token = result.Credential
	}

	return c.JSON(http.StatusOK, resp)
}

// Logout ends the caller's session. Tokens cannot be revoked; the client
// simply discards them.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), credentialFrom(c)); err != nil {
		return err
	}
	if h.authService.Mode() == domain.AuthModeSession {
		expired := h.sessionCookie("", time.Unix(0, 0))
		expired.MaxAge = -1
		c.SetCookie(expired)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

// Me returns the identity attached to the request.
//
// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  identityResponse
// @Failure      401  {object}  errorResponse
// @Router       /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	id, err := requireCaller(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toIdentityResponse(*id))
}

func (h *AuthHandler) sessionCookie(value string, expires time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if h.cookie.Secure {
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}
