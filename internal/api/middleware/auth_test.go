package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/smartcare/clinic-api/internal/core/domain"
	"github.com/smartcare/clinic-api/internal/core/service"
)

const testCookie = "smartcare.sid"

// stubSessions is a session-mode manager backed by a map.
type stubSessions struct {
	sessions map[string]domain.Identity
	err      error
}

func (s *stubSessions) Mode() domain.AuthMode { return domain.AuthModeSession }

func (s *stubSessions) Issue(context.Context, domain.Identity) (string, time.Time, error) {
	return "", time.Time{}, nil
}

func (s *stubSessions) Verify(_ context.Context, sid string) (*domain.Identity, error) {
	if s.err != nil {
		return nil, s.err
	}
	id, ok := s.sessions[sid]
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return &id, nil
}

func (s *stubSessions) Revoke(context.Context, string) error { return nil }

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	tokens := service.NewTokenManager("secret", time.Hour)
	signed, _, err := tokens.Issue(context.Background(), domain.Identity{ID: "u1", Identifier: "drrao", Role: domain.RoleDoctor})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(tokens, testCookie)
	handler := mw(func(c echo.Context) error {
		called = true
		id, ok := c.Get(IdentityKey).(*domain.Identity)
		if !ok || id.ID != "u1" || id.Identifier != "drrao" {
			t.Fatalf("identity not set: %+v", c.Get(IdentityKey))
		}
		if c.Get(RoleKey) != "doctor" {
			t.Fatalf("role not set")
		}
		if c.Get(CredentialKey) != signed {
			t.Fatalf("credential not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_RejectsBadTokens(t *testing.T) {
	tokens := service.NewTokenManager("secret", time.Hour)
	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Token abc",
		"empty bearer":   "Bearer ",
		"not a token":    "Bearer not-a-token",
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := Auth(tokens, testCookie)(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			if err := handler(c); err != nil {
				e.HTTPErrorHandler(err, c)
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), domain.ErrUnauthenticated.Error()) {
				t.Fatalf("expected uniform message, got %s", rec.Body.String())
			}
		})
	}
}

func TestAuthMiddleware_SessionCookie(t *testing.T) {
	sessions := &stubSessions{sessions: map[string]domain.Identity{
		"sid-1": {ID: "a1", Identifier: "admin", Role: domain.RoleAdmin},
	}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "sid-1"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(sessions, testCookie)(func(c echo.Context) error {
		if c.Get(RoleKey) != "admin" {
			t.Fatalf("role not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_SessionModeIgnoresBearerHeader(t *testing.T) {
	sessions := &stubSessions{sessions: map[string]domain.Identity{
		"sid-1": {ID: "a1", Identifier: "admin", Role: domain.RoleAdmin},
	}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer sid-1")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(sessions, testCookie)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_UnknownSession(t *testing.T) {
	sessions := &stubSessions{sessions: map[string]domain.Identity{}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "destroyed"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(sessions, testCookie)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_SessionStoreOutageIsNotUnauthorized(t *testing.T) {
	outage := fmt.Errorf("load session: %w", domain.ErrStoreUnavailable)
	sessions := &stubSessions{err: outage}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "sid-1"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(sessions, testCookie)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected the store error to pass through, got %v", err)
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		t.Fatalf("store error must not become an HTTP %d", he.Code)
	}
}
