package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smartcare/clinic-api/internal/core/domain"
)

type stubDirectory struct {
	doctors []*domain.User
}

func (s *stubDirectory) ListDoctors(context.Context) ([]*domain.User, error) {
	return s.doctors, nil
}

func TestHealthHandler_Root(t *testing.T) {
	e := newEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	if err := NewHealthHandler(nil).Root(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Body.String() != "SmartCare backend running" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	cases := map[string]struct {
		checks map[string]Pinger
		code   int
		status string
	}{
		"all up":     {map[string]Pinger{"mongodb": ok, "redis": ok}, http.StatusOK, "ok"},
		"redis down": {map[string]Pinger{"mongodb": ok, "redis": down}, http.StatusServiceUnavailable, "degraded"},
		"no deps":    {nil, http.StatusOK, "ok"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			e := newEcho()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)

			if err := NewHealthHandler(tc.checks).Readiness(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var resp readinessResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Status != tc.status {
				t.Fatalf("expected status %q, got %q", tc.status, resp.Status)
			}
		})
	}
}

func TestDoctorHandler_List(t *testing.T) {
	e := newEcho()
	dir := &stubDirectory{doctors: []*domain.User{
		{ID: "d-rao", Username: "drrao", Role: domain.RoleDoctor, DisplayName: "Dr. A. Rao", Speciality: "General Physician", PasswordHash: "secret-hash"},
		{ID: "d-new", Username: "drnew", Role: domain.RoleDoctor},
	}}

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/doctors", nil), rec)
	if err := NewDoctorHandler(dir).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []doctorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 || resp[0].DisplayName != "Dr. A. Rao" || resp[1].DisplayName != "drnew" {
		t.Fatalf("unexpected doctors: %+v", resp)
	}
}
