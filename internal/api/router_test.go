package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/smartcare/clinic-api/internal/api/handler"
	"github.com/smartcare/clinic-api/internal/core/service"
	"github.com/smartcare/clinic-api/internal/infrastructure/db/sql"
	"github.com/smartcare/clinic-api/internal/infrastructure/queue"
)

type testServer struct {
	e          *echo.Echo
	db         *gorm.DB
	dispatcher *queue.Dispatcher
}

// newTestServer runs the whole stack on an in-memory SQLite database seeded
// with the default users.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	log := zerolog.Nop()

	db, err := sql.Open(sql.Config{Driver: sql.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sql.Close(db) })

	dispatcher := queue.NewDispatcher(1, log, sql.NewAuditRepository(db))
	dispatcher.Start(ctx)
	t.Cleanup(dispatcher.Close)

	creds := service.NewCredentialStore(sql.NewUserRepository(db), log)
	_, err = creds.SeedDefaults(ctx, service.DefaultSeedUsers("admin", "doctor"))
	require.NoError(t, err)

	sessions := service.NewTokenManager("test-secret", time.Hour)
	e := NewRouter(Deps{
		Auth:           service.NewAuthService(creds, sessions, dispatcher, log),
		Sessions:       sessions,
		Appointments:   service.NewAppointmentService(sql.NewAppointmentRepository(db), creds, nil, dispatcher, log),
		Prescriptions:  service.NewPrescriptionService(sql.NewPrescriptionRepository(db), creds, dispatcher, log),
		Doctors:        creds,
		HealthChecks:   map[string]handler.Pinger{"sqlite": sql.Pinger(db)},
		AllowedOrigins: []string{"http://localhost:5500"},
		Log:            log,
		Registerer:     prometheus.NewRegistry(),
	})

	return &testServer{e: e, db: db, dispatcher: dispatcher}
}

func (s *testServer) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T, identifier, password string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/login", "", `{"identifier":"`+identifier+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Role  string `json:"role"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (s *testServer) book(t *testing.T, patient, doctor string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/appointments", "", `{"patientName":"`+patient+`","doctor":"`+doctor+`","date":"2026-11-02"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Appointment struct {
			ID string `json:"id"`
		} `json:"appointment"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Appointment.ID
}

type listedRecord struct {
	ID          string `json:"id"`
	PatientName string `json:"patientName"`
	Doctor      string `json:"doctor"`
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []listedRecord {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out []listedRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestRouter_Root(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "SmartCare backend running", rec.Body.String())

	rec = s.do(t, http.MethodGet, "/health/ready", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Login(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/login", "", `{"identifier":"drrao","password":"doctor"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"doctor"`)

	wrong := s.do(t, http.MethodPost, "/login", "", `{"identifier":"drrao","password":"wrong"}`)
	unknown := s.do(t, http.MethodPost, "/login", "", `{"identifier":"nobody","password":"doctor"}`)
	for _, rec := range []*httptest.ResponseRecorder{wrong, unknown} {
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "invalid credentials", errorMessage(t, rec))
	}
}

func TestRouter_DoctorSeesOnlyOwnAppointments(t *testing.T) {
	s := newTestServer(t)
	first := s.book(t, "Asha", "Dr. A. Rao")
	s.book(t, "Bala", "Dr. Meena S.")
	second := s.book(t, "Chitra", "drrao")

	token := s.login(t, "drrao", "doctor")
	items := decodeList(t, s.do(t, http.MethodGet, "/appointments", token, ""))

	require.Len(t, items, 2)
	assert.Equal(t, second, items[0].ID, "newest first")
	assert.Equal(t, first, items[1].ID)
	for _, it := range items {
		assert.Equal(t, "Dr. A. Rao", it.Doctor)
	}
}

func TestRouter_AppointmentsRequireDoctor(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/appointments", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/appointments", "garbage", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	admin := s.login(t, "admin", "admin")
	rec = s.do(t, http.MethodGet, "/appointments", admin, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_AdminListsAndDeletes(t *testing.T) {
	s := newTestServer(t)
	id := s.book(t, "Asha", "Dr. A. Rao")
	s.book(t, "Bala", "Dr. K. Kumar")

	doctor := s.login(t, "drrao", "doctor")
	admin := s.login(t, "admin", "admin")

	rec := s.do(t, http.MethodGet, "/admin/appointments", doctor, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	items := decodeList(t, s.do(t, http.MethodGet, "/admin/appointments", admin, ""))
	require.Len(t, items, 2)
	assert.Equal(t, "Bala", items[0].PatientName)

	rec = s.do(t, http.MethodDelete, "/admin/appointments/"+id, doctor, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodDelete, "/admin/appointments/"+id, "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodDelete, "/admin/appointments/"+id, admin, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodDelete, "/admin/appointments/"+id, admin, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	items = decodeList(t, s.do(t, http.MethodGet, "/admin/appointments", admin, ""))
	assert.Len(t, items, 1)
}

func TestRouter_BookingUnknownDoctor(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/appointments", "", `{"patientName":"Asha","doctor":"Dr. Who","date":"2026-11-02"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "unknown doctor", errorMessage(t, rec))
}

func TestRouter_Prescriptions(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin", "admin")
	meena := s.login(t, "drmeena", "doctor")
	rao := s.login(t, "drrao", "doctor")

	body := `{"patientName":"Asha","doctor":"Dr. A. Rao","diagnosis":"Flu","medicines":"Rest","date":"2026-11-02"}`

	rec := s.do(t, http.MethodPost, "/prescriptions", admin, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/prescriptions", meena, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"doctor":"Dr. Meena S."`)

	assert.Empty(t, decodeList(t, s.do(t, http.MethodGet, "/prescriptions", rao, "")))
	assert.Len(t, decodeList(t, s.do(t, http.MethodGet, "/prescriptions", meena, "")), 1)

	all := decodeList(t, s.do(t, http.MethodGet, "/admin/prescriptions", admin, ""))
	require.Len(t, all, 1)

	rec = s.do(t, http.MethodDelete, "/admin/prescriptions/"+all[0].ID, admin, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RegisterDoctor(t *testing.T) {
	s := newTestServer(t)
	s.book(t, "Asha", "Dr. A. Rao")

	body := `{"username":"drnew","password":"secret","displayName":"Dr. New","speciality":"Dermatologist"}`
	rec := s.do(t, http.MethodPost, "/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "password")

	rec = s.do(t, http.MethodPost, "/register", "", body)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/register", "", `{"username":"root","password":"secret","role":"admin"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// a doctor with no appointments sees an empty list, never everyone's
	token := s.login(t, "drnew", "secret")
	assert.Empty(t, decodeList(t, s.do(t, http.MethodGet, "/appointments", token, "")))

	me := s.do(t, http.MethodGet, "/me", token, "")
	require.Equal(t, http.StatusOK, me.Code)
	assert.Contains(t, me.Body.String(), `"identifier":"drnew"`)
}

func TestRouter_RegisterRejectsUsernameMatchingAnEmail(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/register", "", `{"username":"drjoshi","email":"joshi@clinic.test","password":"secret"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/register", "", `{"username":"joshi@clinic.test","password":"other"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/register", "", `{"username":"drother","email":"drjoshi@clinic.test","password":"other"}`)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/register", "", `{"username":"   ","password":"secret"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "invalid input", errorMessage(t, rec))
}

func TestRouter_TokenCarriesDisplayName(t *testing.T) {
	s := newTestServer(t)
	rao := s.login(t, "drrao", "doctor")

	me := s.do(t, http.MethodGet, "/me", rao, "")
	require.Equal(t, http.StatusOK, me.Code)
	assert.Contains(t, me.Body.String(), `"displayName":"Dr. A. Rao"`)

	body := `{"patientName":"Asha","diagnosis":"Flu","medicines":"Rest","date":"2026-11-02"}`
	rec := s.do(t, http.MethodPost, "/prescriptions", rao, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var written struct {
		Prescription listedRecord `json:"prescription"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &written))

	listed := decodeList(t, s.do(t, http.MethodGet, "/prescriptions", rao, ""))
	require.Len(t, listed, 1)
	assert.Equal(t, "Dr. A. Rao", written.Prescription.Doctor)
	assert.Equal(t, listed[0].Doctor, written.Prescription.Doctor)
}

func TestRouter_Doctors(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/doctors", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var doctors []struct {
		Username    string `json:"username"`
		DisplayName string `json:"displayName"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doctors))
	assert.Len(t, doctors, 4)
	assert.NotContains(t, rec.Body.String(), "$2a$")
}

func TestRouter_LogoutInTokenMode(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "drrao", "doctor")

	rec := s.do(t, http.MethodPost, "/logout", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/logout", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_AuditTrailIsPersisted(t *testing.T) {
	s := newTestServer(t)
	s.book(t, "Asha", "Dr. A. Rao")
	s.do(t, http.MethodPost, "/login", "", `{"identifier":"drrao","password":"wrong"}`)

	s.dispatcher.Close()

	var actions []string
	require.NoError(t, s.db.Table("audit_events").Order("at").Pluck("action", &actions).Error)
	assert.Contains(t, actions, "appointment_booked")
	assert.Contains(t, actions, "login_failed")
}
