package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/smartcare/clinic-api/docs"
	"github.com/smartcare/clinic-api/internal/api/handler"
	"github.com/smartcare/clinic-api/internal/api/middleware"
	"github.com/smartcare/clinic-api/internal/core/domain"
	"github.com/smartcare/clinic-api/internal/core/ports"
)

// SessionCookieName is the cookie carrying the session id in session mode.
const SessionCookieName = "smartcare.sid"

// Deps holds everything the router needs. Registerer defaults to the global
// Prometheus registry when nil.
type Deps struct {
	Auth          ports.AuthService
	Sessions      ports.SessionManager
	Appointments  ports.AppointmentService
	Prescriptions ports.PrescriptionService
	Doctors       ports.DoctorDirectory

	HealthChecks   map[string]handler.Pinger
	AllowedOrigins []string
	CookieSecure   bool

	Log        zerolog.Logger
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(middleware.CORS(d.AllowedOrigins))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:                 "smartcare",
		Subsystem:                 "http",
		Registerer:                d.Registerer,
		DoNotUseRequestPathFor404: true,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, handler.CookieConfig{Name: SessionCookieName, Secure: d.CookieSecure})
	appointmentHandler := handler.NewAppointmentHandler(d.Appointments)
	prescriptionHandler := handler.NewPrescriptionHandler(d.Prescriptions)
	doctorHandler := handler.NewDoctorHandler(d.Doctors)
	healthHandler := handler.NewHealthHandler(d.HealthChecks)

	authenticated := middleware.Auth(d.Sessions, SessionCookieName)
	doctorOnly := middleware.RequireRole(domain.RoleDoctor)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Probes and tooling (no auth required) ---
	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Public routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.GET("/doctors", doctorHandler.List)
	e.POST("/appointments", appointmentHandler.Book)

	// --- Authenticated routes ---
	e.POST("/logout", authHandler.Logout, authenticated)
	e.GET("/me", authHandler.Me, authenticated)

	// --- Doctor routes ---
	e.GET("/appointments", appointmentHandler.List, authenticated, doctorOnly)
	e.GET("/prescriptions", prescriptionHandler.List, authenticated, doctorOnly)
	e.POST("/prescriptions", prescriptionHandler.Write, authenticated, doctorOnly)

	// --- Admin routes ---
	admin := e.Group("/admin", authenticated, adminOnly)
	admin.GET("/appointments", appointmentHandler.List)
	admin.DELETE("/appointments/:id", appointmentHandler.Delete)
	admin.GET("/prescriptions", prescriptionHandler.List)
	admin.DELETE("/prescriptions/:id", prescriptionHandler.Delete)

	return e
}

// requestLogger writes one structured line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil || v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
