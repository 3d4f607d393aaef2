package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/labstack/echo/v4"
)

// CORS allows credentialed requests from the configured browser origins.
func CORS(allowedOrigins []string) echo.MiddlewareFunc {
	return echo.WrapMiddleware(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}
