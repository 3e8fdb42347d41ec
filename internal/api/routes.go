package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/zapponejosh/amlich-api/internal/config"
)

// NewRouter configures all HTTP routes.
//
//	GET  /health
//	GET  /api/v1/lunar/today
//	GET  /api/v1/lunar/solar/{date}
//	GET  /api/v1/lunar/range?start=&end=
//	GET  /api/v1/lunar/years/{year}/months
//	GET  /api/v1/solar/lunar?year=&month=&day=&leap=
//	POST /api/v1/admin/year-codes  (X-API-Key)
//
// Every conversion endpoint accepts ascii=true to strip diacritics from names.
func NewRouter(h *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(LoggingMiddleware(logger))
	r.Use(RecoveryMiddleware(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-API-Key"},
		MaxAge:         3600,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED")
	})

	r.Get("/health", h.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/lunar", func(r chi.Router) {
			r.Get("/today", h.GetToday)
			r.Get("/solar/{date}", h.GetSolarDate)
			r.Get("/range", h.GetRange)
			r.Get("/years/{year}/months", h.GetYearMonths)
		})

		r.Get("/solar/lunar", h.GetLunarDate)

		r.Route("/admin", func(r chi.Router) {
			r.Use(AuthMiddleware(cfg, logger))
			r.Post("/year-codes", h.PostYearCodes)
		})
	})

	return r
}
