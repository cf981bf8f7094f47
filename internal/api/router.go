package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

// NewRouter builds and returns the Chi router with all routes configured.
// ratePerMinute limits requests per client IP; zero disables the limiter.
// cache may be nil when no external cache needs health checking.
func NewRouter(handlers *Handlers, cache Pinger, ratePerMinute int, log *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))

	r.Get("/api/health", HealthHandlerFunc(cache, log))

	r.Group(func(r chi.Router) {
		if ratePerMinute > 0 {
			r.Use(httprate.LimitByIP(ratePerMinute, time.Minute))
		}
		r.Get("/api/connections", handlers.Connections)
		r.Get("/api/transport/search", handlers.SearchStations)
		r.Get("/api/transport/departures", handlers.Departures)
		r.Get("/api/transport/journeys", handlers.Journeys)
		r.Get("/api/flights/airports", handlers.SearchAirports)
		r.Get("/api/flights/search", handlers.SearchFlights)
	})

	return r
}

// Ensure chi.Mux implements http.Handler.
var _ http.Handler = (*chi.Mux)(nil)
