package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/fakhrymubarak/weather-dashboard/internal/handler"
	"github.com/fakhrymubarak/weather-dashboard/internal/metrics"
	"github.com/fakhrymubarak/weather-dashboard/internal/middleware"
)

// NewRouter mounts the proxy routes. m may be nil, in which case /metrics
// answers 404 and nothing is counted.
func NewRouter(h *handler.ForecastHandler, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger)
	r.Use(m.Middleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Route("/api", func(r chi.Router) {
		// CORS answers OPTIONS before routing, for every /api path.
		r.Use(middleware.CORS)
		r.Get("/weather", h.HandleForecast)
		r.Get("/usage", h.HandleUsage)
	})

	return r
}
