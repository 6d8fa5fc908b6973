package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vaultpass/passgen-go/internal/middleware"
)

// RouterDeps holds what NewRouter wires together.
type RouterDeps struct {
	Generator   *GeneratorHandler
	Sessions    *SessionHandler
	RateLimiter *middleware.RateLimiter
	Gatherer    prometheus.Gatherer
}

// NewRouter builds the HTTP routes of the API.
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		if d.RateLimiter != nil {
			r.Use(d.RateLimiter.Middleware)
		}
		r.Post("/generate", d.Generator.HandleGenerate)
		r.Route("/sessions", d.Sessions.Routes)
	})

	return r
}
