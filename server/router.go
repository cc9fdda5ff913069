// Package server exposes the threat checks over HTTP.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/francescoattisano63-source/cyber-omega-guardian/logging"
)

// RouterConfig aggregates the dependencies of the route tree.
type RouterConfig struct {
	Handler *Handler
	Metrics *Metrics
	Logger  logging.Logger
}

// NewRouter builds the route tree. Recover sits inside RequestLogging so
// recovered panics are logged with their 503 status.
func NewRouter(cfg RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logging.NewNopLogger()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(RequestLogging(log, cfg.Metrics))
	r.Use(Recover(log))
	r.Use(CORS)

	r.Get("/healthz", cfg.Handler.Healthz)
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler())
	}

	r.Post("/check-domain", cfg.Handler.CheckDomain)
	r.Post("/check-email", cfg.Handler.CheckEmail)
	r.Post("/assessment", cfg.Handler.Assessment)
	r.Get("/plans", cfg.Handler.Plans)

	return r
}
