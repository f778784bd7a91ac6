package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"credit-limit/metrics"
)

func NewRouter(handler *CreditLimitHandler, pinger Pinger, limiter *RateLimiter) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(metrics.Middleware)

	r.Get("/healthz", HandleHealthz())
	r.Get("/readyz", HandleReadyz(pinger))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/credit-limit", func(r chi.Router) {
		r.Use(RateLimitMiddleware(limiter))
		r.Post("/calculate", handler.CalculateCreditLimit)
		r.Get("/bands", handler.Bands)
	})

	return r
}
