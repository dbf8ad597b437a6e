package api

import (
	_ "fxconvert/docs"
	"fxconvert/internal/conversion/handler"
	"fxconvert/internal/metrics"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swagger "github.com/swaggo/http-swagger"
)

type RouterDeps struct {
	Handler        *handler.Handler
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string
}

func NewRouter(deps RouterDeps) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)
	router.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))

	h := deps.Handler
	router.Route("/api/v1", func(r chi.Router) {
		if deps.Metrics != nil {
			r.Use(deps.Metrics.Middleware)
		}
		r.Get("/currencies", h.ListCurrencies)
		r.Post("/sessions", h.CreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Delete("/", h.DeleteSession)
			r.Put("/currencies/{role}", h.SelectCurrency)
			r.Put("/amount", h.SetAmount)
			r.Post("/swap", h.Swap)
			r.Post("/convert", h.Convert)
			r.Get("/ws", h.SessionSocket)
		})
	})
	return router
}
