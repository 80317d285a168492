package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/BaAEz/taskapp-Immersiveai/internal/infrastructure/http/handlers"
	"github.com/BaAEz/taskapp-Immersiveai/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler   *handlers.AuthHandler
	TasksHandler  *handlers.TasksHandler
	HealthHandler *handlers.HealthHandler
	RequireAuth   func(http.Handler) http.Handler // bearer-token gate for /verify-token and /tasks
	Secure        func(http.Handler) http.Handler
	CORS          func(http.Handler) http.Handler
	Log           zerolog.Logger
	Metrics       bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(middleware.Recover(cfg.Log))
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}

	r.Get("/", handlers.Liveness)
	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	// Open routes: obtaining a token requires no token.
	r.Post("/signup", cfg.AuthHandler.Signup)
	r.Post("/login", cfg.AuthHandler.Login)

	// Everything else sits behind the auth gate.
	r.Group(func(r chi.Router) {
		r.Use(cfg.RequireAuth)
		r.Get("/verify-token", cfg.AuthHandler.VerifyToken)
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", cfg.TasksHandler.List)
			r.Post("/", cfg.TasksHandler.Create)
			r.Put("/{id}", cfg.TasksHandler.Update)
			r.Delete("/{id}", cfg.TasksHandler.Delete)
		})
	})

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
