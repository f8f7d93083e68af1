package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/upb/notice-board/app"
	"github.com/upb/notice-board/handlers"
	"github.com/upb/notice-board/middleware"
	"github.com/upb/notice-board/utils"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	cfg := deps.Config
	r := chi.NewRouter()

	timeout := cfg.Server.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	// Core middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(timeout))

	origins := cfg.Server.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var db handlers.HealthChecker
	if deps.DB != nil {
		db = deps.DB
	}
	health := handlers.NewHealthHandler(db, cfg.Environment, cfg.Store.Driver, deps.Logger)
	r.Get("/healthz", health.HandleHealth)
	r.Get("/readyz", health.HandleReadiness)

	api := func(r chi.Router) {
		r.Get("/status", health.HandleStatus)

		r.Post("/auth/login", handlers.LoginHandler(deps))

		r.Route("/users", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireAuth)
			r.Post("/", handlers.CreateUserHandler(deps))
		})

		r.Route("/notices", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireAuth)
			r.Get("/", handlers.ListNoticesHandler(deps))
			r.Post("/", handlers.CreateNoticeHandler(deps))
			r.Get("/{id}", handlers.GetNoticeHandler(deps))
			r.Delete("/{id}", handlers.DeleteNoticeHandler(deps))
		})
	}

	// an empty base path mounts the API at the root
	if base := cfg.Server.BasePath; base != "" {
		r.Route(base, api)
	} else {
		api(r)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteNotFound(w, "endpoint not found")
	})

	operation := cfg.Observability.ServiceName
	if operation == "" {
		operation = "notice-board"
	}
	return otelhttp.NewHandler(r, operation)
}
