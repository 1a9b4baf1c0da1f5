package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterConfig wires handlers and the session validator into the API router.
type RouterConfig struct {
	Auth     *AuthHandler
	Workouts *WorkoutHandler
	Sessions SessionValidator
	Logger   *slog.Logger
}

// NewRouter assembles the /api route tree. Auth endpoints are public; the
// workout ledger requires a valid session token.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := defaultLogger(cfg.Logger)
	responder := newResponder(logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(logger))

	r.Route("/api", func(api chi.Router) {
		if cfg.Auth != nil {
			api.Route("/auth", func(auth chi.Router) {
				auth.Post("/register", cfg.Auth.Register)
				auth.Post("/login", cfg.Auth.Login)
				auth.Post("/logout", cfg.Auth.Logout)
			})
		}

		if cfg.Workouts != nil {
			api.Route("/workouts", func(workouts chi.Router) {
				if cfg.Sessions != nil {
					workouts.Use(RequireSession(cfg.Sessions, logger))
				}
				workouts.Get("/", cfg.Workouts.List)
				workouts.Post("/", cfg.Workouts.Record)
				workouts.Get("/summary", cfg.Workouts.Summary)
				workouts.Get("/month", cfg.Workouts.Month)
				workouts.Get("/stats", cfg.Workouts.Stats)
				workouts.Delete("/{date}", cfg.Workouts.Delete)
			})
		}
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responder.writeJSON(req.Context(), w, http.StatusNotFound, errorResponse{Message: "The requested resource was not found"})
	})

	return r
}
