// Package api wires the chi router: middleware, CORS, rate limits, and the
// public endpoints.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/edugenhq/edugen-server/internal/api/handlers"
	"github.com/edugenhq/edugen-server/internal/infra/config"
)

// Services groups the application services the router exposes over HTTP.
type Services struct {
	Chat      handlers.ChatService
	Quiz      handlers.QuizService
	Documents handlers.FeatureReporter
}

// NewRouter creates and configures the chi router with all routes.
func NewRouter(cfg config.Config, svcs Services) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on all routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Not Found"}`)) //nolint:errcheck
	})

	healthHandler := handlers.NewHealthHandler(svcs.Documents)
	chatHandler := handlers.NewChatHandler(svcs.Chat)
	quizHandler := handlers.NewQuizHandler(svcs.Quiz)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Health) // GET /api/health

		r.Group(func(r chi.Router) {
			r.Use(rateLimit(cfg.ChatRateLimit))
			r.Post("/chat", chatHandler.Chat) // POST /api/chat
		})

		r.Group(func(r chi.Router) {
			r.Use(rateLimit(cfg.QuizRateLimit))
			r.Post("/generate-quiz", quizHandler.GenerateQuiz) // POST /api/generate-quiz
		})
	})

	return r
}

// rateLimit builds a per-client-IP limiter of n requests per minute with a
// JSON 429 body.
func rateLimit(n int) func(http.Handler) http.Handler {
	return httprate.Limit(n, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"Too many requests, please wait and try again."}`)) //nolint:errcheck
		}),
	)
}
