package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Chative-flight-booking/server/internal/agent/model"
)

func NewRouter(h *Handler, cfg model.ServerConfig) http.Handler {
	limiter := newRateLimiterStore(cfg.RateLimitPerMinute, cfg.RateLimitBurst)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
	}))

	r.Get("/health", h.Health)

	r.Group(func(r chi.Router) {
		r.Use(limiter.rateLimit)
		r.Post("/chat", h.Chat)
		r.Post("/book", h.Book)
		r.Delete("/conversation/{userID}", h.ClearConversation)
		r.Get("/slots/{userID}", h.GetSlots)
	})

	return r
}
