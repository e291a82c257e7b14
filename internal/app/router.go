package app

import (
	"net/http"
	"time"

	"github.com/smallwat3r/otshare/internal/domain"
	"github.com/smallwat3r/otshare/internal/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handler, rl *RateLimiterMiddleware) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(SecurityHeaders)
	r.Use(ContentLengthValidator(domain.MaxRequestBodySize))

	r.Get("/health", h.HandleHealth)

	r.Group(func(r chi.Router) {
		r.Use(rl.Handler)
		r.Get("/regions", h.HandleRegions)
		r.Get("/ttls", h.HandleTTLs)
		r.Post("/share", h.HandleShare)
	})

	return r
}
