package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/cloudnav/cloudnav/internal/httpserver/deps"
	"github.com/cloudnav/cloudnav/internal/httpserver/handlers"
	"github.com/cloudnav/cloudnav/internal/httpserver/mw"
)

func init() { Register(registerLink) }

func registerLink(r chi.Router, d deps.Deps) {
	r.With(
		mw.RequireSecret(d.Password, d.Logger),
		mw.RateLimit(mw.RateLimitConfig{Burst: d.RateLimitBurst, RefillPerIPPerMin: d.RateLimitPerMin}),
	).Post("/api/link", handlers.QuickAdd(d))
}
