package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/cloudnav/cloudnav/internal/httpserver/deps"
	"github.com/cloudnav/cloudnav/internal/httpserver/handlers"
	"github.com/cloudnav/cloudnav/internal/httpserver/mw"
)

func init() { Register(registerSnapshot) }

func registerSnapshot(r chi.Router, d deps.Deps) {
	r.With(mw.RequireSecret(d.Password, d.Logger)).Post("/api/snapshot", handlers.Snapshot(d))
}
