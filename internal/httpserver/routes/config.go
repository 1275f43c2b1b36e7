package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/cardsmith/internal/httpserver/deps"
	"github.com/MrSnakeDoc/cardsmith/internal/httpserver/handlers"
)

func init() { Register("config", registerConfig) }

func registerConfig(r chi.Router, d deps.Deps) bool {
	r.With(restricted(d)...).Get("/api/config", handlers.GetConfig(d))
	r.With(restricted(d)...).Patch("/api/config", handlers.PatchConfig(d))
	return true
}
