package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/cardsmith/internal/httpserver/deps"
	"github.com/MrSnakeDoc/cardsmith/internal/httpserver/handlers"
)

func init() { Register("infra", registerInfra) }

func registerInfra(r chi.Router, d deps.Deps) bool {
	r.With(restricted(d)...).Get("/infra", handlers.Infra(d))
	r.With(restricted(d)...).Post("/reload", handlers.Reload(d))
	return true
}
