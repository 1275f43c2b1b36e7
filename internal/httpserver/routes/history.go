package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/cardsmith/internal/httpserver/deps"
	"github.com/MrSnakeDoc/cardsmith/internal/httpserver/handlers"
)

func init() { Register("history", registerHistory) }

func registerHistory(r chi.Router, d deps.Deps) bool {
	r.Route("/api/history", func(r chi.Router) {
		r.Use(restricted(d)...)
		r.Get("/", handlers.ListHistory(d))
		r.Delete("/", handlers.ClearHistory(d))
		r.Delete("/{id}", handlers.DeleteHistoryItem(d))
		r.Post("/{id}/restore", handlers.RestoreHistoryItem(d))
	})
	return true
}
