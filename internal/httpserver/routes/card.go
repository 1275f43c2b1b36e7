package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/cardsmith/internal/httpserver/deps"
	"github.com/MrSnakeDoc/cardsmith/internal/httpserver/handlers"
)

func init() { Register("card", registerCard) }

func registerCard(r chi.Router, d deps.Deps) bool {
	r.Route("/api/card", func(r chi.Router) {
		r.Use(restricted(d)...)
		r.Get("/", handlers.GetCard(d))
		r.Patch("/", handlers.PatchCard(d))
		r.With(scrapeLimit(d)).Post("/refresh", handlers.RefreshCard(d))
		r.Post("/reset", handlers.ResetCard(d))
		r.Put("/shops/{id}", handlers.PutShop(d))
		r.Delete("/shops/{id}", handlers.DeleteShop(d))
		r.Get("/validation", handlers.CardValidation(d))
		r.Post("/export", handlers.ExportCard(d))
	})
	r.With(restricted(d)...).Get("/api/css", handlers.BlogCSS(d))
	return true
}
