package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/cardsmith/internal/bridge"
	"github.com/MrSnakeDoc/cardsmith/internal/httpserver/deps"
	"github.com/MrSnakeDoc/cardsmith/internal/httpserver/handlers"
)

func init() { Register("page", registerPage) }

// registerPage exposes the in-process page host. Nothing is mounted when
// the service talks to a remote page host.
func registerPage(r chi.Router, d deps.Deps) bool {
	if d.PageHost == nil {
		return false
	}
	r.Group(func(r chi.Router) {
		r.Use(restricted(d)...)
		r.With(scrapeLimit(d)).Put("/api/page", handlers.PutPage(d))
		r.Delete("/api/page", handlers.DeletePage(d))
		r.Post(bridge.MessagesPath, handlers.Messages(d))
	})
	return true
}
