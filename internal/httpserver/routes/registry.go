package routes

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/cardsmith/internal/httpserver/deps"
	"github.com/MrSnakeDoc/cardsmith/internal/logger"
)

type (
	// Registrar mounts a group of routes. It reports false when the group
	// does not apply to this deployment and mounted nothing.
	Registrar  func(r chi.Router, d deps.Deps) bool
	Middleware = func(http.Handler) http.Handler
)

type entry struct {
	name string
	reg  Registrar
	mws  []Middleware
}

var registry = map[string]entry{}

// Register adds a named route group with optional group-wide middlewares.
// Registering the same name twice is a programming error.
func Register(name string, reg Registrar, mws ...Middleware) {
	if _, dup := registry[name]; dup {
		panic("routes: duplicate registration of " + name)
	}
	registry[name] = entry{name: name, reg: reg, mws: mws}
}

// RegisterAll mounts every group in name order and returns the names of the
// groups that were mounted. Called once from server.NewRouter.
func RegisterAll(r chi.Router, d deps.Deps) []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	mounted := make([]string, 0, len(names))
	for _, name := range names {
		e := registry[name]
		target := r
		if len(e.mws) > 0 {
			target = r.With(e.mws...)
		}
		if e.reg(target, d) {
			mounted = append(mounted, name)
			continue
		}
		d.Logger.Debug("route group skipped", logger.String("group", name))
	}
	return mounted
}
