package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"groupscope/internal/analyzer"
	"groupscope/internal/groups"
	"groupscope/internal/handlers"
	"groupscope/internal/indexer"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Index    *groups.Index
	Pipeline *indexer.Pipeline
	Engine   *analyzer.Engine
}

// NewRouter creates a new HTTP router exposing the index query surface.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	groupsHandler := handlers.NewGroupsHandler(deps.Index)
	hierarchyHandler := handlers.NewHierarchyHandler(deps.Index)
	scanHandler := handlers.NewScanHandler(deps.Pipeline)
	suggestHandler := handlers.NewSuggestHandler(deps.Engine)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Route("/groups", func(r chi.Router) {
			r.Get("/", groupsHandler.List)
			r.Get("/distinct", groupsHandler.Distinct)
			r.Get("/favorites", groupsHandler.Favorites)
			r.Get("/favorite", groupsHandler.IsFavorite)
			r.Post("/favorite", groupsHandler.ToggleFavorite)
		})

		r.Get("/hierarchy", hierarchyHandler.Get)

		r.Route("/scan", func(r chi.Router) {
			r.Post("/", scanHandler.ScanAll)
			r.Post("/file", scanHandler.ScanFile)
			r.Delete("/file", scanHandler.RemoveFile)
			r.Get("/stats", scanHandler.Stats)
		})

		r.Route("/suggestions", func(r chi.Router) {
			r.Get("/similar", suggestHandler.Similar)
			r.Get("/hierarchy", suggestHandler.Hierarchy)
			r.Get("/nearest", suggestHandler.Nearest)
		})
	})

	return r
}
