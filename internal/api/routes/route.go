package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/ilkin0/mediagw/internal/api/handlers"
	"github.com/ilkin0/mediagw/internal/middleware"
	"github.com/ilkin0/mediagw/internal/service"
)

// FileRoutes is mounted at /api/files. The wildcard carries the optional
// path segments forwarded to the upstream.
func FileRoutes(proxyService *service.ProxyService, limiters *middleware.RateLimiters) chi.Router {
	r := chi.NewRouter()
	filesHandler := handlers.NewFilesHandler(proxyService)

	r.Group(func(r chi.Router) {
		r.Use(limiters.List())
		r.Get("/", filesHandler.List)
		r.Get("/*", filesHandler.List)
	})

	r.With(limiters.Upload()).Post("/", filesHandler.Create)

	r.Group(func(r chi.Router) {
		r.Use(limiters.Delete())
		r.Delete("/", filesHandler.Delete)
		r.Delete("/*", filesHandler.Delete)
	})

	return r
}
