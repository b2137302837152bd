package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Get("/api/health", h.health)
	})

	// sync endpoints require an authenticated device
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/api/docs/push", h.push)
		r.Post("/api/docs/authoritative", h.writeAuthoritative)
		r.Post("/api/docs/fetch", h.fetch)
		r.Get("/api/docs/states", h.states)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
