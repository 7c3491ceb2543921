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

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/password-reset", h.passwordReset)
		r.Post("/api/auth/password-reset/confirm", h.passwordResetConfirm)
	})

	// routes behind a live session
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/auth/logout", h.logout)

		r.Get("/api/search", h.search)

		r.Get("/api/shelf/", h.listShelf)
		r.Post("/api/shelf/", h.addItem)
		r.Delete("/api/shelf/{itemID}", h.removeItem)
		r.Post("/api/shelf/{itemID}/status", h.setStatus)
		r.Post("/api/shelf/{itemID}/rating", h.setRating)

		r.Get("/api/account/", h.account)
		r.Post("/api/account/username", h.changeUsername)
		r.Post("/api/account/email", h.changeEmail)
		r.Post("/api/account/password", h.changePassword)
	})

	return router
}
