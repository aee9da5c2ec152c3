// internal/app/features/auth/routes.go
package auth

import (
	"github.com/go-chi/chi/v5"
	sysauth "github.com/namanchauhanrajput/blogify/internal/app/system/auth"
)

// Routes returns the subrouter mounted under /api/auth.
func Routes(h *Handler, mw *sysauth.Middleware) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/forget-password", h.ForgetPassword)
	r.Post("/reset-password", h.ResetPassword)

	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAuth)
		r.Get("/user", h.User)
	})

	return r
}
