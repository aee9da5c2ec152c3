// internal/app/features/blogs/routes.go
package blogs

import (
	"github.com/go-chi/chi/v5"
	sysauth "github.com/namanchauhanrajput/blogify/internal/app/system/auth"
)

// Routes returns the subrouter mounted under /api/blog. Reads are
// public; GET /{id} upgrades its response when a valid bearer token is
// present (the identity loader runs globally).
func Routes(h *Handler, mw *sysauth.Middleware) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/categories/list", h.Categories)
	r.Get("/comments/{id}", h.Comments)
	r.Get("/{id}", h.View)

	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAuth)
		r.Post("/create", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Post("/like/{id}", h.Like)
		r.Post("/comment/{id}", h.Comment)
		r.Get("/user/{userID}", h.Profile)
		r.Put("/user/update/profile", h.UpdateProfile)
	})

	return r
}
