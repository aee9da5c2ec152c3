// internal/app/features/admin/handler.go
package admin

import (
	"github.com/go-chi/chi/v5"
	blogstore "github.com/namanchauhanrajput/blogify/internal/app/store/blogs"
	notificationstore "github.com/namanchauhanrajput/blogify/internal/app/store/notifications"
	userstore "github.com/namanchauhanrajput/blogify/internal/app/store/users"
	sysauth "github.com/namanchauhanrajput/blogify/internal/app/system/auth"
	"github.com/namanchauhanrajput/blogify/internal/app/system/media"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the moderation surface. Every route sits behind
// RequireAdmin, which re-checks the admin flag against the live user
// document rather than trusting the token claim.
type Handler struct {
	Users  *userstore.Store
	Blogs  *blogstore.Store
	Notifs *notificationstore.Store
	Media  media.Store
	Log    *zap.Logger
}

// NewHandler constructs the admin Handler.
func NewHandler(db *mongo.Database, blobs media.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  userstore.New(db),
		Blogs:  blogstore.New(db),
		Notifs: notificationstore.New(db),
		Media:  blobs,
		Log:    logger,
	}
}

// Routes returns the subrouter mounted under /api/admin.
func Routes(h *Handler, mw *sysauth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Use(mw.RequireAdmin)

	r.Get("/users", h.ListUsers)
	r.Put("/users/{id}", h.UpdateUser)
	r.Delete("/users/{id}", h.DeleteUser)

	r.Get("/blogs", h.ListBlogs)
	r.Put("/blogs/{id}", h.UpdateBlog)
	r.Delete("/blogs/{id}", h.DeleteBlog)

	return r
}
