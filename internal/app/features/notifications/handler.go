// internal/app/features/notifications/handler.go
package notifications

import (
	"github.com/go-chi/chi/v5"
	blogstore "github.com/namanchauhanrajput/blogify/internal/app/store/blogs"
	notificationstore "github.com/namanchauhanrajput/blogify/internal/app/store/notifications"
	userstore "github.com/namanchauhanrajput/blogify/internal/app/store/users"
	sysauth "github.com/namanchauhanrajput/blogify/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the requester's notification feed.
type Handler struct {
	Notifs *notificationstore.Store
	Users  *userstore.Store
	Blogs  *blogstore.Store
	Log    *zap.Logger
}

// NewHandler constructs the notifications Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Notifs: notificationstore.New(db),
		Users:  userstore.New(db),
		Blogs:  blogstore.New(db),
		Log:    logger,
	}
}

// Routes returns the subrouter mounted under /api/notifications. Every
// route requires authentication.
func Routes(h *Handler, mw *sysauth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Use(mw.RequireAuth)

	r.Get("/", h.List)
	r.Put("/read/{id}", h.MarkRead)
	r.Put("/read-all", h.MarkAllRead)

	return r
}
