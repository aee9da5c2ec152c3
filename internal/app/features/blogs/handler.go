// internal/app/features/blogs/handler.go
package blogs

import (
	blogstore "github.com/namanchauhanrajput/blogify/internal/app/store/blogs"
	notificationstore "github.com/namanchauhanrajput/blogify/internal/app/store/notifications"
	userstore "github.com/namanchauhanrajput/blogify/internal/app/store/users"
	"github.com/namanchauhanrajput/blogify/internal/app/system/media"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the post CRUD, like/comment interactions, and the
// public profile surface.
type Handler struct {
	Blogs  *blogstore.Store
	Users  *userstore.Store
	Notifs *notificationstore.Store
	Media  media.Store
	Log    *zap.Logger
}

// NewHandler constructs the blog Handler.
func NewHandler(db *mongo.Database, blobs media.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Blogs:  blogstore.New(db),
		Users:  userstore.New(db),
		Notifs: notificationstore.New(db),
		Media:  blobs,
		Log:    logger,
	}
}
