// internal/app/features/blogs/like.go
package blogs

import (
	"errors"
	"net/http"

	blogstore "github.com/namanchauhanrajput/blogify/internal/app/store/blogs"
	"github.com/namanchauhanrajput/blogify/internal/app/system/apierr"
	sysauth "github.com/namanchauhanrajput/blogify/internal/app/system/auth"
	"github.com/namanchauhanrajput/blogify/internal/app/system/timeouts"
	"github.com/namanchauhanrajput/blogify/internal/domain/models"
	"go.uber.org/zap"
)

type likeResponse struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likes_count"`
}

// Like handles POST /api/blog/like/{id}: an atomic membership toggle on
// the post's like set. A fresh like notifies the author; an unlike and
// a self-like do not.
func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
	ident, ok := sysauth.CurrentUser(r)
	if !ok {
		apierr.Write(w, h.Log, apierr.Auth("authentication required"))
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	res, err := h.Blogs.ToggleLike(ctx, id, ident.UserID)
	if err != nil {
		if errors.Is(err, blogstore.ErrNotFound) {
			apierr.Write(w, h.Log, apierr.NotFound("blog not found"))
			return
		}
		apierr.Write(w, h.Log, apierr.Internal("could not toggle like", err))
		return
	}

	if res.Liked {
		n := models.Notification{
			RecipientID: res.AuthorID,
			SenderID:    ident.UserID,
			Type:        models.NotificationLike,
			BlogID:      &id,
			Text:        "liked your blog",
		}
		if err := h.Notifs.Create(ctx, n); err != nil {
			// The toggle already succeeded; a lost notification is not
			// worth failing the request over.
			h.Log.Warn("could not create like notification",
				zap.String("blog_id", id.Hex()), zap.Error(err))
		}
	}

	apierr.JSON(w, http.StatusOK, likeResponse{
		Liked:      res.Liked,
		LikesCount: res.LikesCount,
	})
}
