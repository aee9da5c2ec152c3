// internal/app/features/blogs/profile.go
package blogs

import (
	"errors"
	"net/http"

	userstore "github.com/namanchauhanrajput/blogify/internal/app/store/users"
	"github.com/namanchauhanrajput/blogify/internal/app/system/apierr"
	"github.com/namanchauhanrajput/blogify/internal/app/system/timeouts"
	"github.com/namanchauhanrajput/blogify/internal/domain/models"
)

type profileResponse struct {
	User  *models.User `json:"user"`
	Blogs []blogView   `json:"blogs"`
}

// Profile handles GET /api/blog/user/{userID}: the user's public
// profile plus their posts newest-first.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			apierr.Write(w, h.Log, apierr.NotFound("user not found"))
			return
		}
		apierr.Write(w, h.Log, apierr.Internal("could not load user", err))
		return
	}

	rows, err := h.Blogs.ByAuthor(ctx, userID)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("could not load blogs", err))
		return
	}

	views, err := h.present(ctx, rows, viewerID(r))
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("could not load authors", err))
		return
	}

	apierr.JSON(w, http.StatusOK, profileResponse{User: user, Blogs: views})
}
