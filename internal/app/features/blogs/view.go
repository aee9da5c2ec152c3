// internal/app/features/blogs/view.go
package blogs

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	blogstore "github.com/namanchauhanrajput/blogify/internal/app/store/blogs"
	"github.com/namanchauhanrajput/blogify/internal/app/system/apierr"
	"github.com/namanchauhanrajput/blogify/internal/app/system/timeouts"
	"github.com/namanchauhanrajput/blogify/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type viewResponse struct {
	Blog     blogView      `json:"blog"`
	Comments []commentView `json:"comments"`
}

// pathID parses the {id} (or named) route parameter as an ObjectID.
func pathID(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		return primitive.NilObjectID, apierr.Validation("invalid id")
	}
	return id, nil
}

// View handles GET /api/blog/{id}. Anonymous requests get liked=false;
// authenticated requests get their own like flag.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	blog, err := h.Blogs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, blogstore.ErrNotFound) {
			apierr.Write(w, h.Log, apierr.NotFound("blog not found"))
			return
		}
		apierr.Write(w, h.Log, apierr.Internal("could not load blog", err))
		return
	}

	views, err := h.present(ctx, []models.Blog{*blog}, viewerID(r))
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("could not load author", err))
		return
	}

	comments, err := h.presentComments(ctx, blog.Comments)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("could not load commenters", err))
		return
	}

	apierr.JSON(w, http.StatusOK, viewResponse{Blog: views[0], Comments: comments})
}
