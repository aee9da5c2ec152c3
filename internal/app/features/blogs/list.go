// internal/app/features/blogs/list.go
package blogs

import (
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	blogstore "github.com/namanchauhanrajput/blogify/internal/app/store/blogs"
	"github.com/namanchauhanrajput/blogify/internal/app/system/apierr"
	"github.com/namanchauhanrajput/blogify/internal/app/system/paging"
	"github.com/namanchauhanrajput/blogify/internal/app/system/timeouts"
	"github.com/namanchauhanrajput/blogify/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type listResponse struct {
	Blogs      []blogView `json:"blogs"`
	NextCursor string     `json:"next_cursor,omitempty"`
	HasMore    bool       `json:"has_more"`
}

// List handles GET /api/blog. Supports search (title/content substring),
// category (exact), and cursor pagination newest-first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := blogstore.Filter{
		Search:   query.Get(r, "search"),
		Category: query.Get(r, "category"),
	}
	k := paging.FromRequest(r)

	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	rows, err := h.Blogs.List(ctx, filter, k)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("could not list blogs", err))
		return
	}

	hasMore := paging.TrimPage(&rows, k)

	views, err := h.present(ctx, rows, viewerID(r))
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("could not load authors", err))
		return
	}

	resp := listResponse{Blogs: views, HasMore: hasMore}
	if hasMore {
		resp.NextCursor = paging.NextCursor(rows,
			func(b models.Blog) time.Time { return b.CreatedAt },
			func(b models.Blog) primitive.ObjectID { return b.ID })
	}
	apierr.JSON(w, http.StatusOK, resp)
}
