// internal/app/features/blogs/categories.go
package blogs

import (
	"net/http"

	"github.com/namanchauhanrajput/blogify/internal/app/system/apierr"
	"github.com/namanchauhanrajput/blogify/internal/app/system/timeouts"
)

// Categories handles GET /api/blog/categories/list.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	cats, err := h.Blogs.Categories(ctx)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("could not load categories", err))
		return
	}
	if cats == nil {
		cats = []string{}
	}

	apierr.JSON(w, http.StatusOK, struct {
		Categories []string `json:"categories"`
	}{Categories: cats})
}
