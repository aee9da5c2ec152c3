// internal/app/features/blogs/delete.go
package blogs

import (
	"errors"
	"net/http"

	blogstore "github.com/namanchauhanrajput/blogify/internal/app/store/blogs"
	"github.com/namanchauhanrajput/blogify/internal/app/system/apierr"
	sysauth "github.com/namanchauhanrajput/blogify/internal/app/system/auth"
	"github.com/namanchauhanrajput/blogify/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Delete handles DELETE /api/blog/{id}. The media object is removed
// best-effort; the document delete is what decides the response.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := timeouts.WithLong(r.Context())
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
	if !canEdit(ident, blog.AuthorID) {
		apierr.Write(w, h.Log, apierr.Forbidden("you do not own this blog"))
		return
	}

	deleted, err := h.Blogs.Delete(ctx, id)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("could not delete blog", err))
		return
	}
	if deleted == 0 {
		apierr.Write(w, h.Log, apierr.NotFound("blog not found"))
		return
	}

	h.deleteAsset(blog.ImagePublicID, "blog deleted")
	if err := h.Notifs.DeleteForBlog(ctx, id); err != nil {
		h.Log.Warn("could not delete blog notifications",
			zap.String("blog_id", id.Hex()), zap.Error(err))
	}

	h.Log.Info("blog deleted",
		zap.String("blog_id", id.Hex()),
		zap.String("requester_id", ident.UserID.Hex()))

	apierr.JSON(w, http.StatusOK, struct {
		Message string `json:"message"`
	}{Message: "blog deleted"})
}
