// internal/app/features/blogs/create.go
package blogs

import (
	"context"
	"net/http"
	"strings"

	"github.com/namanchauhanrajput/blogify/internal/app/system/apierr"
	sysauth "github.com/namanchauhanrajput/blogify/internal/app/system/auth"
	"github.com/namanchauhanrajput/blogify/internal/app/system/htmlsanitize"
	"github.com/namanchauhanrajput/blogify/internal/app/system/media"
	"github.com/namanchauhanrajput/blogify/internal/app/system/timeouts"
	"github.com/namanchauhanrajput/blogify/internal/domain/models"
	"go.uber.org/zap"
)

// Create handles POST /api/blog/create (multipart: title, content,
// category, image). The image is uploaded first; if the document insert
// then fails the uploaded object is deleted so the blob store does not
// accumulate orphans.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := sysauth.CurrentUser(r)
	if !ok {
		apierr.Write(w, h.Log, apierr.Auth("authentication required"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, media.MaxUploadBytes)
	if err := r.ParseMultipartForm(media.MaxUploadBytes); err != nil {
		apierr.Write(w, h.Log, apierr.Validation("invalid multipart form or file too large"))
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	content := htmlsanitize.Sanitize(r.FormValue("content"))
	category := strings.TrimSpace(r.FormValue("category"))

	if title == "" || strings.TrimSpace(content) == "" || category == "" {
		apierr.Write(w, h.Log, apierr.Validation("title, content, and category are required"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		apierr.Write(w, h.Log, apierr.Validation("image file is required"))
		return
	}
	defer file.Close()

	upCtx, upCancel := timeouts.WithUpload(r.Context())
	defer upCancel()

	asset, err := h.Media.Upload(upCtx, file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		apierr.Write(w, h.Log, apierr.MediaUpload("image upload failed", err))
		return
	}

	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	blog, err := h.Blogs.Create(ctx, models.Blog{
		Title:         title,
		Content:       content,
		Category:      category,
		ImageURL:      asset.URL,
		ImagePublicID: asset.PublicID,
		AuthorID:      ident.UserID,
	})
	if err != nil {
		h.deleteAsset(asset.PublicID, "orphaned upload after failed insert")
		apierr.Write(w, h.Log, apierr.Internal("could not create blog", err))
		return
	}

	h.Log.Info("blog created",
		zap.String("blog_id", blog.ID.Hex()),
		zap.String("author_id", ident.UserID.Hex()))

	view := toView(blog, nil, ident.UserID)
	apierr.JSON(w, http.StatusCreated, struct {
		Blog blogView `json:"blog"`
	}{Blog: view})
}

// deleteAsset removes a blob-store object outside the request path.
// Failures are logged, not surfaced: the object is unreferenced either
// way. Runs on a background context so client disconnects don't abort
// the cleanup.
func (h *Handler) deleteAsset(publicID, why string) {
	if publicID == "" {
		return
	}
	ctx, cancel := timeouts.WithUpload(context.Background())
	defer cancel()
	if err := h.Media.Delete(ctx, publicID); err != nil && err != media.ErrNotFound {
		h.Log.Warn("media cleanup failed",
			zap.String("public_id", publicID),
			zap.String("reason", why),
			zap.Error(err))
	}
}
