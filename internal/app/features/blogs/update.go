// internal/app/features/blogs/update.go
package blogs

import (
	"errors"
	"net/http"
	"strings"

	blogstore "github.com/namanchauhanrajput/blogify/internal/app/store/blogs"
	"github.com/namanchauhanrajput/blogify/internal/app/system/apierr"
	sysauth "github.com/namanchauhanrajput/blogify/internal/app/system/auth"
	"github.com/namanchauhanrajput/blogify/internal/app/system/htmlsanitize"
	"github.com/namanchauhanrajput/blogify/internal/app/system/media"
	"github.com/namanchauhanrajput/blogify/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// canEdit reports whether the requester may modify the post.
func canEdit(ident *sysauth.Identity, authorID primitive.ObjectID) bool {
	return ident.IsAdmin || ident.UserID == authorID
}

// Update handles PUT /api/blog/{id} (multipart, all fields optional).
// When a new image is sent the order is upload new, persist, delete
// old; if the persist fails the fresh upload is removed again so the
// post keeps pointing at an object that exists.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
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

	r.Body = http.MaxBytesReader(w, r.Body, media.MaxUploadBytes)
	if err := r.ParseMultipartForm(media.MaxUploadBytes); err != nil {
		apierr.Write(w, h.Log, apierr.Validation("invalid multipart form or file too large"))
		return
	}

	ctx, cancel := timeouts.WithMedium(r.Context())
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

	var upd blogstore.Update
	if v := strings.TrimSpace(r.FormValue("title")); v != "" {
		upd.Title = &v
	}
	if raw := r.FormValue("content"); raw != "" {
		v := htmlsanitize.Sanitize(raw)
		if strings.TrimSpace(v) == "" {
			apierr.Write(w, h.Log, apierr.Validation("content is empty after sanitizing"))
			return
		}
		upd.Content = &v
	}
	if v := strings.TrimSpace(r.FormValue("category")); v != "" {
		upd.Category = &v
	}

	oldPublicID := blog.ImagePublicID
	newPublicID := ""
	if file, header, ferr := r.FormFile("image"); ferr == nil {
		defer file.Close()

		upCtx, upCancel := timeouts.WithUpload(r.Context())
		asset, uerr := h.Media.Upload(upCtx, file, header.Filename, header.Header.Get("Content-Type"))
		upCancel()
		if uerr != nil {
			apierr.Write(w, h.Log, apierr.MediaUpload("image upload failed", uerr))
			return
		}
		upd.ImageURL = &asset.URL
		upd.ImagePublicID = &asset.PublicID
		newPublicID = asset.PublicID
	}

	if upd.Title == nil && upd.Content == nil && upd.Category == nil && upd.ImageURL == nil {
		apierr.Write(w, h.Log, apierr.Validation("nothing to update"))
		return
	}

	if err := h.Blogs.Apply(ctx, id, upd); err != nil {
		h.deleteAsset(newPublicID, "orphaned upload after failed update")
		if errors.Is(err, blogstore.ErrNotFound) {
			apierr.Write(w, h.Log, apierr.NotFound("blog not found"))
			return
		}
		apierr.Write(w, h.Log, apierr.Internal("could not update blog", err))
		return
	}

	// Replacement persisted; the previous image is unreferenced now.
	if newPublicID != "" && oldPublicID != "" && oldPublicID != newPublicID {
		h.deleteAsset(oldPublicID, "replaced image")
	}

	updated, err := h.Blogs.GetByID(ctx, id)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("could not reload blog", err))
		return
	}

	h.Log.Info("blog updated",
		zap.String("blog_id", id.Hex()),
		zap.String("editor_id", ident.UserID.Hex()))

	view := toView(*updated, nil, ident.UserID)
	apierr.JSON(w, http.StatusOK, struct {
		Blog blogView `json:"blog"`
	}{Blog: view})
}
