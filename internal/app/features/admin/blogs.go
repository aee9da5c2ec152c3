// internal/app/features/admin/blogs.go
package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	blogstore "github.com/namanchauhanrajput/blogify/internal/app/store/blogs"
	"github.com/namanchauhanrajput/blogify/internal/app/system/apierr"
	"github.com/namanchauhanrajput/blogify/internal/app/system/htmlsanitize"
	"github.com/namanchauhanrajput/blogify/internal/app/system/paging"
	"github.com/namanchauhanrajput/blogify/internal/app/system/timeouts"
	"github.com/namanchauhanrajput/blogify/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type blogListResponse struct {
	Blogs      []models.Blog `json:"blogs"`
	NextCursor string        `json:"next_cursor,omitempty"`
	HasMore    bool          `json:"has_more"`
}

// ListBlogs handles GET /api/admin/blogs with cursor pagination
// newest-first.
func (h *Handler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	k := paging.FromRequest(r)

	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	rows, err := h.Blogs.List(ctx, blogstore.Filter{}, k)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("could not list blogs", err))
		return
	}

	hasMore := paging.TrimPage(&rows, k)
	resp := blogListResponse{Blogs: rows, HasMore: hasMore}
	if hasMore {
		resp.NextCursor = paging.NextCursor(rows,
			func(b models.Blog) time.Time { return b.CreatedAt },
			func(b models.Blog) primitive.ObjectID { return b.ID })
	}
	apierr.JSON(w, http.StatusOK, resp)
}

type blogUpdateRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
}

// UpdateBlog handles PUT /api/admin/blogs/{id}: a moderation edit of
// any post's text fields, regardless of who owns it.
func (h *Handler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, h.Log, apierr.Validation("invalid id"))
		return
	}

	var req blogUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, h.Log, apierr.Validation("invalid JSON body"))
		return
	}
	if req.Title == nil && req.Content == nil && req.Category == nil {
		apierr.Write(w, h.Log, apierr.Validation("nothing to update"))
		return
	}

	upd := blogstore.Update{
		Title:    req.Title,
		Category: req.Category,
	}
	if req.Content != nil {
		clean := htmlsanitize.Sanitize(*req.Content)
		if strings.TrimSpace(clean) == "" {
			apierr.Write(w, h.Log, apierr.Validation("content is empty after sanitizing"))
			return
		}
		upd.Content = &clean
	}

	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	if err := h.Blogs.Apply(ctx, id, upd); err != nil {
		if errors.Is(err, blogstore.ErrNotFound) {
			apierr.Write(w, h.Log, apierr.NotFound("blog not found"))
			return
		}
		apierr.Write(w, h.Log, apierr.Internal("could not update blog", err))
		return
	}

	blog, err := h.Blogs.GetByID(ctx, id)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("could not reload blog", err))
		return
	}

	h.Log.Info("blog updated by moderator", zap.String("blog_id", id.Hex()))

	apierr.JSON(w, http.StatusOK, struct {
		Blog *models.Blog `json:"blog"`
	}{Blog: blog})
}

// DeleteBlog handles DELETE /api/admin/blogs/{id}.
func (h *Handler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, h.Log, apierr.Validation("invalid id"))
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

	deleted, err := h.Blogs.Delete(ctx, id)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("could not delete blog", err))
		return
	}
	if deleted == 0 {
		apierr.Write(w, h.Log, apierr.NotFound("blog not found"))
		return
	}

	h.deleteAsset(blog.ImagePublicID)
	if err := h.Notifs.DeleteForBlog(ctx, id); err != nil {
		h.Log.Warn("could not delete blog notifications",
			zap.String("blog_id", id.Hex()), zap.Error(err))
	}

	h.Log.Info("blog deleted by moderator", zap.String("blog_id", id.Hex()))

	apierr.JSON(w, http.StatusOK, struct {
		Message string `json:"message"`
	}{Message: "blog deleted"})
}
