// internal/app/features/blogs/comment.go
package blogs

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	blogstore "github.com/namanchauhanrajput/blogify/internal/app/store/blogs"
	"github.com/namanchauhanrajput/blogify/internal/app/system/apierr"
	sysauth "github.com/namanchauhanrajput/blogify/internal/app/system/auth"
	"github.com/namanchauhanrajput/blogify/internal/app/system/htmlsanitize"
	"github.com/namanchauhanrajput/blogify/internal/app/system/timeouts"
	"github.com/namanchauhanrajput/blogify/internal/domain/models"
	"go.uber.org/zap"
)

const maxCommentLen = 2000

type commentRequest struct {
	Text string `json:"text"`
}

// Comment handles POST /api/blog/comment/{id}. Comments are plain
// text; markup is stripped before storing. The post author is notified
// unless they commented on their own post.
func (h *Handler) Comment(w http.ResponseWriter, r *http.Request) {
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

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, h.Log, apierr.Validation("invalid JSON body"))
		return
	}

	text := strings.TrimSpace(htmlsanitize.StripTags(req.Text))
	if text == "" {
		apierr.Write(w, h.Log, apierr.Validation("comment text is required"))
		return
	}
	if utf8.RuneCountInString(text) > maxCommentLen {
		apierr.Write(w, h.Log, apierr.Validation("comment is too long"))
		return
	}

	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	comment, authorID, err := h.Blogs.AddComment(ctx, id, ident.UserID, text)
	if err != nil {
		if errors.Is(err, blogstore.ErrNotFound) {
			apierr.Write(w, h.Log, apierr.NotFound("blog not found"))
			return
		}
		apierr.Write(w, h.Log, apierr.Internal("could not add comment", err))
		return
	}

	n := models.Notification{
		RecipientID: authorID,
		SenderID:    ident.UserID,
		Type:        models.NotificationComment,
		BlogID:      &id,
		Text:        truncate(text, 120),
	}
	if err := h.Notifs.Create(ctx, n); err != nil {
		h.Log.Warn("could not create comment notification",
			zap.String("blog_id", id.Hex()), zap.Error(err))
	}

	views, err := h.presentComments(ctx, []models.Comment{comment})
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("could not load commenter", err))
		return
	}

	apierr.JSON(w, http.StatusCreated, struct {
		Comment commentView `json:"comment"`
	}{Comment: views[0]})
}

// Comments handles GET /api/blog/comments/{id}: the public comment
// list in insertion order with commenter summaries.
func (h *Handler) Comments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	rows, err := h.Blogs.Comments(ctx, id)
	if err != nil {
		if errors.Is(err, blogstore.ErrNotFound) {
			apierr.Write(w, h.Log, apierr.NotFound("blog not found"))
			return
		}
		apierr.Write(w, h.Log, apierr.Internal("could not load comments", err))
		return
	}

	views, err := h.presentComments(ctx, rows)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("could not load commenters", err))
		return
	}

	apierr.JSON(w, http.StatusOK, struct {
		Comments []commentView `json:"comments"`
	}{Comments: views})
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "…"
}
