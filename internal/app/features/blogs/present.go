// internal/app/features/blogs/present.go
package blogs

import (
	"context"
	"net/http"
	"time"

	sysauth "github.com/namanchauhanrajput/blogify/internal/app/system/auth"
	"github.com/namanchauhanrajput/blogify/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// blogView is the JSON shape of a post. Like membership is collapsed to
// a count plus the requester's own flag; the raw member list stays
// server-side.
type blogView struct {
	ID            primitive.ObjectID  `json:"id"`
	Title         string              `json:"title"`
	Content       string              `json:"content"`
	Category      string              `json:"category,omitempty"`
	ImageURL      string              `json:"image_url"`
	Author        *models.UserSummary `json:"author,omitempty"`
	LikesCount    int                 `json:"likes_count"`
	Liked         bool                `json:"liked"`
	CommentsCount int                 `json:"comments_count"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// commentView is the JSON shape of one comment.
type commentView struct {
	ID        primitive.ObjectID  `json:"id"`
	Text      string              `json:"text"`
	Author    *models.UserSummary `json:"author,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

// viewerID returns the requester's ID when a valid token was presented,
// or the nil ObjectID for anonymous requests.
func viewerID(r *http.Request) primitive.ObjectID {
	if ident, ok := sysauth.CurrentUser(r); ok {
		return ident.UserID
	}
	return primitive.NilObjectID
}

func likedBy(b models.Blog, viewer primitive.ObjectID) bool {
	if viewer.IsZero() {
		return false
	}
	for _, id := range b.Likes {
		if id == viewer {
			return true
		}
	}
	return false
}

func toView(b models.Blog, author *models.UserSummary, viewer primitive.ObjectID) blogView {
	return blogView{
		ID:            b.ID,
		Title:         b.Title,
		Content:       b.Content,
		Category:      b.Category,
		ImageURL:      b.ImageURL,
		Author:        author,
		LikesCount:    len(b.Likes),
		Liked:         likedBy(b, viewer),
		CommentsCount: len(b.Comments),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// present attaches author summaries to a page of posts.
func (h *Handler) present(ctx context.Context, rows []models.Blog, viewer primitive.ObjectID) ([]blogView, error) {
	ids := make([]primitive.ObjectID, 0, len(rows))
	seen := make(map[primitive.ObjectID]bool, len(rows))
	for _, b := range rows {
		if !seen[b.AuthorID] {
			seen[b.AuthorID] = true
			ids = append(ids, b.AuthorID)
		}
	}

	authors, err := h.Users.SummariesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]blogView, 0, len(rows))
	for _, b := range rows {
		var author *models.UserSummary
		if a, ok := authors[b.AuthorID]; ok {
			author = &a
		}
		out = append(out, toView(b, author, viewer))
	}
	return out, nil
}

// presentComments attaches commenter summaries to a comment list.
func (h *Handler) presentComments(ctx context.Context, rows []models.Comment) ([]commentView, error) {
	ids := make([]primitive.ObjectID, 0, len(rows))
	seen := make(map[primitive.ObjectID]bool, len(rows))
	for _, c := range rows {
		if !seen[c.AuthorID] {
			seen[c.AuthorID] = true
			ids = append(ids, c.AuthorID)
		}
	}

	authors, err := h.Users.SummariesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]commentView, 0, len(rows))
	for _, c := range rows {
		var author *models.UserSummary
		if a, ok := authors[c.AuthorID]; ok {
			author = &a
		}
		out = append(out, commentView{
			ID:        c.ID,
			Text:      c.Text,
			Author:    author,
			CreatedAt: c.CreatedAt,
		})
	}
	return out, nil
}
