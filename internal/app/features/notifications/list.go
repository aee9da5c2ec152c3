// internal/app/features/notifications/list.go
package notifications

import (
	"net/http"
	"time"

	"github.com/namanchauhanrajput/blogify/internal/app/system/apierr"
	sysauth "github.com/namanchauhanrajput/blogify/internal/app/system/auth"
	"github.com/namanchauhanrajput/blogify/internal/app/system/timeouts"
	"github.com/namanchauhanrajput/blogify/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// notificationView is one feed entry with the sender and related post
// resolved for display.
type notificationView struct {
	ID        primitive.ObjectID  `json:"id"`
	Type      string              `json:"type"`
	Text      string              `json:"text,omitempty"`
	Sender    *models.UserSummary `json:"sender,omitempty"`
	BlogID    *primitive.ObjectID `json:"blog_id,omitempty"`
	BlogTitle string              `json:"blog_title,omitempty"`
	IsRead    bool                `json:"is_read"`
	CreatedAt time.Time           `json:"created_at"`
}

type listResponse struct {
	Notifications []notificationView `json:"notifications"`
	UnreadCount   int                `json:"unread_count"`
}

// List handles GET /api/notifications: the requester's feed
// newest-first. Senders or posts deleted since the notification was
// written are left out of the entry rather than failing the request.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ident, ok := sysauth.CurrentUser(r)
	if !ok {
		apierr.Write(w, h.Log, apierr.Auth("authentication required"))
		return
	}

	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	rows, err := h.Notifs.ListForUser(ctx, ident.UserID)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("could not load notifications", err))
		return
	}

	senderIDs := make([]primitive.ObjectID, 0, len(rows))
	blogIDs := make([]primitive.ObjectID, 0, len(rows))
	seenSender := make(map[primitive.ObjectID]bool)
	seenBlog := make(map[primitive.ObjectID]bool)
	for _, n := range rows {
		if !seenSender[n.SenderID] {
			seenSender[n.SenderID] = true
			senderIDs = append(senderIDs, n.SenderID)
		}
		if n.BlogID != nil && !seenBlog[*n.BlogID] {
			seenBlog[*n.BlogID] = true
			blogIDs = append(blogIDs, *n.BlogID)
		}
	}

	senders, err := h.Users.SummariesByIDs(ctx, senderIDs)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("could not load senders", err))
		return
	}
	titles, err := h.Blogs.TitlesByIDs(ctx, blogIDs)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("could not load blog titles", err))
		return
	}

	views := make([]notificationView, 0, len(rows))
	unread := 0
	for _, n := range rows {
		if !n.IsRead {
			unread++
		}
		v := notificationView{
			ID:        n.ID,
			Type:      n.Type,
			Text:      n.Text,
			BlogID:    n.BlogID,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		}
		if s, ok := senders[n.SenderID]; ok {
			v.Sender = &s
		}
		if n.BlogID != nil {
			v.BlogTitle = titles[*n.BlogID]
		}
		views = append(views, v)
	}

	apierr.JSON(w, http.StatusOK, listResponse{
		Notifications: views,
		UnreadCount:   unread,
	})
}
