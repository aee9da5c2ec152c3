// internal/app/features/notifications/read.go
package notifications

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	notificationstore "github.com/namanchauhanrajput/blogify/internal/app/store/notifications"
	"github.com/namanchauhanrajput/blogify/internal/app/system/apierr"
	sysauth "github.com/namanchauhanrajput/blogify/internal/app/system/auth"
	"github.com/namanchauhanrajput/blogify/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MarkRead handles PUT /api/notifications/read/{id}. Re-marking a read
// notification succeeds; a notification that is absent or someone
// else's is 404.
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	ident, ok := sysauth.CurrentUser(r)
	if !ok {
		apierr.Write(w, h.Log, apierr.Auth("authentication required"))
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, h.Log, apierr.Validation("invalid id"))
		return
	}

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	if err := h.Notifs.MarkRead(ctx, id, ident.UserID); err != nil {
		if errors.Is(err, notificationstore.ErrNotFound) {
			apierr.Write(w, h.Log, apierr.NotFound("notification not found"))
			return
		}
		apierr.Write(w, h.Log, apierr.Internal("could not mark notification read", err))
		return
	}

	apierr.JSON(w, http.StatusOK, struct {
		Message string `json:"message"`
	}{Message: "notification marked read"})
}

// MarkAllRead handles PUT /api/notifications/read-all. Idempotent; the
// response reports how many entries flipped this time.
func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	ident, ok := sysauth.CurrentUser(r)
	if !ok {
		apierr.Write(w, h.Log, apierr.Auth("authentication required"))
		return
	}

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	n, err := h.Notifs.MarkAllRead(ctx, ident.UserID)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("could not mark notifications read", err))
		return
	}

	apierr.JSON(w, http.StatusOK, struct {
		Message string `json:"message"`
		Updated int64  `json:"updated"`
	}{Message: "all notifications marked read", Updated: n})
}
