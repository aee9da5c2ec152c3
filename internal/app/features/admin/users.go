// internal/app/features/admin/users.go
package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	userstore "github.com/namanchauhanrajput/blogify/internal/app/store/users"
	"github.com/namanchauhanrajput/blogify/internal/app/system/apierr"
	sysauth "github.com/namanchauhanrajput/blogify/internal/app/system/auth"
	"github.com/namanchauhanrajput/blogify/internal/app/system/paging"
	"github.com/namanchauhanrajput/blogify/internal/app/system/timeouts"
	"github.com/namanchauhanrajput/blogify/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type userListResponse struct {
	Users      []models.User `json:"users"`
	NextCursor string        `json:"next_cursor,omitempty"`
	HasMore    bool          `json:"has_more"`
}

// ListUsers handles GET /api/admin/users with cursor pagination
// newest-first.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	k := paging.FromRequest(r)

	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	find := options.Find()
	k.Apply(find, "created_at")

	rows, err := h.Users.List(ctx, k.Window("created_at"), find)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("could not list users", err))
		return
	}

	hasMore := paging.TrimPage(&rows, k)
	resp := userListResponse{Users: rows, HasMore: hasMore}
	if hasMore {
		resp.NextCursor = paging.NextCursor(rows,
			func(u models.User) time.Time { return u.CreatedAt },
			func(u models.User) primitive.ObjectID { return u.ID })
	}
	apierr.JSON(w, http.StatusOK, resp)
}

type userUpdateRequest struct {
	Name     *string `json:"name"`
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Bio      *string `json:"bio"`
	IsAdmin  *bool   `json:"is_admin"`
}

// UpdateUser handles PUT /api/admin/users/{id}: a partial update that,
// unlike self-service profile updates, may also flip is_admin.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, h.Log, apierr.Validation("invalid id"))
		return
	}

	var req userUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, h.Log, apierr.Validation("invalid JSON body"))
		return
	}

	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	upd := userstore.ProfileUpdate{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Bio:      req.Bio,
	}
	hasProfileFields := req.Name != nil || req.Username != nil ||
		req.Email != nil || req.Phone != nil || req.Bio != nil
	if hasProfileFields {
		if err := h.Users.UpdateProfile(ctx, id, upd); err != nil {
			switch {
			case errors.Is(err, userstore.ErrDuplicateUsername):
				apierr.Write(w, h.Log, apierr.Conflict("username already taken"))
			case errors.Is(err, userstore.ErrDuplicateEmail):
				apierr.Write(w, h.Log, apierr.Conflict("email already registered"))
			case errors.Is(err, userstore.ErrNotFound):
				apierr.Write(w, h.Log, apierr.NotFound("user not found"))
			default:
				apierr.Write(w, h.Log, apierr.Internal("could not update user", err))
			}
			return
		}
	}

	if req.IsAdmin != nil {
		if err := h.Users.SetAdmin(ctx, id, *req.IsAdmin); err != nil {
			if errors.Is(err, userstore.ErrNotFound) {
				apierr.Write(w, h.Log, apierr.NotFound("user not found"))
				return
			}
			apierr.Write(w, h.Log, apierr.Internal("could not update admin flag", err))
			return
		}
		h.Log.Info("admin flag changed",
			zap.String("user_id", id.Hex()),
			zap.Bool("is_admin", *req.IsAdmin))
	}

	user, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			apierr.Write(w, h.Log, apierr.NotFound("user not found"))
			return
		}
		apierr.Write(w, h.Log, apierr.Internal("could not reload user", err))
		return
	}

	apierr.JSON(w, http.StatusOK, struct {
		User *models.User `json:"user"`
	}{User: user})
}

// DeleteUser handles DELETE /api/admin/users/{id}. The account's posts
// (with their media, best-effort), its likes and comments on other
// posts, and its notifications go with it so no dangling references
// remain.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, h.Log, apierr.Validation("invalid id"))
		return
	}

	if ident, ok := sysauth.CurrentUser(r); ok && ident.UserID == id {
		apierr.Write(w, h.Log, apierr.Validation("admins cannot delete their own account"))
		return
	}

	ctx, cancel := timeouts.WithLong(r.Context())
	defer cancel()

	deleted, err := h.Users.Delete(ctx, id)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("could not delete user", err))
		return
	}
	if deleted == 0 {
		apierr.Write(w, h.Log, apierr.NotFound("user not found"))
		return
	}

	mediaIDs, err := h.Blogs.DeleteByAuthor(ctx, id)
	if err != nil {
		h.Log.Error("cascade: could not delete user's blogs",
			zap.String("user_id", id.Hex()), zap.Error(err))
	}
	for _, pid := range mediaIDs {
		h.deleteAsset(pid)
	}
	if err := h.Blogs.PullLikesByUser(ctx, id); err != nil {
		h.Log.Error("cascade: could not pull user's likes",
			zap.String("user_id", id.Hex()), zap.Error(err))
	}
	if err := h.Blogs.PullCommentsByUser(ctx, id); err != nil {
		h.Log.Error("cascade: could not pull user's comments",
			zap.String("user_id", id.Hex()), zap.Error(err))
	}
	if err := h.Notifs.DeleteForUser(ctx, id); err != nil {
		h.Log.Error("cascade: could not delete user's notifications",
			zap.String("user_id", id.Hex()), zap.Error(err))
	}

	h.Log.Info("user deleted", zap.String("user_id", id.Hex()))

	apierr.JSON(w, http.StatusOK, struct {
		Message string `json:"message"`
	}{Message: "user deleted"})
}
