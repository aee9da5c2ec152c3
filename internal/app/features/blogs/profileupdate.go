// internal/app/features/blogs/profileupdate.go
package blogs

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	userstore "github.com/namanchauhanrajput/blogify/internal/app/store/users"
	"github.com/namanchauhanrajput/blogify/internal/app/system/apierr"
	sysauth "github.com/namanchauhanrajput/blogify/internal/app/system/auth"
	"github.com/namanchauhanrajput/blogify/internal/app/system/htmlsanitize"
	"github.com/namanchauhanrajput/blogify/internal/app/system/media"
	"github.com/namanchauhanrajput/blogify/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// UpdateProfile handles PUT /api/blog/user/update/profile (multipart,
// every field optional). social_links is a JSON object of
// platform -> URL. A new avatar follows the same upload-then-persist
// contract as post images.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	current, err := h.Users.GetByID(ctx, ident.UserID)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			apierr.Write(w, h.Log, apierr.Auth("account no longer exists"))
			return
		}
		apierr.Write(w, h.Log, apierr.Internal("could not load user", err))
		return
	}

	var upd userstore.ProfileUpdate
	if v := strings.TrimSpace(r.FormValue("username")); v != "" {
		upd.Username = &v
	}
	if v := strings.TrimSpace(r.FormValue("name")); v != "" {
		upd.Name = &v
	}
	if v := strings.TrimSpace(r.FormValue("email")); v != "" {
		upd.Email = &v
	}
	if _, sent := r.MultipartForm.Value["phone"]; sent {
		v := strings.TrimSpace(r.FormValue("phone"))
		upd.Phone = &v
	}
	if _, sent := r.MultipartForm.Value["bio"]; sent {
		v := htmlsanitize.StripTags(r.FormValue("bio"))
		upd.Bio = &v
	}
	if raw := r.FormValue("social_links"); raw != "" {
		links := map[string]string{}
		if err := json.Unmarshal([]byte(raw), &links); err != nil {
			apierr.Write(w, h.Log, apierr.Validation("social_links must be a JSON object"))
			return
		}
		upd.SocialLinks = links
	}

	oldAvatarID := current.AvatarPublicID
	newAvatarID := ""
	if file, header, ferr := r.FormFile("avatar"); ferr == nil {
		defer file.Close()

		upCtx, upCancel := timeouts.WithUpload(r.Context())
		asset, uerr := h.Media.Upload(upCtx, file, header.Filename, header.Header.Get("Content-Type"))
		upCancel()
		if uerr != nil {
			apierr.Write(w, h.Log, apierr.MediaUpload("avatar upload failed", uerr))
			return
		}
		upd.AvatarURL = &asset.URL
		upd.AvatarPubID = &asset.PublicID
		newAvatarID = asset.PublicID
	}

	if err := h.Users.UpdateProfile(ctx, ident.UserID, upd); err != nil {
		h.deleteAsset(newAvatarID, "orphaned upload after failed profile update")
		switch {
		case errors.Is(err, userstore.ErrDuplicateUsername):
			apierr.Write(w, h.Log, apierr.Conflict("username already taken"))
		case errors.Is(err, userstore.ErrDuplicateEmail):
			apierr.Write(w, h.Log, apierr.Conflict("email already registered"))
		case errors.Is(err, userstore.ErrNotFound):
			apierr.Write(w, h.Log, apierr.Auth("account no longer exists"))
		default:
			apierr.Write(w, h.Log, apierr.Internal("could not update profile", err))
		}
		return
	}

	if newAvatarID != "" && oldAvatarID != "" && oldAvatarID != newAvatarID {
		h.deleteAsset(oldAvatarID, "replaced avatar")
	}

	updated, err := h.Users.GetByID(ctx, ident.UserID)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("could not reload user", err))
		return
	}

	h.Log.Info("profile updated", zap.String("user_id", ident.UserID.Hex()))

	apierr.JSON(w, http.StatusOK, struct {
		User any `json:"user"`
	}{User: updated})
}
