// internal/app/features/auth/user.go
package auth

import (
	"errors"
	"net/http"

	"github.com/namanchauhanrajput/blogify/internal/app/store/users"
	"github.com/namanchauhanrajput/blogify/internal/app/system/apierr"
	sysauth "github.com/namanchauhanrajput/blogify/internal/app/system/auth"
	"github.com/namanchauhanrajput/blogify/internal/app/system/timeouts"
	"github.com/namanchauhanrajput/blogify/internal/domain/models"
)

type userResponse struct {
	User *models.User `json:"user"`
}

// User handles GET /api/auth/user and returns the account behind the
// bearer token.
func (h *Handler) User(w http.ResponseWriter, r *http.Request) {
	ident, ok := sysauth.CurrentUser(r)
	if !ok {
		apierr.Write(w, h.Log, apierr.Auth("authentication required"))
		return
	}

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	user, err := h.Users.GetByID(ctx, ident.UserID)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			apierr.Write(w, h.Log, apierr.Auth("account no longer exists"))
			return
		}
		apierr.Write(w, h.Log, apierr.Internal("could not load user", err))
		return
	}

	apierr.JSON(w, http.StatusOK, userResponse{User: user})
}
