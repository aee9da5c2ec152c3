// internal/app/features/auth/login.go
package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/namanchauhanrajput/blogify/internal/app/store/users"
	"github.com/namanchauhanrajput/blogify/internal/app/system/apierr"
	"github.com/namanchauhanrajput/blogify/internal/app/system/timeouts"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	// Login accepts either a username or an email address.
	Login    string `json:"login"`
	Username string `json:"username"` // legacy alias for Login
	Password string `json:"password"`
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, h.Log, apierr.Validation("invalid JSON body"))
		return
	}

	login := req.Login
	if login == "" {
		login = req.Username
	}
	if login == "" || req.Password == "" {
		apierr.Write(w, h.Log, apierr.Validation("login and password are required"))
		return
	}

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	user, err := h.Users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			apierr.Write(w, h.Log, apierr.Auth("invalid credentials"))
			return
		}
		apierr.Write(w, h.Log, apierr.Internal("could not look up user", err))
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		apierr.Write(w, h.Log, apierr.Auth("invalid credentials"))
		return
	}

	token, err := h.Tokens.Issue(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("could not issue token", err))
		return
	}

	h.Log.Info("user logged in", zap.String("user_id", user.ID.Hex()))

	apierr.JSON(w, http.StatusOK, tokenResponse{Token: token, User: user})
}
