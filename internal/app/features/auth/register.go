// internal/app/features/auth/register.go
package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"unicode/utf8"

	"github.com/namanchauhanrajput/blogify/internal/app/store/users"
	"github.com/namanchauhanrajput/blogify/internal/app/system/apierr"
	"github.com/namanchauhanrajput/blogify/internal/app/system/normalize"
	"github.com/namanchauhanrajput/blogify/internal/app/system/timeouts"
	"github.com/namanchauhanrajput/blogify/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt input limit
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9._-]{3,30}$`)

type registerRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, h.Log, apierr.Validation("invalid JSON body"))
		return
	}

	req.Name = normalize.Name(req.Name)
	req.Username = normalize.Username(req.Username)
	req.Email = normalize.Email(req.Email)

	if req.Name == "" {
		apierr.Write(w, h.Log, apierr.Validation("name is required"))
		return
	}
	if !usernameRe.MatchString(req.Username) {
		apierr.Write(w, h.Log, apierr.Validation("username must be 3-30 characters (letters, digits, '.', '_', '-')"))
		return
	}
	if !validEmail(req.Email) {
		apierr.Write(w, h.Log, apierr.Validation("a valid email is required"))
		return
	}
	if err := validatePassword(req.Password); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("could not hash password", err))
		return
	}

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	user, err := h.Users.Create(ctx, models.User{
		Name:         req.Name,
		Username:     req.Username,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
	})
	if err != nil {
		switch {
		case errors.Is(err, userstore.ErrDuplicateUsername):
			apierr.Write(w, h.Log, apierr.Conflict("username already taken"))
		case errors.Is(err, userstore.ErrDuplicateEmail):
			apierr.Write(w, h.Log, apierr.Conflict("email already registered"))
		default:
			apierr.Write(w, h.Log, apierr.Internal("could not create user", err))
		}
		return
	}

	token, err := h.Tokens.Issue(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("could not issue token", err))
		return
	}

	h.Log.Info("user registered",
		zap.String("user_id", user.ID.Hex()),
		zap.String("username", user.Username))

	apierr.JSON(w, http.StatusCreated, tokenResponse{Token: token, User: &user})
}

func validatePassword(pw string) error {
	switch n := utf8.RuneCountInString(pw); {
	case n < minPasswordLen:
		return apierr.Validation("password must be at least 8 characters")
	case len(pw) > maxPasswordLen:
		return apierr.Validation("password is too long")
	}
	return nil
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validEmail(s string) bool {
	return len(s) <= 254 && emailRe.MatchString(s)
}
