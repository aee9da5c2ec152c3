// internal/app/features/auth/resetpassword.go
package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/namanchauhanrajput/blogify/internal/app/store/passwordreset"
	"github.com/namanchauhanrajput/blogify/internal/app/store/users"
	"github.com/namanchauhanrajput/blogify/internal/app/system/apierr"
	"github.com/namanchauhanrajput/blogify/internal/app/system/normalize"
	"github.com/namanchauhanrajput/blogify/internal/app/system/timeouts"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type forgetRequest struct {
	Email string `json:"email"`
}

type resetRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// ForgetPassword handles POST /api/auth/forget-password. The response
// is the same whether or not the email is registered, so the endpoint
// cannot be used to probe for accounts.
func (h *Handler) ForgetPassword(w http.ResponseWriter, r *http.Request) {
	var req forgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, h.Log, apierr.Validation("invalid JSON body"))
		return
	}
	req.Email = normalize.Email(req.Email)
	if !validEmail(req.Email) {
		apierr.Write(w, h.Log, apierr.Validation("a valid email is required"))
		return
	}

	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	const accepted = "if that email is registered, a reset code has been sent"

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, userstore.ErrNotFound) {
			h.Log.Error("password reset lookup failed", zap.Error(err))
		}
		apierr.JSON(w, http.StatusOK, messageResponse{Message: accepted})
		return
	}

	code, err := h.Resets.Create(ctx, user.ID, user.Email)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("could not create reset code", err))
		return
	}
	if err := h.Send(ctx, user.Email, code); err != nil {
		apierr.Write(w, h.Log, apierr.Internal("could not deliver reset code", err))
		return
	}

	h.Log.Info("password reset code issued", zap.String("user_id", user.ID.Hex()))

	apierr.JSON(w, http.StatusOK, messageResponse{Message: accepted})
}

// ResetPassword handles POST /api/auth/reset-password. A valid,
// unexpired code sets the new password and consumes the code.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, h.Log, apierr.Validation("invalid JSON body"))
		return
	}
	req.Email = normalize.Email(req.Email)
	if !validEmail(req.Email) {
		apierr.Write(w, h.Log, apierr.Validation("a valid email is required"))
		return
	}
	if len(req.Code) != passwordreset.CodeLength {
		apierr.Write(w, h.Log, apierr.Validation("invalid or expired reset code"))
		return
	}
	if err := validatePassword(req.NewPassword); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			apierr.Write(w, h.Log, apierr.Validation("invalid or expired reset code"))
			return
		}
		apierr.Write(w, h.Log, apierr.Internal("could not look up user", err))
		return
	}

	if err := h.Resets.Verify(ctx, user.ID, req.Code); err != nil {
		switch {
		case errors.Is(err, passwordreset.ErrTooManyAttempts):
			apierr.Write(w, h.Log, apierr.Forbidden("too many attempts; request a new code"))
		case errors.Is(err, passwordreset.ErrNotFound), errors.Is(err, passwordreset.ErrInvalidCode):
			apierr.Write(w, h.Log, apierr.Validation("invalid or expired reset code"))
		default:
			apierr.Write(w, h.Log, apierr.Internal("could not verify reset code", err))
		}
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("could not hash password", err))
		return
	}
	if err := h.Users.SetPasswordHash(ctx, user.ID, string(hash)); err != nil {
		apierr.Write(w, h.Log, apierr.Internal("could not update password", err))
		return
	}

	h.Log.Info("password reset completed", zap.String("user_id", user.ID.Hex()))

	apierr.JSON(w, http.StatusOK, messageResponse{Message: "password updated"})
}
