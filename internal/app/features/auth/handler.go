// internal/app/features/auth/handler.go
package auth

import (
	"context"

	userstore "github.com/namanchauhanrajput/blogify/internal/app/store/users"
	"github.com/namanchauhanrajput/blogify/internal/app/store/passwordreset"
	sysauth "github.com/namanchauhanrajput/blogify/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// CodeSender delivers a password-reset code out of band (email, SMS).
type CodeSender func(ctx context.Context, email, code string) error

// Handler serves registration, login, token resolution, and the
// password-reset flow.
type Handler struct {
	Users  *userstore.Store
	Resets *passwordreset.Store
	Tokens *sysauth.Manager
	Send   CodeSender
	Log    *zap.Logger
}

// NewHandler constructs the auth Handler.
func NewHandler(db *mongo.Database, tokens *sysauth.Manager, resets *passwordreset.Store, send CodeSender, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  userstore.New(db),
		Resets: resets,
		Tokens: tokens,
		Send:   send,
		Log:    logger,
	}
}
