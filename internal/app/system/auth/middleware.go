// internal/app/system/auth/middleware.go
package auth

import (
	"context"
	"net/http"

	"github.com/namanchauhanrajput/blogify/internal/app/system/apierr"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// UserFetcher loads fresh user facts for authorization decisions so
// admin revocation and account deletion take effect immediately instead
// of whenever the token expires.
type UserFetcher interface {
	// FetchAuthz returns whether the user still exists and whether they
	// are currently an admin.
	FetchAuthz(ctx context.Context, userID primitive.ObjectID) (exists, isAdmin bool, err error)
}

// Middleware bundles the token manager with the user fetcher and logger
// needed by the route guards.
type Middleware struct {
	Tokens  *Manager
	Fetcher UserFetcher
	Log     *zap.Logger
}

// LoadIdentity decodes the bearer token, if any, and injects the
// identity into context. Requests without an Authorization header pass
// through anonymously; a present-but-invalid token is rejected so
// clients learn their credential is bad even on optional-auth routes.
func (m *Middleware) LoadIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := BearerToken(r)
		if tok == "" {
			next.ServeHTTP(w, r)
			return
		}
		id, err := m.Tokens.Verify(tok)
		if err != nil {
			apierr.Write(w, m.Log, apierr.Auth("invalid or expired token"))
			return
		}
		next.ServeHTTP(w, WithIdentity(r, &id))
	})
}

// RequireAuth ensures an identity was loaded by LoadIdentity.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			apierr.Write(w, m.Log, apierr.Auth("authentication required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin ensures the requester is signed in and is an admin
// according to the live user document, not just the token claim.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := CurrentUser(r)
		if !ok {
			apierr.Write(w, m.Log, apierr.Auth("authentication required"))
			return
		}
		exists, isAdmin, err := m.Fetcher.FetchAuthz(r.Context(), id.UserID)
		if err != nil {
			apierr.Write(w, m.Log, apierr.Internal("could not check permissions", err))
			return
		}
		if !exists {
			apierr.Write(w, m.Log, apierr.Auth("account no longer exists"))
			return
		}
		if !isAdmin {
			apierr.Write(w, m.Log, apierr.Forbidden("admin access required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
