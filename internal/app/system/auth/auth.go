// Package auth issues and verifies the signed bearer tokens that carry
// user identity, and provides the middleware gating protected routes.
//
// Tokens are stateless: possession of a valid, unexpired, correctly
// signed token is the sole authorization proof. No session state is
// kept server-side.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultTokenExpiry is used when no expiry is configured.
const DefaultTokenExpiry = 72 * time.Hour

// Identity is the decoded token payload injected into request context.
type Identity struct {
	UserID  primitive.ObjectID
	Email   string
	IsAdmin bool
}

// Claims is the JWT payload for login tokens.
type Claims struct {
	Email string `json:"email"`
	Admin bool   `json:"admin"`
	jwt.RegisteredClaims
}

// Manager signs and verifies tokens with a shared HMAC secret.
type Manager struct {
	secret []byte
	expiry time.Duration
}

// NewManager requires a non-empty signing secret.
func NewManager(secret string, expiry time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("token secret is empty; provide >=32 random chars")
	}
	if expiry <= 0 {
		expiry = DefaultTokenExpiry
	}
	return &Manager{secret: []byte(secret), expiry: expiry}, nil
}

// Issue creates a signed token for the user.
func (m *Manager) Issue(userID primitive.ObjectID, email string, isAdmin bool) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		Admin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
			Issuer:    "blogify",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses and validates a token string and returns the identity
// it carries. Any parse, signature, or expiry problem yields an error.
func (m *Manager) Verify(tokenString string) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return Identity{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, errors.New("invalid token")
	}
	uid, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return Identity{}, fmt.Errorf("invalid subject: %w", err)
	}
	return Identity{UserID: uid, Email: claims.Email, IsAdmin: claims.Admin}, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Request-context helpers                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

type ctxKey string

const identityKey ctxKey = "identity"

// CurrentUser returns the requester identity and a "found?" flag.
func CurrentUser(r *http.Request) (*Identity, bool) {
	id, ok := r.Context().Value(identityKey).(*Identity)
	return id, ok
}

// WithIdentity injects an identity into the request. Exported for
// handler tests that bypass the middleware.
func WithIdentity(r *http.Request, id *Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), identityKey, id))
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	// Tolerate a bare token for older clients.
	return strings.TrimSpace(h)
}
