// internal/app/store/passwordreset/store.go
package passwordreset

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

const (
	// CodeLength is the length of the reset code (6 digits).
	CodeLength = 6
	// DefaultExpiry is how long a reset code is valid.
	DefaultExpiry = 10 * time.Minute
	// BcryptCost for hashing codes.
	BcryptCost = 10
	// MaxVerifyAttempts is the maximum number of code checks per reset.
	MaxVerifyAttempts = 5
)

var (
	// ErrNotFound is returned when no pending reset exists or it expired.
	ErrNotFound = errors.New("reset code not found or expired")
	// ErrInvalidCode is returned when the code doesn't match.
	ErrInvalidCode = errors.New("invalid reset code")
	// ErrTooManyAttempts is returned after too many failed checks.
	ErrTooManyAttempts = errors.New("too many reset attempts")
)

// Reset is a pending password-reset record. Only the bcrypt hash of the
// code is stored; the plain code goes out through the mail channel and
// is never persisted.
type Reset struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	Email     string             `bson:"email"`
	CodeHash  string             `bson:"code_hash"`
	ExpiresAt time.Time          `bson:"expires_at"` // TTL index field
	CreatedAt time.Time          `bson:"created_at"`
	Attempts  int                `bson:"attempts"`
}

// Store manages password-reset records.
type Store struct {
	c      *mongo.Collection
	expiry time.Duration
}

// New creates a Store with the given code expiry; zero or negative
// falls back to DefaultExpiry.
func New(db *mongo.Database, expiry time.Duration) *Store {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &Store{
		c:      db.Collection("password_resets"),
		expiry: expiry,
	}
}

// EnsureIndexes creates the TTL and lookup indexes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("idx_pwreset_expires_ttl").SetExpireAfterSeconds(0),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_pwreset_user"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create issues a fresh reset code for the user, replacing any pending
// one, and returns the plain code to send out of band.
func (s *Store) Create(ctx context.Context, userID primitive.ObjectID, email string) (string, error) {
	code := generateCode()

	hash, err := bcrypt.GenerateFromPassword([]byte(code), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash code: %w", err)
	}

	// Single pending reset per user.
	_, _ = s.c.DeleteMany(ctx, bson.M{"user_id": userID})

	now := time.Now()
	r := Reset{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Email:     email,
		CodeHash:  string(hash),
		ExpiresAt: now.Add(s.expiry),
		CreatedAt: now,
		Attempts:  0,
	}
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return "", fmt.Errorf("insert reset: %w", err)
	}
	return code, nil
}

// Verify checks a code for the user. The record is deleted on success
// (single use). Each call, valid or not, counts against the attempt cap.
func (s *Store) Verify(ctx context.Context, userID primitive.ObjectID, code string) error {
	var r Reset
	err := s.c.FindOne(ctx, bson.M{
		"user_id":    userID,
		"expires_at": bson.M{"$gt": time.Now()},
	}).Decode(&r)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		return err
	}

	if r.Attempts >= MaxVerifyAttempts {
		return ErrTooManyAttempts
	}

	_, _ = s.c.UpdateOne(ctx, bson.M{"_id": r.ID}, bson.M{"$inc": bson.M{"attempts": 1}})

	if err := bcrypt.CompareHashAndPassword([]byte(r.CodeHash), []byte(code)); err != nil {
		return ErrInvalidCode
	}

	_, _ = s.c.DeleteOne(ctx, bson.M{"_id": r.ID})
	return nil
}

// generateCode generates a random 6-digit numeric code.
// Panics if the system's cryptographic random number generator fails.
func generateCode() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand.Read failed: " + err.Error())
	}
	n := int(b[0])<<24 | int(b[1])<<16 | int(b[2])<<8 | int(b[3])
	if n < 0 {
		n = -n
	}
	code := (n % 900000) + 100000
	return fmt.Sprintf("%06d", code)
}
