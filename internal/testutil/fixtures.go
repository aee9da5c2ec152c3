package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/namanchauhanrajput/blogify/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// TestPassword is the plaintext behind every fixture user's hash.
const TestPassword = "open-sesame-42"

// testPasswordHash is computed once; bcrypt at min cost keeps the
// suite fast.
var testPasswordHash = func() string {
	h, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(h)
}()

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given username and email.
func (f *Fixtures) CreateUser(ctx context.Context, username, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Username:     username,
		UsernameCI:   text.Fold(username),
		Name:         "Test " + username,
		NameCI:       text.Fold("Test " + username),
		Email:        email,
		PasswordHash: testPasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateAdmin creates a test user with the admin flag set.
func (f *Fixtures) CreateAdmin(ctx context.Context, username, email string) models.User {
	f.t.Helper()

	u := f.CreateUser(ctx, username, email)
	if _, err := f.db.Collection("users").UpdateByID(ctx, u.ID,
		map[string]any{"$set": map[string]any{"is_admin": true}}); err != nil {
		f.t.Fatalf("failed to promote test admin: %v", err)
	}
	u.IsAdmin = true
	return u
}

// CreateBlog creates a test post owned by the author.
func (f *Fixtures) CreateBlog(ctx context.Context, authorID primitive.ObjectID, title, category string) models.Blog {
	f.t.Helper()

	now := time.Now().UTC()
	blog := models.Blog{
		ID:            primitive.NewObjectID(),
		Title:         title,
		Content:       "<p>content of " + title + "</p>",
		Category:      category,
		ImageURL:      "/media/test/" + title + ".jpg",
		ImagePublicID: "test/" + title + ".jpg",
		AuthorID:      authorID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := f.db.Collection("blogs").InsertOne(ctx, blog); err != nil {
		f.t.Fatalf("failed to create test blog: %v", err)
	}
	return blog
}

// CreateNotification inserts a notification directly, bypassing the
// self-notification guard, for read-path tests.
func (f *Fixtures) CreateNotification(ctx context.Context, recipientID, senderID primitive.ObjectID, typ string, blogID *primitive.ObjectID) models.Notification {
	f.t.Helper()

	n := models.Notification{
		ID:          primitive.NewObjectID(),
		RecipientID: recipientID,
		SenderID:    senderID,
		Type:        typ,
		BlogID:      blogID,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := f.db.Collection("notifications").InsertOne(ctx, n); err != nil {
		f.t.Fatalf("failed to create test notification: %v", err)
	}
	return n
}
