// internal/app/store/notifications/store.go
package notificationstore

import (
	"context"
	"errors"
	"time"

	"github.com/namanchauhanrajput/blogify/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no notification matches the lookup.
var ErrNotFound = errors.New("notification not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("notifications")}
}

// Create inserts a notification unless the sender is the recipient:
// self-likes and self-comments never notify.
func (s *Store) Create(ctx context.Context, n models.Notification) error {
	if n.SenderID == n.RecipientID {
		return nil
	}
	n.ID = primitive.NewObjectID()
	n.IsRead = false
	n.CreatedAt = time.Now()

	_, err := s.c.InsertOne(ctx, n)
	return err
}

// ListForUser returns all of the recipient's notifications newest-first.
func (s *Store) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	find := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	cur, err := s.c.Find(ctx, bson.M{"recipient_id": userID}, find)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Notification
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead sets is_read on one of the recipient's notifications.
// Marking an already-read notification is a no-op success; a
// notification that is absent or belongs to someone else is ErrNotFound.
func (s *Store) MarkRead(ctx context.Context, id, recipientID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "recipient_id": recipientID},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkAllRead sets is_read on every notification of the recipient.
// Idempotent: already-read entries are untouched.
func (s *Store) MarkAllRead(ctx context.Context, recipientID primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"recipient_id": recipientID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// DeleteForUser removes every notification sent to or by the user.
// Used when an account is deleted.
func (s *Store) DeleteForUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"$or": bson.A{
		bson.M{"recipient_id": userID},
		bson.M{"sender_id": userID},
	}})
	return err
}

// DeleteForBlog removes notifications referencing a deleted post.
func (s *Store) DeleteForBlog(ctx context.Context, blogID primitive.ObjectID) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"blog_id": blogID})
	return err
}
