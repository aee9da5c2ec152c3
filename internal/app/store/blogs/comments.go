// internal/app/store/blogs/comments.go
package blogstore

import (
	"context"
	"time"

	"github.com/namanchauhanrajput/blogify/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AddComment appends a comment atomically with $push and returns the
// stored comment plus the post author (for notification fan-out).
// Prior comments are never mutated.
func (s *Store) AddComment(ctx context.Context, blogID, authorID primitive.ObjectID, body string) (models.Comment, primitive.ObjectID, error) {
	c := models.Comment{
		ID:        primitive.NewObjectID(),
		AuthorID:  authorID,
		Text:      body,
		CreatedAt: time.Now(),
	}

	var row struct {
		AuthorID primitive.ObjectID `bson:"author_id"`
	}
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": blogID},
		bson.M{
			"$push": bson.M{"comments": c},
			"$set":  bson.M{"updated_at": c.CreatedAt},
		},
		options.FindOneAndUpdate().SetProjection(bson.M{"author_id": 1}),
	).Decode(&row)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Comment{}, primitive.NilObjectID, ErrNotFound
		}
		return models.Comment{}, primitive.NilObjectID, err
	}

	return c, row.AuthorID, nil
}

// Comments returns a post's comment list in insertion order.
func (s *Store) Comments(ctx context.Context, blogID primitive.ObjectID) ([]models.Comment, error) {
	var row struct {
		Comments []models.Comment `bson:"comments"`
	}
	err := s.c.FindOne(ctx, bson.M{"_id": blogID},
		options.FindOne().SetProjection(bson.M{"comments": 1})).Decode(&row)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row.Comments, nil
}

// PullCommentsByUser removes every comment a user authored across all
// posts. Used when an account is deleted.
func (s *Store) PullCommentsByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.c.UpdateMany(ctx,
		bson.M{"comments.author_id": userID},
		bson.M{"$pull": bson.M{"comments": bson.M{"author_id": userID}}},
	)
	return err
}
