// internal/app/store/blogs/likes.go
package blogstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// LikeResult reports the outcome of a membership toggle.
type LikeResult struct {
	Liked      bool               // true if the toggle added the user to the set
	LikesCount int                // like count after the toggle
	AuthorID   primitive.ObjectID // post author, for notification fan-out
}

// ToggleLike flips the requester's membership in the post's like set.
//
// The flip uses $addToSet / $pull so concurrent toggles from different
// users serialize on the document and cannot lose updates; there is no
// read-modify-write of the array. The count is read after the flip and
// reflects whatever state the document reached.
func (s *Store) ToggleLike(ctx context.Context, blogID, userID primitive.ObjectID) (LikeResult, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": blogID},
		bson.M{"$addToSet": bson.M{"likes": userID}},
	)
	if err != nil {
		return LikeResult{}, err
	}
	if res.MatchedCount == 0 {
		return LikeResult{}, ErrNotFound
	}

	liked := res.ModifiedCount == 1
	if !liked {
		// Already a member: this toggle is an unlike.
		if _, err := s.c.UpdateOne(ctx,
			bson.M{"_id": blogID},
			bson.M{"$pull": bson.M{"likes": userID}},
		); err != nil {
			return LikeResult{}, err
		}
	}

	var row struct {
		Likes    []primitive.ObjectID `bson:"likes"`
		AuthorID primitive.ObjectID   `bson:"author_id"`
	}
	err = s.c.FindOne(ctx, bson.M{"_id": blogID}).Decode(&row)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return LikeResult{}, ErrNotFound
		}
		return LikeResult{}, err
	}

	return LikeResult{
		Liked:      liked,
		LikesCount: len(row.Likes),
		AuthorID:   row.AuthorID,
	}, nil
}

// PullLikesByUser removes the user from every like set. Used when an
// account is deleted.
func (s *Store) PullLikesByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.c.UpdateMany(ctx,
		bson.M{"likes": userID},
		bson.M{"$pull": bson.M{"likes": userID}},
	)
	return err
}
