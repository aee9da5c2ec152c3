// internal/domain/models/blog.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog is a published post. Likes is a set of user IDs maintained with
// $addToSet/$pull so concurrent toggles cannot lose updates; Comments is
// append-only and grown with $push.
//
// ImagePublicID is the blob-store identifier used to delete the image
// when the post is updated or removed. It is required at creation: a
// post cannot exist without an uploaded image.
type Blog struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Content       string             `bson:"content" json:"content"` // sanitized HTML
	Category      string             `bson:"category,omitempty" json:"category,omitempty"`
	ImageURL      string             `bson:"image_url" json:"image_url"`
	ImagePublicID string             `bson:"image_public_id" json:"-"`
	AuthorID      primitive.ObjectID `bson:"author_id" json:"author_id"`

	Likes    []primitive.ObjectID `bson:"likes,omitempty" json:"-"`
	Comments []Comment            `bson:"comments,omitempty" json:"comments,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Comment is embedded in a Blog document. Comments cannot be edited or
// deleted, only appended.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	AuthorID  primitive.ObjectID `bson:"author_id" json:"author_id"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
