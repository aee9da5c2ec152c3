// internal/domain/models/notification.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types.
const (
	NotificationLike    = "like"
	NotificationComment = "comment"
)

// Notification records that someone liked or commented on the
// recipient's post. One is created only when sender != recipient, and
// the only field ever updated afterwards is IsRead. Unliking does not
// retract a previously created like notification.
type Notification struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	RecipientID primitive.ObjectID  `bson:"recipient_id" json:"recipient_id"`
	SenderID    primitive.ObjectID  `bson:"sender_id" json:"sender_id"`
	Type        string              `bson:"type" json:"type"` // like | comment
	BlogID      *primitive.ObjectID `bson:"blog_id,omitempty" json:"blog_id,omitempty"`
	Text        string              `bson:"text,omitempty" json:"text,omitempty"`
	IsRead      bool                `bson:"is_read" json:"is_read"`
	CreatedAt   time.Time           `bson:"created_at" json:"created_at"`
}
