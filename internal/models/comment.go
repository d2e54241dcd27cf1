package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment represents a comment left on a photo
type Comment struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	PhotoID   string             `json:"photoId" bson:"photo_id"`
	UserID    string             `json:"userId" bson:"user_id"`
	Text      string             `json:"text" bson:"text"`
	Rate      int                `json:"rate" bson:"rate"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}

// CreateCommentRequest defines the request body for commenting on a photo
type CreateCommentRequest struct {
	PhotoID string `json:"photoId" validate:"required"`
	UserID  string `json:"userId" validate:"required"`
	Text    string `json:"text" validate:"required,min=1,max=500"`
	Rate    int    `json:"rate" validate:"min=0,max=5"`
}
