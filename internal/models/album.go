package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Album groups a user's photos by id.
type Album struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	UserID    string             `json:"userId" bson:"user_id"`
	PhotoIDs  []string           `json:"photos" bson:"photo_ids"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}

// CreateAlbumRequest defines the request body for creating an album
type CreateAlbumRequest struct {
	Title  string `json:"title" validate:"required,min=1,max=80"`
	UserID string `json:"userId" validate:"required"`
}
