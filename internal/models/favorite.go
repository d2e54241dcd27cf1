package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Favorite links one user to one photo. At most one record should exist
// per (user, photo) pair; the client enforces this by checking before it
// creates, the store itself carries no unique constraint.
type Favorite struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	PhotoID   string             `json:"photoId" bson:"photo_id"`
	UserID    string             `json:"userId" bson:"user_id"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}

// FavoriteWithPhoto is the populated form returned by the per-user
// favorites listing, with the photo document embedded in place of its id.
type FavoriteWithPhoto struct {
	ID        primitive.ObjectID `json:"_id"`
	Photo     Photo              `json:"photoId"`
	UserID    string             `json:"userId"`
	CreatedAt time.Time          `json:"createdAt"`
}

// CreateFavoriteRequest defines the request body for favoriting a photo
type CreateFavoriteRequest struct {
	PhotoID string `json:"photoId" validate:"required"`
	UserID  string `json:"userId" validate:"required"`
}
