package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Image describes the uploaded renditions of a photo: one thumbnail plus
// the ordered full-resolution URLs.
type Image struct {
	Thumbnail string   `json:"thumbnail" bson:"thumbnail"`
	URL       []string `json:"url" bson:"url"`
}

// GeoPoint carries coordinates as decimal strings, matching the wire
// format produced by the posting flow.
type GeoPoint struct {
	Latitude  string `json:"latitude" bson:"latitude"`
	Longitude string `json:"longitude" bson:"longitude"`
}

// Photo represents a posted photo stored in MongoDB
type Photo struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Image     Image              `json:"image" bson:"image"`
	Location  *GeoPoint          `json:"location,omitempty" bson:"location,omitempty"`
	UserID    string             `json:"userId" bson:"user_id"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"-" bson:"updated_at"`
}

// CreatePhotoRequest defines the request body for posting a new photo
type CreatePhotoRequest struct {
	Title    string    `json:"title" validate:"required,min=1,max=120"`
	Image    Image     `json:"image" validate:"required"`
	Location *GeoPoint `json:"location,omitempty"`
	UserID   string    `json:"userId" validate:"required"`
}

// UpdatePhotoRequest defines the request body for editing a photo
type UpdatePhotoRequest struct {
	Title    string    `json:"title,omitempty" validate:"omitempty,min=1,max=120"`
	Location *GeoPoint `json:"location,omitempty"`
}
