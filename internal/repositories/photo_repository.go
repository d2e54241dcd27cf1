package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anonto42/picly/internal/models"
)

// PhotoRepository defines the interface for photo data operations
type PhotoRepository interface {
	CreatePhoto(ctx context.Context, photo *models.Photo) error
	GetPhotoByID(ctx context.Context, id string) (*models.Photo, error)
	GetPhotos(ctx context.Context) ([]models.Photo, error)
	GetPhotosByUserID(ctx context.Context, userID string) ([]models.Photo, error)
	UpdatePhoto(ctx context.Context, id string, photo *models.Photo) error
	DeletePhoto(ctx context.Context, id string) error
}

// MongoPhotoRepository implements PhotoRepository for MongoDB
type MongoPhotoRepository struct {
	collection *mongo.Collection
}

// NewMongoPhotoRepository creates a new MongoPhotoRepository
func NewMongoPhotoRepository(db *mongo.Database) *MongoPhotoRepository {
	return &MongoPhotoRepository{collection: db.Collection("photos")}
}

// CreatePhoto creates a new photo in MongoDB
func (r *MongoPhotoRepository) CreatePhoto(ctx context.Context, photo *models.Photo) error {
	photo.ID = primitive.NewObjectID()
	photo.CreatedAt = time.Now()
	photo.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, photo)
	return err
}

// GetPhotoByID retrieves a photo by ID from MongoDB
func (r *MongoPhotoRepository) GetPhotoByID(ctx context.Context, id string) (*models.Photo, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid photo ID format: %w", err)
	}

	var photo models.Photo
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&photo)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &photo, nil
}

// GetPhotos retrieves all photos from MongoDB, newest first
func (r *MongoPhotoRepository) GetPhotos(ctx context.Context) ([]models.Photo, error) {
	return r.find(ctx, bson.M{})
}

// GetPhotosByUserID retrieves photos posted by a specific user
func (r *MongoPhotoRepository) GetPhotosByUserID(ctx context.Context, userID string) ([]models.Photo, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *MongoPhotoRepository) find(ctx context.Context, filter bson.M) ([]models.Photo, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	photos := []models.Photo{}
	if err = cursor.All(ctx, &photos); err != nil {
		return nil, err
	}
	return photos, nil
}

// UpdatePhoto updates an existing photo in MongoDB
func (r *MongoPhotoRepository) UpdatePhoto(ctx context.Context, id string, photo *models.Photo) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid photo ID format: %w", err)
	}

	photo.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"title":      photo.Title,
			"location":   photo.Location,
			"updated_at": photo.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePhoto deletes a photo by ID from MongoDB
func (r *MongoPhotoRepository) DeletePhoto(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid photo ID format: %w", err)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
