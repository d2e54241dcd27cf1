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

// AlbumRepository defines the interface for album data operations
type AlbumRepository interface {
	CreateAlbum(ctx context.Context, album *models.Album) error
	GetAlbumsByUserID(ctx context.Context, userID string) ([]models.Album, error)
	AddPhoto(ctx context.Context, albumID, photoID string) (*models.Album, error)
}

// MongoAlbumRepository implements AlbumRepository for MongoDB
type MongoAlbumRepository struct {
	collection *mongo.Collection
}

// NewMongoAlbumRepository creates a new MongoAlbumRepository
func NewMongoAlbumRepository(db *mongo.Database) *MongoAlbumRepository {
	return &MongoAlbumRepository{collection: db.Collection("albums")}
}

// CreateAlbum creates a new album in MongoDB
func (r *MongoAlbumRepository) CreateAlbum(ctx context.Context, album *models.Album) error {
	album.ID = primitive.NewObjectID()
	album.CreatedAt = time.Now()
	if album.PhotoIDs == nil {
		album.PhotoIDs = []string{}
	}
	_, err := r.collection.InsertOne(ctx, album)
	return err
}

// GetAlbumsByUserID retrieves all albums owned by a user
func (r *MongoAlbumRepository) GetAlbumsByUserID(ctx context.Context, userID string) ([]models.Album, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	albums := []models.Album{}
	if err = cursor.All(ctx, &albums); err != nil {
		return nil, err
	}
	return albums, nil
}

// AddPhoto records a photo id in an album, ignoring duplicates, and
// returns the updated album.
func (r *MongoAlbumRepository) AddPhoto(ctx context.Context, albumID, photoID string) (*models.Album, error) {
	objID, err := primitive.ObjectIDFromHex(albumID)
	if err != nil {
		return nil, fmt.Errorf("invalid album ID format: %w", err)
	}

	update := bson.M{"$addToSet": bson.M{"photo_ids": photoID}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var album models.Album
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&album)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &album, nil
}
