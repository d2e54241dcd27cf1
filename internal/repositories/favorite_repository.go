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

// FavoriteRepository defines the interface for favorite data operations.
// Find treats empty filter values as wildcards, so the handler can serve
// both the pair existence check and the per-user listing. The collection
// deliberately carries no unique (photo, user) index: deduplication is a
// client convention.
type FavoriteRepository interface {
	CreateFavorite(ctx context.Context, favorite *models.Favorite) error
	Find(ctx context.Context, photoID, userID string) ([]models.Favorite, error)
	DeleteFavorite(ctx context.Context, id string) error
}

// MongoFavoriteRepository implements FavoriteRepository for MongoDB
type MongoFavoriteRepository struct {
	collection *mongo.Collection
}

// NewMongoFavoriteRepository creates a new MongoFavoriteRepository
func NewMongoFavoriteRepository(db *mongo.Database) *MongoFavoriteRepository {
	return &MongoFavoriteRepository{collection: db.Collection("favorites")}
}

// CreateFavorite creates a new favorite in MongoDB
func (r *MongoFavoriteRepository) CreateFavorite(ctx context.Context, favorite *models.Favorite) error {
	favorite.ID = primitive.NewObjectID()
	favorite.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, favorite)
	return err
}

// Find retrieves favorites matching the provided filters, oldest first.
func (r *MongoFavoriteRepository) Find(ctx context.Context, photoID, userID string) ([]models.Favorite, error) {
	filter := bson.M{}
	if photoID != "" {
		filter["photo_id"] = photoID
	}
	if userID != "" {
		filter["user_id"] = userID
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	favorites := []models.Favorite{}
	if err = cursor.All(ctx, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// DeleteFavorite deletes a favorite by ID from MongoDB
func (r *MongoFavoriteRepository) DeleteFavorite(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid favorite ID format: %w", err)
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
