package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/anonto42/picly/internal/models"
)

// FavoritesByUser lists a user's favorites with the photo document
// populated in place of the photo id.
func (c *Client) FavoritesByUser(ctx context.Context, userID string) ([]models.FavoriteWithPhoto, error) {
	query := url.Values{"userId": {userID}}
	var favorites []models.FavoriteWithPhoto
	if err := c.get(ctx, "/favorites", query, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// CheckIsFavorite returns the favorite record linking the photo and user,
// or nil when none exists. Absence is not an error.
func (c *Client) CheckIsFavorite(ctx context.Context, photoID, userID string) (*models.Favorite, error) {
	query := url.Values{"photoId": {photoID}, "userId": {userID}}
	var favorites []models.Favorite
	if err := c.get(ctx, "/favorites", query, &favorites); err != nil {
		return nil, err
	}
	if len(favorites) == 0 {
		return nil, nil
	}
	return &favorites[0], nil
}

// AddFavorite creates a favorite record for the (photo, user) pair.
func (c *Client) AddFavorite(ctx context.Context, photoID, userID string) (*models.Favorite, error) {
	body := models.CreateFavoriteRequest{PhotoID: photoID, UserID: userID}
	var favorite models.Favorite
	if err := c.do(ctx, http.MethodPost, "/favorites", nil, body, &favorite); err != nil {
		return nil, err
	}
	return &favorite, nil
}

// RemoveFavorite deletes a favorite record by its id.
func (c *Client) RemoveFavorite(ctx context.Context, favoriteID string) error {
	return c.do(ctx, http.MethodDelete, "/favorites/"+favoriteID, nil, nil, nil)
}
