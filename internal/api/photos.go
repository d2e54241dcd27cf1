package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/anonto42/picly/internal/models"
)

// ListPhotos returns every photo in the store, newest first.
func (c *Client) ListPhotos(ctx context.Context) ([]models.Photo, error) {
	var photos []models.Photo
	if err := c.get(ctx, "/photos", nil, &photos); err != nil {
		return nil, err
	}
	return photos, nil
}

// PhotosByUser returns the photos posted by one user.
func (c *Client) PhotosByUser(ctx context.Context, userID string) ([]models.Photo, error) {
	query := url.Values{"userId": {userID}}
	var photos []models.Photo
	if err := c.get(ctx, "/photos", query, &photos); err != nil {
		return nil, err
	}
	return photos, nil
}

// CreatePhoto posts a new photo record.
func (c *Client) CreatePhoto(ctx context.Context, req models.CreatePhotoRequest) (*models.Photo, error) {
	var photo models.Photo
	if err := c.do(ctx, http.MethodPost, "/photos", nil, req, &photo); err != nil {
		return nil, err
	}
	return &photo, nil
}

// UpdatePhoto edits an existing photo record.
func (c *Client) UpdatePhoto(ctx context.Context, photoID string, req models.UpdatePhotoRequest) (*models.Photo, error) {
	var photo models.Photo
	if err := c.do(ctx, http.MethodPut, "/photos/"+photoID, nil, req, &photo); err != nil {
		return nil, err
	}
	return &photo, nil
}

// DeletePhoto removes a photo record by id.
func (c *Client) DeletePhoto(ctx context.Context, photoID string) error {
	return c.do(ctx, http.MethodDelete, "/photos/"+photoID, nil, nil, nil)
}
