package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/anonto42/picly/internal/models"
)

// AlbumsByUser lists the albums owned by a user.
func (c *Client) AlbumsByUser(ctx context.Context, userID string) ([]models.Album, error) {
	query := url.Values{"userId": {userID}}
	var albums []models.Album
	if err := c.get(ctx, "/albums", query, &albums); err != nil {
		return nil, err
	}
	return albums, nil
}

// CreateAlbum creates an empty album for a user.
func (c *Client) CreateAlbum(ctx context.Context, title, userID string) (*models.Album, error) {
	body := models.CreateAlbumRequest{Title: title, UserID: userID}
	var album models.Album
	if err := c.do(ctx, http.MethodPost, "/albums", nil, body, &album); err != nil {
		return nil, err
	}
	return &album, nil
}

// AddPhotoToAlbum records a photo in an album.
func (c *Client) AddPhotoToAlbum(ctx context.Context, albumID, photoID string) (*models.Album, error) {
	var album models.Album
	if err := c.do(ctx, http.MethodPut, "/albums/"+albumID+"/photos/"+photoID, nil, nil, &album); err != nil {
		return nil, err
	}
	return &album, nil
}
