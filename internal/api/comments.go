package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/anonto42/picly/internal/models"
)

// CommentsByPhoto lists the comments left on a photo.
func (c *Client) CommentsByPhoto(ctx context.Context, photoID string) ([]models.Comment, error) {
	query := url.Values{"photoId": {photoID}}
	var comments []models.Comment
	if err := c.get(ctx, "/comments", query, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateComment appends a comment to a photo.
func (c *Client) CreateComment(ctx context.Context, req models.CreateCommentRequest) (*models.Comment, error) {
	var comment models.Comment
	if err := c.do(ctx, http.MethodPost, "/comments", nil, req, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a comment by id.
func (c *Client) DeleteComment(ctx context.Context, commentID string) error {
	return c.do(ctx, http.MethodDelete, "/comments/"+commentID, nil, nil, nil)
}
