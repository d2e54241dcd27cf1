package api

import (
	"context"
	"net/http"

	"github.com/anonto42/picly/internal/models"
)

// ListUsers returns every registered user. The login flow matches the
// entered email against this list client-side.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.get(ctx, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches a single user by id.
func (c *Client) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := c.get(ctx, "/users/"+userID, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser registers a new user record.
func (c *Client) CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/users", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser replaces the mutable profile fields of a user record.
func (c *Client) UpdateUser(ctx context.Context, userID string, req models.UpdateUserRequest) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPut, "/users/"+userID, nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
