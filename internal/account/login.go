// Package account implements the credential flows: login matching and
// the two-step signup wizard with emailed OTP verification.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anonto42/picly/internal/models"
)

var (
	ErrUnknownEmail    = errors.New("account: no user with that email")
	ErrInactiveAccount = errors.New("account: account is not activated")
	ErrWrongPassword   = errors.New("account: password does not match")
)

// UserStore is the slice of the remote store the account flows need.
// *api.Client satisfies it.
type UserStore interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error)
}

// Login finds the user with the given email and checks the credentials.
// The store has no login endpoint; the whole user list is fetched and
// matched here, mirroring how the store is deployed.
func Login(ctx context.Context, users UserStore, email, password string) (*models.User, error) {
	all, err := users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	for i := range all {
		user := &all[i]
		if !strings.EqualFold(user.Account.Email, email) {
			continue
		}
		if !user.Account.IsActive {
			return nil, ErrInactiveAccount
		}
		if user.Account.Password != password {
			return nil, ErrWrongPassword
		}
		return user, nil
	}
	return nil, ErrUnknownEmail
}
