// Package session owns the client's login lifecycle: a session is
// established after a successful credential match and torn down at
// logout. State lives in the local cache so it survives restarts.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/anonto42/picly/internal/cache"
	"github.com/anonto42/picly/internal/logging"
	"github.com/anonto42/picly/internal/models"
)

// Manager reads and writes the session keys. It is injected into every
// component that needs the current user instead of being looked up
// ambiently.
type Manager struct {
	kv cache.Store
}

func NewManager(kv cache.Store) *Manager {
	return &Manager{kv: kv}
}

// Establish stores an opaque session token and the user record. The two
// writes are independent; a crash in between can leave them inconsistent.
func (m *Manager) Establish(ctx context.Context, user models.User) (string, error) {
	token := uuid.NewString()
	if err := m.kv.Set(cache.KeyUserToken, token); err != nil {
		return "", fmt.Errorf("store session token: %w", err)
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("encode session user: %w", err)
	}
	if err := m.kv.Set(cache.KeyUser, string(raw)); err != nil {
		return "", fmt.Errorf("store session user: %w", err)
	}

	logging.FromContext(ctx).Info("session established", "user", user.ID)
	return token, nil
}

// Token returns the stored session token, if any. Read failures are
// treated as "not logged in".
func (m *Manager) Token(ctx context.Context) (string, bool) {
	token, ok, err := m.kv.Get(cache.KeyUserToken)
	if err != nil {
		logging.FromContext(ctx).Warn("reading session token failed", "error", err)
		return "", false
	}
	return token, ok && token != ""
}

// Current returns the cached user record, if a session exists. Corrupt
// or unreadable records count as no session.
func (m *Manager) Current(ctx context.Context) (*models.User, bool) {
	raw, ok, err := m.kv.Get(cache.KeyUser)
	if err != nil {
		logging.FromContext(ctx).Warn("reading session user failed", "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		logging.FromContext(ctx).Warn("session user record is corrupt", "error", err)
		return nil, false
	}
	return &user, true
}

// TearDown removes the session keys. Both removals are attempted even if
// the first fails.
func (m *Manager) TearDown(ctx context.Context) error {
	tokenErr := m.kv.Remove(cache.KeyUserToken)
	userErr := m.kv.Remove(cache.KeyUser)
	if tokenErr != nil {
		return fmt.Errorf("remove session token: %w", tokenErr)
	}
	if userErr != nil {
		return fmt.Errorf("remove session user: %w", userErr)
	}
	logging.FromContext(ctx).Info("session torn down")
	return nil
}
