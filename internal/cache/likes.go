package cache

import (
	"context"
	"encoding/json"

	"github.com/anonto42/picly/internal/logging"
)

// LoadLikes reads the shadow like-count map from the store. Read errors
// and corrupt payloads are logged and yield an empty map: the cache is
// best-effort and never fatal.
func LoadLikes(ctx context.Context, s Store) map[string]int {
	raw, ok, err := s.Get(KeyLikes)
	if err != nil {
		logging.FromContext(ctx).Warn("reading likes cache failed", "error", err)
		return map[string]int{}
	}
	if !ok {
		return map[string]int{}
	}

	likes := map[string]int{}
	if err := json.Unmarshal([]byte(raw), &likes); err != nil {
		logging.FromContext(ctx).Warn("likes cache is corrupt, starting empty", "error", err)
		return map[string]int{}
	}
	return likes
}

// SaveLikes writes the full shadow like-count map back to the store.
func SaveLikes(s Store, likes map[string]int) error {
	raw, err := json.Marshal(likes)
	if err != nil {
		return err
	}
	return s.Set(KeyLikes, string(raw))
}
