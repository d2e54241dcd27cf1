// Package favorites reconciles server-side favorite records with the
// client's local UI state and its shadow like-count cache.
package favorites

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/anonto42/picly/internal/cache"
	"github.com/anonto42/picly/internal/models"
)

// ErrMissingID is returned when a lookup is attempted without both ids.
var ErrMissingID = errors.New("favorites: photo and user ids are required")

// defaultLookupLimit bounds the number of favorite lookups in flight at
// once during feed annotation.
const defaultLookupLimit = 8

// Store is the slice of the remote store the reconciliation logic needs.
// *api.Client satisfies it.
type Store interface {
	CheckIsFavorite(ctx context.Context, photoID, userID string) (*models.Favorite, error)
	AddFavorite(ctx context.Context, photoID, userID string) (*models.Favorite, error)
	RemoveFavorite(ctx context.Context, favoriteID string) error
}

// Toggle is the outcome of a ToggleFavorite call. Favorite is set only
// when IsFavorite is true.
type Toggle struct {
	IsFavorite bool
	Favorite   *models.Favorite
}

// Annotated is a photo augmented with the favorite status observed for
// one user at lookup time.
type Annotated struct {
	models.Photo
	IsFavorite bool   `json:"isFavorite"`
	FavoriteID string `json:"favoriteId,omitempty"`
}

// Service answers "is photo P favorited by user U?" and flips that state
// while keeping the local like-count shadow roughly in sync. It performs
// no locking and no retries; serializing concurrent toggles for the same
// (photo, user) pair is the caller's responsibility.
type Service struct {
	store Store
	kv    cache.Store
	limit int
}

func NewService(store Store, kv cache.Store) *Service {
	return &Service{store: store, kv: kv, limit: defaultLookupLimit}
}

// IsFavorite returns the favorite record for the (photo, user) pair, or
// nil when none exists. It has no side effects; only transport or decode
// failures produce an error.
func (s *Service) IsFavorite(ctx context.Context, photoID, userID string) (*models.Favorite, error) {
	if photoID == "" || userID == "" {
		return nil, ErrMissingID
	}
	return s.store.CheckIsFavorite(ctx, photoID, userID)
}

// ToggleFavorite flips the favorite state for the (photo, user) pair.
// It is a read-then-write sequence with no atomicity guarantee: two
// concurrent toggles for the same pair can both observe "not favorited"
// and both create a record.
func (s *Service) ToggleFavorite(ctx context.Context, photoID, userID string) (Toggle, error) {
	existing, err := s.IsFavorite(ctx, photoID, userID)
	if err != nil {
		return Toggle{}, fmt.Errorf("check favorite: %w", err)
	}

	if existing != nil {
		if err := s.store.RemoveFavorite(ctx, existing.ID.Hex()); err != nil {
			return Toggle{}, fmt.Errorf("remove favorite: %w", err)
		}
		return Toggle{IsFavorite: false}, nil
	}

	created, err := s.store.AddFavorite(ctx, photoID, userID)
	if err != nil {
		return Toggle{}, fmt.Errorf("add favorite: %w", err)
	}
	return Toggle{IsFavorite: true, Favorite: created}, nil
}

// AnnotateFavoriteStatus looks up the favorite status of every photo for
// one user. Lookups run concurrently, bounded, and the result preserves
// the input order regardless of completion order. If any single lookup
// fails the whole call fails; no partial result is returned. Each
// element reflects the store as observed at the time of its own lookup,
// so two entries may see the store at slightly different moments.
func (s *Service) AnnotateFavoriteStatus(ctx context.Context, photos []models.Photo, userID string) ([]Annotated, error) {
	annotated := make([]Annotated, len(photos))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit)
	for i, photo := range photos {
		g.Go(func() error {
			favorite, err := s.store.CheckIsFavorite(gctx, photo.ID.Hex(), userID)
			if err != nil {
				return fmt.Errorf("annotate photo %s: %w", photo.ID.Hex(), err)
			}
			entry := Annotated{Photo: photo}
			if favorite != nil {
				entry.IsFavorite = true
				entry.FavoriteID = favorite.ID.Hex()
			}
			annotated[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return annotated, nil
}

// SyncLikeCountShadow applies delta to the local shadow count for a
// photo, flooring at zero, and writes the full map back. This is the
// only place the shadow counter is mutated. The count approximates the
// number of favorite records for the photo but is adjusted once per
// toggle observed by this client, never recomputed from the store, so
// it can drift. Callers invoke it only after the corresponding store
// call returned successfully, for both create and delete.
func (s *Service) SyncLikeCountShadow(ctx context.Context, photoID string, delta int) (map[string]int, error) {
	likes := cache.LoadLikes(ctx, s.kv)

	next := likes[photoID] + delta
	if next < 0 {
		next = 0
	}
	likes[photoID] = next

	if err := cache.SaveLikes(s.kv, likes); err != nil {
		return nil, fmt.Errorf("save likes shadow: %w", err)
	}
	return likes, nil
}
