// Package feed assembles the photo feed: the photo list from the store,
// favorite annotations for the session user, and the local shadow like
// counts.
package feed

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/anonto42/picly/internal/cache"
	"github.com/anonto42/picly/internal/favorites"
	"github.com/anonto42/picly/internal/models"
)

// PhotoLister is the slice of the remote store the loader needs.
type PhotoLister interface {
	ListPhotos(ctx context.Context) ([]models.Photo, error)
}

// Annotator marks photos with the favorite status of one user.
type Annotator interface {
	AnnotateFavoriteStatus(ctx context.Context, photos []models.Photo, userID string) ([]favorites.Annotated, error)
}

// Feed is one loaded screenful: annotated photos plus the shadow like
// counts to render next to the hearts.
type Feed struct {
	Photos []favorites.Annotated
	Likes  map[string]int
}

type Loader struct {
	photos    PhotoLister
	annotator Annotator
	kv        cache.Store
}

func NewLoader(photos PhotoLister, annotator Annotator, kv cache.Store) *Loader {
	return &Loader{photos: photos, annotator: annotator, kv: kv}
}

// Load fetches the photo list and annotates it for userID. When the
// annotation pass fails, the feed is still returned with every photo
// rendered as not favorited, alongside the error, so the caller can show
// the feed and surface a retry prompt instead of a blank screen.
func (l *Loader) Load(ctx context.Context, userID string) (*Feed, error) {
	photos, err := l.photos.ListPhotos(ctx)
	if err != nil {
		return nil, fmt.Errorf("load photos: %w", err)
	}

	feed := &Feed{Likes: cache.LoadLikes(ctx, l.kv)}

	annotated, err := l.annotator.AnnotateFavoriteStatus(ctx, photos, userID)
	if err != nil {
		feed.Photos = make([]favorites.Annotated, len(photos))
		for i, photo := range photos {
			feed.Photos[i] = favorites.Annotated{Photo: photo}
		}
		return feed, fmt.Errorf("annotate favorites: %w", err)
	}

	feed.Photos = annotated
	return feed, nil
}

// Search filters annotated photos by a case-insensitive title match. An
// empty query returns the input unchanged.
func Search(photos []favorites.Annotated, query string) []favorites.Annotated {
	if query == "" {
		return photos
	}
	needle := strings.ToUpper(query)

	matched := make([]favorites.Annotated, 0, len(photos))
	for _, photo := range photos {
		if strings.Contains(strings.ToUpper(photo.Title), needle) {
			matched = append(matched, photo)
		}
	}
	return matched
}

// Pin is a photo placed on the map at parsed coordinates.
type Pin struct {
	Photo     models.Photo
	Latitude  float64
	Longitude float64
}

// Pins keeps only the photos with a parseable location. Entries with
// missing or malformed coordinates are skipped, not errors.
func Pins(photos []models.Photo) []Pin {
	pins := make([]Pin, 0, len(photos))
	for _, photo := range photos {
		if photo.Location == nil {
			continue
		}
		lat, err := strconv.ParseFloat(photo.Location.Latitude, 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(photo.Location.Longitude, 64)
		if err != nil {
			continue
		}
		pins = append(pins, Pin{Photo: photo, Latitude: lat, Longitude: lon})
	}
	return pins
}
