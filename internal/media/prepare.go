package media

import (
	"bytes"
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/anonto42/picly/internal/models"
)

// PrepareImage uploads the full-resolution images concurrently plus a
// thumbnail derived from the first one, returning the image descriptor
// for the photo record. URL order matches the input order. Any failed
// upload fails the whole preparation.
func PrepareImage(ctx context.Context, uploader Uploader, prefix string, images [][]byte) (models.Image, error) {
	if len(images) == 0 {
		return models.Image{}, fmt.Errorf("media: at least one image is required")
	}

	thumb, err := Thumbnail(images[0])
	if err != nil {
		return models.Image{}, fmt.Errorf("prepare thumbnail: %w", err)
	}

	urls := make([]string, len(images))
	var thumbURL string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		location, err := uploader.Upload(gctx, fmt.Sprintf("%s_thumb.jpg", prefix), bytes.NewReader(thumb))
		if err != nil {
			return err
		}
		thumbURL = location
		return nil
	})
	for i, data := range images {
		g.Go(func() error {
			location, err := uploader.Upload(gctx, fmt.Sprintf("%s_%d.jpg", prefix, i), bytes.NewReader(data))
			if err != nil {
				return err
			}
			urls[i] = location
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.Image{}, fmt.Errorf("upload images: %w", err)
	}

	return models.Image{Thumbnail: thumbURL, URL: urls}, nil
}
