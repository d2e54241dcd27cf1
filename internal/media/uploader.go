// Package media handles the image side of posting a photo: thumbnail
// generation and uploads to the external media host.
package media

import (
	"context"
	"io"
)

// Uploader stores an image and returns its public URL. The media host is
// an external collaborator; the client only ever hands it bytes and
// receives a location back.
type Uploader interface {
	Upload(ctx context.Context, name string, r io.Reader) (string, error)
}
