package interfaces

import (
	"context"
	"io"
)

// CoverStore keeps book cover images.
type CoverStore interface {
	// Save stores an uploaded image and returns the path recorded on the book.
	Save(ctx context.Context, originalName string, content io.Reader) (string, error)
	// DataURI returns the stored image as a data URI.
	DataURI(ctx context.Context, path string) (string, error)
	Delete(ctx context.Context, path string) error
}
