// Package covers stores book cover images on the local filesystem or in an S3-compatible
// bucket. Uploads are sniffed and anything that is not an image is rejected.
package covers

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/haguru/elibrary/config"
	"github.com/haguru/elibrary/internal/interfaces"
)

// MaxCoverBytes bounds the size of one uploaded cover.
const MaxCoverBytes = 10 << 20

var (
	// ErrNotImage is returned by Save when the upload is not an image.
	ErrNotImage = errors.New("only image files are allowed")

	ErrTooLarge = errors.New("cover image is too large")

	// ErrCoverNotFound is returned when a stored cover cannot be found.
	ErrCoverNotFound = errors.New("cover not found")

	// ErrInvalidPath is returned for paths outside the store.
	ErrInvalidPath = errors.New("invalid cover path")
)

// NewStore builds the cover store selected by cfg.Backend.
func NewStore(ctx context.Context, cfg config.CoversConfig, logger interfaces.Logger) (interfaces.CoverStore, error) {
	switch cfg.Backend {
	case config.CoversFilesystem:
		return NewFileStore(cfg.Directory, logger)
	case config.CoversS3:
		if cfg.S3 == nil {
			return nil, errors.New("s3 cover store requires s3 settings")
		}
		return NewS3Store(ctx, *cfg.S3, logger)
	default:
		return nil, fmt.Errorf("unsupported cover backend %q", cfg.Backend)
	}
}

// readImage reads at most MaxCoverBytes from content and checks that it is an image.
func readImage(content io.Reader) ([]byte, *mimetype.MIME, error) {
	data, err := io.ReadAll(io.LimitReader(content, MaxCoverBytes+1))
	if err != nil {
		return nil, nil, fmt.Errorf("read cover: %w", err)
	}
	if len(data) > MaxCoverBytes {
		return nil, nil, ErrTooLarge
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return nil, nil, fmt.Errorf("%w: got %s", ErrNotImage, mime.String())
	}
	return data, mime, nil
}

// objectName returns a fresh name for an upload, keeping the original extension when
// there is one.
func objectName(originalName string, mime *mimetype.MIME) string {
	ext := strings.ToLower(path.Ext(originalName))
	if ext == "" {
		ext = mime.Extension()
	}
	return uuid.NewString() + ext
}

// dataURI encodes data as data:image/<ext>;base64,... where ext comes from name.
func dataURI(name string, data []byte) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
	if ext == "" {
		ext = strings.TrimPrefix(mimetype.Detect(data).Extension(), ".")
	}

	var b bytes.Buffer
	b.WriteString("data:image/")
	b.WriteString(ext)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String()
}
