package covers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/haguru/elibrary/internal/interfaces"
	"github.com/haguru/elibrary/pkg/helper"
)

// FileStore keeps covers as files in one directory. Paths recorded on books are the
// directory joined with the file name.
type FileStore struct {
	dir    string
	logger interfaces.Logger
}

var _ interfaces.CoverStore = (*FileStore)(nil)

// NewFileStore creates dir when missing and returns a store writing into it.
func NewFileStore(dir string, logger interfaces.Logger) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("cover directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cover directory: %w", err)
	}
	return &FileStore{dir: filepath.Clean(dir), logger: logger}, nil
}

func (f *FileStore) Save(_ context.Context, originalName string, content io.Reader) (string, error) {
	funcName := helper.GetFuncName()

	data, mime, err := readImage(content)
	if err != nil {
		f.logger.Warn("rejected cover upload", "func", funcName, "file", originalName, "error", err)
		return "", err
	}

	name := objectName(originalName, mime)
	target := filepath.Join(f.dir, name)
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("write cover: %w", err)
	}

	f.logger.Debug("cover stored", "func", funcName, "path", target, "type", mime.String())
	return filepath.ToSlash(target), nil
}

func (f *FileStore) DataURI(_ context.Context, p string) (string, error) {
	target, err := f.resolve(p)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(target)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrCoverNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read cover: %w", err)
	}
	return dataURI(target, data), nil
}

// Delete removes the cover at p. A cover that is already gone is not an error.
func (f *FileStore) Delete(_ context.Context, p string) error {
	if p == "" {
		return nil
	}
	target, err := f.resolve(p)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete cover: %w", err)
	}
	return nil
}

// resolve maps a recorded path onto a file inside the store directory.
func (f *FileStore) resolve(p string) (string, error) {
	if p == "" {
		return "", ErrCoverNotFound
	}
	target := filepath.Clean(filepath.FromSlash(p))
	if !filepath.IsAbs(target) && !strings.HasPrefix(target, f.dir+string(filepath.Separator)) {
		target = filepath.Join(f.dir, filepath.Base(target))
	}
	if filepath.Dir(target) != f.dir {
		return "", ErrInvalidPath
	}
	return target, nil
}
