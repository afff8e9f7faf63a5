// Package storage keeps uploaded images (avatars, post thumbnails) on the
// local filesystem under a single directory that is also served statically.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore writes and removes uploaded files inside a fixed directory.
// Names handed back to callers are bare filenames, never paths.
type FileStore struct {
	dir string
}

// NewFileStore ensures the uploads directory exists.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir %q: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the uploads directory, for static-file route registration.
func (s *FileStore) Dir() string {
	return s.dir
}

// Save copies the uploaded file into the store under a randomized name
// derived from the original: "<base><uuid><ext>". Returns the stored name.
func (s *FileStore) Save(fh *multipart.FileHeader) (string, error) {
	name := randomizeName(fh.Filename)

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %q: %w", fh.Filename, err)
	}
	defer func() { _ = src.Close() }()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create file %q: %w", name, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("write file %q: %w", name, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close file %q: %w", name, err)
	}
	return name, nil
}

// Remove deletes a stored file by name. Callers distinguish a missing file
// via os.IsNotExist / errors.Is(err, fs.ErrNotExist).
func (s *FileStore) Remove(name string) error {
	// Strip any path components a caller might smuggle in.
	return os.Remove(filepath.Join(s.dir, filepath.Base(name)))
}

// randomizeName inserts a uuid between the base name and extension so
// repeated uploads of the same file never collide.
func randomizeName(original string) string {
	base := filepath.Base(original)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + uuid.New().String() + ext
}
