package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"wedding_site/internal/storage"
)

// BlobStorage stores opaque byte blobs addressed by key.
type BlobStorage interface {
	Put(ctx context.Context, key string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	URL(key string) string
}

// LocalFileStorage keeps blobs as files under baseDir.
type LocalFileStorage struct {
	baseDir string
	baseURL string
	maxSize int64
}

func NewLocalFileStorage(baseDir, baseURL string, maxSize int64) (*LocalFileStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &LocalFileStorage{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
		maxSize: maxSize,
	}, nil
}

// Put writes r to key, replacing any existing blob. The write is atomic on the same filesystem.
func (s *LocalFileStorage) Put(ctx context.Context, key string, r io.Reader) (int64, error) {
	const op = "storage.filestorage.Put"

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	filePath, err := s.resolve(key)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return 0, fmt.Errorf("%s: failed to create directories: %w", op, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(filePath), ".upload-*")
	if err != nil {
		return 0, fmt.Errorf("%s: failed to create destination file: %w", op, err)
	}
	defer os.Remove(tmp.Name())

	src := r
	if s.maxSize > 0 {
		src = io.LimitReader(r, s.maxSize+1)
	}

	done := make(chan struct{})
	var size int64
	var copyErr error

	go func() {
		size, copyErr = io.Copy(tmp, src)
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		<-done
		tmp.Close()
		return 0, ctx.Err()
	}

	if err := tmp.Close(); err != nil && copyErr == nil {
		copyErr = err
	}
	if copyErr != nil {
		return 0, fmt.Errorf("%s: failed to copy file: %w", op, copyErr)
	}
	if s.maxSize > 0 && size > s.maxSize {
		return 0, fmt.Errorf("%s: %w", op, storage.ErrFileTooLarge)
	}

	if err := os.Rename(tmp.Name(), filePath); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return size, nil
}

func (s *LocalFileStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	const op = "storage.filestorage.Open"

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filePath, err := s.resolve(key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	f, err := os.Open(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %s: %w", op, key, storage.ErrFileNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return f, nil
}

// Delete removes the blob. Deleting a missing blob is not an error.
func (s *LocalFileStorage) Delete(ctx context.Context, key string) error {
	const op = "storage.filestorage.Delete"

	filePath, err := s.resolve(key)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.Remove(filePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *LocalFileStorage) Exists(ctx context.Context, key string) (bool, error) {
	const op = "storage.filestorage.Exists"

	filePath, err := s.resolve(key)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	_, err = os.Stat(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return true, nil
}

// URL returns the public address of a blob.
func (s *LocalFileStorage) URL(key string) string {
	return s.baseURL + "/" + strings.TrimLeft(key, "/")
}

// resolve maps a slash-separated key to a path inside baseDir.
func (s *LocalFileStorage) resolve(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return "", storage.ErrInvalidKey
	}
	clean := path.Clean(key)
	if clean != key || clean == "." || strings.HasPrefix(clean, "../") || clean == ".." {
		return "", storage.ErrInvalidKey
	}
	return filepath.Join(s.baseDir, filepath.FromSlash(clean)), nil
}
