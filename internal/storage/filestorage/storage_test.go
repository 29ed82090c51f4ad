package storage_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"wedding_site/internal/storage"
	filestorage "wedding_site/internal/storage/filestorage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFileStorage(t *testing.T, maxSize int64) (*filestorage.LocalFileStorage, string) {
	t.Helper()

	tempDir := t.TempDir()

	fs, err := filestorage.NewLocalFileStorage(tempDir, "http://test.local/media/", maxSize)
	require.NoError(t, err)

	return fs, tempDir
}

func TestLocalFileStorage_PutOpen(t *testing.T) {
	fs, tempDir := setupFileStorage(t, 0)
	ctx := context.Background()

	size, err := fs.Put(ctx, "gallery/abc.jpg", strings.NewReader("image bytes"))
	require.NoError(t, err)
	assert.Equal(t, int64(11), size)
	assert.FileExists(t, filepath.Join(tempDir, "gallery", "abc.jpg"))

	rc, err := fs.Open(ctx, "gallery/abc.jpg")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(data))

	exists, err := fs.Exists(ctx, "gallery/abc.jpg")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLocalFileStorage_Overwrite(t *testing.T) {
	fs, _ := setupFileStorage(t, 0)
	ctx := context.Background()

	_, err := fs.Put(ctx, "k", strings.NewReader("first"))
	require.NoError(t, err)
	_, err = fs.Put(ctx, "k", strings.NewReader("second"))
	require.NoError(t, err)

	rc, err := fs.Open(ctx, "k")
	require.NoError(t, err)
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	assert.Equal(t, "second", string(data))
}

func TestLocalFileStorage_TooLarge(t *testing.T) {
	fs, tempDir := setupFileStorage(t, 4)
	ctx := context.Background()

	_, err := fs.Put(ctx, "big", bytes.NewReader([]byte("12345")))
	assert.ErrorIs(t, err, storage.ErrFileTooLarge)
	assert.NoFileExists(t, filepath.Join(tempDir, "big"))

	_, err = fs.Put(ctx, "fits", bytes.NewReader([]byte("1234")))
	assert.NoError(t, err)
}

func TestLocalFileStorage_InvalidKeys(t *testing.T) {
	fs, _ := setupFileStorage(t, 0)
	ctx := context.Background()

	for _, key := range []string{"", "/etc/passwd", "../escape", "a/../../b", "a//b", `a\b`} {
		_, err := fs.Put(ctx, key, strings.NewReader("x"))
		assert.ErrorIs(t, err, storage.ErrInvalidKey, key)
	}
}

func TestLocalFileStorage_DeleteAndMissing(t *testing.T) {
	fs, _ := setupFileStorage(t, 0)
	ctx := context.Background()

	_, err := fs.Put(ctx, "gone", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, fs.Delete(ctx, "gone"))
	require.NoError(t, fs.Delete(ctx, "gone"))

	_, err = fs.Open(ctx, "gone")
	assert.ErrorIs(t, err, storage.ErrFileNotFound)

	exists, err := fs.Exists(ctx, "gone")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalFileStorage_CanceledContext(t *testing.T) {
	fs, _ := setupFileStorage(t, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fs.Put(ctx, "k", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalFileStorage_URL(t *testing.T) {
	fs, _ := setupFileStorage(t, 0)

	assert.Equal(t, "http://test.local/media/gallery/a.png", fs.URL("gallery/a.png"))
}

func TestLocalFileStorage_ConcurrentPuts(t *testing.T) {
	fs, tempDir := setupFileStorage(t, 0)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := fs.Put(ctx, "same", strings.NewReader("payload"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	data, err := os.ReadFile(filepath.Join(tempDir, "same"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}
