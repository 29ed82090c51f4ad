package storage

import (
	"context"
	"errors"
)

var (
	ErrorNoSuchKey     = errors.New("no such key")
	ErrVersionMismatch = errors.New("stored value changed since it was read")
)

var (
	ErrFileTooLarge    = errors.New("file size exceeds limit")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileNotFound    = errors.New("file not found")
	ErrInvalidKey      = errors.New("invalid storage key")
)

// KV is a string-keyed byte store with a compare-and-swap primitive.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Keys lists keys starting with prefix, in no particular order.
	Keys(ctx context.Context, prefix string) ([]string, error)
	// CompareAndSwap writes value only if the stored bytes still equal expected.
	// A nil expected means the key must not exist.
	CompareAndSwap(ctx context.Context, key string, expected, value []byte) error
}
