// Package memkv is an in-process implementation of storage.KV for local runs and tests.
package memkv

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"wedding_site/internal/storage"
)

type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, fmt.Errorf("storage.memkv.Get: %s: %w", key, storage.ErrorNoSuchKey)
	}
	return bytes.Clone(v), nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = bytes.Clone(value)
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}

func (s *Store) Keys(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (s *Store) CompareAndSwap(_ context.Context, key string, expected, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, exists := s.data[key]
	switch {
	case expected == nil && exists:
		return fmt.Errorf("storage.memkv.CompareAndSwap: %s: %w", key, storage.ErrVersionMismatch)
	case expected != nil && (!exists || !bytes.Equal(cur, expected)):
		return fmt.Errorf("storage.memkv.CompareAndSwap: %s: %w", key, storage.ErrVersionMismatch)
	}

	s.data[key] = bytes.Clone(value)
	return nil
}
