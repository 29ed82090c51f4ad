package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"wedding_site/internal/domain/models"
	"wedding_site/internal/storage"
)

// casAttempts bounds how many times a lost compare-and-swap is re-applied on fresh state.
const casAttempts = 3

// getJSON decodes key into dst. found is false when the key does not exist.
func getJSON(ctx context.Context, kv storage.KV, key string, dst any) (raw []byte, found bool, err error) {
	raw, err = kv.Get(ctx, key)
	if errors.Is(err, storage.ErrorNoSuchKey) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return raw, true, nil
}

func putJSON(ctx context.Context, kv storage.KV, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return kv.Set(ctx, key, raw)
}

// updateJSON reads key, applies fn and writes the result with compare-and-swap.
// A lost race re-reads and re-applies fn; after casAttempts it returns models.ErrConflict.
// fn returning changed=false skips the write.
func updateJSON[T any](ctx context.Context, kv storage.KV, key string, fn func(cur T, found bool) (next T, changed bool, err error)) (T, error) {
	var zero T

	for attempt := 0; attempt < casAttempts; attempt++ {
		var cur T
		raw, found, err := getJSON(ctx, kv, key, &cur)
		if err != nil {
			return zero, err
		}

		next, changed, err := fn(cur, found)
		if err != nil {
			return zero, err
		}
		if !changed {
			return cur, nil
		}

		encoded, err := json.Marshal(next)
		if err != nil {
			return zero, fmt.Errorf("encode %s: %w", key, err)
		}

		err = kv.CompareAndSwap(ctx, key, raw, encoded)
		if errors.Is(err, storage.ErrVersionMismatch) {
			continue
		}
		if err != nil {
			return zero, err
		}

		return next, nil
	}

	return zero, fmt.Errorf("%s: concurrent updates: %w", key, models.ErrConflict)
}
