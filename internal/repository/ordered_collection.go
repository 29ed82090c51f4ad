package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"wedding_site/internal/domain/models"
	"wedding_site/internal/lib/ordered"
	"wedding_site/internal/storage"
)

const (
	galleryOrderKey     = "gallery_order"
	galleryLegacyPrefix = "gallery:"
)

// OrderedCollection keeps one ordered, duplicate-free list of ids in a single versioned KV document.
// Every write is a compare-and-swap on the stored document; a lost race re-applies the operation on fresh state.
type OrderedCollection struct {
	kv           storage.KV
	key          string
	legacyPrefix string
}

func NewOrderedCollection(kv storage.KV, key, legacyPrefix string) *OrderedCollection {
	return &OrderedCollection{
		kv:           kv,
		key:          key,
		legacyPrefix: legacyPrefix,
	}
}

func NewGalleryOrder(kv storage.KV) *OrderedCollection {
	return NewOrderedCollection(kv, galleryOrderKey, galleryLegacyPrefix)
}

// Snapshot returns the full list in position order. When only legacy per-position keys exist
// the list is rebuilt from them first.
func (c *OrderedCollection) Snapshot(ctx context.Context) (models.OrderedList, error) {
	const op = "repository.ordered_collection.Snapshot"

	var list models.OrderedList
	_, found, err := getJSON(ctx, c.kv, c.key, &list)
	if err != nil {
		return models.OrderedList{}, fmt.Errorf("%s: %w", op, err)
	}

	if !found {
		legacy, err := c.legacyKeys(ctx)
		if err != nil {
			return models.OrderedList{}, fmt.Errorf("%s: %w", op, err)
		}
		if len(legacy) == 0 {
			return models.OrderedList{IDs: []string{}}, nil
		}
		return c.Repair(ctx)
	}

	list.IDs = ordered.Dedupe(list.IDs)

	return list, nil
}

// Positions returns the snapshot as (id, position) pairs.
func (c *OrderedCollection) Positions(ctx context.Context) ([]models.Positioned, error) {
	list, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Positioned, 0, len(list.IDs))
	for i, id := range list.IDs {
		out = append(out, models.Positioned{ID: id, Position: i + 1})
	}
	return out, nil
}

// Append adds id at the end and returns its position. An id already present keeps its position.
func (c *OrderedCollection) Append(ctx context.Context, id string) (int, error) {
	const op = "repository.ordered_collection.Append"

	var position int
	_, err := c.mutate(ctx, func(ids []string) ([]string, error) {
		next, pos := ordered.Append(ids, id)
		position = pos
		return next, nil
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return position, nil
}

// Remove deletes id and compacts the positions after it.
func (c *OrderedCollection) Remove(ctx context.Context, id string) error {
	const op = "repository.ordered_collection.Remove"

	if _, err := c.mutate(ctx, func(ids []string) ([]string, error) {
		return ordered.Remove(ids, id)
	}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// MoveTo relocates id to position (1-based).
func (c *OrderedCollection) MoveTo(ctx context.Context, id string, position int) (models.OrderedList, error) {
	const op = "repository.ordered_collection.MoveTo"

	list, err := c.mutate(ctx, func(ids []string) ([]string, error) {
		return ordered.Move(ids, id, position)
	})
	if err != nil {
		return models.OrderedList{}, fmt.Errorf("%s: %w", op, err)
	}

	return list, nil
}

// ReplaceAll stores ids as the new order. ids must be a permutation of the current list.
// When expectedVersion is set and the stored version differs, models.ErrConflict is returned.
func (c *OrderedCollection) ReplaceAll(ctx context.Context, ids []string, expectedVersion *int64) (models.OrderedList, error) {
	const op = "repository.ordered_collection.ReplaceAll"

	list, err := updateJSON(ctx, c.kv, c.key, func(cur models.OrderedList, found bool) (models.OrderedList, bool, error) {
		if expectedVersion != nil && cur.Version != *expectedVersion {
			return cur, false, fmt.Errorf("expected version %d, stored %d: %w", *expectedVersion, cur.Version, models.ErrConflict)
		}
		current := ordered.Dedupe(cur.IDs)
		if !found {
			legacy, err := c.legacyOrder(ctx)
			if err != nil {
				return cur, false, err
			}
			current = legacy
		}
		next, err := ordered.Replace(current, ids)
		if err != nil {
			return cur, false, mapOrderedErr(err)
		}
		return models.OrderedList{Version: cur.Version + 1, IDs: next}, true, nil
	})
	if err != nil {
		return models.OrderedList{}, fmt.Errorf("%s: %w", op, err)
	}

	return list, nil
}

// Repair rewrites the stored list densely: duplicates are dropped and, when no list document exists,
// the order is rebuilt from legacy keys sorted by their numeric suffix.
func (c *OrderedCollection) Repair(ctx context.Context) (models.OrderedList, error) {
	const op = "repository.ordered_collection.Repair"

	list, err := updateJSON(ctx, c.kv, c.key, func(cur models.OrderedList, found bool) (models.OrderedList, bool, error) {
		if found {
			deduped := ordered.Dedupe(cur.IDs)
			if slices.Equal(deduped, cur.IDs) {
				return cur, false, nil
			}
			return models.OrderedList{Version: cur.Version + 1, IDs: deduped}, true, nil
		}

		ids, err := c.legacyOrder(ctx)
		if err != nil {
			return cur, false, err
		}
		return models.OrderedList{Version: 1, IDs: ids}, true, nil
	})
	if err != nil {
		return models.OrderedList{}, fmt.Errorf("%s: %w", op, err)
	}

	return list, nil
}

func (c *OrderedCollection) mutate(ctx context.Context, fn func(ids []string) ([]string, error)) (models.OrderedList, error) {
	return updateJSON(ctx, c.kv, c.key, func(cur models.OrderedList, found bool) (models.OrderedList, bool, error) {
		ids := ordered.Dedupe(cur.IDs)
		if !found {
			legacy, err := c.legacyOrder(ctx)
			if err != nil {
				return cur, false, err
			}
			ids = legacy
		}
		next, err := fn(ids)
		if err != nil {
			return cur, false, mapOrderedErr(err)
		}
		if slices.Equal(next, cur.IDs) {
			return cur, false, nil
		}
		return models.OrderedList{Version: cur.Version + 1, IDs: next}, true, nil
	})
}

func (c *OrderedCollection) legacyKeys(ctx context.Context) ([]string, error) {
	if c.legacyPrefix == "" {
		return nil, nil
	}
	return c.kv.Keys(ctx, c.legacyPrefix)
}

func (c *OrderedCollection) legacyOrder(ctx context.Context) ([]string, error) {
	keys, err := c.legacyKeys(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]ordered.SuffixEntry, 0, len(keys))
	for _, k := range keys {
		raw, err := c.kv.Get(ctx, k)
		if errors.Is(err, storage.ErrorNoSuchKey) {
			continue
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, ordered.SuffixEntry{Key: k, ID: strings.Trim(strings.TrimSpace(string(raw)), `"`)})
	}

	return ordered.FromSuffixKeys(entries), nil
}

func mapOrderedErr(err error) error {
	switch {
	case errors.Is(err, ordered.ErrNotFound):
		return fmt.Errorf("%w: %w", models.ErrNotFound, err)
	case errors.Is(err, ordered.ErrOutOfRange), errors.Is(err, ordered.ErrNotAPermutation):
		return fmt.Errorf("%w: %w", models.ErrValidation, err)
	}
	return err
}
