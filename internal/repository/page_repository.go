package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"wedding_site/internal/domain/models"
	"wedding_site/internal/storage"
)

const (
	pageKeyPrefix = "page_builder_page:"
	pageIndexKey  = "page_builder_pages_list"
)

// PageRepo stores canonical page records and the derived pages index in the key-value store.
type PageRepo struct {
	kv storage.KV
}

func NewPageRepo(kv storage.KV) *PageRepo {
	return &PageRepo{kv: kv}
}

func pageKey(id string) string {
	return pageKeyPrefix + id
}

func (r *PageRepo) GetPage(ctx context.Context, id string) (models.Page, error) {
	const op = "repository.page_repository.GetPage"

	var page models.Page
	_, found, err := getJSON(ctx, r.kv, pageKey(id), &page)
	if err != nil {
		return models.Page{}, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return models.Page{}, fmt.Errorf("%s: page %s: %w", op, id, models.ErrNotFound)
	}

	return page, nil
}

// CreatePage writes a new page record. An existing record with the same id is a conflict.
func (r *PageRepo) CreatePage(ctx context.Context, page models.Page) error {
	const op = "repository.page_repository.CreatePage"

	raw, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("%s: encode %s: %w", op, page.ID, err)
	}

	err = r.kv.CompareAndSwap(ctx, pageKey(page.ID), nil, raw)
	if errors.Is(err, storage.ErrVersionMismatch) {
		return fmt.Errorf("%s: page %s exists: %w", op, page.ID, models.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UpdatePage applies fn to the stored page and writes it with compare-and-swap.
// fn runs again on the fresh record when another writer got there first.
func (r *PageRepo) UpdatePage(ctx context.Context, id string, fn func(page *models.Page) error) (models.Page, error) {
	const op = "repository.page_repository.UpdatePage"

	page, err := updateJSON(ctx, r.kv, pageKey(id), func(cur models.Page, found bool) (models.Page, bool, error) {
		if !found {
			return cur, false, fmt.Errorf("page %s: %w", id, models.ErrNotFound)
		}
		if err := fn(&cur); err != nil {
			return cur, false, err
		}
		return cur, true, nil
	})
	if err != nil {
		return models.Page{}, fmt.Errorf("%s: %w", op, err)
	}

	return page, nil
}

func (r *PageRepo) DeletePage(ctx context.Context, id string) error {
	const op = "repository.page_repository.DeletePage"

	if err := r.kv.Delete(ctx, pageKey(id)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ListPages reads every canonical page record.
func (r *PageRepo) ListPages(ctx context.Context) ([]models.Page, error) {
	const op = "repository.page_repository.ListPages"

	keys, err := r.kv.Keys(ctx, pageKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pages := make([]models.Page, 0, len(keys))
	for _, k := range keys {
		var page models.Page
		_, found, err := getJSON(ctx, r.kv, k, &page)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if found {
			pages = append(pages, page)
		}
	}

	return pages, nil
}

func (r *PageRepo) GetIndex(ctx context.Context) (models.PageIndex, error) {
	const op = "repository.page_repository.GetIndex"

	raw, err := r.kv.Get(ctx, pageIndexKey)
	if errors.Is(err, storage.ErrorNoSuchKey) {
		return models.PageIndex{Pages: []models.PageIndexEntry{}}, nil
	}
	if err != nil {
		return models.PageIndex{}, fmt.Errorf("%s: %w", op, err)
	}

	index, err := decodeIndex(raw)
	if err != nil {
		return models.PageIndex{}, fmt.Errorf("%s: %w", op, err)
	}
	SortIndex(index.Pages)

	return index, nil
}

// UpsertIndexEntry inserts or replaces the entry with the same id.
func (r *PageRepo) UpsertIndexEntry(ctx context.Context, entry models.PageIndexEntry) error {
	const op = "repository.page_repository.UpsertIndexEntry"

	if err := r.updateIndex(ctx, func(pages []models.PageIndexEntry) []models.PageIndexEntry {
		out := make([]models.PageIndexEntry, 0, len(pages)+1)
		for _, p := range pages {
			if p.ID != entry.ID {
				out = append(out, p)
			}
		}
		return append(out, entry)
	}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *PageRepo) RemoveIndexEntry(ctx context.Context, id string) error {
	const op = "repository.page_repository.RemoveIndexEntry"

	if err := r.updateIndex(ctx, func(pages []models.PageIndexEntry) []models.PageIndexEntry {
		out := make([]models.PageIndexEntry, 0, len(pages))
		for _, p := range pages {
			if p.ID != id {
				out = append(out, p)
			}
		}
		return out
	}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ReplaceIndex overwrites the index with entries.
func (r *PageRepo) ReplaceIndex(ctx context.Context, entries []models.PageIndexEntry) error {
	const op = "repository.page_repository.ReplaceIndex"

	if err := r.updateIndex(ctx, func([]models.PageIndexEntry) []models.PageIndexEntry {
		return entries
	}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *PageRepo) updateIndex(ctx context.Context, fn func([]models.PageIndexEntry) []models.PageIndexEntry) error {
	for attempt := 0; attempt < casAttempts; attempt++ {
		raw, err := r.kv.Get(ctx, pageIndexKey)
		if errors.Is(err, storage.ErrorNoSuchKey) {
			raw, err = nil, nil
		}
		if err != nil {
			return err
		}

		var cur models.PageIndex
		if raw != nil {
			if cur, err = decodeIndex(raw); err != nil {
				return err
			}
		}

		next := models.PageIndex{Version: cur.Version + 1, Pages: fn(cur.Pages)}
		SortIndex(next.Pages)

		encoded, err := json.Marshal(next)
		if err != nil {
			return err
		}

		err = r.kv.CompareAndSwap(ctx, pageIndexKey, raw, encoded)
		if errors.Is(err, storage.ErrVersionMismatch) {
			continue
		}
		return err
	}

	return fmt.Errorf("%s: concurrent updates: %w", pageIndexKey, models.ErrConflict)
}

// decodeIndex accepts both the versioned document and a bare array of entries.
func decodeIndex(raw []byte) (models.PageIndex, error) {
	var index models.PageIndex
	if err := json.Unmarshal(raw, &index); err == nil {
		if index.Pages == nil {
			index.Pages = []models.PageIndexEntry{}
		}
		return index, nil
	}

	var entries []models.PageIndexEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return models.PageIndex{}, fmt.Errorf("decode %s: %w", pageIndexKey, err)
	}

	return models.PageIndex{Pages: entries}, nil
}

// SortIndex orders entries by menu order, then name.
func SortIndex(pages []models.PageIndexEntry) {
	sort.SliceStable(pages, func(i, j int) bool {
		if pages[i].Order != pages[j].Order {
			return pages[i].Order < pages[j].Order
		}
		return strings.ToLower(pages[i].Name) < strings.ToLower(pages[j].Name)
	})
}
