package repository

import (
	"context"
	"errors"
	"fmt"

	"wedding_site/internal/domain/models"
	"wedding_site/internal/storage"
)

const imageKeyPrefix = "image:"

// GalleryRepo stores image metadata records in the key-value store.
type GalleryRepo struct {
	kv storage.KV
}

func NewGalleryRepo(kv storage.KV) *GalleryRepo {
	return &GalleryRepo{kv: kv}
}

func imageKey(id string) string {
	return imageKeyPrefix + id
}

func (r *GalleryRepo) SaveImage(ctx context.Context, img models.GalleryImage) error {
	const op = "repository.gallery_repository.SaveImage"

	if err := putJSON(ctx, r.kv, imageKey(img.ID), img); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *GalleryRepo) GetImage(ctx context.Context, id string) (models.GalleryImage, error) {
	const op = "repository.gallery_repository.GetImage"

	var img models.GalleryImage
	_, found, err := getJSON(ctx, r.kv, imageKey(id), &img)
	if err != nil {
		return models.GalleryImage{}, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return models.GalleryImage{}, fmt.Errorf("%s: image %s: %w", op, id, models.ErrNotFound)
	}

	return img, nil
}

// GetImages returns the records for ids in the same order, skipping ids without a record.
func (r *GalleryRepo) GetImages(ctx context.Context, ids []string) ([]models.GalleryImage, error) {
	const op = "repository.gallery_repository.GetImages"

	out := make([]models.GalleryImage, 0, len(ids))
	for _, id := range ids {
		img, err := r.GetImage(ctx, id)
		if errors.Is(err, models.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, img)
	}

	return out, nil
}

func (r *GalleryRepo) UpdateImage(ctx context.Context, id string, fn func(img *models.GalleryImage) error) (models.GalleryImage, error) {
	const op = "repository.gallery_repository.UpdateImage"

	img, err := updateJSON(ctx, r.kv, imageKey(id), func(cur models.GalleryImage, found bool) (models.GalleryImage, bool, error) {
		if !found {
			return cur, false, fmt.Errorf("image %s: %w", id, models.ErrNotFound)
		}
		if err := fn(&cur); err != nil {
			return cur, false, err
		}
		return cur, true, nil
	})
	if err != nil {
		return models.GalleryImage{}, fmt.Errorf("%s: %w", op, err)
	}

	return img, nil
}

func (r *GalleryRepo) DeleteImage(ctx context.Context, id string) error {
	const op = "repository.gallery_repository.DeleteImage"

	if err := r.kv.Delete(ctx, imageKey(id)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
