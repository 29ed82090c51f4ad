package services

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"wedding_site/internal/domain/models"
	"wedding_site/internal/lib/imagevariant"
	"wedding_site/internal/lib/logger/sl"
	"wedding_site/internal/metrics"
	"wedding_site/internal/repository"
	"wedding_site/internal/storage"
	filestorage "wedding_site/internal/storage/filestorage"

	"golang.org/x/crypto/blake2b"
)

const blobPrefix = "gallery/"

type GalleryService struct {
	log     *slog.Logger
	images  repository.GalleryRepository
	order   repository.OrderRepository
	site    repository.SiteRepository
	blobs   filestorage.BlobStorage
	maxSize int64
	now     func() time.Time
}

func NewGalleryService(
	log *slog.Logger,
	images repository.GalleryRepository,
	order repository.OrderRepository,
	site repository.SiteRepository,
	blobs filestorage.BlobStorage,
	maxSize int64,
) *GalleryService {
	return &GalleryService{
		log:     log,
		images:  images,
		order:   order,
		site:    site,
		blobs:   blobs,
		maxSize: maxSize,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// List returns the gallery in display order. Ids without a metadata record are skipped.
func (s *GalleryService) List(ctx context.Context) ([]models.GalleryItem, error) {
	items, _, err := s.ListVersioned(ctx)
	return items, err
}

// ListVersioned is List plus the order version a later Reorder can be conditioned on.
func (s *GalleryService) ListVersioned(ctx context.Context) ([]models.GalleryItem, int64, error) {
	const op = "gallery_service.List"
	log := s.log.With(slog.String("op", op))

	list, err := s.order.Snapshot(ctx)
	if err != nil {
		log.Error("failed to read gallery order", sl.Err(err))
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	items := make([]models.GalleryItem, 0, len(list.IDs))
	for _, id := range list.IDs {
		img, err := s.images.GetImage(ctx, id)
		if errors.Is(err, models.ErrNotFound) {
			log.Warn("ordered image has no metadata", slog.String("image_id", id))
			continue
		}
		if err != nil {
			log.Error("failed to read image", slog.String("image_id", id), sl.Err(err))
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, s.item(img, len(items)+1))
	}

	return items, list.Version, nil
}

// Upload stores an image and appends it to the gallery. Identical bytes map to the same id,
// so re-uploading returns the existing image and leaves the order unchanged.
func (s *GalleryService) Upload(ctx context.Context, contentType string, r io.Reader) (models.GalleryItem, bool, error) {
	const op = "gallery_service.Upload"
	log := s.log.With(slog.String("op", op))

	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return models.GalleryItem{}, false, fmt.Errorf("%s: %w", op, err)
	}
	if int64(len(data)) > s.maxSize {
		metrics.GalleryUploads.WithLabelValues("rejected").Inc()
		return models.GalleryItem{}, false, fmt.Errorf("%s: %w", op, storage.ErrFileTooLarge)
	}
	if len(data) == 0 {
		return models.GalleryItem{}, false, fmt.Errorf("%s: %w", op, models.NewValidationError("file is empty"))
	}

	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	ext, ok := models.ExtensionFor(contentType)
	if !ok {
		metrics.GalleryUploads.WithLabelValues("rejected").Inc()
		log.Warn("unsupported content type", slog.String("content_type", contentType))
		return models.GalleryItem{}, false, fmt.Errorf("%s: %s: %w", op, contentType, storage.ErrInvalidFileType)
	}

	sum := blake2b.Sum256(data)
	id := hex.EncodeToString(sum[:])
	log = log.With(slog.String("image_id", id))

	if existing, err := s.images.GetImage(ctx, id); err == nil {
		pos, err := s.order.Append(ctx, id)
		if err != nil {
			log.Error("failed to append existing image", sl.Err(err))
			return models.GalleryItem{}, false, fmt.Errorf("%s: %w", op, err)
		}
		metrics.GalleryUploads.WithLabelValues("duplicate").Inc()
		log.Info("image already stored")
		return s.item(existing, pos), false, nil
	} else if !errors.Is(err, models.ErrNotFound) {
		return models.GalleryItem{}, false, fmt.Errorf("%s: %w", op, err)
	}

	key := blobPrefix + id + "." + ext
	size, err := s.blobs.Put(ctx, key, bytes.NewReader(data))
	if err != nil {
		log.Error("failed to store blob", sl.Err(err))
		return models.GalleryItem{}, false, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	img := models.GalleryImage{
		ID:          id,
		Key:         key,
		FileExt:     ext,
		ContentType: contentType,
		Size:        size,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := img.Validate(); err != nil {
		return models.GalleryItem{}, false, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.images.SaveImage(ctx, img); err != nil {
		log.Error("failed to save image metadata", sl.Err(err))
		return models.GalleryItem{}, false, fmt.Errorf("%s: %w", op, err)
	}

	pos, err := s.order.Append(ctx, id)
	if err != nil {
		log.Error("failed to append image to order", sl.Err(err))
		return models.GalleryItem{}, false, fmt.Errorf("%s: %w", op, err)
	}

	metrics.GalleryUploads.WithLabelValues("stored").Inc()
	log.Info("image uploaded", slog.Int("position", pos), slog.Int64("size", size))

	return s.item(img, pos), true, nil
}

// Delete removes the image from the order, from every location it is assigned to, and from storage.
func (s *GalleryService) Delete(ctx context.Context, id string) error {
	const op = "gallery_service.Delete"
	log := s.log.With(slog.String("op", op), slog.String("image_id", id))

	img, err := s.images.GetImage(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.order.Remove(ctx, id); err != nil && !errors.Is(err, models.ErrNotFound) {
		log.Error("failed to remove image from order", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.site.UpdateAssignments(ctx, func(a models.ImageAssignments) bool {
		changed := false
		for loc, imageID := range a {
			if imageID == id {
				delete(a, loc)
				changed = true
			}
		}
		return changed
	}); err != nil {
		log.Error("failed to clear assignments", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, key := range []string{img.Key, models.MediumKey(img.Key), models.ThumbnailKey(img.Key)} {
		if err := s.blobs.Delete(ctx, key); err != nil {
			log.Warn("failed to delete blob", slog.String("key", key), sl.Err(err))
		}
	}

	if err := s.images.DeleteImage(ctx, id); err != nil {
		log.Error("failed to delete image metadata", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("image deleted")
	return nil
}

// Reorder replaces the whole display order. ids lists the visible images; stored ids without
// a metadata record that ids leaves out keep their relative order at the end.
func (s *GalleryService) Reorder(ctx context.Context, ids []string, expectedVersion *int64) (models.OrderedList, error) {
	const op = "gallery_service.Reorder"
	log := s.log.With(slog.String("op", op), slog.Int("count", len(ids)))

	cur, err := s.order.Snapshot(ctx)
	if err != nil {
		log.Error("failed to read gallery order", sl.Err(err))
		return models.OrderedList{}, fmt.Errorf("%s: %w", op, err)
	}

	requested := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		requested[id] = struct{}{}
	}
	var rest []string
	for _, id := range cur.IDs {
		if _, ok := requested[id]; !ok {
			rest = append(rest, id)
		}
	}

	hidden, err := s.withoutMetadata(ctx, rest)
	if err != nil {
		return models.OrderedList{}, fmt.Errorf("%s: %w", op, err)
	}
	if len(hidden) > 0 {
		ids = append(slices.Clone(ids), hidden...)
	}

	list, err := s.order.ReplaceAll(ctx, ids, expectedVersion)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			metrics.CASConflicts.WithLabelValues("gallery_reorder").Inc()
		}
		log.Warn("failed to reorder gallery", sl.Err(err))
		return models.OrderedList{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("gallery reordered", slog.Int64("version", list.Version))
	return list, nil
}

// Move relocates one image to a 1-based position.
func (s *GalleryService) Move(ctx context.Context, id string, position int) (models.OrderedList, error) {
	const op = "gallery_service.Move"
	log := s.log.With(slog.String("op", op), slog.String("image_id", id), slog.Int("position", position))

	list, err := s.order.MoveTo(ctx, id, position)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			metrics.CASConflicts.WithLabelValues("gallery_move").Inc()
		}
		log.Warn("failed to move image", sl.Err(err))
		return models.OrderedList{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("image moved")
	return list, nil
}

// Repair rebuilds the stored order and drops ids that have no metadata record.
func (s *GalleryService) Repair(ctx context.Context) (models.OrderedList, error) {
	const op = "gallery_service.Repair"
	log := s.log.With(slog.String("op", op))

	list, err := s.order.Repair(ctx)
	if err != nil {
		log.Error("failed to repair gallery order", sl.Err(err))
		return models.OrderedList{}, fmt.Errorf("%s: %w", op, err)
	}

	orphans, err := s.withoutMetadata(ctx, list.IDs)
	if err != nil {
		return models.OrderedList{}, fmt.Errorf("%s: %w", op, err)
	}
	for _, id := range orphans {
		if err := s.order.Remove(ctx, id); err != nil && !errors.Is(err, models.ErrNotFound) {
			log.Error("failed to drop orphaned id", slog.String("image_id", id), sl.Err(err))
			return models.OrderedList{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	if len(orphans) > 0 {
		log.Warn("dropped ids without metadata", slog.Int("count", len(orphans)))
		if list, err = s.order.Snapshot(ctx); err != nil {
			return models.OrderedList{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	log.Info("gallery order repaired", slog.Int("count", len(list.IDs)))
	return list, nil
}

// withoutMetadata returns the ids in ids that have no image record.
func (s *GalleryService) withoutMetadata(ctx context.Context, ids []string) ([]string, error) {
	var missing []string
	for _, id := range ids {
		_, err := s.images.GetImage(ctx, id)
		if errors.Is(err, models.ErrNotFound) {
			missing = append(missing, id)
			continue
		}
		if err != nil {
			return nil, err
		}
	}
	return missing, nil
}

func (s *GalleryService) UpdateMetadata(ctx context.Context, id string, meta models.ImageMetadata) (models.GalleryImage, error) {
	const op = "gallery_service.UpdateMetadata"
	log := s.log.With(slog.String("op", op), slog.String("image_id", id))

	img, err := s.images.UpdateImage(ctx, id, func(img *models.GalleryImage) error {
		if meta.Caption != nil {
			img.Caption = *meta.Caption
		}
		if meta.Alt != nil {
			img.Alt = *meta.Alt
		}
		img.UpdatedAt = s.now()
		return img.Validate()
	})
	if err != nil {
		log.Warn("failed to update metadata", sl.Err(err))
		return models.GalleryImage{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("image metadata updated")
	return img, nil
}

// GenerateVariants renders the medium and thumbnail widths of one image.
func (s *GalleryService) GenerateVariants(ctx context.Context, id string) (models.GalleryImage, error) {
	const op = "gallery_service.GenerateVariants"
	log := s.log.With(slog.String("op", op), slog.String("image_id", id))

	img, err := s.images.GetImage(ctx, id)
	if err != nil {
		return models.GalleryImage{}, fmt.Errorf("%s: %w", op, err)
	}

	variants, err := s.renderVariants(ctx, img)
	if err != nil {
		log.Error("failed to render variants", sl.Err(err))
		return models.GalleryImage{}, fmt.Errorf("%s: %w", op, err)
	}

	img, err = s.images.UpdateImage(ctx, id, func(img *models.GalleryImage) error {
		img.Variants = variants
		img.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return models.GalleryImage{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("variants generated")
	return img, nil
}

// GenerateAllVariants renders variants for every ordered image that has none yet.
// Per-image failures are reported, not returned.
func (s *GalleryService) GenerateAllVariants(ctx context.Context) (models.VariantReport, error) {
	const op = "gallery_service.GenerateAllVariants"
	log := s.log.With(slog.String("op", op))

	list, err := s.order.Snapshot(ctx)
	if err != nil {
		return models.VariantReport{}, fmt.Errorf("%s: %w", op, err)
	}

	report := models.VariantReport{Errors: []models.VariantError{}}
	for _, id := range list.IDs {
		img, err := s.images.GetImage(ctx, id)
		if errors.Is(err, models.ErrNotFound) {
			report.Skipped++
			continue
		}
		if err != nil {
			report.Errors = append(report.Errors, models.VariantError{ImageID: id, Error: err.Error()})
			continue
		}
		if img.Variants != nil {
			report.Skipped++
			continue
		}

		if _, err := s.GenerateVariants(ctx, id); err != nil {
			if errors.Is(err, storage.ErrFileNotFound) {
				report.Skipped++
				continue
			}
			report.Errors = append(report.Errors, models.VariantError{ImageID: id, Error: err.Error()})
			continue
		}
		report.Processed++
	}

	log.Info("variant generation complete",
		slog.Int("processed", report.Processed),
		slog.Int("skipped", report.Skipped),
		slog.Int("errors", len(report.Errors)),
	)

	return report, nil
}

func (s *GalleryService) renderVariants(ctx context.Context, img models.GalleryImage) (*models.ImageVariants, error) {
	src, err := s.blobs.Open(ctx, img.Key)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	format, err := imagevariant.FormatFor(img.FileExt)
	if err != nil {
		return nil, err
	}

	rendered, err := imagevariant.ResizeAll(src, []int{models.MediumWidth, models.ThumbnailWidth}, format)
	if err != nil {
		return nil, err
	}

	mediumKey, thumbKey := models.MediumKey(img.Key), models.ThumbnailKey(img.Key)
	if _, err := s.blobs.Put(ctx, mediumKey, bytes.NewReader(rendered[0].Data)); err != nil {
		return nil, err
	}
	if _, err := s.blobs.Put(ctx, thumbKey, bytes.NewReader(rendered[1].Data)); err != nil {
		return nil, err
	}

	return &models.ImageVariants{
		Original:  img.Key,
		Medium:    mediumKey,
		Thumbnail: thumbKey,
	}, nil
}

// Assignments lists every known location with the image assigned to it, if any.
func (s *GalleryService) Assignments(ctx context.Context) ([]models.LocationAssignment, error) {
	const op = "gallery_service.Assignments"

	a, err := s.site.GetAssignments(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]models.LocationAssignment, 0, len(models.ImageLocations))
	for _, loc := range models.ImageLocations {
		row := models.LocationAssignment{ImageLocation: loc, ImageID: a[loc.ID]}
		if row.ImageID != "" {
			img, err := s.images.GetImage(ctx, row.ImageID)
			if err == nil {
				row.Image = &img
			} else if !errors.Is(err, models.ErrNotFound) {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}
		out = append(out, row)
	}

	return out, nil
}

func (s *GalleryService) Assign(ctx context.Context, locationID, imageID string) (models.ImageAssignments, error) {
	const op = "gallery_service.Assign"
	log := s.log.With(slog.String("op", op), slog.String("location", locationID), slog.String("image_id", imageID))

	if !models.IsKnownLocation(locationID) {
		return nil, fmt.Errorf("%s: %w", op, models.NewValidationError(fmt.Sprintf("invalid location id '%s'", locationID)))
	}
	if _, err := s.images.GetImage(ctx, imageID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	a, err := s.site.UpdateAssignments(ctx, func(a models.ImageAssignments) bool {
		if a[locationID] == imageID {
			return false
		}
		a[locationID] = imageID
		return true
	})
	if err != nil {
		log.Error("failed to assign image", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("image assigned")
	return a, nil
}

func (s *GalleryService) Unassign(ctx context.Context, locationID string) (models.ImageAssignments, error) {
	const op = "gallery_service.Unassign"
	log := s.log.With(slog.String("op", op), slog.String("location", locationID))

	a, err := s.site.UpdateAssignments(ctx, func(a models.ImageAssignments) bool {
		if _, ok := a[locationID]; !ok {
			return false
		}
		delete(a, locationID)
		return true
	})
	if err != nil {
		log.Error("failed to remove assignment", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("assignment removed")
	return a, nil
}

// AssignedImage returns the image shown at a location, or nil when nothing usable is assigned.
func (s *GalleryService) AssignedImage(ctx context.Context, locationID string) (*models.GalleryItem, error) {
	const op = "gallery_service.AssignedImage"

	if !models.IsKnownLocation(locationID) {
		return nil, fmt.Errorf("%s: location %s: %w", op, locationID, models.ErrNotFound)
	}

	a, err := s.site.GetAssignments(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	id := a[locationID]
	if id == "" {
		return nil, nil
	}

	img, err := s.images.GetImage(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	item := s.item(img, 0)
	return &item, nil
}

func (s *GalleryService) item(img models.GalleryImage, position int) models.GalleryItem {
	return models.GalleryItem{
		GalleryImage: img,
		Position:     position,
		URL:          s.blobs.URL(img.Key),
	}
}
