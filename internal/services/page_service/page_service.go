package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"wedding_site/internal/domain/models"
	"wedding_site/internal/lib/htmlsanitize"
	"wedding_site/internal/lib/logger/sl"
	"wedding_site/internal/lib/ordered"
	"wedding_site/internal/repository"

	"github.com/oklog/ulid/v2"
)

type PageService struct {
	log  *slog.Logger
	repo repository.PageRepository
	now  func() time.Time
}

func NewPageService(log *slog.Logger, repo repository.PageRepository) *PageService {
	return &PageService{
		log:  log,
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func newPageID() string {
	return "page_" + strings.ToLower(ulid.Make().String())
}

func (s *PageService) ListSectionTypes() []models.SectionTypeInfo {
	return models.ListSectionTypes()
}

// Create stores a new page. The slug is derived from the name when not given.
func (s *PageService) Create(ctx context.Context, in models.PagePatch) (models.Page, error) {
	const op = "page_service.Create"
	log := s.log.With(slog.String("op", op))

	page := models.Page{ID: newPageID(), Sections: []models.ContentSection{}}
	if in.Name != nil {
		page.Name = strings.TrimSpace(*in.Name)
	}
	if page.Name == "" {
		return models.Page{}, fmt.Errorf("%s: %w", op, models.NewValidationError("page name is required"))
	}

	page.Slug = models.Slugify(page.Name)
	if in.Slug != nil && strings.TrimSpace(*in.Slug) != "" {
		page.Slug = models.Slugify(*in.Slug)
	}
	if in.Order != nil {
		page.Order = *in.Order
	}
	if in.Sections != nil {
		page.Sections = in.Sections
	}

	if err := s.ensureSlugFree(ctx, page.Slug, ""); err != nil {
		log.Warn("slug is taken", slog.String("slug", page.Slug))
		return models.Page{}, fmt.Errorf("%s: %w", op, err)
	}

	page.CreatedAt = s.now()
	if err := s.prepare(&page); err != nil {
		return models.Page{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.CreatePage(ctx, page); err != nil {
		log.Error("failed to create page", sl.Err(err))
		return models.Page{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.syncIndex(ctx, page); err != nil {
		return models.Page{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("page created", slog.String("page_id", page.ID), slog.String("slug", page.Slug))
	return page, nil
}

// Update merges patch into the stored page.
// A non-nil patch.ExpectedVersion must match the stored version.
func (s *PageService) Update(ctx context.Context, id string, patch models.PagePatch) (models.Page, error) {
	const op = "page_service.Update"
	log := s.log.With(slog.String("op", op), slog.String("page_id", id))

	saved, err := s.mutate(ctx, id, func(page *models.Page) error {
		if patch.ExpectedVersion != nil && *patch.ExpectedVersion != page.Version {
			return fmt.Errorf("page %s is at version %d, not %d: %w", id, page.Version, *patch.ExpectedVersion, models.ErrConflict)
		}

		if patch.Name != nil {
			page.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Slug != nil {
			slug := models.Slugify(*patch.Slug)
			if slug == "" {
				slug = models.Slugify(page.Name)
			}
			if slug != page.Slug {
				if err := s.ensureSlugFree(ctx, slug, page.ID); err != nil {
					log.Warn("slug is taken", slog.String("slug", slug))
					return err
				}
				page.Slug = slug
			}
		}
		if patch.Order != nil {
			page.Order = *patch.Order
		}
		if patch.Sections != nil {
			page.Sections = patch.Sections
		}
		return nil
	})
	if err != nil {
		return models.Page{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("page updated", slog.Int64("version", saved.Version))
	return saved, nil
}

// UpdateOrder sets the menu position of a page.
func (s *PageService) UpdateOrder(ctx context.Context, id string, order int) (models.Page, error) {
	return s.Update(ctx, id, models.PagePatch{Order: &order})
}

func (s *PageService) Delete(ctx context.Context, id string) error {
	const op = "page_service.Delete"
	log := s.log.With(slog.String("op", op), slog.String("page_id", id))

	if _, err := s.repo.GetPage(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.DeletePage(ctx, id); err != nil {
		log.Error("failed to delete page", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.RemoveIndexEntry(ctx, id); err != nil {
		log.Warn("index update failed, rebuilding", sl.Err(err))
		if _, err := s.RebuildIndex(ctx); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	log.Info("page deleted")
	return nil
}

func (s *PageService) Get(ctx context.Context, id string) (models.Page, error) {
	const op = "page_service.Get"

	page, err := s.repo.GetPage(ctx, id)
	if err != nil {
		return models.Page{}, fmt.Errorf("%s: %w", op, err)
	}

	return page, nil
}

// List returns the page summaries sorted by menu order, then name.
func (s *PageService) List(ctx context.Context) ([]models.PageIndexEntry, error) {
	const op = "page_service.List"

	index, err := s.repo.GetIndex(ctx)
	if err != nil {
		s.log.Error("failed to read pages index", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return index.Pages, nil
}

// GetBySlug resolves a slug through the index, falling back to the canonical records.
func (s *PageService) GetBySlug(ctx context.Context, slug string) (models.Page, error) {
	const op = "page_service.GetBySlug"

	index, err := s.repo.GetIndex(ctx)
	if err != nil {
		return models.Page{}, fmt.Errorf("%s: %w", op, err)
	}

	for _, e := range index.Pages {
		if e.Slug != slug {
			continue
		}
		page, err := s.repo.GetPage(ctx, e.ID)
		if err == nil && page.Slug == slug {
			return page, nil
		}
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return models.Page{}, fmt.Errorf("%s: %w", op, err)
		}
		break
	}

	pages, err := s.repo.ListPages(ctx)
	if err != nil {
		return models.Page{}, fmt.Errorf("%s: %w", op, err)
	}
	for _, p := range pages {
		if p.Slug == slug {
			return p, nil
		}
	}

	return models.Page{}, fmt.Errorf("%s: page '%s': %w", op, slug, models.ErrNotFound)
}

// AddSection inserts a new section with default properties. A nil position appends.
func (s *PageService) AddSection(ctx context.Context, pageID string, t models.SectionType, position *int) (models.Page, models.ContentSection, error) {
	const op = "page_service.AddSection"
	log := s.log.With(slog.String("op", op), slog.String("page_id", pageID), slog.String("type", string(t)))

	section, err := models.NewSection(t)
	if err != nil {
		return models.Page{}, models.ContentSection{}, fmt.Errorf("%s: %w", op, err)
	}

	page, err := s.editSections(ctx, pageID, func(ids []string) ([]string, error) {
		pos := len(ids) + 1
		if position != nil {
			pos = *position
		}
		return ordered.Insert(ids, section.ID, pos)
	}, section)
	if err != nil {
		return models.Page{}, models.ContentSection{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("section added", slog.String("section_id", section.ID))
	return page, section, nil
}

// UpdateSection replaces every property of a section.
func (s *PageService) UpdateSection(ctx context.Context, pageID, sectionID string, properties map[string]any) (models.Page, error) {
	const op = "page_service.UpdateSection"
	log := s.log.With(slog.String("op", op), slog.String("page_id", pageID), slog.String("section_id", sectionID))

	if properties == nil {
		properties = map[string]any{}
	}

	saved, err := s.mutate(ctx, pageID, func(page *models.Page) error {
		i := page.SectionIndex(sectionID)
		if i < 0 {
			return fmt.Errorf("section %s: %w", sectionID, models.ErrNotFound)
		}
		page.Sections = slices.Clone(page.Sections)
		page.Sections[i].Properties = properties
		return nil
	})
	if err != nil {
		return models.Page{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("section updated")
	return saved, nil
}

func (s *PageService) RemoveSection(ctx context.Context, pageID, sectionID string) (models.Page, error) {
	const op = "page_service.RemoveSection"

	page, err := s.editSections(ctx, pageID, func(ids []string) ([]string, error) {
		return ordered.Remove(ids, sectionID)
	})
	if err != nil {
		return models.Page{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("section removed", slog.String("op", op), slog.String("page_id", pageID), slog.String("section_id", sectionID))
	return page, nil
}

// MoveSection relocates a section to a 1-based position.
func (s *PageService) MoveSection(ctx context.Context, pageID, sectionID string, position int) (models.Page, error) {
	const op = "page_service.MoveSection"

	page, err := s.editSections(ctx, pageID, func(ids []string) ([]string, error) {
		return ordered.Move(ids, sectionID, position)
	})
	if err != nil {
		return models.Page{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("section moved", slog.String("op", op), slog.String("page_id", pageID), slog.String("section_id", sectionID))
	return page, nil
}

// RebuildIndex rewrites the pages index from the canonical page records.
func (s *PageService) RebuildIndex(ctx context.Context) ([]models.PageIndexEntry, error) {
	const op = "page_service.RebuildIndex"
	log := s.log.With(slog.String("op", op))

	pages, err := s.repo.ListPages(ctx)
	if err != nil {
		log.Error("failed to list pages", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	entries := make([]models.PageIndexEntry, 0, len(pages))
	for _, p := range pages {
		entries = append(entries, p.IndexEntry())
	}
	repository.SortIndex(entries)

	if err := s.repo.ReplaceIndex(ctx, entries); err != nil {
		log.Error("failed to write pages index", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("pages index rebuilt", slog.Int("pages", len(entries)))
	return entries, nil
}

// editSections applies a sequence operation to the section ids of a page.
// added holds sections that the operation may introduce.
func (s *PageService) editSections(ctx context.Context, pageID string, fn func(ids []string) ([]string, error), added ...models.ContentSection) (models.Page, error) {
	return s.mutate(ctx, pageID, func(page *models.Page) error {
		byID := make(map[string]models.ContentSection, len(page.Sections)+len(added))
		ids := make([]string, 0, len(page.Sections))
		for _, sec := range page.Sections {
			byID[sec.ID] = sec
			ids = append(ids, sec.ID)
		}
		for _, sec := range added {
			byID[sec.ID] = sec
		}

		next, err := fn(ids)
		if err != nil {
			return mapSequenceErr(err)
		}

		sections := make([]models.ContentSection, 0, len(next))
		for _, id := range next {
			sections = append(sections, byID[id])
		}
		page.Sections = sections
		return nil
	})
}

// mutate applies fn to the stored page under compare-and-swap, then refreshes its index entry.
// fn may run more than once when edits race.
func (s *PageService) mutate(ctx context.Context, pageID string, fn func(page *models.Page) error) (models.Page, error) {
	page, err := s.repo.UpdatePage(ctx, pageID, func(page *models.Page) error {
		if err := fn(page); err != nil {
			return err
		}
		return s.prepare(page)
	})
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			s.log.Warn("page edit conflicted", slog.String("page_id", pageID), sl.Err(err))
		}
		return models.Page{}, err
	}

	if err := s.syncIndex(ctx, page); err != nil {
		return models.Page{}, err
	}

	return page, nil
}

// prepare sanitises and validates the page, then stamps its new version.
func (s *PageService) prepare(page *models.Page) error {
	page.Sections = slices.Clone(page.Sections)
	if page.Sections == nil {
		page.Sections = []models.ContentSection{}
	}
	for i, sec := range page.Sections {
		if sec.ID == "" {
			sec.ID = models.NewSectionID()
		}
		page.Sections[i] = sec.MapRichText(htmlsanitize.Sanitize)
	}

	if err := page.Validate(); err != nil {
		return err
	}

	page.LastModified = s.now()
	page.Version++
	return nil
}

// syncIndex writes the index entry of page. A failed index write triggers a rebuild
// from the canonical records.
func (s *PageService) syncIndex(ctx context.Context, page models.Page) error {
	if err := s.repo.UpsertIndexEntry(ctx, page.IndexEntry()); err != nil {
		s.log.Warn("index update failed, rebuilding", slog.String("page_id", page.ID), sl.Err(err))
		if _, err := s.RebuildIndex(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *PageService) ensureSlugFree(ctx context.Context, slug, selfID string) error {
	pages, err := s.repo.ListPages(ctx)
	if err != nil {
		return err
	}
	for _, p := range pages {
		if p.Slug == slug && p.ID != selfID {
			return fmt.Errorf("slug '%s' is used by page %s: %w", slug, p.ID, models.ErrConflict)
		}
	}
	return nil
}

func mapSequenceErr(err error) error {
	switch {
	case errors.Is(err, ordered.ErrNotFound):
		return fmt.Errorf("section: %w", models.ErrNotFound)
	case errors.Is(err, ordered.ErrOutOfRange):
		return models.NewValidationError(err.Error())
	}
	return err
}
