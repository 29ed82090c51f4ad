package repository

import (
	"context"
	"fmt"

	"wedding_site/internal/domain/models"
	"wedding_site/internal/storage"
)

const (
	settingsKey    = "wedding_settings"
	themeKey       = "site_theme"
	assignmentsKey = "image_assignments"
)

// SiteRepo stores the site-wide singleton documents.
type SiteRepo struct {
	kv storage.KV
}

func NewSiteRepo(kv storage.KV) *SiteRepo {
	return &SiteRepo{kv: kv}
}

// GetSettings returns the stored settings; found is false when none were saved yet.
func (r *SiteRepo) GetSettings(ctx context.Context) (models.WeddingSettings, bool, error) {
	const op = "repository.site_repository.GetSettings"

	var s models.WeddingSettings
	_, found, err := getJSON(ctx, r.kv, settingsKey, &s)
	if err != nil {
		return models.WeddingSettings{}, false, fmt.Errorf("%s: %w", op, err)
	}

	return s, found, nil
}

func (r *SiteRepo) SaveSettings(ctx context.Context, s models.WeddingSettings) error {
	const op = "repository.site_repository.SaveSettings"

	if err := putJSON(ctx, r.kv, settingsKey, s); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *SiteRepo) GetTheme(ctx context.Context) (models.Theme, bool, error) {
	const op = "repository.site_repository.GetTheme"

	var t models.Theme
	_, found, err := getJSON(ctx, r.kv, themeKey, &t)
	if err != nil {
		return models.Theme{}, false, fmt.Errorf("%s: %w", op, err)
	}

	return t, found, nil
}

func (r *SiteRepo) SaveTheme(ctx context.Context, t models.Theme) error {
	const op = "repository.site_repository.SaveTheme"

	if err := putJSON(ctx, r.kv, themeKey, t); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *SiteRepo) GetAssignments(ctx context.Context) (models.ImageAssignments, error) {
	const op = "repository.site_repository.GetAssignments"

	a := models.ImageAssignments{}
	if _, _, err := getJSON(ctx, r.kv, assignmentsKey, &a); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return a, nil
}

// UpdateAssignments applies fn to a copy of the assignments map and stores the result.
func (r *SiteRepo) UpdateAssignments(ctx context.Context, fn func(a models.ImageAssignments) bool) (models.ImageAssignments, error) {
	const op = "repository.site_repository.UpdateAssignments"

	a, err := updateJSON(ctx, r.kv, assignmentsKey, func(cur models.ImageAssignments, _ bool) (models.ImageAssignments, bool, error) {
		next := models.ImageAssignments{}
		for k, v := range cur {
			next[k] = v
		}
		return next, fn(next), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if a == nil {
		a = models.ImageAssignments{}
	}

	return a, nil
}
