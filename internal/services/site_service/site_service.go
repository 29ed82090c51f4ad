package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"wedding_site/internal/domain/models"
	"wedding_site/internal/lib/logger/sl"
	"wedding_site/internal/repository"

	"github.com/patrickmn/go-cache"
)

const contentCacheKey = "site_content"

// SiteService owns the site configuration: wedding settings, theme and RSVP form labels.
// Reads fill unset documents and blank fields from the defaults.
type SiteService struct {
	log   *slog.Logger
	site  repository.SiteRepository
	forms repository.EmailRepository
	pages repository.PageRepository
	cache *cache.Cache
	now   func() time.Time
}

func NewSiteService(
	log *slog.Logger,
	site repository.SiteRepository,
	forms repository.EmailRepository,
	pages repository.PageRepository,
	ttl time.Duration,
) *SiteService {
	return &SiteService{
		log:   log,
		site:  site,
		forms: forms,
		pages: pages,
		cache: cache.New(ttl, 2*ttl),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *SiteService) Settings(ctx context.Context) (models.WeddingSettings, error) {
	const op = "site_service.Settings"

	settings, found, err := s.site.GetSettings(ctx)
	if err != nil {
		s.log.Error("failed to read settings", slog.String("op", op), sl.Err(err))
		return models.WeddingSettings{}, fmt.Errorf("%s: %w", op, err)
	}

	return mergeSettings(models.DefaultWeddingSettings(s.now()), settings, found), nil
}

// SaveSettings overlays the non-blank fields of in on the current settings.
func (s *SiteService) SaveSettings(ctx context.Context, in models.WeddingSettings) (models.WeddingSettings, error) {
	const op = "site_service.SaveSettings"
	log := s.log.With(slog.String("op", op))

	current, err := s.Settings(ctx)
	if err != nil {
		return models.WeddingSettings{}, fmt.Errorf("%s: %w", op, err)
	}

	merged := mergeSettings(current, in, true)
	if err := merged.Validate(); err != nil {
		return models.WeddingSettings{}, err
	}

	if err := s.site.SaveSettings(ctx, merged); err != nil {
		log.Error("failed to save settings", sl.Err(err))
		return models.WeddingSettings{}, fmt.Errorf("%s: %w", op, err)
	}
	s.cache.Delete(contentCacheKey)

	log.Info("wedding settings saved")

	return merged, nil
}

func (s *SiteService) Theme(ctx context.Context) (models.Theme, error) {
	const op = "site_service.Theme"

	theme, found, err := s.site.GetTheme(ctx)
	if err != nil {
		s.log.Error("failed to read theme", slog.String("op", op), sl.Err(err))
		return models.Theme{}, fmt.Errorf("%s: %w", op, err)
	}

	return mergeTheme(models.DefaultTheme(), theme, found), nil
}

// SaveTheme overlays the non-blank fields of in on the current theme.
// The favicon uploaded flag is taken from in whenever a favicon url is given.
func (s *SiteService) SaveTheme(ctx context.Context, in models.Theme) (models.Theme, error) {
	const op = "site_service.SaveTheme"
	log := s.log.With(slog.String("op", op))

	current, err := s.Theme(ctx)
	if err != nil {
		return models.Theme{}, fmt.Errorf("%s: %w", op, err)
	}

	merged := mergeTheme(current, in, true)
	if err := merged.Validate(); err != nil {
		return models.Theme{}, err
	}

	if err := s.site.SaveTheme(ctx, merged); err != nil {
		log.Error("failed to save theme", sl.Err(err))
		return models.Theme{}, fmt.Errorf("%s: %w", op, err)
	}
	s.cache.Delete(contentCacheKey)

	log.Info("theme saved")

	return merged, nil
}

func (s *SiteService) FormSettings(ctx context.Context) (models.FormSettings, error) {
	const op = "site_service.FormSettings"

	fs, found, err := s.forms.GetFormSettings(ctx)
	if err != nil {
		s.log.Error("failed to read form settings", slog.String("op", op), sl.Err(err))
		return models.FormSettings{}, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return models.DefaultFormSettings(), nil
	}

	return fs.WithDefaults(), nil
}

// SaveFormSettings stores the labels. Blank labels fall back to the defaults.
func (s *SiteService) SaveFormSettings(ctx context.Context, in models.FormSettings) (models.FormSettings, error) {
	const op = "site_service.SaveFormSettings"
	log := s.log.With(slog.String("op", op))

	fs := in.WithDefaults()
	if err := s.forms.SaveFormSettings(ctx, fs); err != nil {
		log.Error("failed to save form settings", sl.Err(err))
		return models.FormSettings{}, fmt.Errorf("%s: %w", op, err)
	}
	s.cache.Delete(contentCacheKey)

	log.Info("form settings saved")

	return fs, nil
}

// Content is the public read model. It is cached for the configured ttl and dropped on any write here.
func (s *SiteService) Content(ctx context.Context) (models.SiteContent, error) {
	const op = "site_service.Content"
	log := s.log.With(slog.String("op", op))

	if cached, ok := s.cache.Get(contentCacheKey); ok {
		return cached.(models.SiteContent), nil
	}

	settings, err := s.Settings(ctx)
	if err != nil {
		return models.SiteContent{}, fmt.Errorf("%s: %w", op, err)
	}
	theme, err := s.Theme(ctx)
	if err != nil {
		return models.SiteContent{}, fmt.Errorf("%s: %w", op, err)
	}
	forms, err := s.FormSettings(ctx)
	if err != nil {
		return models.SiteContent{}, fmt.Errorf("%s: %w", op, err)
	}
	index, err := s.pages.GetIndex(ctx)
	if err != nil {
		log.Error("failed to read page index", sl.Err(err))
		return models.SiteContent{}, fmt.Errorf("%s: %w", op, err)
	}

	content := models.SiteContent{
		Settings:     settings,
		Theme:        theme,
		FormSettings: forms,
		Pages:        index.Pages,
	}
	s.cache.SetDefault(contentCacheKey, content)

	return content, nil
}

// InvalidateContent drops the cached read model. Page writes call it.
func (s *SiteService) InvalidateContent() {
	s.cache.Delete(contentCacheKey)
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func mergeSettings(base, in models.WeddingSettings, present bool) models.WeddingSettings {
	if !present {
		return base
	}
	overlay(&base.WeddingDate, in.WeddingDate)
	overlay(&base.WeddingTime, in.WeddingTime)
	overlay(&base.VenueName, in.VenueName)
	overlay(&base.VenueAddress, in.VenueAddress)
	overlay(&base.GroomName, in.GroomName)
	overlay(&base.BrideName, in.BrideName)
	overlay(&base.RsvpButtonText, in.RsvpButtonText)
	overlay(&base.RsvpButtonLink, in.RsvpButtonLink)
	return base
}

func mergeTheme(base, in models.Theme, present bool) models.Theme {
	if !present {
		return base
	}
	overlay(&base.Colors.Primary, in.Colors.Primary)
	overlay(&base.Colors.Secondary, in.Colors.Secondary)
	overlay(&base.Colors.Accent, in.Colors.Accent)
	overlay(&base.Colors.Text, in.Colors.Text)
	overlay(&base.Colors.Background, in.Colors.Background)
	overlay(&base.Fonts.Heading, in.Fonts.Heading)
	overlay(&base.Fonts.Body, in.Fonts.Body)
	if in.Favicon.URL != "" {
		base.Favicon = in.Favicon
	}
	return base
}
