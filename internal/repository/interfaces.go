package repository

import (
	"context"

	"wedding_site/internal/domain/models"
)

type GalleryRepository interface {
	SaveImage(ctx context.Context, img models.GalleryImage) error
	GetImage(ctx context.Context, id string) (models.GalleryImage, error)
	GetImages(ctx context.Context, ids []string) ([]models.GalleryImage, error)
	UpdateImage(ctx context.Context, id string, fn func(img *models.GalleryImage) error) (models.GalleryImage, error)
	DeleteImage(ctx context.Context, id string) error
}

// OrderRepository is the single authoritative display order of a collection.
type OrderRepository interface {
	Snapshot(ctx context.Context) (models.OrderedList, error)
	Append(ctx context.Context, id string) (int, error)
	Remove(ctx context.Context, id string) error
	MoveTo(ctx context.Context, id string, position int) (models.OrderedList, error)
	ReplaceAll(ctx context.Context, ids []string, expectedVersion *int64) (models.OrderedList, error)
	Repair(ctx context.Context) (models.OrderedList, error)
}

type PageRepository interface {
	GetPage(ctx context.Context, id string) (models.Page, error)
	CreatePage(ctx context.Context, page models.Page) error
	UpdatePage(ctx context.Context, id string, fn func(page *models.Page) error) (models.Page, error)
	DeletePage(ctx context.Context, id string) error
	ListPages(ctx context.Context) ([]models.Page, error)
	GetIndex(ctx context.Context) (models.PageIndex, error)
	UpsertIndexEntry(ctx context.Context, entry models.PageIndexEntry) error
	RemoveIndexEntry(ctx context.Context, id string) error
	ReplaceIndex(ctx context.Context, entries []models.PageIndexEntry) error
}

type SiteRepository interface {
	GetSettings(ctx context.Context) (models.WeddingSettings, bool, error)
	SaveSettings(ctx context.Context, s models.WeddingSettings) error
	GetTheme(ctx context.Context) (models.Theme, bool, error)
	SaveTheme(ctx context.Context, t models.Theme) error
	GetAssignments(ctx context.Context) (models.ImageAssignments, error)
	UpdateAssignments(ctx context.Context, fn func(a models.ImageAssignments) bool) (models.ImageAssignments, error)
}

type GuestRepository interface {
	CreateGuest(ctx context.Context, g models.Guest) (models.Guest, error)
	UpdateGuest(ctx context.Context, g models.Guest) error
	DeleteGuest(ctx context.Context, id int64) error
	GetGuest(ctx context.Context, id int64) (models.Guest, error)
	FindGuestByName(ctx context.Context, name string) (models.Guest, error)
	FindGuestsByNames(ctx context.Context, names []string) (map[string]models.Guest, error)
	ListGuests(ctx context.Context) ([]models.Guest, error)
	ListGuestsWithEmail(ctx context.Context) ([]models.Guest, error)
	SearchGuests(ctx context.Context, fragment string, limit int) ([]models.Guest, error)
}

type RsvpRepository interface {
	UpsertRsvp(ctx context.Context, s models.RsvpSubmission) (models.RsvpResponse, error)
	ListRsvps(ctx context.Context) ([]models.RsvpResponse, error)
	DeleteRsvp(ctx context.Context, id int64) error
	FindRsvpByName(ctx context.Context, name string) (models.RsvpResponse, error)
	LatestRsvpWithEmail(ctx context.Context) (models.RsvpResponse, error)
}

type EmailRepository interface {
	LatestTemplate(ctx context.Context, t models.TemplateType) (models.EmailTemplate, error)
	SaveTemplate(ctx context.Context, tpl models.EmailTemplate) (models.EmailTemplate, error)
	GetFormSettings(ctx context.Context) (models.FormSettings, bool, error)
	SaveFormSettings(ctx context.Context, fs models.FormSettings) error
}
