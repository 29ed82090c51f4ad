package repository

import (
	"wedding_site/internal/storage"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Repository groups the relational repositories that share one pool.
type Repository struct {
	db     *pgxpool.Pool
	Guests GuestRepository
	Rsvps  RsvpRepository
	Emails EmailRepository
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		db:     db,
		Guests: NewGuestRepository(db),
		Rsvps:  NewRsvpRepository(db),
		Emails: NewEmailRepository(db),
	}
}

func (r *Repository) Close() {
	r.db.Close()
}

// Documents groups the repositories kept in the key-value store.
type Documents struct {
	Pages   PageRepository
	Gallery GalleryRepository
	Order   OrderRepository
	Site    SiteRepository
}

func NewDocuments(kv storage.KV) *Documents {
	return &Documents{
		Pages:   NewPageRepo(kv),
		Gallery: NewGalleryRepo(kv),
		Order:   NewGalleryOrder(kv),
		Site:    NewSiteRepo(kv),
	}
}
