package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Schema creates every relational table the service needs. It is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS guest_list (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT,
	partner_name TEXT,
	partner_email TEXT,
	plus_one_allowed BOOLEAN NOT NULL DEFAULT false,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE UNIQUE INDEX IF NOT EXISTS guest_list_name_lower_idx ON guest_list (lower(name));
CREATE INDEX IF NOT EXISTS guest_list_partner_lower_idx ON guest_list (lower(partner_name));

CREATE TABLE IF NOT EXISTS rsvps (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	attending TEXT NOT NULL,
	guests INT NOT NULL DEFAULT 0,
	dietary_requirements TEXT NOT NULL DEFAULT '',
	song TEXT NOT NULL DEFAULT '',
	is_vegetarian TEXT NOT NULL DEFAULT '',
	food_allergies TEXT NOT NULL DEFAULT '',
	lodging TEXT NOT NULL DEFAULT '',
	using_transport TEXT NOT NULL DEFAULT '',
	special_notes TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE UNIQUE INDEX IF NOT EXISTS rsvps_name_lower_idx ON rsvps (lower(name));

CREATE TABLE IF NOT EXISTS email_templates (
	id BIGSERIAL PRIMARY KEY,
	template_type TEXT NOT NULL DEFAULT 'confirmation',
	subject TEXT NOT NULL DEFAULT '',
	template TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS email_templates_type_idx ON email_templates (template_type, created_at DESC);

CREATE TABLE IF NOT EXISTS form_settings (
	id INT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
	settings JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

type Storage struct {
	db *pgxpool.Pool
}

func New(ctx context.Context, storagePath string) (*Storage, error) {
	const op = "storage.postgresql.New"

	db, err := pgxpool.Connect(ctx, storagePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		db: db,
	}, nil
}

func (s *Storage) Pool() *pgxpool.Pool {
	return s.db
}

// Migrate applies Schema.
func (s *Storage) Migrate(ctx context.Context) error {
	const op = "storage.postgresql.Migrate"

	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Storage) Stop() {
	s.db.Close()
}
