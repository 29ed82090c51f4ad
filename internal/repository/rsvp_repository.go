package repository

import (
	"context"
	"errors"
	"fmt"

	"wedding_site/internal/domain/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

var rsvpColumns = []string{
	"id",
	"name",
	"email",
	"attending",
	"guests",
	"dietary_requirements",
	"song",
	"is_vegetarian",
	"food_allergies",
	"lodging",
	"using_transport",
	"special_notes",
	"created_at",
	"updated_at",
}

type RsvpRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewRsvpRepository(db *pgxpool.Pool) *RsvpRepo {
	return &RsvpRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanRsvp(row pgx.Row) (models.RsvpResponse, error) {
	var r models.RsvpResponse
	err := row.Scan(
		&r.ID,
		&r.Name,
		&r.Email,
		&r.Attending,
		&r.Guests,
		&r.DietaryRequirements,
		&r.Song,
		&r.IsVegetarian,
		&r.FoodAllergies,
		&r.Lodging,
		&r.UsingTransport,
		&r.SpecialNotes,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

// UpsertRsvp stores s, replacing the previous response with the same name (case-insensitive).
func (r *RsvpRepo) UpsertRsvp(ctx context.Context, s models.RsvpSubmission) (models.RsvpResponse, error) {
	const op = "repository.rsvp_repository.UpsertRsvp"

	query, args, err := r.sb.Insert("rsvps").
		Columns(
			"name",
			"email",
			"attending",
			"guests",
			"dietary_requirements",
			"song",
			"is_vegetarian",
			"food_allergies",
			"lodging",
			"using_transport",
			"special_notes",
		).
		Values(
			s.Name,
			s.Email,
			s.Attending,
			s.Guests,
			s.DietaryRequirements,
			s.Song,
			s.IsVegetarian,
			s.FoodAllergies,
			s.Lodging,
			s.UsingTransport,
			s.SpecialNotes,
		).
		Suffix(`ON CONFLICT (lower(name)) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			attending = EXCLUDED.attending,
			guests = EXCLUDED.guests,
			dietary_requirements = EXCLUDED.dietary_requirements,
			song = EXCLUDED.song,
			is_vegetarian = EXCLUDED.is_vegetarian,
			food_allergies = EXCLUDED.food_allergies,
			lodging = EXCLUDED.lodging,
			using_transport = EXCLUDED.using_transport,
			special_notes = EXCLUDED.special_notes,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return models.RsvpResponse{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	resp := models.RsvpResponse{RsvpSubmission: s}
	if err := r.db.QueryRow(ctx, query, args...).Scan(&resp.ID, &resp.CreatedAt, &resp.UpdatedAt); err != nil {
		return models.RsvpResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	return resp, nil
}

// ListRsvps returns every response, newest first.
func (r *RsvpRepo) ListRsvps(ctx context.Context) ([]models.RsvpResponse, error) {
	const op = "repository.rsvp_repository.ListRsvps"

	query, args, err := r.sb.Select(rsvpColumns...).From("rsvps").OrderBy("created_at DESC", "id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make([]models.RsvpResponse, 0)
	for rows.Next() {
		resp, err := scanRsvp(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func (r *RsvpRepo) DeleteRsvp(ctx context.Context, id int64) error {
	const op = "repository.rsvp_repository.DeleteRsvp"

	query, args, err := r.sb.Delete("rsvps").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: rsvp %d: %w", op, id, models.ErrNotFound)
	}

	return nil
}

func (r *RsvpRepo) FindRsvpByName(ctx context.Context, name string) (models.RsvpResponse, error) {
	const op = "repository.rsvp_repository.FindRsvpByName"

	query, args, err := r.sb.Select(rsvpColumns...).
		From("rsvps").
		Where(sq.Expr("lower(name) = lower(?)", name)).
		ToSql()
	if err != nil {
		return models.RsvpResponse{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	resp, err := scanRsvp(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.RsvpResponse{}, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	if err != nil {
		return models.RsvpResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	return resp, nil
}

// LatestRsvpWithEmail returns the most recent response that has an email address.
func (r *RsvpRepo) LatestRsvpWithEmail(ctx context.Context) (models.RsvpResponse, error) {
	const op = "repository.rsvp_repository.LatestRsvpWithEmail"

	query, args, err := r.sb.Select(rsvpColumns...).
		From("rsvps").
		Where(sq.NotEq{"email": ""}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return models.RsvpResponse{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	resp, err := scanRsvp(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.RsvpResponse{}, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	if err != nil {
		return models.RsvpResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	return resp, nil
}
