package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"wedding_site/internal/domain/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/lib/pq"
)

var guestColumns = []string{
	"id",
	"name",
	"COALESCE(email, '')",
	"COALESCE(partner_name, '')",
	"COALESCE(partner_email, '')",
	"plus_one_allowed",
	"created_at",
}

type GuestRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewGuestRepository(db *pgxpool.Pool) *GuestRepo {
	return &GuestRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanGuest(row pgx.Row) (models.Guest, error) {
	var g models.Guest
	err := row.Scan(&g.ID, &g.Name, &g.Email, &g.PartnerName, &g.PartnerEmail, &g.PlusOneAllowed, &g.CreatedAt)
	return g, err
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (r *GuestRepo) CreateGuest(ctx context.Context, g models.Guest) (models.Guest, error) {
	const op = "repository.guest_repository.CreateGuest"

	query, args, err := r.sb.Insert("guest_list").
		Columns("name", "email", "partner_name", "partner_email", "plus_one_allowed").
		Values(g.Name, nullIfEmpty(g.Email), nullIfEmpty(g.PartnerName), nullIfEmpty(g.PartnerEmail), g.PlusOneAllowed).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return models.Guest{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&g.ID, &g.CreatedAt); err != nil {
		return models.Guest{}, fmt.Errorf("%s: %w", op, mapPgError(err))
	}

	return g, nil
}

func (r *GuestRepo) UpdateGuest(ctx context.Context, g models.Guest) error {
	const op = "repository.guest_repository.UpdateGuest"

	query, args, err := r.sb.Update("guest_list").
		Set("name", g.Name).
		Set("email", nullIfEmpty(g.Email)).
		Set("partner_name", nullIfEmpty(g.PartnerName)).
		Set("partner_email", nullIfEmpty(g.PartnerEmail)).
		Set("plus_one_allowed", g.PlusOneAllowed).
		Where(sq.Eq{"id": g.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: guest %d: %w", op, g.ID, models.ErrNotFound)
	}

	return nil
}

func (r *GuestRepo) DeleteGuest(ctx context.Context, id int64) error {
	const op = "repository.guest_repository.DeleteGuest"

	query, args, err := r.sb.Delete("guest_list").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: guest %d: %w", op, id, models.ErrNotFound)
	}

	return nil
}

func (r *GuestRepo) GetGuest(ctx context.Context, id int64) (models.Guest, error) {
	const op = "repository.guest_repository.GetGuest"

	query, args, err := r.sb.Select(guestColumns...).From("guest_list").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return models.Guest{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	g, err := scanGuest(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Guest{}, fmt.Errorf("%s: guest %d: %w", op, id, models.ErrNotFound)
	}
	if err != nil {
		return models.Guest{}, fmt.Errorf("%s: %w", op, err)
	}

	return g, nil
}

// FindGuestByName matches the guest name case-insensitively.
func (r *GuestRepo) FindGuestByName(ctx context.Context, name string) (models.Guest, error) {
	const op = "repository.guest_repository.FindGuestByName"

	query, args, err := r.sb.Select(guestColumns...).
		From("guest_list").
		Where(sq.Expr("lower(name) = lower(?)", name)).
		ToSql()
	if err != nil {
		return models.Guest{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	g, err := scanGuest(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Guest{}, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	if err != nil {
		return models.Guest{}, fmt.Errorf("%s: %w", op, err)
	}

	return g, nil
}

// FindGuestsByNames returns guests keyed by lower-cased name.
func (r *GuestRepo) FindGuestsByNames(ctx context.Context, names []string) (map[string]models.Guest, error) {
	const op = "repository.guest_repository.FindGuestsByNames"

	lowered := make([]string, len(names))
	for i, n := range names {
		lowered[i] = strings.ToLower(n)
	}

	query, args, err := r.sb.Select(guestColumns...).
		From("guest_list").
		Where(sq.Expr("lower(name) = ANY(?)", pq.Array(lowered))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	guests, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make(map[string]models.Guest, len(guests))
	for _, g := range guests {
		out[strings.ToLower(g.Name)] = g
	}

	return out, nil
}

func (r *GuestRepo) ListGuests(ctx context.Context) ([]models.Guest, error) {
	const op = "repository.guest_repository.ListGuests"

	query, args, err := r.sb.Select(guestColumns...).From("guest_list").OrderBy("lower(name)").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	guests, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return guests, nil
}

// ListGuestsWithEmail returns guests that have a non-empty email address.
func (r *GuestRepo) ListGuestsWithEmail(ctx context.Context) ([]models.Guest, error) {
	const op = "repository.guest_repository.ListGuestsWithEmail"

	query, args, err := r.sb.Select(guestColumns...).
		From("guest_list").
		Where(sq.And{sq.NotEq{"email": nil}, sq.NotEq{"email": ""}}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	guests, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return guests, nil
}

// SearchGuests matches fragment against guest and partner names. Guests with a partner come first.
func (r *GuestRepo) SearchGuests(ctx context.Context, fragment string, limit int) ([]models.Guest, error) {
	const op = "repository.guest_repository.SearchGuests"

	pattern := "%" + escapeLike(strings.ToLower(fragment)) + "%"

	query, args, err := r.sb.Select(guestColumns...).
		From("guest_list").
		Where(sq.Or{
			sq.Expr("lower(name) LIKE ?", pattern),
			sq.Expr("lower(COALESCE(partner_name, '')) LIKE ?", pattern),
		}).
		OrderBy("(partner_name IS NULL OR partner_name = '')", "lower(name)").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	guests, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return guests, nil
}

func (r *GuestRepo) query(ctx context.Context, query string, args ...any) ([]models.Guest, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	guests := make([]models.Guest, 0)
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, err
		}
		guests = append(guests, g)
	}

	return guests, rows.Err()
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}
