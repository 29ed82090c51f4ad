package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"wedding_site/internal/domain/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// EmailRepo stores email templates and the RSVP form labels.
type EmailRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewEmailRepository(db *pgxpool.Pool) *EmailRepo {
	return &EmailRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// LatestTemplate returns the newest saved template of type t.
func (r *EmailRepo) LatestTemplate(ctx context.Context, t models.TemplateType) (models.EmailTemplate, error) {
	const op = "repository.email_repository.LatestTemplate"

	query, args, err := r.sb.Select("id", "template_type", "subject", "template", "created_at").
		From("email_templates").
		Where(sq.Eq{"template_type": string(t)}).
		OrderBy("created_at DESC", "id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return models.EmailTemplate{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	var tpl models.EmailTemplate
	var typ string
	err = r.db.QueryRow(ctx, query, args...).Scan(&tpl.ID, &typ, &tpl.Subject, &tpl.Body, &tpl.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.EmailTemplate{}, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	if err != nil {
		return models.EmailTemplate{}, fmt.Errorf("%s: %w", op, err)
	}
	tpl.Type = models.TemplateType(typ)

	return tpl, nil
}

// SaveTemplate appends a new template version.
func (r *EmailRepo) SaveTemplate(ctx context.Context, tpl models.EmailTemplate) (models.EmailTemplate, error) {
	const op = "repository.email_repository.SaveTemplate"

	query, args, err := r.sb.Insert("email_templates").
		Columns("template_type", "subject", "template").
		Values(string(tpl.Type), tpl.Subject, tpl.Body).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return models.EmailTemplate{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&tpl.ID, &tpl.CreatedAt); err != nil {
		return models.EmailTemplate{}, fmt.Errorf("%s: %w", op, err)
	}

	return tpl, nil
}

// GetFormSettings returns the stored labels; found is false when none were saved yet.
func (r *EmailRepo) GetFormSettings(ctx context.Context) (models.FormSettings, bool, error) {
	const op = "repository.email_repository.GetFormSettings"

	query, args, err := r.sb.Select("settings").From("form_settings").Where(sq.Eq{"id": 1}).ToSql()
	if err != nil {
		return models.FormSettings{}, false, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	var raw []byte
	err = r.db.QueryRow(ctx, query, args...).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.FormSettings{}, false, nil
	}
	if err != nil {
		return models.FormSettings{}, false, fmt.Errorf("%s: %w", op, err)
	}

	var fs models.FormSettings
	if err := json.Unmarshal(raw, &fs); err != nil {
		return models.FormSettings{}, false, fmt.Errorf("%s: %w", op, err)
	}

	return fs, true, nil
}

func (r *EmailRepo) SaveFormSettings(ctx context.Context, fs models.FormSettings) error {
	const op = "repository.email_repository.SaveFormSettings"

	raw, err := json.Marshal(fs)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query, args, err := r.sb.Insert("form_settings").
		Columns("id", "settings").
		Values(1, string(raw)).
		Suffix("ON CONFLICT (id) DO UPDATE SET settings = EXCLUDED.settings, updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
