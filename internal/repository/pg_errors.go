package repository

import (
	"errors"
	"fmt"

	"wedding_site/internal/domain/models"

	"github.com/jackc/pgconn"
)

const uniqueViolation = "23505"

// mapPgError translates constraint violations into domain errors.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", pgErr.ConstraintName, models.ErrConflict)
	}
	return err
}
