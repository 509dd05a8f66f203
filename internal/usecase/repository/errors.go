package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/project/lms/internal/entity"
)

const (
	ErrForeignKeyViolation = "23503"
	ErrUniqueViolation     = "23505"
	ErrCheckViolation      = "23514"
)

// convertPgError maps driver errors onto the entity taxonomy. notFound is returned
// for pgx.ErrNoRows.
func convertPgError(err error, notFound error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case ErrUniqueViolation:
		return fmt.Errorf("%s already exists: %w", constraintSubject(pgErr), entity.ErrConflict)
	case ErrForeignKeyViolation:
		return fmt.Errorf("%s references a missing entity: %w", constraintSubject(pgErr), entity.ErrValidation)
	case ErrCheckViolation:
		return fmt.Errorf("%s violated: %w", constraintSubject(pgErr), entity.ErrInvariantViolation)
	}
	return err
}

func constraintSubject(pgErr *pgconn.PgError) string {
	if pgErr.ConstraintName != "" {
		return pgErr.ConstraintName
	}
	return pgErr.TableName
}
