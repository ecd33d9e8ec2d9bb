package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/stockroom/stockroom/internal/platform/httpx"
)

// Postgres error codes relevant to the inventory constraints.
const (
	pgUniqueViolation = "23505"
	pgFKViolation     = "23503"
	pgCheckViolation  = "23514"
)

// MapError translates pgx errors into the domain error taxonomy. Unrecognized
// errors pass through unchanged so callers can log them and answer 500.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return httpx.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", httpx.ErrConflict, pgErr.ConstraintName)
		case pgFKViolation:
			return fmt.Errorf("%w: %s", httpx.ErrConflict, pgErr.ConstraintName)
		case pgCheckViolation:
			return fmt.Errorf("%w: %s", httpx.ErrValidation, pgErr.ConstraintName)
		}
	}
	return err
}
