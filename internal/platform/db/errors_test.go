package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/stockroom/internal/platform/httpx"
)

func TestMapErrorNoRows(t *testing.T) {
	require.ErrorIs(t, MapError(pgx.ErrNoRows), httpx.ErrNotFound)
	require.ErrorIs(t, MapError(fmt.Errorf("get: %w", pgx.ErrNoRows)), httpx.ErrNotFound)
}

func TestMapErrorConstraints(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "items_sku_key"}
	err := MapError(unique)
	require.ErrorIs(t, err, httpx.ErrConflict)
	assert.Contains(t, err.Error(), "items_sku_key")

	fk := &pgconn.PgError{Code: "23503", ConstraintName: "items_supplier_id_fkey"}
	require.ErrorIs(t, MapError(fk), httpx.ErrConflict)

	check := &pgconn.PgError{Code: "23514", ConstraintName: "items_quantity_nonnegative"}
	require.ErrorIs(t, MapError(check), httpx.ErrValidation)
}

func TestMapErrorPassthrough(t *testing.T) {
	assert.NoError(t, MapError(nil))

	plain := errors.New("connection reset")
	assert.Equal(t, plain, MapError(plain))

	serialization := &pgconn.PgError{Code: "40001"}
	assert.Equal(t, error(serialization), MapError(serialization))
}
