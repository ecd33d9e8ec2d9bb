package suppliers

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockroom/stockroom/internal/platform/db"
)

type Repository interface {
	List(ctx context.Context, req ListSuppliersRequest) ([]Supplier, int, error)
	Get(ctx context.Context, id int64) (Supplier, error)
	Create(ctx context.Context, supplier Supplier) (Supplier, error)
	Update(ctx context.Context, id int64, updates map[string]any) (Supplier, error)
	Delete(ctx context.Context, id int64) (Supplier, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

const supplierColumns = `id, name, email, phone, address, created_at, updated_at`

func (r *repository) List(ctx context.Context, req ListSuppliersRequest) ([]Supplier, int, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM suppliers WHERE 1=1`
	args := []any{}

	if req.Name != "" {
		args = append(args, "%"+req.Name+"%")
		clause := ` AND name ILIKE $` + strconv.Itoa(len(args))
		query += clause
		countQuery += clause
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, db.MapError(err)
	}

	args = append(args, req.Limit)
	query += ` ORDER BY id ASC LIMIT $` + strconv.Itoa(len(args))
	args = append(args, req.Offset)
	query += ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, db.MapError(err)
	}
	defer rows.Close()

	var result []Supplier
	for rows.Next() {
		var s Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Address, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, db.MapError(err)
		}
		result = append(result, s)
	}
	return result, total, db.MapError(rows.Err())
}

func (r *repository) Get(ctx context.Context, id int64) (Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = $1`
	var s Supplier
	err := r.db.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Address, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return Supplier{}, db.MapError(err)
	}
	return s, nil
}

func (r *repository) Create(ctx context.Context, supplier Supplier) (Supplier, error) {
	query := `INSERT INTO suppliers (name, email, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5) RETURNING id, created_at, updated_at`
	now := time.Now().UTC()
	err := r.db.QueryRow(ctx, query, supplier.Name, supplier.Email, supplier.Phone, supplier.Address, now).
		Scan(&supplier.ID, &supplier.CreatedAt, &supplier.UpdatedAt)
	if err != nil {
		return Supplier{}, db.MapError(err)
	}
	return supplier, nil
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]any) (Supplier, error) {
	query := `UPDATE suppliers SET updated_at = $1`
	args := []any{time.Now().UTC()}

	for _, col := range []string{"name", "email", "phone", "address"} {
		if v, ok := updates[col]; ok {
			args = append(args, v)
			query += `, ` + col + ` = $` + strconv.Itoa(len(args))
		}
	}

	args = append(args, id)
	query += ` WHERE id = $` + strconv.Itoa(len(args)) + ` RETURNING ` + supplierColumns

	var s Supplier
	err := r.db.QueryRow(ctx, query, args...).Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Address, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return Supplier{}, db.MapError(err)
	}
	return s, nil
}

func (r *repository) Delete(ctx context.Context, id int64) (Supplier, error) {
	query := `DELETE FROM suppliers WHERE id = $1 RETURNING ` + supplierColumns
	var s Supplier
	err := r.db.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Address, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return Supplier{}, db.MapError(err)
	}
	return s, nil
}
