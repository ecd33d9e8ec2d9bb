package items

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockroom/stockroom/internal/platform/db"
)

type Repository interface {
	List(ctx context.Context, req ListItemsRequest) ([]Item, int, error)
	Get(ctx context.Context, id int64) (Item, error)
	Create(ctx context.Context, item Item) (Item, error)
	Update(ctx context.Context, id int64, updates map[string]any) (Item, error)
	Delete(ctx context.Context, id int64) (Item, error)
	AdjustQuantity(ctx context.Context, id int64, delta int64) (Item, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

const itemColumns = `id, name, sku, item_type, quantity, supplier_id, created_at, updated_at`

func scanItem(row interface{ Scan(dest ...any) error }) (Item, error) {
	var it Item
	err := row.Scan(&it.ID, &it.Name, &it.SKU, &it.Type, &it.Quantity, &it.SupplierID, &it.CreatedAt, &it.UpdatedAt)
	return it, err
}

func (r *repository) List(ctx context.Context, req ListItemsRequest) ([]Item, int, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM items WHERE 1=1`
	args := []any{}

	appendClause := func(clause string, value any) {
		args = append(args, value)
		suffix := clause + `$` + strconv.Itoa(len(args))
		query += suffix
		countQuery += suffix
	}

	if req.Name != "" {
		appendClause(` AND name ILIKE `, "%"+req.Name+"%")
	}
	if req.SKU != "" {
		appendClause(` AND sku = `, req.SKU)
	}
	if req.Type != "" {
		appendClause(` AND item_type = `, req.Type)
	}
	if req.SupplierID != nil {
		appendClause(` AND supplier_id = `, *req.SupplierID)
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

	var result []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, 0, db.MapError(err)
		}
		result = append(result, it)
	}
	return result, total, db.MapError(rows.Err())
}

func (r *repository) Get(ctx context.Context, id int64) (Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	it, err := scanItem(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return Item{}, db.MapError(err)
	}
	return it, nil
}

func (r *repository) Create(ctx context.Context, item Item) (Item, error) {
	query := `INSERT INTO items (name, sku, item_type, quantity, supplier_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6) RETURNING ` + itemColumns
	now := time.Now().UTC()
	it, err := scanItem(r.db.QueryRow(ctx, query, item.Name, item.SKU, item.Type, item.Quantity, item.SupplierID, now))
	if err != nil {
		return Item{}, db.MapError(err)
	}
	return it, nil
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]any) (Item, error) {
	query := `UPDATE items SET updated_at = $1`
	args := []any{time.Now().UTC()}

	for _, col := range []string{"name", "sku", "item_type", "quantity", "supplier_id"} {
		if v, ok := updates[col]; ok {
			args = append(args, v)
			query += `, ` + col + ` = $` + strconv.Itoa(len(args))
		}
	}

	args = append(args, id)
	query += ` WHERE id = $` + strconv.Itoa(len(args)) + ` RETURNING ` + itemColumns

	it, err := scanItem(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return Item{}, db.MapError(err)
	}
	return it, nil
}

func (r *repository) Delete(ctx context.Context, id int64) (Item, error) {
	query := `DELETE FROM items WHERE id = $1 RETURNING ` + itemColumns
	it, err := scanItem(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return Item{}, db.MapError(err)
	}
	return it, nil
}

// AdjustQuantity applies the delta in a single UPDATE so concurrent
// adjustments serialize on the row lock. The quantity >= 0 check constraint
// rejects deltas that would drive stock negative.
func (r *repository) AdjustQuantity(ctx context.Context, id int64, delta int64) (Item, error) {
	query := `UPDATE items SET quantity = quantity + $1, updated_at = $2 WHERE id = $3 RETURNING ` + itemColumns
	it, err := scanItem(r.db.QueryRow(ctx, query, delta, time.Now().UTC(), id))
	if err != nil {
		return Item{}, db.MapError(err)
	}
	return it, nil
}
