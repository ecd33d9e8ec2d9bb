package tools

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockroom/stockroom/internal/platform/db"
)

type Repository interface {
	List(ctx context.Context, req ListToolsRequest) ([]Tool, int, error)
	Get(ctx context.Context, id int64) (Tool, error)
	Create(ctx context.Context, tool Tool) (Tool, error)
	Update(ctx context.Context, id int64, updates map[string]any) (Tool, error)
	Delete(ctx context.Context, id int64) (Tool, error)
	AdjustCounter(ctx context.Context, id int64, field CounterField, delta int64) (Tool, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

const toolColumns = `id, name, vendor, total_owned, total_avail, created_at, updated_at`

func scanTool(row interface{ Scan(dest ...any) error }) (Tool, error) {
	var t Tool
	err := row.Scan(&t.ID, &t.Name, &t.Vendor, &t.TotalOwned, &t.TotalAvail, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *repository) List(ctx context.Context, req ListToolsRequest) ([]Tool, int, error) {
	query := `SELECT ` + toolColumns + ` FROM tools WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM tools WHERE 1=1`
	args := []any{}

	if req.Name != "" {
		args = append(args, "%"+req.Name+"%")
		clause := ` AND name ILIKE $` + strconv.Itoa(len(args))
		query += clause
		countQuery += clause
	}
	if req.Vendor != "" {
		args = append(args, "%"+req.Vendor+"%")
		clause := ` AND vendor ILIKE $` + strconv.Itoa(len(args))
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

	var result []Tool
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, 0, db.MapError(err)
		}
		result = append(result, t)
	}
	return result, total, db.MapError(rows.Err())
}

func (r *repository) Get(ctx context.Context, id int64) (Tool, error) {
	query := `SELECT ` + toolColumns + ` FROM tools WHERE id = $1`
	t, err := scanTool(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return Tool{}, db.MapError(err)
	}
	return t, nil
}

func (r *repository) Create(ctx context.Context, tool Tool) (Tool, error) {
	query := `INSERT INTO tools (name, vendor, total_owned, total_avail, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5) RETURNING ` + toolColumns
	now := time.Now().UTC()
	t, err := scanTool(r.db.QueryRow(ctx, query, tool.Name, tool.Vendor, tool.TotalOwned, tool.TotalAvail, now))
	if err != nil {
		return Tool{}, db.MapError(err)
	}
	return t, nil
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]any) (Tool, error) {
	query := `UPDATE tools SET updated_at = $1`
	args := []any{time.Now().UTC()}

	for _, col := range []string{"name", "vendor", "total_owned", "total_avail"} {
		if v, ok := updates[col]; ok {
			args = append(args, v)
			query += `, ` + col + ` = $` + strconv.Itoa(len(args))
		}
	}

	args = append(args, id)
	query += ` WHERE id = $` + strconv.Itoa(len(args)) + ` RETURNING ` + toolColumns

	t, err := scanTool(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return Tool{}, db.MapError(err)
	}
	return t, nil
}

func (r *repository) Delete(ctx context.Context, id int64) (Tool, error) {
	query := `DELETE FROM tools WHERE id = $1 RETURNING ` + toolColumns
	t, err := scanTool(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return Tool{}, db.MapError(err)
	}
	return t, nil
}

// AdjustCounter applies the delta in a single UPDATE; the table's check
// constraints reject any adjustment that breaks the counter invariants.
func (r *repository) AdjustCounter(ctx context.Context, id int64, field CounterField, delta int64) (Tool, error) {
	col := field.Column()
	query := `UPDATE tools SET ` + col + ` = ` + col + ` + $1, updated_at = $2 WHERE id = $3 RETURNING ` + toolColumns
	t, err := scanTool(r.db.QueryRow(ctx, query, delta, time.Now().UTC(), id))
	if err != nil {
		return Tool{}, db.MapError(err)
	}
	return t, nil
}
