package builds

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockroom/stockroom/internal/platform/db"
)

type Repository interface {
	List(ctx context.Context, req ListBuildsRequest) ([]Build, int, error)
	Get(ctx context.Context, id int64) (Build, error)
	Create(ctx context.Context, build Build) (Build, error)
	Update(ctx context.Context, id int64, updates map[string]any) (Build, error)
	Delete(ctx context.Context, id int64) (Build, error)

	ListParts(ctx context.Context, buildID int64) ([]BuildPart, error)
	GetPart(ctx context.Context, buildID, itemID int64) (BuildPart, error)
	AddPart(ctx context.Context, part BuildPart) (BuildPart, error)
	UpdatePart(ctx context.Context, buildID, itemID, quantity int64) (BuildPart, error)
	DeletePart(ctx context.Context, buildID, itemID int64) (BuildPart, error)

	ListTools(ctx context.Context, buildID int64) ([]BuildTool, error)
	GetTool(ctx context.Context, buildID, toolID int64) (BuildTool, error)
	AddTool(ctx context.Context, link BuildTool) (BuildTool, error)
	UpdateTool(ctx context.Context, buildID, toolID, quantity int64) (BuildTool, error)
	DeleteTool(ctx context.Context, buildID, toolID int64) (BuildTool, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

const buildColumns = `id, name, sku, created_at, updated_at`

func scanBuild(row interface{ Scan(dest ...any) error }) (Build, error) {
	var b Build
	err := row.Scan(&b.ID, &b.Name, &b.SKU, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (r *repository) List(ctx context.Context, req ListBuildsRequest) ([]Build, int, error) {
	query := `SELECT ` + buildColumns + ` FROM builds WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM builds WHERE 1=1`
	args := []any{}

	if req.Name != "" {
		args = append(args, "%"+req.Name+"%")
		clause := ` AND name ILIKE $` + strconv.Itoa(len(args))
		query += clause
		countQuery += clause
	}
	if req.SKU != "" {
		args = append(args, req.SKU)
		clause := ` AND sku = $` + strconv.Itoa(len(args))
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

	var result []Build
	for rows.Next() {
		b, err := scanBuild(rows)
		if err != nil {
			return nil, 0, db.MapError(err)
		}
		result = append(result, b)
	}
	return result, total, db.MapError(rows.Err())
}

func (r *repository) Get(ctx context.Context, id int64) (Build, error) {
	query := `SELECT ` + buildColumns + ` FROM builds WHERE id = $1`
	b, err := scanBuild(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return Build{}, db.MapError(err)
	}
	return b, nil
}

func (r *repository) Create(ctx context.Context, build Build) (Build, error) {
	query := `INSERT INTO builds (name, sku, created_at, updated_at)
		VALUES ($1, $2, $3, $3) RETURNING ` + buildColumns
	now := time.Now().UTC()
	b, err := scanBuild(r.db.QueryRow(ctx, query, build.Name, build.SKU, now))
	if err != nil {
		return Build{}, db.MapError(err)
	}
	return b, nil
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]any) (Build, error) {
	query := `UPDATE builds SET updated_at = $1`
	args := []any{time.Now().UTC()}

	for _, col := range []string{"name", "sku"} {
		if v, ok := updates[col]; ok {
			args = append(args, v)
			query += `, ` + col + ` = $` + strconv.Itoa(len(args))
		}
	}

	args = append(args, id)
	query += ` WHERE id = $` + strconv.Itoa(len(args)) + ` RETURNING ` + buildColumns

	b, err := scanBuild(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return Build{}, db.MapError(err)
	}
	return b, nil
}

func (r *repository) Delete(ctx context.Context, id int64) (Build, error) {
	query := `DELETE FROM builds WHERE id = $1 RETURNING ` + buildColumns
	b, err := scanBuild(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return Build{}, db.MapError(err)
	}
	return b, nil
}

func (r *repository) ListParts(ctx context.Context, buildID int64) ([]BuildPart, error) {
	query := `SELECT build_id, item_id, quantity_required FROM build_parts WHERE build_id = $1 ORDER BY item_id ASC`
	rows, err := r.db.Query(ctx, query, buildID)
	if err != nil {
		return nil, db.MapError(err)
	}
	defer rows.Close()

	var result []BuildPart
	for rows.Next() {
		var p BuildPart
		if err := rows.Scan(&p.BuildID, &p.ItemID, &p.QuantityRequired); err != nil {
			return nil, db.MapError(err)
		}
		result = append(result, p)
	}
	return result, db.MapError(rows.Err())
}

func (r *repository) GetPart(ctx context.Context, buildID, itemID int64) (BuildPart, error) {
	query := `SELECT build_id, item_id, quantity_required FROM build_parts WHERE build_id = $1 AND item_id = $2`
	var p BuildPart
	if err := r.db.QueryRow(ctx, query, buildID, itemID).Scan(&p.BuildID, &p.ItemID, &p.QuantityRequired); err != nil {
		return BuildPart{}, db.MapError(err)
	}
	return p, nil
}

func (r *repository) AddPart(ctx context.Context, part BuildPart) (BuildPart, error) {
	query := `INSERT INTO build_parts (build_id, item_id, quantity_required)
		VALUES ($1, $2, $3) RETURNING build_id, item_id, quantity_required`
	var p BuildPart
	err := r.db.QueryRow(ctx, query, part.BuildID, part.ItemID, part.QuantityRequired).
		Scan(&p.BuildID, &p.ItemID, &p.QuantityRequired)
	if err != nil {
		return BuildPart{}, db.MapError(err)
	}
	return p, nil
}

func (r *repository) UpdatePart(ctx context.Context, buildID, itemID, quantity int64) (BuildPart, error) {
	query := `UPDATE build_parts SET quantity_required = $1 WHERE build_id = $2 AND item_id = $3
		RETURNING build_id, item_id, quantity_required`
	var p BuildPart
	if err := r.db.QueryRow(ctx, query, quantity, buildID, itemID).Scan(&p.BuildID, &p.ItemID, &p.QuantityRequired); err != nil {
		return BuildPart{}, db.MapError(err)
	}
	return p, nil
}

func (r *repository) DeletePart(ctx context.Context, buildID, itemID int64) (BuildPart, error) {
	query := `DELETE FROM build_parts WHERE build_id = $1 AND item_id = $2
		RETURNING build_id, item_id, quantity_required`
	var p BuildPart
	if err := r.db.QueryRow(ctx, query, buildID, itemID).Scan(&p.BuildID, &p.ItemID, &p.QuantityRequired); err != nil {
		return BuildPart{}, db.MapError(err)
	}
	return p, nil
}

func (r *repository) ListTools(ctx context.Context, buildID int64) ([]BuildTool, error) {
	query := `SELECT build_id, tool_id, quantity_required FROM build_tools WHERE build_id = $1 ORDER BY tool_id ASC`
	rows, err := r.db.Query(ctx, query, buildID)
	if err != nil {
		return nil, db.MapError(err)
	}
	defer rows.Close()

	var result []BuildTool
	for rows.Next() {
		var t BuildTool
		if err := rows.Scan(&t.BuildID, &t.ToolID, &t.QuantityRequired); err != nil {
			return nil, db.MapError(err)
		}
		result = append(result, t)
	}
	return result, db.MapError(rows.Err())
}

func (r *repository) GetTool(ctx context.Context, buildID, toolID int64) (BuildTool, error) {
	query := `SELECT build_id, tool_id, quantity_required FROM build_tools WHERE build_id = $1 AND tool_id = $2`
	var t BuildTool
	if err := r.db.QueryRow(ctx, query, buildID, toolID).Scan(&t.BuildID, &t.ToolID, &t.QuantityRequired); err != nil {
		return BuildTool{}, db.MapError(err)
	}
	return t, nil
}

func (r *repository) AddTool(ctx context.Context, link BuildTool) (BuildTool, error) {
	query := `INSERT INTO build_tools (build_id, tool_id, quantity_required)
		VALUES ($1, $2, $3) RETURNING build_id, tool_id, quantity_required`
	var t BuildTool
	err := r.db.QueryRow(ctx, query, link.BuildID, link.ToolID, link.QuantityRequired).
		Scan(&t.BuildID, &t.ToolID, &t.QuantityRequired)
	if err != nil {
		return BuildTool{}, db.MapError(err)
	}
	return t, nil
}

func (r *repository) UpdateTool(ctx context.Context, buildID, toolID, quantity int64) (BuildTool, error) {
	query := `UPDATE build_tools SET quantity_required = $1 WHERE build_id = $2 AND tool_id = $3
		RETURNING build_id, tool_id, quantity_required`
	var t BuildTool
	if err := r.db.QueryRow(ctx, query, quantity, buildID, toolID).Scan(&t.BuildID, &t.ToolID, &t.QuantityRequired); err != nil {
		return BuildTool{}, db.MapError(err)
	}
	return t, nil
}

func (r *repository) DeleteTool(ctx context.Context, buildID, toolID int64) (BuildTool, error) {
	query := `DELETE FROM build_tools WHERE build_id = $1 AND tool_id = $2
		RETURNING build_id, tool_id, quantity_required`
	var t BuildTool
	if err := r.db.QueryRow(ctx, query, buildID, toolID).Scan(&t.BuildID, &t.ToolID, &t.QuantityRequired); err != nil {
		return BuildTool{}, db.MapError(err)
	}
	return t, nil
}
