package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// StockScanJob reports items whose on-hand quantity has fallen to or below
// a threshold.
type StockScanJob struct {
	Pool   *pgxpool.Pool
	Logger *slog.Logger
	Redis  *redis.Client
	clock  func() time.Time
}

// NewStockScanJob initialises the stock sweep handler.
func NewStockScanJob(pool *pgxpool.Pool, logger *slog.Logger, rdb *redis.Client) *StockScanJob {
	return &StockScanJob{
		Pool:   pool,
		Logger: logger,
		Redis:  rdb,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

type depletedItem struct {
	ID       int64
	Name     string
	SKU      string
	Quantity int
}

// Handle executes the stock sweep.
func (j *StockScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("stock scan: handler not configured")
	}
	var payload StockScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.Threshold < 0 {
		payload.Threshold = 0
	}

	lock := newRunLock(j.Redis, "stockroom:jobs:stock-scan", 10*time.Minute)
	ok, err := lock.Acquire(ctx)
	if err != nil {
		return err
	}
	if !ok {
		j.logger().Info("skipping stock scan, another run holds the lock")
		return nil
	}
	defer func() {
		if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
			j.logger().Warn("release stock scan lock", slog.Any("error", err))
		}
	}()

	start := j.now()
	logger := j.logger().With(slog.Int("threshold", payload.Threshold))
	logger.Info("starting stock scan")

	items, err := j.scan(ctx, payload.Threshold)
	if err != nil {
		logger.Error("scan failed", slog.Any("error", err))
		return err
	}

	for _, item := range items {
		logger.Warn("item stock depleted",
			slog.Int64("item_id", item.ID),
			slog.String("name", item.Name),
			slog.String("sku", item.SKU),
			slog.Int("quantity", item.Quantity),
		)
	}

	logger.Info("completed stock scan",
		slog.Int("depleted", len(items)),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func (j *StockScanJob) scan(ctx context.Context, threshold int) ([]depletedItem, error) {
	if j.Pool == nil {
		return nil, errors.New("stock scan: pool not configured")
	}
	rows, err := j.Pool.Query(ctx, `SELECT id, name, sku, quantity FROM items WHERE quantity <= $1 ORDER BY id`, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []depletedItem
	for rows.Next() {
		var item depletedItem
		if err := rows.Scan(&item.ID, &item.Name, &item.SKU, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (j *StockScanJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskStockScan))
	}
	return slog.Default().With(slog.String("job", TaskStockScan))
}

func (j *StockScanJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
