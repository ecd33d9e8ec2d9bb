package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskStockScan sweeps items for depleted or near-depleted stock.
	TaskStockScan = "stock:scan"
	// TaskToolIntegrity verifies tool counter invariants.
	TaskToolIntegrity = "tools:integrity"
)

// StockScanPayload configures a stock sweep run.
type StockScanPayload struct {
	Threshold    int       `json:"threshold"`
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewStockScanTask constructs an Asynq task for a stock sweep.
func NewStockScanTask(threshold int, at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(StockScanPayload{Threshold: threshold, ScheduledFor: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskStockScan, body, asynq.Queue(QueueDefault)), nil
}

// ToolIntegrityPayload carries scheduling metadata for the integrity sweep.
type ToolIntegrityPayload struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewToolIntegrityTask constructs an Asynq task for the tool counter sweep.
func NewToolIntegrityTask(at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(ToolIntegrityPayload{ScheduledFor: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskToolIntegrity, body, asynq.Queue(QueueDefault)), nil
}
