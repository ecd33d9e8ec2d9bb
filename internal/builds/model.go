package builds

import (
	"time"
)

// Build represents an assembly that consumes items and requires tools.
type Build struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	SKU       string    `json:"sku"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BuildPart links a build to an item it consumes.
type BuildPart struct {
	BuildID          int64 `json:"build_id"`
	ItemID           int64 `json:"item_id"`
	QuantityRequired int64 `json:"quantity_required"`
}

// BuildTool links a build to a tool it requires.
type BuildTool struct {
	BuildID          int64 `json:"build_id"`
	ToolID           int64 `json:"tool_id"`
	QuantityRequired int64 `json:"quantity_required"`
}
