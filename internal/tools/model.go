package tools

import (
	"time"
)

// Tool represents a company-owned tool tracked for build capacity.
// total_avail counts the tools currently on the shelf; the rest are
// checked out. The table enforces total_owned >= total_avail >= 0.
type Tool struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Vendor     string    `json:"vendor"`
	TotalOwned int64     `json:"total_owned"`
	TotalAvail int64     `json:"total_avail"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CounterField names a tool counter that supports atomic adjustment.
type CounterField string

const (
	FieldOwned     CounterField = "owned"
	FieldAvailable CounterField = "available"
)

// Column returns the SQL column backing the counter field.
func (f CounterField) Column() string {
	if f == FieldOwned {
		return "total_owned"
	}
	return "total_avail"
}

// CounterUpdate reports the result of an atomic counter adjustment.
type CounterUpdate struct {
	ToolID   int64        `json:"tool_id"`
	Field    CounterField `json:"field"`
	Previous int64        `json:"previous"`
	Current  int64        `json:"current"`
}
