package items

import (
	"time"
)

// ItemType enumerates the supported kinds of stocked items.
type ItemType string

const (
	// ItemTypePart covers discrete components, e.g. nails.
	ItemTypePart ItemType = "part"
	// ItemTypeMaterial covers bulk stock, e.g. lumber.
	ItemTypeMaterial ItemType = "material"
)

// Item represents a stocked inventory item.
type Item struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	SKU        string    `json:"sku"`
	Type       ItemType  `json:"type"`
	Quantity   int64     `json:"quantity"`
	SupplierID *int64    `json:"supplier_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
