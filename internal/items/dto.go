package items

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

type CreateItemRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	SKU        string `json:"sku" validate:"required,max=100"`
	Type       string `json:"type" validate:"omitempty,oneof=part material"`
	Quantity   int64  `json:"quantity" validate:"gte=0"`
	SupplierID *int64 `json:"supplier_id,omitempty" validate:"omitempty,gt=0"`
}

type UpdateItemRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	SKU        *string `json:"sku,omitempty" validate:"omitempty,min=1,max=100"`
	Type       *string `json:"type,omitempty" validate:"omitempty,oneof=part material"`
	Quantity   *int64  `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	SupplierID *int64  `json:"supplier_id,omitempty" validate:"omitempty,gt=0"`
}

// Empty reports whether the patch carries no fields at all.
func (r UpdateItemRequest) Empty() bool {
	return r.Name == nil && r.SKU == nil && r.Type == nil && r.Quantity == nil && r.SupplierID == nil
}

// AdjustQuantityRequest applies a signed stock delta, e.g. -3 after taking
// three items off the shelf.
type AdjustQuantityRequest struct {
	Delta int64 `json:"delta" validate:"required"`
}

type ListItemsRequest struct {
	Name       string
	SKU        string
	Type       string
	SupplierID *int64
	Limit      int
	Offset     int
}

// Normalize trims whitespace and applies Unicode NFC to text fields so the
// SKU uniqueness check compares canonical forms.
func (r *CreateItemRequest) Normalize() {
	r.Name = normalize(r.Name)
	r.SKU = normalize(r.SKU)
}

func (r *UpdateItemRequest) Normalize() {
	if r.Name != nil {
		*r.Name = normalize(*r.Name)
	}
	if r.SKU != nil {
		*r.SKU = normalize(*r.SKU)
	}
}

func normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
