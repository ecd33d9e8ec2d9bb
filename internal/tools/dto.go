package tools

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

type CreateToolRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	Vendor     string `json:"vendor" validate:"required,max=200"`
	TotalOwned int64  `json:"total_owned" validate:"gt=0"`
	TotalAvail int64  `json:"total_avail" validate:"gte=0,ltefield=TotalOwned"`
}

type UpdateToolRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Vendor     *string `json:"vendor,omitempty" validate:"omitempty,min=1,max=200"`
	TotalOwned *int64  `json:"total_owned,omitempty" validate:"omitempty,gt=0"`
	TotalAvail *int64  `json:"total_avail,omitempty" validate:"omitempty,gte=0"`
}

// Empty reports whether the patch carries no fields at all.
func (r UpdateToolRequest) Empty() bool {
	return r.Name == nil && r.Vendor == nil && r.TotalOwned == nil && r.TotalAvail == nil
}

// AdjustCounterRequest changes one counter by a positive amount; the
// direction comes from the URL (increment or decrement).
type AdjustCounterRequest struct {
	Amount int64 `json:"amount" validate:"omitempty,gte=1"`
}

type ListToolsRequest struct {
	Name   string
	Vendor string
	Limit  int
	Offset int
}

// Normalize trims whitespace and applies Unicode NFC to text fields.
func (r *CreateToolRequest) Normalize() {
	r.Name = normalize(r.Name)
	r.Vendor = normalize(r.Vendor)
}

func (r *UpdateToolRequest) Normalize() {
	if r.Name != nil {
		*r.Name = normalize(*r.Name)
	}
	if r.Vendor != nil {
		*r.Vendor = normalize(*r.Vendor)
	}
}

func normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
