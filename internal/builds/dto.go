package builds

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

type CreateBuildRequest struct {
	Name string `json:"name" validate:"required,max=200"`
	SKU  string `json:"sku" validate:"required,max=100"`
}

type UpdateBuildRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	SKU  *string `json:"sku,omitempty" validate:"omitempty,min=1,max=100"`
}

// Empty reports whether the patch carries no fields at all.
func (r UpdateBuildRequest) Empty() bool {
	return r.Name == nil && r.SKU == nil
}

// AddRelationRequest links an item or tool to a build.
type AddRelationRequest struct {
	RelationID       int64 `json:"relation_id" validate:"required,gt=0"`
	QuantityRequired int64 `json:"quantity_required" validate:"required,gt=0"`
}

// UpdateRelationRequest changes how much of a linked item or tool a build needs.
type UpdateRelationRequest struct {
	QuantityRequired int64 `json:"quantity_required" validate:"required,gt=0"`
}

type ListBuildsRequest struct {
	Name   string
	SKU    string
	Limit  int
	Offset int
}

// Normalize trims whitespace and applies Unicode NFC to text fields.
func (r *CreateBuildRequest) Normalize() {
	r.Name = normalize(r.Name)
	r.SKU = normalize(r.SKU)
}

func (r *UpdateBuildRequest) Normalize() {
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
