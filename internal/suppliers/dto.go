package suppliers

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

type CreateSupplierRequest struct {
	Name    string  `json:"name" validate:"required,max=200"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=500"`
}

type UpdateSupplierRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=500"`
}

// Empty reports whether the patch carries no fields at all.
func (r UpdateSupplierRequest) Empty() bool {
	return r.Name == nil && r.Email == nil && r.Phone == nil && r.Address == nil
}

type ListSuppliersRequest struct {
	Name   string
	Limit  int
	Offset int
}

// Normalize trims whitespace and applies Unicode NFC to text fields.
func (r *CreateSupplierRequest) Normalize() {
	r.Name = normalize(r.Name)
	if r.Email != nil {
		*r.Email = normalize(*r.Email)
	}
}

func (r *UpdateSupplierRequest) Normalize() {
	if r.Name != nil {
		*r.Name = normalize(*r.Name)
	}
	if r.Email != nil {
		*r.Email = normalize(*r.Email)
	}
}

func normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
