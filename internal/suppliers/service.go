package suppliers

import (
	"context"
	"fmt"

	"github.com/stockroom/stockroom/internal/platform/httpx"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, req ListSuppliersRequest) ([]Supplier, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Get(ctx context.Context, id int64) (Supplier, error) {
	if id <= 0 {
		return Supplier{}, fmt.Errorf("%w: supplier %d", httpx.ErrNotFound, id)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateSupplierRequest) (Supplier, error) {
	supplier := Supplier{
		Name:    req.Name,
		Email:   deref(req.Email),
		Phone:   deref(req.Phone),
		Address: deref(req.Address),
	}
	return s.repo.Create(ctx, supplier)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateSupplierRequest) (Supplier, error) {
	if id <= 0 {
		return Supplier{}, fmt.Errorf("%w: supplier %d", httpx.ErrNotFound, id)
	}
	if req.Empty() {
		return Supplier{}, httpx.NewFieldErrors(map[string]string{"body": "at least one field must be supplied"})
	}

	updates := make(map[string]any)
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	return s.repo.Update(ctx, id, updates)
}

// Delete removes a supplier. A supplier still referenced by items is kept and
// the call fails with a conflict, per the ON DELETE RESTRICT policy.
func (s *Service) Delete(ctx context.Context, id int64) (Supplier, error) {
	if id <= 0 {
		return Supplier{}, fmt.Errorf("%w: supplier %d", httpx.ErrNotFound, id)
	}
	return s.repo.Delete(ctx, id)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
