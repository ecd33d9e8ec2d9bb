package items

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

func (s *Service) List(ctx context.Context, req ListItemsRequest) ([]Item, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Get(ctx context.Context, id int64) (Item, error) {
	if id <= 0 {
		return Item{}, fmt.Errorf("%w: item %d", httpx.ErrNotFound, id)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateItemRequest) (Item, error) {
	itemType := ItemType(req.Type)
	if itemType == "" {
		itemType = ItemTypePart
	}
	item := Item{
		Name:       req.Name,
		SKU:        req.SKU,
		Type:       itemType,
		Quantity:   req.Quantity,
		SupplierID: req.SupplierID,
	}
	return s.repo.Create(ctx, item)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateItemRequest) (Item, error) {
	if id <= 0 {
		return Item{}, fmt.Errorf("%w: item %d", httpx.ErrNotFound, id)
	}
	if req.Empty() {
		return Item{}, httpx.NewFieldErrors(map[string]string{"body": "at least one field must be supplied"})
	}

	updates := make(map[string]any)
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.SKU != nil {
		updates["sku"] = *req.SKU
	}
	if req.Type != nil {
		updates["item_type"] = *req.Type
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.SupplierID != nil {
		updates["supplier_id"] = *req.SupplierID
	}
	return s.repo.Update(ctx, id, updates)
}

// Delete removes an item. Items still required by a build are kept and the
// call fails with a conflict.
func (s *Service) Delete(ctx context.Context, id int64) (Item, error) {
	if id <= 0 {
		return Item{}, fmt.Errorf("%w: item %d", httpx.ErrNotFound, id)
	}
	return s.repo.Delete(ctx, id)
}

// AdjustQuantity shifts stock by a signed delta, for callers that counted
// what they took rather than what remains.
func (s *Service) AdjustQuantity(ctx context.Context, id int64, delta int64) (Item, error) {
	if id <= 0 {
		return Item{}, fmt.Errorf("%w: item %d", httpx.ErrNotFound, id)
	}
	if delta == 0 {
		return Item{}, httpx.NewFieldErrors(map[string]string{"delta": "must be non-zero"})
	}
	return s.repo.AdjustQuantity(ctx, id, delta)
}
