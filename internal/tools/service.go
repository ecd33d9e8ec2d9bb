package tools

import (
	"context"
	"fmt"

	"github.com/stockroom/stockroom/internal/platform/httpx"
)

// Op names the direction of an atomic counter adjustment.
type Op string

const (
	OpIncrement Op = "increment"
	OpDecrement Op = "decrement"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, req ListToolsRequest) ([]Tool, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Get(ctx context.Context, id int64) (Tool, error) {
	if id <= 0 {
		return Tool{}, fmt.Errorf("%w: tool %d", httpx.ErrNotFound, id)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateToolRequest) (Tool, error) {
	tool := Tool{
		Name:       req.Name,
		Vendor:     req.Vendor,
		TotalOwned: req.TotalOwned,
		TotalAvail: req.TotalAvail,
	}
	return s.repo.Create(ctx, tool)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateToolRequest) (Tool, error) {
	if id <= 0 {
		return Tool{}, fmt.Errorf("%w: tool %d", httpx.ErrNotFound, id)
	}
	if req.Empty() {
		return Tool{}, httpx.NewFieldErrors(map[string]string{"body": "at least one field must be supplied"})
	}
	if req.TotalOwned != nil && req.TotalAvail != nil && *req.TotalAvail > *req.TotalOwned {
		return Tool{}, httpx.NewFieldErrors(map[string]string{"total_avail": "must be at most total_owned"})
	}

	updates := make(map[string]any)
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Vendor != nil {
		updates["vendor"] = *req.Vendor
	}
	if req.TotalOwned != nil {
		updates["total_owned"] = *req.TotalOwned
	}
	if req.TotalAvail != nil {
		updates["total_avail"] = *req.TotalAvail
	}
	return s.repo.Update(ctx, id, updates)
}

// Delete removes a tool. Tools still required by a build are kept and the
// call fails with a conflict.
func (s *Service) Delete(ctx context.Context, id int64) (Tool, error) {
	if id <= 0 {
		return Tool{}, fmt.Errorf("%w: tool %d", httpx.ErrNotFound, id)
	}
	return s.repo.Delete(ctx, id)
}

// AdjustCounter increments or decrements one counter field, returning the
// value before and after so callers checking out tools see both.
func (s *Service) AdjustCounter(ctx context.Context, id int64, field CounterField, op Op, amount int64) (CounterUpdate, error) {
	if id <= 0 {
		return CounterUpdate{}, fmt.Errorf("%w: tool %d", httpx.ErrNotFound, id)
	}
	if field != FieldOwned && field != FieldAvailable {
		return CounterUpdate{}, httpx.NewFieldErrors(map[string]string{"field": "must be one of: owned, available"})
	}
	if op != OpIncrement && op != OpDecrement {
		return CounterUpdate{}, httpx.NewFieldErrors(map[string]string{"op": "must be one of: increment, decrement"})
	}
	if amount <= 0 {
		amount = 1
	}

	delta := amount
	if op == OpDecrement {
		delta = -amount
	}

	tool, err := s.repo.AdjustCounter(ctx, id, field, delta)
	if err != nil {
		return CounterUpdate{}, err
	}

	current := tool.TotalAvail
	if field == FieldOwned {
		current = tool.TotalOwned
	}
	return CounterUpdate{
		ToolID:   tool.ID,
		Field:    field,
		Previous: current - delta,
		Current:  current,
	}, nil
}
