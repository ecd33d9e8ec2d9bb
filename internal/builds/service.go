package builds

import (
	"context"
	"fmt"

	"github.com/stockroom/stockroom/internal/items"
	"github.com/stockroom/stockroom/internal/platform/httpx"
	"github.com/stockroom/stockroom/internal/tools"
)

// ItemGetter resolves items when linking parts to a build.
type ItemGetter interface {
	Get(ctx context.Context, id int64) (items.Item, error)
}

// ToolGetter resolves tools when linking them to a build.
type ToolGetter interface {
	Get(ctx context.Context, id int64) (tools.Tool, error)
}

type Service struct {
	repo     Repository
	itemsSvc ItemGetter
	toolsSvc ToolGetter
}

func NewService(repo Repository, itemsSvc ItemGetter, toolsSvc ToolGetter) *Service {
	return &Service{repo: repo, itemsSvc: itemsSvc, toolsSvc: toolsSvc}
}

func (s *Service) List(ctx context.Context, req ListBuildsRequest) ([]Build, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Get(ctx context.Context, id int64) (Build, error) {
	if id <= 0 {
		return Build{}, fmt.Errorf("%w: build %d", httpx.ErrNotFound, id)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateBuildRequest) (Build, error) {
	return s.repo.Create(ctx, Build{Name: req.Name, SKU: req.SKU})
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateBuildRequest) (Build, error) {
	if id <= 0 {
		return Build{}, fmt.Errorf("%w: build %d", httpx.ErrNotFound, id)
	}
	if req.Empty() {
		return Build{}, httpx.NewFieldErrors(map[string]string{"body": "at least one field must be supplied"})
	}

	updates := make(map[string]any)
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.SKU != nil {
		updates["sku"] = *req.SKU
	}
	return s.repo.Update(ctx, id, updates)
}

// Delete removes a build together with its part and tool links, which cascade
// at the database level.
func (s *Service) Delete(ctx context.Context, id int64) (Build, error) {
	if id <= 0 {
		return Build{}, fmt.Errorf("%w: build %d", httpx.ErrNotFound, id)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListParts(ctx context.Context, buildID int64) ([]BuildPart, error) {
	if _, err := s.Get(ctx, buildID); err != nil {
		return nil, err
	}
	return s.repo.ListParts(ctx, buildID)
}

func (s *Service) GetPart(ctx context.Context, buildID, itemID int64) (BuildPart, error) {
	return s.repo.GetPart(ctx, buildID, itemID)
}

// AddPart links an item to a build. Both sides must exist; a missing item or
// build answers 404 rather than surfacing the FK violation as a conflict.
func (s *Service) AddPart(ctx context.Context, buildID int64, req AddRelationRequest) (BuildPart, error) {
	if _, err := s.itemsSvc.Get(ctx, req.RelationID); err != nil {
		return BuildPart{}, err
	}
	if _, err := s.Get(ctx, buildID); err != nil {
		return BuildPart{}, err
	}
	return s.repo.AddPart(ctx, BuildPart{
		BuildID:          buildID,
		ItemID:           req.RelationID,
		QuantityRequired: req.QuantityRequired,
	})
}

func (s *Service) UpdatePart(ctx context.Context, buildID, itemID int64, req UpdateRelationRequest) (BuildPart, error) {
	return s.repo.UpdatePart(ctx, buildID, itemID, req.QuantityRequired)
}

func (s *Service) DeletePart(ctx context.Context, buildID, itemID int64) (BuildPart, error) {
	return s.repo.DeletePart(ctx, buildID, itemID)
}

func (s *Service) ListTools(ctx context.Context, buildID int64) ([]BuildTool, error) {
	if _, err := s.Get(ctx, buildID); err != nil {
		return nil, err
	}
	return s.repo.ListTools(ctx, buildID)
}

func (s *Service) GetTool(ctx context.Context, buildID, toolID int64) (BuildTool, error) {
	return s.repo.GetTool(ctx, buildID, toolID)
}

// AddTool links a tool to a build, with the same existence rules as AddPart.
func (s *Service) AddTool(ctx context.Context, buildID int64, req AddRelationRequest) (BuildTool, error) {
	if _, err := s.toolsSvc.Get(ctx, req.RelationID); err != nil {
		return BuildTool{}, err
	}
	if _, err := s.Get(ctx, buildID); err != nil {
		return BuildTool{}, err
	}
	return s.repo.AddTool(ctx, BuildTool{
		BuildID:          buildID,
		ToolID:           req.RelationID,
		QuantityRequired: req.QuantityRequired,
	})
}

func (s *Service) UpdateTool(ctx context.Context, buildID, toolID int64, req UpdateRelationRequest) (BuildTool, error) {
	return s.repo.UpdateTool(ctx, buildID, toolID, req.QuantityRequired)
}

func (s *Service) DeleteTool(ctx context.Context, buildID, toolID int64) (BuildTool, error) {
	return s.repo.DeleteTool(ctx, buildID, toolID)
}
