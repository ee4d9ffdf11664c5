package service

import (
	"context"
	"fmt"

	"github.com/ibitrepair/workshop/internal/events"
	"github.com/ibitrepair/workshop/internal/logging"
	"github.com/ibitrepair/workshop/internal/models"
	"github.com/ibitrepair/workshop/internal/repo"
	"github.com/ibitrepair/workshop/internal/search"
)

// PartsService manages part categories and the parts inventory. Part writes
// are mirrored into the search index; stock mutations emit audit events.
type PartsService struct {
	Repo   *repo.GormRepo
	Search *search.Client
	Events *events.Producer
}

func (s *PartsService) GetCategory(ctx context.Context, id uint) (*models.PartCategory, error) {
	return s.Repo.GetPartCategory(ctx, id)
}

func (s *PartsService) ListCategories(ctx context.Context) ([]models.PartCategory, error) {
	return s.Repo.ListPartCategories(ctx)
}

func (s *PartsService) CreateCategory(ctx context.Context, c *models.PartCategory) error {
	if c.Name == "" {
		return fmt.Errorf("%w: category name is required", ErrValidation)
	}
	return s.Repo.CreatePartCategory(ctx, c)
}

func (s *PartsService) UpdateCategory(ctx context.Context, id uint, in *models.PartCategory) (*models.PartCategory, error) {
	cur, err := s.Repo.GetPartCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrValidation)
	}
	cur.Name = in.Name
	cur.Description = in.Description
	if err := s.Repo.SavePartCategory(ctx, cur); err != nil {
		return nil, err
	}
	return cur, nil
}

func (s *PartsService) DeleteCategory(ctx context.Context, id uint) error {
	return s.Repo.DeletePartCategory(ctx, id)
}

func (s *PartsService) GetPart(ctx context.Context, id uint) (*models.Part, error) {
	return s.Repo.GetPart(ctx, id)
}

func (s *PartsService) ListParts(ctx context.Context, categoryID uint, offset, limit int) (int64, []models.Part, error) {
	return s.Repo.ListParts(ctx, categoryID, offset, limit)
}

func (s *PartsService) CreatePart(ctx context.Context, p *models.Part) error {
	if err := validatePart(p); err != nil {
		return err
	}
	if _, err := s.Repo.GetPartCategory(ctx, p.CategoryID); err != nil {
		return fmt.Errorf("%w: unknown category", ErrValidation)
	}
	if err := s.Repo.CreatePart(ctx, p); err != nil {
		return err
	}
	s.reindex(ctx, p)
	return nil
}

func (s *PartsService) UpdatePart(ctx context.Context, id uint, in *models.Part) (*models.Part, error) {
	cur, err := s.Repo.GetPart(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validatePart(in); err != nil {
		return nil, err
	}
	if _, err := s.Repo.GetPartCategory(ctx, in.CategoryID); err != nil {
		return nil, fmt.Errorf("%w: unknown category", ErrValidation)
	}

	cur.CategoryID = in.CategoryID
	cur.PartName = in.PartName
	cur.PartCode = in.PartCode
	cur.Price = in.Price
	cur.StockQty = in.StockQty
	cur.MinStockLevel = in.MinStockLevel
	cur.Supplier = in.Supplier
	cur.Category = nil

	if err := s.Repo.SavePart(ctx, cur); err != nil {
		return nil, err
	}
	s.reindex(ctx, cur)
	return cur, nil
}

func (s *PartsService) DeletePart(ctx context.Context, id uint) error {
	if err := s.Repo.DeletePart(ctx, id); err != nil {
		return err
	}
	if err := s.Search.DeleteDoc(ctx, "part", id); err != nil {
		logging.FromContext(ctx).Warn("search_delete_failed", "part_id", id, "error", err)
	}
	return nil
}

// AdjustStock applies a signed delta to one part's stock. Underflow is
// rejected, not clamped.
func (s *PartsService) AdjustStock(ctx context.Context, id uint, delta int) (*models.Part, error) {
	l := logging.FromContext(ctx).With("svc", "parts.adjust_stock", "part_id", id)

	if delta == 0 {
		return nil, fmt.Errorf("%w: delta must be non-zero", ErrValidation)
	}

	part, err := s.Repo.AdjustPartStock(ctx, id, delta)
	if err != nil {
		return nil, err
	}

	l.Info("stock_adjusted", "delta", delta, "stock_qty", part.StockQty)
	if err := s.Events.PublishEvent(ctx, fmt.Sprint(id), map[string]any{
		"type":     "part_stock_adjusted",
		"partId":   id,
		"delta":    delta,
		"stockQty": part.StockQty,
	}); err != nil {
		l.Error("event_publish_failed", "error", err)
	}
	return part, nil
}

func (s *PartsService) reindex(ctx context.Context, p *models.Part) {
	if err := s.Search.IndexPart(ctx, p); err != nil {
		logging.FromContext(ctx).Warn("search_index_failed", "part_id", p.ID, "error", err)
	}
}

func validatePart(p *models.Part) error {
	if p.PartName == "" {
		return fmt.Errorf("%w: part name is required", ErrValidation)
	}
	if p.PartCode == "" {
		return fmt.Errorf("%w: part code is required", ErrValidation)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if p.StockQty < 0 || p.MinStockLevel < 0 {
		return fmt.Errorf("%w: stock levels cannot be negative", ErrValidation)
	}
	return nil
}
