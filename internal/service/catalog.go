package service

import (
	"context"
	"fmt"

	"github.com/ibitrepair/workshop/internal/logging"
	"github.com/ibitrepair/workshop/internal/models"
	"github.com/ibitrepair/workshop/internal/repo"
	"github.com/ibitrepair/workshop/internal/search"
)

// CatalogService manages brands and miner models. Model writes are mirrored
// into the search index, best effort.
type CatalogService struct {
	Repo   *repo.GormRepo
	Search *search.Client
}

func (s *CatalogService) GetBrand(ctx context.Context, id uint) (*models.Brand, error) {
	return s.Repo.GetBrand(ctx, id)
}

func (s *CatalogService) ListBrands(ctx context.Context) ([]models.Brand, error) {
	return s.Repo.ListBrands(ctx)
}

func (s *CatalogService) CreateBrand(ctx context.Context, b *models.Brand) error {
	if b.Name == "" {
		return fmt.Errorf("%w: brand name is required", ErrValidation)
	}
	return s.Repo.CreateBrand(ctx, b)
}

func (s *CatalogService) UpdateBrand(ctx context.Context, id uint, in *models.Brand) (*models.Brand, error) {
	cur, err := s.Repo.GetBrand(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: brand name is required", ErrValidation)
	}
	cur.Name = in.Name
	cur.LogoURL = in.LogoURL
	if err := s.Repo.SaveBrand(ctx, cur); err != nil {
		return nil, err
	}
	return cur, nil
}

func (s *CatalogService) DeleteBrand(ctx context.Context, id uint) error {
	return s.Repo.DeleteBrand(ctx, id)
}

func (s *CatalogService) GetMinerModel(ctx context.Context, id uint) (*models.MinerModel, error) {
	return s.Repo.GetMinerModel(ctx, id)
}

func (s *CatalogService) ListMinerModels(ctx context.Context, brandID uint, offset, limit int) (int64, []models.MinerModel, error) {
	return s.Repo.ListMinerModels(ctx, brandID, offset, limit)
}

func (s *CatalogService) CreateMinerModel(ctx context.Context, m *models.MinerModel) error {
	if m.ModelName == "" {
		return fmt.Errorf("%w: model name is required", ErrValidation)
	}
	brand, err := s.Repo.GetBrand(ctx, m.BrandID)
	if err != nil {
		return fmt.Errorf("%w: unknown brand", ErrValidation)
	}
	if err := s.Repo.CreateMinerModel(ctx, m); err != nil {
		return err
	}
	s.reindex(ctx, m, brand.Name)
	return nil
}

func (s *CatalogService) UpdateMinerModel(ctx context.Context, id uint, in *models.MinerModel) (*models.MinerModel, error) {
	cur, err := s.Repo.GetMinerModel(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.ModelName == "" {
		return nil, fmt.Errorf("%w: model name is required", ErrValidation)
	}
	brand, err := s.Repo.GetBrand(ctx, in.BrandID)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown brand", ErrValidation)
	}

	cur.BrandID = in.BrandID
	cur.ModelName = in.ModelName
	cur.HashRate = in.HashRate
	cur.PowerWatt = in.PowerWatt
	cur.Algorithm = in.Algorithm
	cur.ReleaseYear = in.ReleaseYear
	cur.Brand = nil

	if err := s.Repo.SaveMinerModel(ctx, cur); err != nil {
		return nil, err
	}
	s.reindex(ctx, cur, brand.Name)
	return cur, nil
}

func (s *CatalogService) DeleteMinerModel(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteMinerModel(ctx, id); err != nil {
		return err
	}
	if err := s.Search.DeleteDoc(ctx, "model", id); err != nil {
		logging.FromContext(ctx).Warn("search_delete_failed", "model_id", id, "error", err)
	}
	return nil
}

func (s *CatalogService) reindex(ctx context.Context, m *models.MinerModel, brandName string) {
	if err := s.Search.IndexMinerModel(ctx, m, brandName); err != nil {
		logging.FromContext(ctx).Warn("search_index_failed", "model_id", m.ID, "error", err)
	}
}
