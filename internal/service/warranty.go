package service

import (
	"context"
	"fmt"

	"github.com/ibitrepair/workshop/internal/models"
	"github.com/ibitrepair/workshop/internal/repo"
)

type WarrantyService struct {
	Repo *repo.GormRepo
}

func (s *WarrantyService) Get(ctx context.Context, id uint) (*models.WarrantyProfile, error) {
	return s.Repo.GetWarrantyProfile(ctx, id)
}

func (s *WarrantyService) List(ctx context.Context) ([]models.WarrantyProfile, error) {
	return s.Repo.ListWarrantyProfiles(ctx)
}

func (s *WarrantyService) Create(ctx context.Context, w *models.WarrantyProfile) error {
	if err := validateWarranty(w); err != nil {
		return err
	}
	return s.Repo.CreateWarrantyProfile(ctx, w)
}

func (s *WarrantyService) Update(ctx context.Context, id uint, in *models.WarrantyProfile) (*models.WarrantyProfile, error) {
	cur, err := s.Repo.GetWarrantyProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateWarranty(in); err != nil {
		return nil, err
	}

	cur.Name = in.Name
	cur.DurationDays = in.DurationDays
	cur.CoversParts = in.CoversParts
	cur.CoversLabor = in.CoversLabor
	cur.Terms = in.Terms

	if err := s.Repo.SaveWarrantyProfile(ctx, cur); err != nil {
		return nil, err
	}
	return cur, nil
}

func (s *WarrantyService) Delete(ctx context.Context, id uint) error {
	return s.Repo.DeleteWarrantyProfile(ctx, id)
}

func validateWarranty(w *models.WarrantyProfile) error {
	if w.Name == "" {
		return fmt.Errorf("%w: profile name is required", ErrValidation)
	}
	if w.DurationDays < 0 {
		return fmt.Errorf("%w: duration cannot be negative", ErrValidation)
	}
	return nil
}
