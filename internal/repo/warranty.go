package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/ibitrepair/workshop/internal/models"
)

func (r *GormRepo) GetWarrantyProfile(ctx context.Context, id uint) (*models.WarrantyProfile, error) {
	var w models.WarrantyProfile
	if err := r.DB.WithContext(ctx).First(&w, id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *GormRepo) ListWarrantyProfiles(ctx context.Context) ([]models.WarrantyProfile, error) {
	var items []models.WarrantyProfile
	if err := r.DB.WithContext(ctx).Order("duration_days ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateWarrantyProfile(ctx context.Context, w *models.WarrantyProfile) error {
	return r.DB.WithContext(ctx).Create(w).Error
}

func (r *GormRepo) SaveWarrantyProfile(ctx context.Context, w *models.WarrantyProfile) error {
	return r.DB.WithContext(ctx).Save(w).Error
}

func (r *GormRepo) DeleteWarrantyProfile(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.WarrantyProfile{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DashboardCounts is the aggregate snapshot behind the dashboard page.
type DashboardCounts struct {
	Customers        int64 `json:"customers"`
	Brands           int64 `json:"brands"`
	MinerModels      int64 `json:"minerModels"`
	Parts            int64 `json:"parts"`
	WarrantyProfiles int64 `json:"warrantyProfiles"`
	Users            int64 `json:"users"`
}

func (r *GormRepo) CountDashboard(ctx context.Context) (*DashboardCounts, error) {
	var out DashboardCounts
	type pair struct {
		model any
		dst   *int64
	}
	for _, p := range []pair{
		{&models.Customer{}, &out.Customers},
		{&models.Brand{}, &out.Brands},
		{&models.MinerModel{}, &out.MinerModels},
		{&models.Part{}, &out.Parts},
		{&models.WarrantyProfile{}, &out.WarrantyProfiles},
		{&models.User{}, &out.Users},
	} {
		if err := r.DB.WithContext(ctx).Model(p.model).Count(p.dst).Error; err != nil {
			return nil, err
		}
	}
	return &out, nil
}
