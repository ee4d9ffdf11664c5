package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/ibitrepair/workshop/internal/models"
)

func (r *GormRepo) GetBrand(ctx context.Context, id uint) (*models.Brand, error) {
	var b models.Brand
	if err := r.DB.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *GormRepo) ListBrands(ctx context.Context) ([]models.Brand, error) {
	var items []models.Brand
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateBrand(ctx context.Context, b *models.Brand) error {
	return r.DB.WithContext(ctx).Create(b).Error
}

func (r *GormRepo) SaveBrand(ctx context.Context, b *models.Brand) error {
	return r.DB.WithContext(ctx).Save(b).Error
}

func (r *GormRepo) DeleteBrand(ctx context.Context, id uint) error {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.MinerModel{}).
		Where("brand_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrInUse
	}

	res := r.DB.WithContext(ctx).Delete(&models.Brand{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) GetMinerModel(ctx context.Context, id uint) (*models.MinerModel, error) {
	var m models.MinerModel
	if err := r.DB.WithContext(ctx).Preload("Brand").First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMinerModels pages through models, optionally narrowed to one brand.
func (r *GormRepo) ListMinerModels(ctx context.Context, brandID uint, offset, limit int) (int64, []models.MinerModel, error) {
	base := r.DB.WithContext(ctx).Model(&models.MinerModel{})
	if brandID != 0 {
		base = base.Where("brand_id = ?", brandID)
	}
	// reusable across the Count and Find finishers below
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.MinerModel
	if err := base.Preload("Brand").Order("id ASC").
		Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) CreateMinerModel(ctx context.Context, m *models.MinerModel) error {
	return r.DB.WithContext(ctx).Create(m).Error
}

func (r *GormRepo) SaveMinerModel(ctx context.Context, m *models.MinerModel) error {
	return r.DB.WithContext(ctx).Save(m).Error
}

func (r *GormRepo) DeleteMinerModel(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.MinerModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
