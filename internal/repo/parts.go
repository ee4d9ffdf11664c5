package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ibitrepair/workshop/internal/models"
)

// ErrInUse marks deletions blocked by dependent rows.
var ErrInUse = errors.New("record is referenced by other rows")

// ErrStockUnderflow marks a stock adjustment that would go below zero.
var ErrStockUnderflow = errors.New("stock cannot go below zero")

func (r *GormRepo) GetPartCategory(ctx context.Context, id uint) (*models.PartCategory, error) {
	var c models.PartCategory
	if err := r.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormRepo) ListPartCategories(ctx context.Context) ([]models.PartCategory, error) {
	var items []models.PartCategory
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreatePartCategory(ctx context.Context, c *models.PartCategory) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *GormRepo) SavePartCategory(ctx context.Context, c *models.PartCategory) error {
	return r.DB.WithContext(ctx).Save(c).Error
}

func (r *GormRepo) DeletePartCategory(ctx context.Context, id uint) error {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Part{}).
		Where("category_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrInUse
	}

	res := r.DB.WithContext(ctx).Delete(&models.PartCategory{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) GetPart(ctx context.Context, id uint) (*models.Part, error) {
	var p models.Part
	if err := r.DB.WithContext(ctx).Preload("Category").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepo) ListParts(ctx context.Context, categoryID uint, offset, limit int) (int64, []models.Part, error) {
	base := r.DB.WithContext(ctx).Model(&models.Part{})
	if categoryID != 0 {
		base = base.Where("category_id = ?", categoryID)
	}
	// reusable across the Count and Find finishers below
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Part
	if err := base.Preload("Category").Order("id ASC").
		Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) CreatePart(ctx context.Context, p *models.Part) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormRepo) SavePart(ctx context.Context, p *models.Part) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

func (r *GormRepo) DeletePart(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Part{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AdjustPartStock applies a signed delta to one part's stock in a single
// guarded UPDATE, so two concurrent adjustments cannot drive the count
// negative.
func (r *GormRepo) AdjustPartStock(ctx context.Context, id uint, delta int) (*models.Part, error) {
	res := r.DB.WithContext(ctx).Model(&models.Part{}).
		Where("id = ? AND stock_qty + ? >= 0", id, delta).
		Update("stock_qty", gorm.Expr("stock_qty + ?", delta))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Either no such part, or the delta would underflow.
		if _, err := r.GetPart(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrStockUnderflow
	}
	return r.GetPart(ctx, id)
}

// ListLowStockParts returns parts at or below their minimum stock level.
func (r *GormRepo) ListLowStockParts(ctx context.Context) ([]models.Part, error) {
	var items []models.Part
	if err := r.DB.WithContext(ctx).Preload("Category").
		Where("stock_qty <= min_stock_level").
		Order("stock_qty ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
