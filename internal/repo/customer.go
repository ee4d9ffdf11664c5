package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/ibitrepair/workshop/internal/models"
)

func (r *GormRepo) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	var c models.Customer
	if err := r.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCustomers pages through customers, optionally narrowed by a name/phone
// substring.
func (r *GormRepo) ListCustomers(ctx context.Context, q string, offset, limit int) (int64, []models.Customer, error) {
	base := r.DB.WithContext(ctx).Model(&models.Customer{})
	if q != "" {
		like := "%" + q + "%"
		base = base.Where("name LIKE ? OR phone LIKE ?", like, like)
	}
	// reusable across the Count and Find finishers below
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Customer
	if err := base.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) CreateCustomer(ctx context.Context, c *models.Customer) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *GormRepo) SaveCustomer(ctx context.Context, c *models.Customer) error {
	return r.DB.WithContext(ctx).Save(c).Error
}

func (r *GormRepo) DeleteCustomer(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Customer{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
