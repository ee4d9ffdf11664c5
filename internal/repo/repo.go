package repo

import "gorm.io/gorm"

// GormRepo is the single data-access handle shared by all services. The *gorm.DB
// inside is created once at startup and closed on shutdown.
type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}
