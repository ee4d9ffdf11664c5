package models

import "time"

const (
	RoleAdmin        = "ADMIN"
	RoleManager      = "MANAGER"
	RoleTechnician   = "TECHNICIAN"
	RoleReceptionist = "RECEPTIONIST"
)

func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleTechnician, RoleReceptionist:
		return true
	}
	return false
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null"     json:"username"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	FullName     string    `gorm:"not null"                 json:"fullName"`
	Role         string    `gorm:"not null"                 json:"role"`
	IsActive     bool      `gorm:"not null;default:true"    json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"          json:"id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	UserID    uint      `gorm:"index;not null"      json:"user_id"`
	ExpiresAt time.Time `gorm:"not null"            json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

type Customer struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null;index"           json:"name"`
	Phone     string    `gorm:"not null"                 json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	LineID    string    `json:"lineId"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Brand struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string `gorm:"uniqueIndex;not null"     json:"name"`
	LogoURL string `json:"logoUrl"`

	Models []MinerModel `gorm:"constraint:OnDelete:RESTRICT" json:"models,omitempty"`
}

// MinerModel is one sellable/serviceable ASIC model, e.g. Antminer S19 Pro.
type MinerModel struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"                      json:"id"`
	BrandID     uint    `gorm:"index;not null;uniqueIndex:idx_brand_model"    json:"brandId"`
	ModelName   string  `gorm:"not null;uniqueIndex:idx_brand_model"          json:"modelName"`
	HashRate    float64 `json:"hashRate"`
	PowerWatt   int     `json:"powerWatt"`
	Algorithm   string  `json:"algorithm"`
	ReleaseYear int     `json:"releaseYear"`

	Brand *Brand `gorm:"constraint:OnDelete:RESTRICT" json:"brand,omitempty"`
}

type PartCategory struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"uniqueIndex;not null"     json:"name"`
	Description string `json:"description"`

	Parts []Part `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"parts,omitempty"`
}

type Part struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID    uint      `gorm:"index;not null"           json:"categoryId"`
	PartName      string    `gorm:"not null;index"           json:"partName"`
	PartCode      string    `gorm:"uniqueIndex;not null"     json:"partCode"`
	Price         float64   `gorm:"not null"                 json:"price"`
	StockQty      int       `gorm:"not null;default:0"       json:"stockQty"`
	MinStockLevel int       `gorm:"not null;default:0"       json:"minStockLevel"`
	Supplier      string    `json:"supplier"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	Category *PartCategory `json:"category,omitempty"`
}

type WarrantyProfile struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"uniqueIndex;not null"     json:"name"`
	DurationDays int    `gorm:"not null"                 json:"durationDays"`
	CoversParts  bool   `gorm:"not null"                 json:"coversParts"`
	CoversLabor  bool   `gorm:"not null"                 json:"coversLabor"`
	Terms        string `json:"terms"`
}

// All lists every model for AutoMigrate.
func All() []any {
	return []any{
		&User{}, &RefreshToken{}, &Customer{}, &Brand{}, &MinerModel{},
		&PartCategory{}, &Part{}, &WarrantyProfile{},
	}
}
