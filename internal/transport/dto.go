package transport

// Request bodies for the REST surface. Field names mirror what the web
// frontend sends.

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type CustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	LineID  string `json:"lineId"`
	Notes   string `json:"notes"`
}

type BrandRequest struct {
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl"`
}

type MinerModelRequest struct {
	BrandID     uint    `json:"brandId"`
	ModelName   string  `json:"modelName"`
	HashRate    float64 `json:"hashRate"`
	PowerWatt   int     `json:"powerWatt"`
	Algorithm   string  `json:"algorithm"`
	ReleaseYear int     `json:"releaseYear"`
}

type PartCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type PartRequest struct {
	CategoryID    uint    `json:"categoryId"`
	PartName      string  `json:"partName"`
	PartCode      string  `json:"partCode"`
	Price         float64 `json:"price"`
	StockQty      int     `json:"stockQty"`
	MinStockLevel int     `json:"minStockLevel"`
	Supplier      string  `json:"supplier"`
}

type AdjustStockRequest struct {
	Delta int `json:"delta"`
}

type WarrantyProfileRequest struct {
	Name         string `json:"name"`
	DurationDays int    `json:"durationDays"`
	CoversParts  bool   `json:"coversParts"`
	CoversLabor  bool   `json:"coversLabor"`
	Terms        string `json:"terms"`
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email"`
	FullName *string `json:"fullName"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword"`
}
