package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	authmw "github.com/ibitrepair/workshop/internal/middleware/auth"
	"github.com/ibitrepair/workshop/internal/models"
	"github.com/ibitrepair/workshop/internal/search"
	"github.com/ibitrepair/workshop/internal/service"
	"github.com/ibitrepair/workshop/internal/tokens"
)

type Deps struct {
	DB     *gorm.DB
	Tokens *tokens.Manager
	Search *search.Client

	Auth      *service.AuthService
	Users     *service.UserService
	Customers *service.CustomerService
	Catalog   *service.CatalogService
	Parts     *service.PartsService
	Warranty  *service.WarrantyService
	Dashboard *service.DashboardService
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		sqlDB, err := d.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request().Context())
		}
		if err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	authHTTP := &AuthHTTP{Svc: d.Auth}
	usersHTTP := &UsersHTTP{Svc: d.Users}
	customerHTTP := &CustomerHTTP{Svc: d.Customers}
	catalogHTTP := &CatalogHTTP{Svc: d.Catalog}
	partsHTTP := &PartsHTTP{Svc: d.Parts}
	warrantyHTTP := &WarrantyHTTP{Svc: d.Warranty}
	dashboardHTTP := &DashboardHTTP{Svc: d.Dashboard}
	searchHTTP := &SearchHTTP{Client: d.Search}

	bearer := authmw.Middleware(d.Tokens)
	staff := authmw.RequireRole(models.RoleAdmin, models.RoleManager)
	adminOnly := authmw.RequireRole(models.RoleAdmin)

	pub := e.Group("/api/auth")
	pub.POST("/login", authHTTP.Login)
	pub.POST("/refresh", authHTTP.Refresh)

	priv := e.Group("/api/auth", bearer)
	priv.POST("/logout", authHTTP.Logout)
	priv.POST("/logout-all", authHTTP.LogoutAll)
	priv.GET("/me", authHTTP.Me)
	priv.POST("/change-password", authHTTP.ChangePassword)

	api := e.Group("/api", bearer)

	api.GET("/dashboard", dashboardHTTP.Snapshot)
	api.GET("/search", searchHTTP.Search)

	api.GET("/customers", customerHTTP.List)
	api.GET("/customers/:id", customerHTTP.Get)
	api.POST("/customers", customerHTTP.Create)
	api.PUT("/customers/:id", customerHTTP.Update)
	api.DELETE("/customers/:id", customerHTTP.Delete, staff)

	api.GET("/brands", catalogHTTP.ListBrands)
	api.GET("/brands/:id", catalogHTTP.GetBrand)
	api.POST("/brands", catalogHTTP.CreateBrand, staff)
	api.PUT("/brands/:id", catalogHTTP.UpdateBrand, staff)
	api.DELETE("/brands/:id", catalogHTTP.DeleteBrand, staff)

	api.GET("/miner-models", catalogHTTP.ListMinerModels)
	api.GET("/miner-models/:id", catalogHTTP.GetMinerModel)
	api.POST("/miner-models", catalogHTTP.CreateMinerModel, staff)
	api.PUT("/miner-models/:id", catalogHTTP.UpdateMinerModel, staff)
	api.DELETE("/miner-models/:id", catalogHTTP.DeleteMinerModel, staff)

	api.GET("/part-categories", partsHTTP.ListCategories)
	api.POST("/part-categories", partsHTTP.CreateCategory, staff)
	api.PUT("/part-categories/:id", partsHTTP.UpdateCategory, staff)
	api.DELETE("/part-categories/:id", partsHTTP.DeleteCategory, staff)

	api.GET("/parts", partsHTTP.ListParts)
	api.GET("/parts/:id", partsHTTP.GetPart)
	api.POST("/parts", partsHTTP.CreatePart, staff)
	api.PUT("/parts/:id", partsHTTP.UpdatePart, staff)
	api.DELETE("/parts/:id", partsHTTP.DeletePart, staff)
	api.POST("/parts/:id/adjust-stock", partsHTTP.AdjustStock, staff)

	api.GET("/warranty-profiles", warrantyHTTP.List)
	api.GET("/warranty-profiles/:id", warrantyHTTP.Get)
	api.POST("/warranty-profiles", warrantyHTTP.Create, staff)
	api.PUT("/warranty-profiles/:id", warrantyHTTP.Update, staff)
	api.DELETE("/warranty-profiles/:id", warrantyHTTP.Delete, staff)

	users := e.Group("/api/users", bearer, adminOnly)
	users.GET("", usersHTTP.List)
	users.GET("/:id", usersHTTP.Get)
	users.POST("", usersHTTP.Create)
	users.PUT("/:id", usersHTTP.Update)
	users.POST("/:id/reset-password", usersHTTP.ResetPassword)
}
