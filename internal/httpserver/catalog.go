package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ibitrepair/workshop/internal/logging"
	"github.com/ibitrepair/workshop/internal/models"
	"github.com/ibitrepair/workshop/internal/service"
	"github.com/ibitrepair/workshop/internal/transport"
	"github.com/ibitrepair/workshop/internal/util"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) ListBrands(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "brand.list")

	items, err := h.Svc.ListBrands(ctx)
	if err != nil {
		return crudError(l, "brand_list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": items})
}

func (h *CatalogHTTP) GetBrand(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "brand.get")

	id, err := idParam(c)
	if err != nil {
		return err
	}
	brand, err := h.Svc.GetBrand(ctx, id)
	if err != nil {
		return crudError(l, "brand_get", err)
	}
	return c.JSON(http.StatusOK, brand)
}

func (h *CatalogHTTP) CreateBrand(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "brand.create")

	var req transport.BrandRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("brand_create_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	brand := models.Brand{Name: req.Name, LogoURL: req.LogoURL}
	if err := h.Svc.CreateBrand(ctx, &brand); err != nil {
		return crudError(l, "brand_create", err)
	}

	l.Info("brand_created", "brand_id", brand.ID)
	return c.JSON(http.StatusCreated, brand)
}

func (h *CatalogHTTP) UpdateBrand(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "brand.update")

	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req transport.BrandRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("brand_update_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	brand, err := h.Svc.UpdateBrand(ctx, id, &models.Brand{Name: req.Name, LogoURL: req.LogoURL})
	if err != nil {
		return crudError(l, "brand_update", err)
	}
	return c.JSON(http.StatusOK, brand)
}

func (h *CatalogHTTP) DeleteBrand(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "brand.delete")

	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteBrand(ctx, id); err != nil {
		return crudError(l, "brand_delete", err)
	}

	l.Info("brand_deleted", "brand_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHTTP) ListMinerModels(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "model.list")

	page, offset, limit := pageParams(c)
	brandID := uint(util.ParseIntDefault(c.QueryParam("brandId"), 0))

	total, items, err := h.Svc.ListMinerModels(ctx, brandID, offset, limit)
	if err != nil {
		return crudError(l, "model_list", err)
	}
	return c.JSON(http.StatusOK, listEnvelope(page, limit, total, items))
}

func (h *CatalogHTTP) GetMinerModel(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "model.get")

	id, err := idParam(c)
	if err != nil {
		return err
	}
	m, err := h.Svc.GetMinerModel(ctx, id)
	if err != nil {
		return crudError(l, "model_get", err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *CatalogHTTP) CreateMinerModel(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "model.create")

	var req transport.MinerModelRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("model_create_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	m := minerModelFromRequest(req)
	if err := h.Svc.CreateMinerModel(ctx, &m); err != nil {
		return crudError(l, "model_create", err)
	}

	l.Info("model_created", "model_id", m.ID)
	return c.JSON(http.StatusCreated, m)
}

func (h *CatalogHTTP) UpdateMinerModel(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "model.update")

	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req transport.MinerModelRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("model_update_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	in := minerModelFromRequest(req)
	m, err := h.Svc.UpdateMinerModel(ctx, id, &in)
	if err != nil {
		return crudError(l, "model_update", err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *CatalogHTTP) DeleteMinerModel(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "model.delete")

	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteMinerModel(ctx, id); err != nil {
		return crudError(l, "model_delete", err)
	}

	l.Info("model_deleted", "model_id", id)
	return c.NoContent(http.StatusNoContent)
}

func minerModelFromRequest(req transport.MinerModelRequest) models.MinerModel {
	return models.MinerModel{
		BrandID:     req.BrandID,
		ModelName:   req.ModelName,
		HashRate:    req.HashRate,
		PowerWatt:   req.PowerWatt,
		Algorithm:   req.Algorithm,
		ReleaseYear: req.ReleaseYear,
	}
}
