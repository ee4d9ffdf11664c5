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

type PartsHTTP struct {
	Svc *service.PartsService
}

func (h *PartsHTTP) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "part_category.list")

	items, err := h.Svc.ListCategories(ctx)
	if err != nil {
		return crudError(l, "category_list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": items})
}

func (h *PartsHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "part_category.create")

	var req transport.PartCategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("category_create_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cat := models.PartCategory{Name: req.Name, Description: req.Description}
	if err := h.Svc.CreateCategory(ctx, &cat); err != nil {
		return crudError(l, "category_create", err)
	}

	l.Info("category_created", "category_id", cat.ID)
	return c.JSON(http.StatusCreated, cat)
}

func (h *PartsHTTP) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "part_category.update")

	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req transport.PartCategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("category_update_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cat, err := h.Svc.UpdateCategory(ctx, id, &models.PartCategory{Name: req.Name, Description: req.Description})
	if err != nil {
		return crudError(l, "category_update", err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *PartsHTTP) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "part_category.delete")

	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteCategory(ctx, id); err != nil {
		return crudError(l, "category_delete", err)
	}

	l.Info("category_deleted", "category_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *PartsHTTP) ListParts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "part.list")

	page, offset, limit := pageParams(c)
	categoryID := uint(util.ParseIntDefault(c.QueryParam("categoryId"), 0))

	total, items, err := h.Svc.ListParts(ctx, categoryID, offset, limit)
	if err != nil {
		return crudError(l, "part_list", err)
	}
	return c.JSON(http.StatusOK, listEnvelope(page, limit, total, items))
}

func (h *PartsHTTP) GetPart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "part.get")

	id, err := idParam(c)
	if err != nil {
		return err
	}
	part, err := h.Svc.GetPart(ctx, id)
	if err != nil {
		return crudError(l, "part_get", err)
	}
	return c.JSON(http.StatusOK, part)
}

func (h *PartsHTTP) CreatePart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "part.create")

	var req transport.PartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("part_create_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	part := partFromRequest(req)
	if err := h.Svc.CreatePart(ctx, &part); err != nil {
		return crudError(l, "part_create", err)
	}

	l.Info("part_created", "part_id", part.ID)
	return c.JSON(http.StatusCreated, part)
}

func (h *PartsHTTP) UpdatePart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "part.update")

	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req transport.PartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("part_update_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	in := partFromRequest(req)
	part, err := h.Svc.UpdatePart(ctx, id, &in)
	if err != nil {
		return crudError(l, "part_update", err)
	}
	return c.JSON(http.StatusOK, part)
}

func (h *PartsHTTP) DeletePart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "part.delete")

	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.Svc.DeletePart(ctx, id); err != nil {
		return crudError(l, "part_delete", err)
	}

	l.Info("part_deleted", "part_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *PartsHTTP) AdjustStock(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "part.adjust_stock")

	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req transport.AdjustStockRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("adjust_stock_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	part, err := h.Svc.AdjustStock(ctx, id, req.Delta)
	if err != nil {
		return crudError(l, "adjust_stock", err)
	}
	return c.JSON(http.StatusOK, part)
}

func partFromRequest(req transport.PartRequest) models.Part {
	return models.Part{
		CategoryID:    req.CategoryID,
		PartName:      req.PartName,
		PartCode:      req.PartCode,
		Price:         req.Price,
		StockQty:      req.StockQty,
		MinStockLevel: req.MinStockLevel,
		Supplier:      req.Supplier,
	}
}
