package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ibitrepair/workshop/internal/logging"
	"github.com/ibitrepair/workshop/internal/models"
	"github.com/ibitrepair/workshop/internal/service"
	"github.com/ibitrepair/workshop/internal/transport"
)

type WarrantyHTTP struct {
	Svc *service.WarrantyService
}

func (h *WarrantyHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "warranty.list")

	items, err := h.Svc.List(ctx)
	if err != nil {
		return crudError(l, "warranty_list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": items})
}

func (h *WarrantyHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "warranty.get")

	id, err := idParam(c)
	if err != nil {
		return err
	}
	w, err := h.Svc.Get(ctx, id)
	if err != nil {
		return crudError(l, "warranty_get", err)
	}
	return c.JSON(http.StatusOK, w)
}

func (h *WarrantyHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "warranty.create")

	var req transport.WarrantyProfileRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("warranty_create_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	w := warrantyFromRequest(req)
	if err := h.Svc.Create(ctx, &w); err != nil {
		return crudError(l, "warranty_create", err)
	}

	l.Info("warranty_created", "warranty_id", w.ID)
	return c.JSON(http.StatusCreated, w)
}

func (h *WarrantyHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "warranty.update")

	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req transport.WarrantyProfileRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("warranty_update_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	in := warrantyFromRequest(req)
	w, err := h.Svc.Update(ctx, id, &in)
	if err != nil {
		return crudError(l, "warranty_update", err)
	}
	return c.JSON(http.StatusOK, w)
}

func (h *WarrantyHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "warranty.delete")

	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return crudError(l, "warranty_delete", err)
	}

	l.Info("warranty_deleted", "warranty_id", id)
	return c.NoContent(http.StatusNoContent)
}

func warrantyFromRequest(req transport.WarrantyProfileRequest) models.WarrantyProfile {
	return models.WarrantyProfile{
		Name:         req.Name,
		DurationDays: req.DurationDays,
		CoversParts:  req.CoversParts,
		CoversLabor:  req.CoversLabor,
		Terms:        req.Terms,
	}
}
