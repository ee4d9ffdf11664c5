package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ibitrepair/workshop/internal/logging"
	"github.com/ibitrepair/workshop/internal/models"
	"github.com/ibitrepair/workshop/internal/service"
	"github.com/ibitrepair/workshop/internal/transport"
)

type CustomerHTTP struct {
	Svc *service.CustomerService
}

func (h *CustomerHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.list")

	page, offset, limit := pageParams(c)
	total, items, err := h.Svc.List(ctx, c.QueryParam("q"), offset, limit)
	if err != nil {
		return crudError(l, "customer_list", err)
	}
	return c.JSON(http.StatusOK, listEnvelope(page, limit, total, items))
}

func (h *CustomerHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.get")

	id, err := idParam(c)
	if err != nil {
		return err
	}
	cust, err := h.Svc.Get(ctx, id)
	if err != nil {
		return crudError(l, "customer_get", err)
	}
	return c.JSON(http.StatusOK, cust)
}

func (h *CustomerHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.create")

	var req transport.CustomerRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("customer_create_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cust := customerFromRequest(req)
	if err := h.Svc.Create(ctx, &cust); err != nil {
		return crudError(l, "customer_create", err)
	}

	l.Info("customer_created", "customer_id", cust.ID)
	return c.JSON(http.StatusCreated, cust)
}

func (h *CustomerHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.update")

	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req transport.CustomerRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("customer_update_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	in := customerFromRequest(req)
	cust, err := h.Svc.Update(ctx, id, &in)
	if err != nil {
		return crudError(l, "customer_update", err)
	}
	return c.JSON(http.StatusOK, cust)
}

func (h *CustomerHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.delete")

	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return crudError(l, "customer_delete", err)
	}

	l.Info("customer_deleted", "customer_id", id)
	return c.NoContent(http.StatusNoContent)
}

func customerFromRequest(req transport.CustomerRequest) models.Customer {
	return models.Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		LineID:  req.LineID,
		Notes:   req.Notes,
	}
}
