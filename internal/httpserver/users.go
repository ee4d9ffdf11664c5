package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ibitrepair/workshop/internal/logging"
	"github.com/ibitrepair/workshop/internal/service"
	"github.com/ibitrepair/workshop/internal/transport"
)

// UsersHTTP is the admin-only provisioning surface.
type UsersHTTP struct {
	Svc *service.UserService
}

func (h *UsersHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.list")

	page, offset, limit := pageParams(c)
	total, items, err := h.Svc.List(ctx, offset, limit)
	if err != nil {
		return crudError(l, "users_list", err)
	}
	return c.JSON(http.StatusOK, listEnvelope(page, limit, total, items))
}

func (h *UsersHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.get")

	id, err := idParam(c)
	if err != nil {
		return err
	}
	user, err := h.Svc.Get(ctx, id)
	if err != nil {
		return crudError(l, "users_get", err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UsersHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.create")

	var req transport.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("users_create_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Create(ctx, service.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
	})
	if err != nil {
		return crudError(l, "users_create", err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *UsersHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.update")

	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req transport.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("users_update_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Update(ctx, id, service.UpdateUserInput{
		Email:    req.Email,
		FullName: req.FullName,
		Role:     req.Role,
		IsActive: req.IsActive,
	})
	if err != nil {
		return crudError(l, "users_update", err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UsersHTTP) ResetPassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.reset_password")

	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req transport.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("users_reset_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.ResetPassword(ctx, id, req.NewPassword); err != nil {
		return crudError(l, "users_reset", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password reset"})
}
