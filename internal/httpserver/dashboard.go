package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ibitrepair/workshop/internal/logging"
	"github.com/ibitrepair/workshop/internal/service"
)

type DashboardHTTP struct {
	Svc *service.DashboardService
}

func (h *DashboardHTTP) Snapshot(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "dashboard.snapshot")

	snap, err := h.Svc.Snapshot(ctx)
	if err != nil {
		return crudError(l, "dashboard_snapshot", err)
	}
	return c.JSON(http.StatusOK, snap)
}
