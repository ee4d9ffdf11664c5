package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/ibitrepair/workshop/internal/repo"
	"github.com/ibitrepair/workshop/internal/service"
	"github.com/ibitrepair/workshop/internal/util"
)

func idParam(c echo.Context) (uint, error) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be a number")
	}
	return uint(n), nil
}

func pageParams(c echo.Context) (page, offset, limit int) {
	page = util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit = util.Calculate(page, size)
	return page, offset, limit
}

func listEnvelope(page, limit int, total int64, items any) echo.Map {
	return echo.Map{
		"data": items,
		"meta": echo.Map{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
		},
	}
}

// crudError maps service/repo failures onto HTTP codes for the CRUD handlers.
// The auth handlers do their own mapping because their messages are part of
// the contract.
func crudError(l *slog.Logger, op string, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		l.Warn(op+"_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		l.Warn(op+"_failed", "status", 404, "error", err)
		return echo.NewHTTPError(http.StatusNotFound, "record not found")
	case errors.Is(err, repo.ErrInUse):
		l.Warn(op+"_failed", "status", 409, "error", err)
		return echo.NewHTTPError(http.StatusConflict, "record is still referenced")
	case errors.Is(err, service.ErrConflict):
		l.Warn(op+"_failed", "status", 409, "error", err)
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, repo.ErrStockUnderflow):
		l.Warn(op+"_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "stock cannot go below zero")
	default:
		l.Error(op+"_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
