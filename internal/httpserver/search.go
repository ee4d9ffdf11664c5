package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ibitrepair/workshop/internal/logging"
	"github.com/ibitrepair/workshop/internal/search"
	"github.com/ibitrepair/workshop/internal/util"
)

// SearchHTTP serves full-text catalog search. When no search backend is
// configured the endpoint reports 503 rather than pretending to match nothing.
type SearchHTTP struct {
	Client *search.Client
}

func (h *SearchHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search")

	if h.Client == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
	}

	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, docs, err := h.Client.Search(ctx, q, offset, limit)
	if err != nil {
		l.Error("search_failed", "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "search backend error")
	}
	return c.JSON(http.StatusOK, listEnvelope(page, limit, total, docs))
}
