package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/stylehub/internal/logging"
	"github.com/Skotchmaster/stylehub/internal/middleware/session"
	"github.com/Skotchmaster/stylehub/internal/service"
	"github.com/labstack/echo/v4"
)

type RecentHTTP struct {
	Svc *service.RecentService
}

func (h *RecentHTTP) GetRecent(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "recent.get")

	items, err := h.Svc.Products(ctx, session.ID(c))
	if err != nil {
		return fail(l, "get_recent_error", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items})
}

func (h *RecentHTTP) ClearRecent(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "recent.clear")

	if err := h.Svc.Clear(ctx, session.ID(c)); err != nil {
		return fail(l, "clear_recent_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}
