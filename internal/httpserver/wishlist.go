package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/stylehub/internal/logging"
	"github.com/Skotchmaster/stylehub/internal/middleware/session"
	"github.com/Skotchmaster/stylehub/internal/service"
	"github.com/labstack/echo/v4"
)

type WishlistHTTP struct {
	Svc *service.WishlistService
}

func (h *WishlistHTTP) GetWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.get")

	v, err := h.Svc.GetWishlist(ctx, session.ID(c))
	if err != nil {
		return fail(l, "get_wishlist_error", err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *WishlistHTTP) AddToWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.add")

	var req struct {
		ProductID int `json:"product_id"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_wishlist_error", "status", http.StatusBadRequest, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	v, err := h.Svc.Add(ctx, session.ID(c), req.ProductID)
	if err != nil {
		return fail(l, "add_to_wishlist_error", err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *WishlistHTTP) InWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.contains")

	id, err := pathID(c, l, "wishlist_contains_error")
	if err != nil {
		return err
	}
	in, err := h.Svc.Contains(ctx, session.ID(c), id)
	if err != nil {
		return fail(l, "wishlist_contains_error", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"product_id": id, "in_wishlist": in})
}

func (h *WishlistHTTP) ToggleWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.toggle")

	id, err := pathID(c, l, "toggle_wishlist_error")
	if err != nil {
		return err
	}
	in, v, err := h.Svc.Toggle(ctx, session.ID(c), id)
	if err != nil {
		return fail(l, "toggle_wishlist_error", err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"product_id":  id,
		"in_wishlist": in,
		"items":       v.Items,
		"count":       v.Count,
	})
}

func (h *WishlistHTTP) RemoveFromWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.remove")

	id, err := pathID(c, l, "remove_from_wishlist_error")
	if err != nil {
		return err
	}
	v, err := h.Svc.Remove(ctx, session.ID(c), id)
	if err != nil {
		return fail(l, "remove_from_wishlist_error", err)
	}
	return c.JSON(http.StatusOK, v)
}
