package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/Skotchmaster/stylehub/internal/logging"
	"github.com/Skotchmaster/stylehub/internal/middleware/session"
	"github.com/Skotchmaster/stylehub/internal/models"
	"github.com/Skotchmaster/stylehub/internal/service"
	"github.com/labstack/echo/v4"
)

type CartHTTP struct {
	Svc *service.CartService
}

type lineRequest struct {
	ProductID int    `json:"product_id" query:"product_id"`
	Size      string `json:"size"       query:"size"`
	Color     string `json:"color"      query:"color"`
	Quantity  int    `json:"quantity"   query:"quantity"`
}

func (r lineRequest) key() models.LineKey {
	return models.LineKey{ProductID: r.ProductID, Size: r.Size, Color: r.Color}
}

func bindLine(c echo.Context, l *slog.Logger, event string) (lineRequest, error) {
	var req lineRequest
	if err := c.Bind(&req); err != nil {
		l.Warn(event, "status", http.StatusBadRequest, "reason", "invalid body", "error", err)
		return req, echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.ProductID <= 0 {
		l.Warn(event, "status", http.StatusBadRequest, "reason", "product_id required")
		return req, echo.NewHTTPError(http.StatusBadRequest, "product_id required")
	}
	return req, nil
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	v, err := h.Svc.GetCart(ctx, session.ID(c))
	if err != nil {
		return fail(l, "get_cart_error", err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	req, err := bindLine(c, l, "add_to_cart_error")
	if err != nil {
		return err
	}

	v, err := h.Svc.AddToCart(ctx, session.ID(c), service.AddToCartRequest{
		ProductID: req.ProductID,
		Size:      req.Size,
		Color:     req.Color,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return fail(l, "add_to_cart_error", err)
	}

	l.Info("add_to_cart_success", "product_id", req.ProductID, "quantity", req.Quantity)
	return c.JSON(http.StatusCreated, v)
}

func (h *CartHTTP) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	req, err := bindLine(c, l, "update_cart_error")
	if err != nil {
		return err
	}

	v, err := h.Svc.UpdateQuantity(ctx, session.ID(c), req.key(), req.Quantity)
	if err != nil {
		return fail(l, "update_cart_error", err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_item")

	req, err := bindLine(c, l, "remove_from_cart_error")
	if err != nil {
		return err
	}

	v, err := h.Svc.RemoveItem(ctx, session.ID(c), req.key())
	if err != nil {
		return fail(l, "remove_from_cart_error", err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *CartHTTP) RemoveProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_product")

	id, err := pathID(c, l, "remove_product_error")
	if err != nil {
		return err
	}

	v, err := h.Svc.RemoveProduct(ctx, session.ID(c), id)
	if err != nil {
		return fail(l, "remove_product_error", err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	v, err := h.Svc.ClearCart(ctx, session.ID(c))
	if err != nil {
		return fail(l, "clear_cart_error", err)
	}

	l.Info("cart_cleared")
	return c.JSON(http.StatusOK, v)
}
