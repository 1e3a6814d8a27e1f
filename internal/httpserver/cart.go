package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bookshop/internal/logging"
	authmw "github.com/Skotchmaster/bookshop/internal/middleware/auth"
	"github.com/Skotchmaster/bookshop/internal/service"
	"github.com/Skotchmaster/bookshop/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	customerID, err := parseID(c, "customerId")
	if err != nil {
		l.Warn("get_cart_failed", "status", 400, "reason", "customerId is not an integer")
		return err
	}

	cart, err := h.Svc.GetCart(ctx, authmw.Caller(c), customerID)
	if err != nil {
		return fail(l, "get_cart_failed", err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var req transport.CartItemCreateRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cart, err := h.Svc.AddToCart(ctx, authmw.Caller(c), req)
	if err != nil {
		return fail(l, "add_to_cart_failed", err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	customerID, err := parseID(c, "customerId")
	if err != nil {
		l.Warn("remove_from_cart_failed", "status", 400, "reason", "customerId is not an integer")
		return err
	}
	productID, err := parseID(c, "productId")
	if err != nil {
		l.Warn("remove_from_cart_failed", "status", 400, "reason", "productId is not an integer")
		return err
	}

	cart, err := h.Svc.RemoveFromCart(ctx, authmw.Caller(c), customerID, productID)
	if err != nil {
		return fail(l, "remove_from_cart_failed", err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	customerID, err := parseID(c, "customerId")
	if err != nil {
		l.Warn("clear_cart_failed", "status", 400, "reason", "customerId is not an integer")
		return err
	}

	cart, err := h.Svc.ClearCart(ctx, authmw.Caller(c), customerID)
	if err != nil {
		return fail(l, "clear_cart_failed", err)
	}
	return c.JSON(http.StatusOK, cart)
}
