package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bookshop/internal/logging"
	authmw "github.com/Skotchmaster/bookshop/internal/middleware/auth"
	"github.com/Skotchmaster/bookshop/internal/service"
)

type CustomerHTTP struct {
	Svc *service.CustomerService
}

func (h *CustomerHTTP) ListCustomers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customers.list")

	customers, err := h.Svc.ListCustomers(ctx, authmw.Caller(c))
	if err != nil {
		return fail(l, "list_customers_failed", err)
	}
	return c.JSON(http.StatusOK, customers)
}

func (h *CustomerHTTP) GetCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customers.get")

	id, err := parseID(c, "id")
	if err != nil {
		l.Warn("get_customer_failed", "status", 400, "reason", "id is not an integer")
		return err
	}

	customer, err := h.Svc.GetCustomer(ctx, authmw.Caller(c), id)
	if err != nil {
		return fail(l, "get_customer_failed", err)
	}
	return c.JSON(http.StatusOK, customer)
}
