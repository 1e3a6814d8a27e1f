package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	authmw "github.com/Skotchmaster/bookshop/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/bookshop/internal/middleware/logging"
)

const apiPrefix = "/api/v1"

type Deps struct {
	Customers  *CustomerHTTP
	Products   *ProductHTTP
	Categories *CategoryHTTP
	Cart       *CartHTTP
	Auth       *AuthHTTP
	JWTSecret  []byte
	// Ready reports whether the backing store is reachable.
	Ready func(ctx context.Context) error
}

// New builds an echo instance with the standard middleware chain and all routes.
func New(logger *slog.Logger, d *Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	Register(e, d)
	return e
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "store unavailable")
			}
		}
		return c.NoContent(http.StatusOK)
	})

	requireAuth := authmw.NewSimpleAuth(d.JWTSecret).RequireAuth
	api := e.Group(apiPrefix)

	auth := api.Group("/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)

	customers := api.Group("/customers", requireAuth)
	customers.GET("", d.Customers.ListCustomers)
	customers.GET("/:id", d.Customers.GetCustomer)

	products := api.Group("/products")
	products.GET("", d.Products.GetProducts)
	products.GET("/search", d.Products.SearchProducts)
	products.GET("/:id", d.Products.GetProduct)
	products.POST("", d.Products.CreateProduct, requireAuth)
	products.PATCH("/:id", d.Products.PatchProduct, requireAuth)
	products.DELETE("/:id", d.Products.DeleteProduct, requireAuth)

	categories := api.Group("/categories")
	categories.GET("", d.Categories.ListCategories)
	categories.POST("", d.Categories.CreateCategory, requireAuth)

	cart := api.Group("/cart", requireAuth)
	cart.GET("/:customerId", d.Cart.GetCart)
	cart.POST("", d.Cart.AddToCart)
	cart.DELETE("/:customerId/items/:productId", d.Cart.RemoveFromCart)
	cart.DELETE("/:customerId", d.Cart.ClearCart)
}
