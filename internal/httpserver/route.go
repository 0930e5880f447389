package httpserver

import (
	"context"
	"net/http"

	"github.com/Skotchmaster/stylehub/internal/logging"
	"github.com/Skotchmaster/stylehub/internal/middleware/csrf"
	"github.com/Skotchmaster/stylehub/internal/middleware/session"
	"github.com/labstack/echo/v4"
)

type Deps struct {
	CatalogHandler  *CatalogHTTP
	CartHandler     *CartHTTP
	WishlistHandler *WishlistHTTP
	RecentHandler   *RecentHTTP
	Session         session.Config
	// CSRF is optional; nil leaves mutations unprotected.
	CSRF *csrf.Config
	// Ready reports whether backing services answer.
	Ready func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			ctx := c.Request().Context()
			if err := d.Ready(ctx); err != nil {
				logging.FromContext(ctx).Warn("not_ready", "status", http.StatusServiceUnavailable, "error", err)
				return c.NoContent(http.StatusServiceUnavailable)
			}
		}
		return c.NoContent(http.StatusOK)
	})

	api := e.Group("/api/v1", session.Middleware(d.Session))
	if d.CSRF != nil {
		api.Use(csrf.Middleware(*d.CSRF))
	}

	products := api.Group("/products")
	products.GET("", d.CatalogHandler.GetProducts)
	products.GET("/featured", d.CatalogHandler.GetFeatured)
	products.GET("/search", d.CatalogHandler.SearchProducts)
	products.GET("/:id", d.CatalogHandler.GetProduct)

	categories := api.Group("/categories")
	categories.GET("", d.CatalogHandler.GetCategories)
	categories.GET("/:id", d.CatalogHandler.GetCategory)
	categories.GET("/:id/products", d.CatalogHandler.GetCategoryProducts)

	api.GET("/filters", d.CatalogHandler.GetFilters)

	cart := api.Group("/cart")
	cart.GET("", d.CartHandler.GetCart)
	cart.DELETE("", d.CartHandler.ClearCart)
	cart.POST("/items", d.CartHandler.AddItem)
	cart.PATCH("/items", d.CartHandler.UpdateItem)
	cart.DELETE("/items", d.CartHandler.RemoveItem)
	cart.DELETE("/products/:id", d.CartHandler.RemoveProduct)

	wl := api.Group("/wishlist")
	wl.GET("", d.WishlistHandler.GetWishlist)
	wl.POST("", d.WishlistHandler.AddToWishlist)
	wl.GET("/:id", d.WishlistHandler.InWishlist)
	wl.POST("/:id/toggle", d.WishlistHandler.ToggleWishlist)
	wl.DELETE("/:id", d.WishlistHandler.RemoveFromWishlist)

	recent := api.Group("/recently-viewed")
	recent.GET("", d.RecentHandler.GetRecent)
	recent.DELETE("", d.RecentHandler.ClearRecent)
}
