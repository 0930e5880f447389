package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/stylehub/internal/catalog"
	"github.com/Skotchmaster/stylehub/internal/logging"
	"github.com/Skotchmaster/stylehub/internal/middleware/session"
	"github.com/Skotchmaster/stylehub/internal/service"
	"github.com/labstack/echo/v4"
)

type CatalogHTTP struct {
	Svc    *service.CatalogService
	Recent *service.RecentService
}

func listQuery(c echo.Context) service.ListQuery {
	q := c.QueryParams()
	return service.ListQuery{
		Filters: catalog.ParseFilters(q),
		Sort:    catalog.ParseSortKey(q.Get("sort")),
		Page:    catalog.ParseIntDefault(q.Get("page"), 1),
		Size:    catalog.ParseIntDefault(q.Get("size"), catalog.DefaultPageSize),
	}
}

func pageBody(p service.ProductPage) map[string]any {
	totalPages := (p.Total + p.Size - 1) / p.Size
	return map[string]any{
		"data": p.Items,
		"meta": map[string]any{
			"page":        p.Page,
			"size":        p.Size,
			"total":       p.Total,
			"total_pages": totalPages,
			"has_prev":    p.Page > 1,
			"has_next":    p.Page < totalPages,
		},
	}
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_products")

	page, err := h.Svc.ListProducts(ctx, listQuery(c))
	if err != nil {
		return fail(l, "get_products_error", err)
	}
	return c.JSON(http.StatusOK, pageBody(page))
}

func (h *CatalogHTTP) GetFeatured(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_featured")

	items, err := h.Svc.Featured(ctx)
	if err != nil {
		return fail(l, "get_featured_error", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items})
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.search")

	q := c.QueryParam("q")
	items, err := h.Svc.Search(ctx, q)
	if err != nil {
		return fail(l, "search_error", err)
	}

	l.Info("search_success", "query", q, "hits", len(items))
	return c.JSON(http.StatusOK, map[string]any{"query": q, "data": items})
}

// GetProduct also records the view in the session's recently viewed list.
func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_product")

	id, err := pathID(c, l, "get_product_error")
	if err != nil {
		return err
	}

	product, err := h.Svc.Product(ctx, id)
	if err != nil {
		return fail(l, "get_product_error", err)
	}

	if h.Recent != nil {
		if err := h.Recent.Record(ctx, session.ID(c), id); err != nil {
			l.Warn("record_view_error", "product_id", id, "error", err)
		}
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) GetCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_categories")

	cats, err := h.Svc.ListCategories(ctx)
	if err != nil {
		return fail(l, "get_categories_error", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": cats})
}

func (h *CatalogHTTP) GetCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_category")

	id, err := pathID(c, l, "get_category_error")
	if err != nil {
		return err
	}
	cat, err := h.Svc.Category(ctx, id)
	if err != nil {
		return fail(l, "get_category_error", err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *CatalogHTTP) GetCategoryProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_category_products")

	id, err := pathID(c, l, "get_category_products_error")
	if err != nil {
		return err
	}
	cat, page, err := h.Svc.CategoryProducts(ctx, id, listQuery(c))
	if err != nil {
		return fail(l, "get_category_products_error", err)
	}

	body := pageBody(page)
	body["category"] = cat
	return c.JSON(http.StatusOK, body)
}

func (h *CatalogHTTP) GetFilters(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Svc.FacetOptions())
}
