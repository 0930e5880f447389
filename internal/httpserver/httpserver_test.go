package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Skotchmaster/stylehub/internal/cart"
	"github.com/Skotchmaster/stylehub/internal/catalog"
	"github.com/Skotchmaster/stylehub/internal/events"
	"github.com/Skotchmaster/stylehub/internal/middleware/csrf"
	"github.com/Skotchmaster/stylehub/internal/middleware/session"
	"github.com/Skotchmaster/stylehub/internal/models"
	"github.com/Skotchmaster/stylehub/internal/service"
	"github.com/Skotchmaster/stylehub/internal/store"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	E      *echo.Echo
	Events *events.Recorder
}

func newTestEnv(t *testing.T, mutate func(*Deps)) *testEnv {
	t.Helper()
	mock, err := catalog.NewMockProvider(context.Background())
	require.NoError(t, err)

	s := store.NewMemoryStore()
	rec := &events.Recorder{}
	recent := &service.RecentService{Store: s, Products: mock}

	d := &Deps{
		CatalogHandler: &CatalogHTTP{
			Svc:    &service.CatalogService{Products: mock, Categories: mock},
			Recent: recent,
		},
		CartHandler:     &CartHTTP{Svc: &service.CartService{Store: s, Products: mock, Publisher: rec}},
		WishlistHandler: &WishlistHTTP{Svc: &service.WishlistService{Store: s, Products: mock, Publisher: rec}},
		RecentHandler:   &RecentHTTP{Svc: recent},
		Session:         session.Config{Secret: []byte("test-secret"), TTL: time.Hour},
	}
	if mutate != nil {
		mutate(d)
	}

	e := echo.New()
	Register(e, d)
	return &testEnv{E: e, Events: rec}
}

// client keeps the session cookie between requests like a browser would.
type client struct {
	t       *testing.T
	e       *echo.Echo
	cookies map[string]*http.Cookie
}

func (env *testEnv) client(t *testing.T) *client {
	return &client{t: t, e: env.E, cookies: map[string]*http.Cookie{}}
}

func (c *client) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	c.e.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		c.cookies[ck.Name] = ck
	}
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type productList struct {
	Data []models.Product `json:"data"`
	Meta struct {
		Page    int  `json:"page"`
		Total   int  `json:"total"`
		HasNext bool `json:"has_next"`
	} `json:"meta"`
	Category *models.Category `json:"category"`
}

func ids(products []models.Product) []int {
	out := make([]int, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, func(d *Deps) {
		d.Ready = func(context.Context) error { return errors.New("db down") }
	})
	c := env.client(t)

	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/health/live", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, c.do(http.MethodGet, "/health/ready", "").Code)
}

func TestProducts_ListFilterSortPaginate(t *testing.T) {
	c := newTestEnv(t, nil).client(t)

	rec := c.do(http.MethodGet, "/api/v1/products?brand=Zara&sort=price-high&size=2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[productList](t, rec)
	assert.Equal(t, []int{4, 1}, ids(body.Data))
	assert.Equal(t, 3, body.Meta.Total)
	assert.True(t, body.Meta.HasNext)

	rec = c.do(http.MethodGet, "/api/v1/products?sizes=XXL", "")
	body = decode[productList](t, rec)
	assert.Equal(t, []int{5}, ids(body.Data))

	rec = c.do(http.MethodGet, "/api/v1/products?price=over-5000&sort=price-low", "")
	body = decode[productList](t, rec)
	assert.Equal(t, []int{14, 8}, ids(body.Data))
}

func TestProducts_PageBeyondRange(t *testing.T) {
	c := newTestEnv(t, nil).client(t)

	for _, path := range []string{
		"/api/v1/products?page=768614336404564652",
		"/api/v1/products?page=9223372036854775807&size=100",
		"/api/v1/categories/1/products?page=768614336404564652",
	} {
		rec := c.do(http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rec.Code, path)
		body := decode[productList](t, rec)
		assert.Empty(t, body.Data, path)
		assert.False(t, body.Meta.HasNext, path)
	}
}

func TestProducts_FeaturedAndSearch(t *testing.T) {
	c := newTestEnv(t, nil).client(t)

	rec := c.do(http.MethodGet, "/api/v1/products/featured", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[productList](t, rec).Data, catalog.FeaturedLimit)

	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodGet, "/api/v1/products/search?q=", "").Code)

	rec = c.do(http.MethodGet, "/api/v1/products/search?q=nike", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{6, 12}, ids(decode[productList](t, rec).Data))
}

func TestProducts_GetByID(t *testing.T) {
	c := newTestEnv(t, nil).client(t)

	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodGet, "/api/v1/products/abc", "").Code)
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/api/v1/products/999", "").Code)

	rec := c.do(http.MethodGet, "/api/v1/products/3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	p := decode[models.Product](t, rec)
	assert.Equal(t, "Canvas Low Sneakers", p.Name)
	assert.Equal(t, 999.0, p.EffectivePrice())
}

func TestCategoriesAndFilters(t *testing.T) {
	c := newTestEnv(t, nil).client(t)

	rec := c.do(http.MethodGet, "/api/v1/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)
	cats := decode[struct {
		Data []models.Category `json:"data"`
	}](t, rec)
	assert.Len(t, cats.Data, 4)

	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/api/v1/categories/99", "").Code)

	rec = c.do(http.MethodGet, "/api/v1/categories/3/products?sort=newest", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[productList](t, rec)
	require.NotNil(t, body.Category)
	assert.Equal(t, "Kids", body.Category.Name)
	assert.Equal(t, []int{12, 11, 10}, ids(body.Data))

	rec = c.do(http.MethodGet, "/api/v1/filters", "")
	require.Equal(t, http.StatusOK, rec.Code)
	opts := decode[catalog.FacetOptions](t, rec)
	assert.Contains(t, opts.Brands, "Uniqlo")
	assert.Contains(t, opts.SortKeys, catalog.SortNewest)
}

func TestCart_Flow(t *testing.T) {
	env := newTestEnv(t, nil)
	c := env.client(t)

	rec := c.do(http.MethodPost, "/api/v1/cart/items", `{"product_id":3,"size":"M","color":"White","quantity":2}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	v := decode[service.CartView](t, rec)
	assert.Equal(t, 2, v.Count)
	assert.Equal(t, 1998.0, v.Summary.Subtotal)
	assert.Equal(t, 0.0, v.Summary.Shipping)
	assert.Equal(t, 360.0, v.Summary.Tax)
	assert.Equal(t, 2358.0, v.Summary.Total)

	rec = c.do(http.MethodPatch, "/api/v1/cart/items", `{"product_id":3,"size":"M","color":"White","quantity":5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, decode[service.CartView](t, rec).Count)

	rec = c.do(http.MethodPatch, "/api/v1/cart/items", `{"product_id":3,"size":"L","color":"White","quantity":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodGet, "/api/v1/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[service.CartView](t, rec).Items, 1)

	rec = c.do(http.MethodDelete, "/api/v1/cart/items", `{"product_id":3,"size":"M","color":"White"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[service.CartView](t, rec).Items)

	assert.Equal(t, []string{
		events.CartItemAdded,
		events.CartItemUpdated,
		events.CartItemRemoved,
	}, env.Events.Types())
}

func TestCart_RejectsBadRequests(t *testing.T) {
	c := newTestEnv(t, nil).client(t)

	cases := []struct {
		body string
		want int
	}{
		{`{`, http.StatusBadRequest},
		{`{"size":"M"}`, http.StatusBadRequest},
		{`{"product_id":4,"size":"M","color":"Black"}`, http.StatusBadRequest},
		{`{"product_id":3,"size":"XXL","color":"White"}`, http.StatusBadRequest},
		{`{"product_id":999,"size":"M","color":"White"}`, http.StatusNotFound},
	}
	for _, tc := range cases {
		rec := c.do(http.MethodPost, "/api/v1/cart/items", tc.body)
		assert.Equal(t, tc.want, rec.Code, tc.body)
	}

	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodDelete, "/api/v1/cart/products/abc", "").Code)
}

func TestCart_QuantityIsBounded(t *testing.T) {
	c := newTestEnv(t, nil).client(t)
	body := `{"product_id":3,"size":"M","color":"White","quantity":9223372036854775807}`

	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/v1/cart/items", body).Code)
	rec := c.do(http.MethodPost, "/api/v1/cart/items", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	v := decode[service.CartView](t, rec)
	require.Len(t, v.Items, 1)
	assert.Equal(t, cart.MaxQuantity, v.Items[0].Quantity)
	assert.Equal(t, cart.MaxQuantity, v.Count)
	assert.Positive(t, v.Summary.Total)

	rec = c.do(http.MethodPatch, "/api/v1/cart/items", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, cart.MaxQuantity, decode[service.CartView](t, rec).Items[0].Quantity)
}

func TestCart_RemoveProductAndClear(t *testing.T) {
	c := newTestEnv(t, nil).client(t)

	for _, body := range []string{
		`{"product_id":1,"size":"S","color":"Pink"}`,
		`{"product_id":1,"size":"S","color":"Blue"}`,
		`{"product_id":9,"size":"M","color":"Black"}`,
	} {
		require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/v1/cart/items", body).Code)
	}

	rec := c.do(http.MethodDelete, "/api/v1/cart/products/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	v := decode[service.CartView](t, rec)
	require.Len(t, v.Items, 1)
	assert.Equal(t, 9, v.Items[0].ProductID)
	assert.Equal(t, 99.0, v.Summary.Shipping)
	assert.Equal(t, 501.0, v.Summary.FreeShippingRemaining)

	rec = c.do(http.MethodDelete, "/api/v1/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[service.CartView](t, rec).Items)
}

func TestCart_SessionsAreIsolated(t *testing.T) {
	env := newTestEnv(t, nil)
	alice := env.client(t)
	bob := env.client(t)

	require.Equal(t, http.StatusCreated, alice.do(http.MethodPost, "/api/v1/cart/items", `{"product_id":9,"size":"M","color":"Black"}`).Code)

	assert.Len(t, decode[service.CartView](t, alice.do(http.MethodGet, "/api/v1/cart", "")).Items, 1)
	assert.Empty(t, decode[service.CartView](t, bob.do(http.MethodGet, "/api/v1/cart", "")).Items)
}

func TestWishlist_Flow(t *testing.T) {
	env := newTestEnv(t, nil)
	c := env.client(t)

	rec := c.do(http.MethodPost, "/api/v1/wishlist", `{"product_id":3}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[service.WishlistView](t, rec).Count)

	type membership struct {
		ProductID  int  `json:"product_id"`
		InWishlist bool `json:"in_wishlist"`
	}
	rec = c.do(http.MethodGet, "/api/v1/wishlist/3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[membership](t, rec).InWishlist)

	rec = c.do(http.MethodPost, "/api/v1/wishlist/3/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[membership](t, rec).InWishlist)

	rec = c.do(http.MethodPost, "/api/v1/wishlist/9/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[membership](t, rec).InWishlist)

	rec = c.do(http.MethodGet, "/api/v1/wishlist", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{9}, ids(decode[service.WishlistView](t, rec).Items))

	rec = c.do(http.MethodDelete, "/api/v1/wishlist/9", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decode[service.WishlistView](t, rec).Count)

	assert.Equal(t, http.StatusNotFound, c.do(http.MethodPost, "/api/v1/wishlist", `{"product_id":999}`).Code)
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/api/v1/wishlist", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/api/v1/wishlist/x/toggle", "").Code)

	assert.Equal(t, []string{
		events.WishlistAdded,
		events.WishlistRemoved,
		events.WishlistAdded,
		events.WishlistRemoved,
	}, env.Events.Types())
}

func TestRecentlyViewed(t *testing.T) {
	c := newTestEnv(t, nil).client(t)

	for _, id := range []string{"1", "2", "1", "3"} {
		require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/products/"+id, "").Code)
	}

	rec := c.do(http.MethodGet, "/api/v1/recently-viewed", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{3, 1, 2}, ids(decode[productList](t, rec).Data))

	assert.Equal(t, http.StatusNoContent, c.do(http.MethodDelete, "/api/v1/recently-viewed", "").Code)

	rec = c.do(http.MethodGet, "/api/v1/recently-viewed", "")
	assert.Empty(t, decode[productList](t, rec).Data)
}

func TestCSRF_ProtectsMutations(t *testing.T) {
	env := newTestEnv(t, func(d *Deps) {
		d.CSRF = &csrf.Config{}
	})
	c := env.client(t)

	rec := c.do(http.MethodGet, "/api/v1/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	token := rec.Header().Get("X-CSRF-Token")
	require.NotEmpty(t, token)

	rec = c.do(http.MethodPost, "/api/v1/cart/items", `{"product_id":9,"size":"M","color":"Black"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":9,"size":"M","color":"Black"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("X-CSRF-Token", token)
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	out := httptest.NewRecorder()
	env.E.ServeHTTP(out, req)
	assert.Equal(t, http.StatusCreated, out.Code)
}
