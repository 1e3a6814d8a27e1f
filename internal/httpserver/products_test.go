package httpserver

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/bookshop/internal/db/dbtest"
	"github.com/Skotchmaster/bookshop/internal/transport"
)

func TestGetProducts_Empty(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSONRequest(http.MethodGet, "/api/v1/products", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	msg := decode[transport.MessageResponse](t, rec)
	require.Equal(t, "No products available.", msg.Message)
}

func TestCreateThenGetProduct(t *testing.T) {
	env := newTestEnv(t)
	cat := dbtest.Category(t, env.DB, "Integration")

	rec := env.doJSONRequest(http.MethodPost, "/api/v1/products", map[string]any{
		"title":       "Integration Test Book",
		"author":      "Integration Author",
		"description": "Integration Description",
		"price":       99.99,
		"stock":       4,
		"category_id": cat.ID,
	}, env.token(1, "Admin"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[transport.ProductDTO](t, rec)
	require.Equal(t, fmt.Sprintf("/api/v1/products/%d", created.ID), rec.Header().Get("Location"))

	rec = env.doJSONRequest(http.MethodGet, fmt.Sprintf("/api/v1/products/%d", created.ID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[transport.ProductDTO](t, rec)
	require.Equal(t, "Integration Test Book", got.Title)
	require.Equal(t, "Integration Author", got.Author)
	require.Equal(t, "Integration Description", got.Description)
	require.True(t, decimal.RequireFromString("99.99").Equal(got.Price), "price = %s", got.Price)
	require.Equal(t, "Integration", got.CategoryName)

	rec = env.doJSONRequest(http.MethodGet, "/api/v1/products", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[[]transport.ProductDTO](t, rec), 1)
}

func TestCreateProduct_Rejects(t *testing.T) {
	env := newTestEnv(t)
	cat := dbtest.Category(t, env.DB, "Fiction")
	body := map[string]any{"title": "Book", "price": 10, "category_id": cat.ID}

	require.Equal(t, http.StatusUnauthorized, env.doJSONRequest(http.MethodPost, "/api/v1/products", body, "").Code)
	require.Equal(t, http.StatusUnauthorized, env.doJSONRequest(http.MethodPost, "/api/v1/products", body, env.token(2, "User")).Code)

	body["category_id"] = 999
	require.Equal(t, http.StatusBadRequest, env.doJSONRequest(http.MethodPost, "/api/v1/products", body, env.token(1, "Admin")).Code)
}

func TestGetProduct_Errors(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusNotFound, env.doJSONRequest(http.MethodGet, "/api/v1/products/999", nil, "").Code)
	require.Equal(t, http.StatusBadRequest, env.doJSONRequest(http.MethodGet, "/api/v1/products/abc", nil, "").Code)
}

func TestPatchDeleteAndSearchProduct(t *testing.T) {
	env := newTestEnv(t)
	admin := env.token(1, "Admin")
	cat := dbtest.Category(t, env.DB, "Fiction")
	p := dbtest.Product(t, env.DB, "Dune", "10", cat.ID)
	dbtest.Product(t, env.DB, "Emma", "10", cat.ID)

	path := fmt.Sprintf("/api/v1/products/%d", p.ID)
	rec := env.doJSONRequest(http.MethodPatch, path, map[string]any{"stock": 9}, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, 9, decode[transport.ProductDTO](t, rec).Stock)

	rec = env.doJSONRequest(http.MethodGet, "/api/v1/products/search?q=dun&page=1&size=5", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[transport.ProductPage](t, rec)
	require.Len(t, page.Data, 1)
	require.Equal(t, "Dune", page.Data[0].Title)
	require.Equal(t, 5, page.Meta.Size)

	require.Equal(t, http.StatusBadRequest, env.doJSONRequest(http.MethodGet, "/api/v1/products/search", nil, "").Code)

	require.Equal(t, http.StatusUnauthorized, env.doJSONRequest(http.MethodDelete, path, nil, env.token(2, "User")).Code)
	require.Equal(t, http.StatusNoContent, env.doJSONRequest(http.MethodDelete, path, nil, admin).Code)
	require.Equal(t, http.StatusNotFound, env.doJSONRequest(http.MethodDelete, path, nil, admin).Code)
}

func TestCategories(t *testing.T) {
	env := newTestEnv(t)
	admin := env.token(1, "Admin")

	rec := env.doJSONRequest(http.MethodPost, "/api/v1/categories", map[string]any{"name": "Poetry"}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "Poetry", decode[transport.CategoryDTO](t, rec).Name)

	require.Equal(t, http.StatusConflict, env.doJSONRequest(http.MethodPost, "/api/v1/categories", map[string]any{"name": "Poetry"}, admin).Code)
	require.Equal(t, http.StatusUnauthorized, env.doJSONRequest(http.MethodPost, "/api/v1/categories", map[string]any{"name": "Drama"}, env.token(2, "User")).Code)

	rec = env.doJSONRequest(http.MethodGet, "/api/v1/categories", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[[]transport.CategoryDTO](t, rec), 1)
}
