package graphql_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appgql "github.com/qcharged/product-service/app/graphql"
	"github.com/qcharged/product-service/app/models"
	"github.com/qcharged/product-service/app/services"
	gql "github.com/qcharged/product-service/pkg/graphql"
)

type stubReader struct {
	products []models.Product
	lastMin  decimal.Decimal
}

func (s *stubReader) GetAllProducts(context.Context) ([]models.Product, error) {
	return s.products, nil
}

func (s *stubReader) GetProductByID(_ context.Context, id uint) (models.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, &services.NotFoundError{ID: id}
}

func (s *stubReader) SearchProducts(_ context.Context, keyword string) ([]models.Product, error) {
	var out []models.Product
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(keyword)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubReader) FindProductsByPriceRange(_ context.Context, lo, hi decimal.Decimal) ([]models.Product, error) {
	s.lastMin = lo
	var out []models.Product
	for _, p := range s.products {
		if p.Price.GreaterThanOrEqual(lo) && p.Price.LessThanOrEqual(hi) {
			out = append(out, p)
		}
	}
	return out, nil
}

type result struct {
	Data   map[string]any `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func newHandler(t *testing.T) (http.Handler, *stubReader) {
	t.Helper()
	reader := &stubReader{products: []models.Product{
		{ID: 1, Name: "Widget", Description: "A widget", Price: decimal.RequireFromString("9.99")},
		{ID: 2, Name: "Test Product", Price: decimal.RequireFromString("15")},
	}}
	schema, err := appgql.NewSchema(reader)
	require.NoError(t, err)
	return gql.Handler(schema), reader
}

func post(t *testing.T, h http.Handler, query string, vars map[string]any) result {
	t.Helper()
	body, _ := json.Marshal(gql.Request{Query: query, Variables: vars})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(string(body))))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

func TestProductsQuery(t *testing.T) {
	h, _ := newHandler(t)
	res := post(t, h, `{ products { id name price } }`, nil)
	require.Empty(t, res.Errors)

	products := res.Data["products"].([]any)
	require.Len(t, products, 2)
	first := products[0].(map[string]any)
	assert.Equal(t, float64(1), first["id"])
	assert.Equal(t, "9.99", first["price"])
	assert.Equal(t, "15.00", products[1].(map[string]any)["price"])
}

func TestProductByIDWithVariables(t *testing.T) {
	h, _ := newHandler(t)
	res := post(t, h, `query($id: Int!) { product(id: $id) { name description } }`, map[string]any{"id": 1})
	require.Empty(t, res.Errors)
	assert.Equal(t, map[string]any{"name": "Widget", "description": "A widget"}, res.Data["product"])

	res = post(t, h, `{ product(id: 9) { name } }`, nil)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "Product not found with id: 9", res.Errors[0].Message)
	assert.Nil(t, res.Data["product"])
}

func TestSearchAndPriceRange(t *testing.T) {
	h, reader := newHandler(t)

	res := post(t, h, `{ searchProducts(keyword: "test") { name } }`, nil)
	require.Empty(t, res.Errors)
	assert.Len(t, res.Data["searchProducts"], 1)

	res = post(t, h, `{ productsByPriceRange(minPrice: "10.00", maxPrice: "20") { id } }`, nil)
	require.Empty(t, res.Errors)
	assert.Len(t, res.Data["productsByPriceRange"], 1)
	assert.Equal(t, "10", reader.lastMin.String())

	res = post(t, h, `{ productsByPriceRange(minPrice: "ten", maxPrice: "20") { id } }`, nil)
	require.NotEmpty(t, res.Errors)
}

func TestGetQueryAndBadRequests(t *testing.T) {
	h, _ := newHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/graphql?query="+url.QueryEscape("{ products { id } }"), nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"products"`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/graphql", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/graphql", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
