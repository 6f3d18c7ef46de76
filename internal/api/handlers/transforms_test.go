package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/cart-bundle-transforms/internal/api/dto"
	"github.com/eshaffer321/cart-bundle-transforms/internal/api/handlers"
	"github.com/eshaffer321/cart-bundle-transforms/internal/domain/cart"
)

func newTransformsRouter(t *testing.T) http.Handler {
	t.Helper()
	handler := handlers.NewTransformsHandler(newRegistry(t))

	r := chi.NewRouter()
	r.Get("/api/transforms", handler.List)
	r.Post("/api/transforms/{name}/run", handler.Run)
	return r
}

const expandCart = `{"cart":{"lines":[{
	"id": "gid://shopify/CartLine/1",
	"quantity": 1,
	"merchandise": {"__typename": "ProductVariant", "id": "gid://shopify/ProductVariant/100"},
	"bundle_key": {"value": "bundle-123"},
	"bundle_name": {"value": "Mi Bundle Especial"},
	"bundle_discount": {"value": "20"},
	"bundle_components": {"value": "[{\"variantId\":\"gid://shopify/ProductVariant/1\",\"quantity\":2,\"price\":\"25.00\"},{\"variantId\":\"gid://shopify/ProductVariant/2\",\"quantity\":1,\"price\":\"50.00\"}]"}
}]}}`

func TestTransformsHandler_List(t *testing.T) {
	router := newTransformsRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/transforms", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.TransformListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, 2, response.Count)
	require.Len(t, response.Transforms, 2)
	assert.Equal(t, "expand", response.Transforms[0].Name)
	assert.Equal(t, "/api/transforms/expand/run", response.Transforms[0].RunPath)
	assert.Equal(t, "merge", response.Transforms[1].Name)
	assert.NotEmpty(t, response.Transforms[1].Description)
}

func TestTransformsHandler_Run(t *testing.T) {
	t.Run("expands a bundle line", func(t *testing.T) {
		router := newTransformsRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/api/transforms/expand/run", strings.NewReader(expandCart))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var result cart.Result
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
		require.Len(t, result.Operations, 1)

		op := result.Operations[0].LineExpand
		require.NotNil(t, op)
		assert.Equal(t, "Mi Bundle Especial", op.Title)
		require.Len(t, op.ExpandedCartItems, 2)
		assert.Equal(t, "20.00", op.ExpandedCartItems[0].Price.Adjustment.FixedPricePerUnit.Amount)
		assert.Equal(t, "40.00", op.ExpandedCartItems[1].Price.Adjustment.FixedPricePerUnit.Amount)
	})

	t.Run("merge on a single bundle line returns no changes", func(t *testing.T) {
		router := newTransformsRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/api/transforms/merge/run", strings.NewReader(expandCart))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"operations":[]}`, rec.Body.String())
	})

	t.Run("unknown transform returns 404", func(t *testing.T) {
		router := newTransformsRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/api/transforms/discount/run", strings.NewReader(expandCart))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)

		var apiErr dto.APIError
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
		assert.Equal(t, dto.ErrCodeNotFound, apiErr.Code)
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		router := newTransformsRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/api/transforms/expand/run", strings.NewReader(`{"cart":`))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var apiErr dto.APIError
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
		assert.Equal(t, dto.ErrCodeInvalidCart, apiErr.Code)
	})
}
