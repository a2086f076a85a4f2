package controllers

import (
	"net/http"
	"testing"

	"github.com/kendall-kelly/bakery-api/cart"
	"github.com/kendall-kelly/bakery-api/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProducts_DefaultCatalog(t *testing.T) {
	env := setupTestEnv(t)

	w, response := env.do(t, http.MethodGet, "/api/v1/products", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, dataList(t, response), 3)

	w, response = env.do(t, http.MethodGet, "/api/v1/products/half-loaf-box", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "half", dataMap(t, response)["loafType"])

	w, response = env.do(t, http.MethodGet, "/api/v1/products/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PRODUCT_NOT_FOUND", errorCode(response))
}

func TestCreateProduct(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]any
		expectedStatus int
	}{
		{
			name:           "creates a product",
			body:           map[string]any{"name": "Rye", "price": 11.5, "category": "Sourdough Bread"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "free product is allowed",
			body:           map[string]any{"name": "Sample", "price": 0, "category": "Sweets"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing name",
			body:           map[string]any{"price": 5, "category": "Sweets"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing price",
			body:           map[string]any{"name": "Rye", "category": "Sweets"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative price",
			body:           map[string]any{"name": "Rye", "price": -1, "category": "Sweets"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown loaf type",
			body:           map[string]any{"name": "Box", "price": 20, "category": "Loaf Boxes", "loafType": "giant"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnv(t)

			w, response := env.do(t, http.MethodPost, "/api/v1/products", tt.body)
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.expectedStatus != http.StatusCreated {
				assert.Equal(t, services.CodeValidation, errorCode(response))
				return
			}

			data := dataMap(t, response)
			assert.NotEmpty(t, data["id"])
			assert.Equal(t, true, data["inStock"])

			_, list := env.do(t, http.MethodGet, "/api/v1/products", nil)
			assert.Len(t, dataList(t, list), 4, "Defaults are kept next to the new product")
		})
	}
}

func TestUpdateProduct(t *testing.T) {
	env := setupTestEnv(t)

	w, response := env.do(t, http.MethodPatch, "/api/v1/products/cookies", map[string]any{"price": 14, "inStock": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := dataMap(t, response)
	assert.Equal(t, float64(14), data["price"])
	assert.Equal(t, false, data["inStock"])
	assert.Equal(t, "Cookies", data["name"])

	w, response = env.do(t, http.MethodPatch, "/api/v1/products/cookies", map[string]any{"flavor": "mint"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, services.CodeValidation, errorCode(response))

	w, _ = env.do(t, http.MethodPatch, "/api/v1/products/missing", map[string]any{"price": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProduct(t *testing.T) {
	env := setupTestEnv(t)

	w, _ := env.do(t, http.MethodDelete, "/api/v1/products/cookies", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	_, response := env.do(t, http.MethodGet, "/api/v1/products", nil)
	assert.Len(t, dataList(t, response), 2)

	w, _ = env.do(t, http.MethodDelete, "/api/v1/products/cookies", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQuoteCart(t *testing.T) {
	env := setupTestEnv(t)

	w, response := env.do(t, http.MethodPost, "/api/v1/cart/quote", map[string]any{
		"items": []map[string]any{
			{"productId": "classic-sourdough", "quantity": 2},
			{"productId": "cookies", "quantity": 3, "cut": true},
			{"productId": "cookies", "quantity": 2, "cut": true},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	data := dataMap(t, response)
	assert.Equal(t, float64(cart.MaxItems), data["totalItems"])
	assert.Len(t, data["items"], 2, "The three cookie line is dropped, the two cookie line kept")
	// 2 x 10 + 2 x (12 + 1 slicing)
	assert.InDelta(t, 46.0, data["totalPrice"], 0.001)
	assert.Equal(t, []any{cart.ErrCartLimit.Error()}, data["warnings"])
}

func TestQuoteCart_LoafBox(t *testing.T) {
	env := setupTestEnv(t)

	_, response := env.do(t, http.MethodPost, "/api/v1/cart/quote", map[string]any{
		"items": []map[string]any{
			{"productId": "half-loaf-box", "quantity": 1, "selectedBreads": []string{"rye", "seeded"}},
			{"productId": "half-loaf-box", "quantity": 1, "selectedBreads": []string{"seeded", "rye"}},
		},
	})

	data := dataMap(t, response)
	items := data["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, float64(2), items[0].(map[string]any)["quantity"])
	assert.Empty(t, data["warnings"])

	w, _ := env.do(t, http.MethodPost, "/api/v1/cart/quote", map[string]any{"lines": []any{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
