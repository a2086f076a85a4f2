package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/bakery-api/services"
)

const (
	productNotFoundCode    = "PRODUCT_NOT_FOUND"
	productNotFoundMessage = "Product not found"
)

// ListProducts handles GET /api/v1/products
func ListProducts(c *gin.Context) {
	products, err := services.GetProductService().ListProducts(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, productNotFoundCode, productNotFoundMessage)
		return
	}

	respondData(c, http.StatusOK, products)
}

// GetProduct handles GET /api/v1/products/:id
func GetProduct(c *gin.Context) {
	product, err := services.GetProductService().GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, productNotFoundCode, productNotFoundMessage)
		return
	}

	respondData(c, http.StatusOK, product)
}

// CreateProduct handles POST /api/v1/products (admin)
func CreateProduct(c *gin.Context) {
	var req services.ProductInput
	if err := bindStrictJSON(c, &req); err != nil {
		respondInvalidRequest(c, err)
		return
	}

	product, err := services.GetProductService().CreateProduct(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, productNotFoundCode, productNotFoundMessage)
		return
	}

	respondData(c, http.StatusCreated, product)
}

// UpdateProduct handles PATCH /api/v1/products/:id (admin)
func UpdateProduct(c *gin.Context) {
	var req services.ProductPatch
	if err := bindStrictJSON(c, &req); err != nil {
		respondInvalidRequest(c, err)
		return
	}

	product, err := services.GetProductService().UpdateProduct(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, productNotFoundCode, productNotFoundMessage)
		return
	}

	respondData(c, http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/v1/products/:id (admin)
func DeleteProduct(c *gin.Context) {
	if err := services.GetProductService().DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, productNotFoundCode, productNotFoundMessage)
		return
	}

	respondData(c, http.StatusOK, gin.H{"id": c.Param("id")})
}

// QuoteCartRequest is the body of POST /api/v1/cart/quote
type QuoteCartRequest struct {
	Items []services.QuoteLine `json:"items"`
}

// QuoteCart handles POST /api/v1/cart/quote - replays a cart through the
// cart rules and returns what was accepted with the totals
func QuoteCart(c *gin.Context) {
	var req QuoteCartRequest
	if err := bindStrictJSON(c, &req); err != nil {
		respondInvalidRequest(c, err)
		return
	}

	quote, err := services.GetProductService().Quote(c.Request.Context(), req.Items)
	if err != nil {
		respondServiceError(c, err, productNotFoundCode, productNotFoundMessage)
		return
	}

	respondData(c, http.StatusOK, quote)
}
