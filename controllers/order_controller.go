package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/bakery-api/middleware"
	"github.com/kendall-kelly/bakery-api/services"
)

const (
	orderNotFoundCode    = "ORDER_NOT_FOUND"
	orderNotFoundMessage = "Order not found"
)

// CreateOrder handles POST /api/v1/orders - places an order from a checkout
func CreateOrder(c *gin.Context) {
	var req services.CreateOrderInput
	if err := bindStrictJSON(c, &req); err != nil {
		respondInvalidRequest(c, err)
		return
	}

	order, err := services.GetOrderService().CreateOrder(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, orderNotFoundCode, orderNotFoundMessage)
		return
	}

	respondData(c, http.StatusCreated, order)
}

// ListOrders handles GET /api/v1/orders - newest first, optionally filtered
// by ?phone=
func ListOrders(c *gin.Context) {
	orders, err := services.GetOrderService().ListOrders(c.Request.Context(), c.Query("phone"))
	if err != nil {
		respondServiceError(c, err, orderNotFoundCode, orderNotFoundMessage)
		return
	}

	respondData(c, http.StatusOK, orders)
}

// GetOrder handles GET /api/v1/orders/:id
func GetOrder(c *gin.Context) {
	order, err := services.GetOrderService().GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, orderNotFoundCode, orderNotFoundMessage)
		return
	}

	respondData(c, http.StatusOK, order)
}

// UpdateOrder handles PATCH /api/v1/orders/:id - customer cancellation and
// reviews. Completion is changed only through the admin toggle.
func UpdateOrder(c *gin.Context) {
	var req services.OrderPatch
	if err := bindStrictJSON(c, &req); err != nil {
		respondInvalidRequest(c, err)
		return
	}

	order, err := services.GetOrderService().UpdateOrder(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, orderNotFoundCode, orderNotFoundMessage)
		return
	}

	respondData(c, http.StatusOK, order)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel
func CancelOrder(c *gin.Context) {
	order, err := services.GetOrderService().CancelOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, orderNotFoundCode, orderNotFoundMessage)
		return
	}

	respondData(c, http.StatusOK, order)
}

// ToggleOrderCompleted handles POST /api/v1/orders/:id/toggle-completed (admin)
func ToggleOrderCompleted(c *gin.Context) {
	order, err := services.GetOrderService().ToggleCompleted(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, orderNotFoundCode, orderNotFoundMessage)
		return
	}

	respondData(c, http.StatusOK, order)
}

// DeleteOrder handles DELETE /api/v1/orders/:id (admin)
func DeleteOrder(c *gin.Context) {
	id := c.Param("id")
	if err := services.GetOrderService().DeleteOrder(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, orderNotFoundCode, orderNotFoundMessage)
		return
	}

	if subject, err := middleware.GetAdminSubject(c); err == nil {
		log.Printf("Order %s deleted by %s", id, subject)
	}
	respondData(c, http.StatusOK, gin.H{"id": id})
}

// GetProductReviews handles GET /api/v1/reviews/:productId
func GetProductReviews(c *gin.Context) {
	reviews, err := services.GetOrderService().ProductReviews(c.Request.Context(), c.Param("productId"))
	if err != nil {
		respondServiceError(c, err, "PRODUCT_NOT_FOUND", "Product not found")
		return
	}

	respondData(c, http.StatusOK, reviews)
}
