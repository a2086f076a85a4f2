package main

import (
	"fmt"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/bakery-api/config"
	"github.com/kendall-kelly/bakery-api/controllers"
	"github.com/kendall-kelly/bakery-api/middleware"
	"github.com/kendall-kelly/bakery-api/services"
)

// setupRouter builds the HTTP routes. Services must be initialized first.
func setupRouter(cfg *config.Config) (*gin.Engine, error) {
	if err := controllers.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	adminHandlers, err := middleware.RequireAdmin(cfg, services.GetAdminService())
	if err != nil {
		return nil, fmt.Errorf("failed to set up admin auth: %w", err)
	}

	router := gin.Default()
	router.NoRoute(controllers.RouteNotFound)
	if len(cfg.CORSAllowedOrigins) > 0 {
		router.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/database/status", databaseStatus)
		v1.GET("/storefront", controllers.GetStorefront)

		v1.POST("/orders", controllers.CreateOrder)
		v1.GET("/orders", controllers.ListOrders)
		v1.GET("/orders/:id", controllers.GetOrder)
		v1.PATCH("/orders/:id", controllers.UpdateOrder)
		v1.POST("/orders/:id/cancel", controllers.CancelOrder)
		v1.GET("/reviews/:productId", controllers.GetProductReviews)

		v1.GET("/products", controllers.ListProducts)
		v1.GET("/products/:id", controllers.GetProduct)
		v1.POST("/cart/quote", controllers.QuoteCart)

		v1.GET("/blocked-dates", controllers.ListBlockedDates)
		v1.GET("/pickup/next", controllers.GetNextPickup)
		v1.GET("/pickup/dates", controllers.ListPickupDates)
		v1.GET("/pickup/times", controllers.ListPickupTimes)

		v1.GET("/gallery", controllers.ListGallery)
		v1.GET("/updates", controllers.ListUpdates)
		v1.GET("/uploads/:filename", controllers.GetUploadedImage)

		v1.POST("/admin/verify-password", controllers.VerifyAdminPassword)

		admin := v1.Group("", adminHandlers...)
		{
			admin.POST("/orders/:id/toggle-completed", controllers.ToggleOrderCompleted)
			admin.DELETE("/orders/:id", controllers.DeleteOrder)

			admin.POST("/products", controllers.CreateProduct)
			admin.PATCH("/products/:id", controllers.UpdateProduct)
			admin.DELETE("/products/:id", controllers.DeleteProduct)

			admin.POST("/blocked-dates", controllers.UpdateBlockedDates)

			admin.POST("/gallery", controllers.AddGalleryImage)
			admin.POST("/gallery/upload", controllers.UploadGalleryImage)
			admin.DELETE("/gallery/:id", controllers.DeleteGalleryImage)

			admin.POST("/updates", controllers.AddUpdate)
			admin.DELETE("/updates/:id", controllers.DeleteUpdate)
		}
	}

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}
