package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/bakery-api/config"
	"github.com/kendall-kelly/bakery-api/services"
)

const (
	shutdownTimeout = 10 * time.Second
	pingTimeout     = 5 * time.Second
)

func main() {
	log.Println("Starting Bakery API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	store, err := services.InitStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	log.Printf("Using %s storage", cfg.StorageDriver)

	if err := services.InitServices(ctx, cfg, store); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	router, err := setupRouter(cfg)
	if err != nil {
		log.Fatalf("Failed to set up router: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server is running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shut down: %v", err)
	}

	// let in-flight order notifications finish
	services.GetOrderService().Wait()
	log.Println("Server stopped")
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Bakery API is running",
	})
}

// databaseStatus pings the collection store
func databaseStatus(c *gin.Context) {
	store := services.GetStore()
	if store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_NOT_INITIALIZED",
				"message": "Storage is not initialized",
			},
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		log.Printf("Storage ping failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_CONNECTION_ERROR",
				"message": "Storage connection failed",
				"details": err.Error(),
			},
		})
		return
	}

	driver := ""
	if cfg := config.GetConfig(); cfg != nil {
		driver = cfg.StorageDriver
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Storage connected",
		"driver":  driver,
	})
}
