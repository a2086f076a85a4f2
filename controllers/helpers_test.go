package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/bakery-api/config"
	"github.com/kendall-kelly/bakery-api/models"
	"github.com/kendall-kelly/bakery-api/repository"
	"github.com/kendall-kelly/bakery-api/schedule"
	"github.com/kendall-kelly/bakery-api/services"
	"github.com/kendall-kelly/bakery-api/storage"
	"github.com/stretchr/testify/require"
)

var central = time.FixedZone("CST", -6*60*60)

// Saturday 2025-12-20, 3pm local
var testNow = time.Date(2025, 12, 20, 15, 0, 0, 0, central)

var (
	sourdough = models.Product{ID: "classic-sourdough", Name: "Classic Sourdough", Price: 10, Category: "Sourdough Bread", InStock: true}
	cookies   = models.Product{ID: "cookies", Name: "Cookies", Price: 12, Category: "Sweets", InStock: true}
	halfBox   = models.Product{ID: "half-loaf-box", Name: "Half Loaf Box", Price: 18, Category: "Loaf Boxes", InStock: true, LoafType: models.LoafTypeHalf}
)

type testEnv struct {
	router *gin.Engine
	store  *storage.MemoryStore
	images *services.MockImageService
}

// setupTestEnv wires every service over an in-memory store with a fixed
// clock and registers the handlers without auth
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, RegisterValidators())

	store := storage.NewMemoryStore()
	scheduler := schedule.New(central, schedule.WithClock(func() time.Time { return testNow }))
	pickup := services.NewPickupService(repository.NewBlockedDates(store), scheduler)
	orders := services.NewOrderService(repository.NewOrderRepository(store), pickup, nil)
	images := services.NewMockImageService()

	services.SetPickupService(pickup)
	services.SetOrderService(orders)
	services.SetProductService(services.NewProductService(repository.NewProductRepository(store), func() ([]models.Product, error) {
		return []models.Product{sourdough, cookies, halfBox}, nil
	}))
	services.SetGalleryService(services.NewGalleryService(repository.NewGalleryRepository(store), images))
	services.SetChangelogService(services.NewChangelogService(repository.NewUpdateRepository(store)))
	services.SetAdminService(services.NewAdminService("s3cret", "token-secret"))
	config.SetConfig(&config.Config{PickupAddress: "123 Main St", VenmoHandle: "@bakery", Timezone: "America/Chicago"})

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.POST("/orders", CreateOrder)
	v1.GET("/orders", ListOrders)
	v1.GET("/orders/:id", GetOrder)
	v1.PATCH("/orders/:id", UpdateOrder)
	v1.POST("/orders/:id/cancel", CancelOrder)
	v1.POST("/orders/:id/toggle-completed", ToggleOrderCompleted)
	v1.DELETE("/orders/:id", DeleteOrder)
	v1.GET("/reviews/:productId", GetProductReviews)
	v1.GET("/products", ListProducts)
	v1.GET("/products/:id", GetProduct)
	v1.POST("/products", CreateProduct)
	v1.PATCH("/products/:id", UpdateProduct)
	v1.DELETE("/products/:id", DeleteProduct)
	v1.POST("/cart/quote", QuoteCart)
	v1.GET("/blocked-dates", ListBlockedDates)
	v1.POST("/blocked-dates", UpdateBlockedDates)
	v1.GET("/pickup/next", GetNextPickup)
	v1.GET("/pickup/dates", ListPickupDates)
	v1.GET("/pickup/times", ListPickupTimes)
	v1.GET("/gallery", ListGallery)
	v1.POST("/gallery", AddGalleryImage)
	v1.POST("/gallery/upload", UploadGalleryImage)
	v1.DELETE("/gallery/:id", DeleteGalleryImage)
	v1.GET("/updates", ListUpdates)
	v1.POST("/updates", AddUpdate)
	v1.DELETE("/updates/:id", DeleteUpdate)
	v1.POST("/admin/verify-password", VerifyAdminPassword)
	v1.GET("/storefront", GetStorefront)

	t.Cleanup(orders.Wait)
	return &testEnv{router: router, store: store, images: images}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var response map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), w.Body.String())
	}
	return w, response
}

func errorCode(response map[string]any) string {
	errBody, _ := response["error"].(map[string]any)
	code, _ := errBody["code"].(string)
	return code
}

func dataMap(t *testing.T, response map[string]any) map[string]any {
	t.Helper()
	data, ok := response["data"].(map[string]any)
	require.True(t, ok, "data should be an object: %v", response)
	return data
}

func dataList(t *testing.T, response map[string]any) []any {
	t.Helper()
	data, ok := response["data"].([]any)
	require.True(t, ok, "data should be an array: %v", response)
	return data
}

func orderBody() map[string]any {
	return map[string]any{
		"customerName": "Jane Doe",
		"phone":        "(555) 123-4567",
		"items": []map[string]any{
			{"product": sourdough, "quantity": 2, "cut": true},
			{"product": cookies, "quantity": 1},
		},
		"total":         34,
		"paymentMethod": "cash",
		"pickupDate":    "2025-12-22",
		"pickupTime":    "10:00 AM",
	}
}
