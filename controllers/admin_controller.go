package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/bakery-api/config"
	"github.com/kendall-kelly/bakery-api/services"
)

// VerifyPasswordRequest is the body of POST /api/v1/admin/verify-password
type VerifyPasswordRequest struct {
	Password string `json:"password"`
}

// VerifyAdminPassword handles POST /api/v1/admin/verify-password. On success
// it returns an admin token when tokens are enabled.
func VerifyAdminPassword(c *gin.Context) {
	var req VerifyPasswordRequest
	if err := bindStrictJSON(c, &req); err != nil {
		respondInvalidRequest(c, err)
		return
	}

	admin := services.GetAdminService()
	token, err := admin.VerifyPassword(req.Password)
	if errors.Is(err, services.ErrInvalidPassword) {
		respondError(c, http.StatusUnauthorized, "INVALID_PASSWORD", "Invalid password")
		return
	}
	if err != nil {
		respondServiceError(c, err, "NOT_FOUND", "Not found")
		return
	}

	data := gin.H{"valid": true}
	if token != "" {
		data["token"] = token
		data["expiresIn"] = int(services.AdminTokenTTL.Seconds())
	}
	respondData(c, http.StatusOK, data)
}

// GetStorefront handles GET /api/v1/storefront - public display settings
func GetStorefront(c *gin.Context) {
	cfg := config.GetConfig()
	respondData(c, http.StatusOK, gin.H{
		"pickupAddress": cfg.PickupAddress,
		"venmoHandle":   cfg.VenmoHandle,
		"timezone":      cfg.Timezone,
	})
}
