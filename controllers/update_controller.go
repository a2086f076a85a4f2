package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/bakery-api/services"
)

// ListUpdates handles GET /api/v1/updates - newest first
func ListUpdates(c *gin.Context) {
	updates, err := services.GetChangelogService().ListUpdates(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "UPDATE_NOT_FOUND", "Update not found")
		return
	}

	respondData(c, http.StatusOK, updates)
}

// AddUpdate handles POST /api/v1/updates (admin)
func AddUpdate(c *gin.Context) {
	var req services.UpdateInput
	if err := bindStrictJSON(c, &req); err != nil {
		respondInvalidRequest(c, err)
		return
	}

	update, err := services.GetChangelogService().AddUpdate(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "UPDATE_NOT_FOUND", "Update not found")
		return
	}

	respondData(c, http.StatusCreated, update)
}

// DeleteUpdate handles DELETE /api/v1/updates/:id (admin)
func DeleteUpdate(c *gin.Context) {
	if err := services.GetChangelogService().DeleteUpdate(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "UPDATE_NOT_FOUND", "Update not found")
		return
	}

	respondData(c, http.StatusOK, gin.H{"id": c.Param("id")})
}
