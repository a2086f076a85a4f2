package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/bakery-api/services"
)

const (
	imageNotFoundCode    = "IMAGE_NOT_FOUND"
	imageNotFoundMessage = "Gallery image not found"
)

// ListGallery handles GET /api/v1/gallery
func ListGallery(c *gin.Context) {
	images, err := services.GetGalleryService().ListImages(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, imageNotFoundCode, imageNotFoundMessage)
		return
	}

	respondData(c, http.StatusOK, images)
}

// AddGalleryImage handles POST /api/v1/gallery (admin) - adds an image by URL
func AddGalleryImage(c *gin.Context) {
	var req services.GalleryInput
	if err := bindStrictJSON(c, &req); err != nil {
		respondInvalidRequest(c, err)
		return
	}

	image, err := services.GetGalleryService().AddImage(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, imageNotFoundCode, imageNotFoundMessage)
		return
	}

	respondData(c, http.StatusCreated, image)
}

// UploadGalleryImage handles POST /api/v1/gallery/upload (admin) - a
// multipart form with an "image" file and optional title, description and
// date fields
func UploadGalleryImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_FILE", "An image file is required in the \"image\" field")
		return
	}

	in := services.GalleryInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Date:        c.PostForm("date"),
	}
	image, err := services.GetGalleryService().UploadImage(c.Request.Context(), fileHeader, in)
	if err != nil {
		respondServiceError(c, err, imageNotFoundCode, imageNotFoundMessage)
		return
	}

	respondData(c, http.StatusCreated, image)
}

// DeleteGalleryImage handles DELETE /api/v1/gallery/:id (admin)
func DeleteGalleryImage(c *gin.Context) {
	if err := services.GetGalleryService().DeleteImage(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, imageNotFoundCode, imageNotFoundMessage)
		return
	}

	respondData(c, http.StatusOK, gin.H{"id": c.Param("id")})
}
