package controllers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/bakery-api/utils"
)

// GetUploadedImage handles GET /api/v1/uploads/:filename - serves gallery
// images saved to the local upload directory
func GetUploadedImage(c *gin.Context) {
	filename := c.Param("filename")

	if filename == "" {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Filename is required")
		return
	}

	// Prevent directory traversal
	if strings.Contains(filename, "..") || strings.ContainsAny(filename, `/\`) {
		respondError(c, http.StatusBadRequest, "INVALID_FILENAME", "Invalid filename")
		return
	}

	contentType := utils.ImageContentType(filename)
	if contentType == "" {
		respondError(c, http.StatusBadRequest, "INVALID_FILE_TYPE", "Only PNG and JPEG images are served")
		return
	}

	filePath := filepath.Join(utils.UploadDir, filename)
	if info, err := os.Stat(filePath); err != nil || info.IsDir() {
		respondError(c, http.StatusNotFound, "FILE_NOT_FOUND", "Image not found")
		return
	}

	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=86400")
	c.File(filePath)
}
