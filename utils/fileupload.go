package utils

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

const (
	// MaxFileSize is 10MB in bytes
	MaxFileSize = 10 * 1024 * 1024
)

var (
	// UploadDir is the directory where uploaded gallery images are stored
	// when no object storage is configured. Can be overridden for testing.
	UploadDir = "./uploads"

	// allowedImageFormats maps an accepted extension to its content type
	allowedImageFormats = map[string]string{
		".png":  "image/png",
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
	}
)

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidateImageFile validates the uploaded file format and size
func ValidateImageFile(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > MaxFileSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxFileSize/(1024*1024)),
		}
	}

	if ImageContentType(fileHeader.Filename) == "" {
		return &FileUploadError{
			Code:    "INVALID_FILE_FORMAT",
			Message: fmt.Sprintf("Only %s files are allowed", strings.Join(allowedExtensions(), ", ")),
		}
	}

	return nil
}

// ImageContentType returns the content type for an accepted image filename,
// or "" when the extension is not accepted
func ImageContentType(filename string) string {
	return allowedImageFormats[strings.ToLower(filepath.Ext(filename))]
}

func allowedExtensions() []string {
	exts := make([]string, 0, len(allowedImageFormats))
	for ext := range allowedImageFormats {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// UniqueImageName returns a collision free name keeping the original extension
func UniqueImageName(original string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(original))
}

// SaveUploadedFile saves the uploaded file to the local filesystem
// Returns the filename relative to uploadDir
func SaveUploadedFile(fileHeader *multipart.FileHeader, uploadDir string) (filename string, err error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	filename = UniqueImageName(fileHeader.Filename)
	fullPath := filepath.Join(uploadDir, filename)

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			log.Printf("warning: failed to close source file: %v", closeErr)
		}
	}()

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer func() {
		if closeErr := dst.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close destination file: %w", closeErr)
		}
	}()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return filename, nil
}

// GetImageURL returns the URL path for accessing a locally stored image
func GetImageURL(filename string) string {
	if filename == "" {
		return ""
	}
	return fmt.Sprintf("/api/v1/uploads/%s", filename)
}
