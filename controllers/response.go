package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/kendall-kelly/bakery-api/repository"
	"github.com/kendall-kelly/bakery-api/schedule"
	"github.com/kendall-kelly/bakery-api/services"
	"github.com/kendall-kelly/bakery-api/utils"
)

var (
	validatorsOnce sync.Once
	validatorsErr  error
)

// RegisterValidators adds the custom binding rules to gin's validator
func RegisterValidators() error {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			validatorsErr = errors.New("gin binding engine is not go-playground/validator")
			return
		}
		validatorsErr = v.RegisterValidation("pickupdate", func(fl validator.FieldLevel) bool {
			_, err := time.Parse(schedule.DateLayout, fl.Field().String())
			return err == nil
		})
	})
	return validatorsErr
}

// bindStrictJSON decodes the body rejecting unknown fields, then runs the
// binding tags
func bindStrictJSON(c *gin.Context, obj any) error {
	if err := RegisterValidators(); err != nil {
		return err
	}
	if c.Request.Body == nil {
		return errors.New("request body is empty")
	}

	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(obj); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return binding.Validator.ValidateStruct(obj)
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// RouteNotFound answers unknown routes with the JSON error envelope
func RouteNotFound(c *gin.Context) {
	respondError(c, http.StatusNotFound, "ROUTE_NOT_FOUND", "Route not found")
}

func respondInvalidRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    services.CodeValidation,
			"message": "Invalid request data",
			"details": err.Error(),
		},
	})
}

// respondServiceError maps a service error to a status code. notFoundCode
// and notFoundMessage are used for repository.ErrNotFound.
func respondServiceError(c *gin.Context, err error, notFoundCode, notFoundMessage string) {
	var validationErr *services.ValidationError
	var uploadErr *utils.FileUploadError

	switch {
	case errors.As(err, &validationErr):
		respondError(c, http.StatusBadRequest, validationErr.Code, validationErr.Message)
	case errors.As(err, &uploadErr):
		respondError(c, http.StatusBadRequest, uploadErr.Code, uploadErr.Message)
	case errors.Is(err, repository.ErrNotFound):
		respondError(c, http.StatusNotFound, notFoundCode, notFoundMessage)
	default:
		log.Printf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_ERROR",
				"message": "Failed to process request",
				"details": err.Error(),
			},
		})
	}
}
