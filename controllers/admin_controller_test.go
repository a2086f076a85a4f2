package controllers

import (
	"net/http"
	"testing"

	"github.com/kendall-kelly/bakery-api/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAdminPassword(t *testing.T) {
	env := setupTestEnv(t)

	w, response := env.do(t, http.MethodPost, "/api/v1/admin/verify-password", map[string]any{"password": "s3cret"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := dataMap(t, response)
	assert.Equal(t, true, data["valid"])
	token, ok := data["token"].(string)
	require.True(t, ok)
	assert.NoError(t, services.GetAdminService().ValidateToken(token))

	w, response = env.do(t, http.MethodPost, "/api/v1/admin/verify-password", map[string]any{"password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_PASSWORD", errorCode(response))

	w, response = env.do(t, http.MethodPost, "/api/v1/admin/verify-password", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, services.CodeValidation, errorCode(response))
}

func TestVerifyAdminPassword_WithoutTokens(t *testing.T) {
	env := setupTestEnv(t)
	services.SetAdminService(services.NewAdminService("s3cret", ""))

	_, response := env.do(t, http.MethodPost, "/api/v1/admin/verify-password", map[string]any{"password": "s3cret"})
	data := dataMap(t, response)
	assert.Equal(t, true, data["valid"])
	assert.NotContains(t, data, "token")
}

func TestGetStorefront(t *testing.T) {
	env := setupTestEnv(t)

	w, response := env.do(t, http.MethodGet, "/api/v1/storefront", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, response)
	assert.Equal(t, "123 Main St", data["pickupAddress"])
	assert.Equal(t, "@bakery", data["venmoHandle"])
}
