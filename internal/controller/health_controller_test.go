package controller

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"doc-chat-be/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheckWithoutDatabase(t *testing.T) {
	app := fiber.New()
	NewHealthController(nil).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	var res dto.HealthCheckResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, "unhealthy", res.Status)
	assert.Equal(t, "error", res.Database)
	assert.Equal(t, "not connected", res.Error)
	assert.False(t, res.Timestamp.IsZero())
}
