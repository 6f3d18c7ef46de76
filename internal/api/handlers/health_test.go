package handlers_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/cart-bundle-transforms/internal/api/dto"
	"github.com/eshaffer321/cart-bundle-transforms/internal/api/handlers"
	"github.com/eshaffer321/cart-bundle-transforms/internal/infrastructure/config"
	"github.com/eshaffer321/cart-bundle-transforms/internal/transform"
)

func newRegistry(t *testing.T) *transform.Registry {
	t.Helper()
	registry, err := transform.NewDefaultRegistry(config.Default().Transforms,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return registry
}

func TestHealthHandler_ServeHTTP(t *testing.T) {
	t.Run("returns 200 OK with health status", func(t *testing.T) {
		handler := handlers.NewHealthHandler(newRegistry(t))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var response dto.HealthResponse
		err := json.NewDecoder(rec.Body).Decode(&response)
		require.NoError(t, err)

		assert.Equal(t, "ok", response.Status)
		assert.NotEmpty(t, response.Timestamp)
		assert.Equal(t, []string{"expand", "merge"}, response.Transforms)
	})
}
