package handlers

import (
	"net/http"

	"github.com/eshaffer321/cart-bundle-transforms/internal/api/dto"
	"github.com/eshaffer321/cart-bundle-transforms/internal/transform"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	*Base
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(registry *transform.Registry) *HealthHandler {
	return &HealthHandler{Base: NewBase(registry)}
}

// ServeHTTP handles the health check request.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, dto.NewHealthResponse(h.transformNames()))
}
