package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/eshaffer321/cart-bundle-transforms/internal/api/dto"
	"github.com/eshaffer321/cart-bundle-transforms/internal/api/middleware"
	"github.com/eshaffer321/cart-bundle-transforms/internal/transform"
)

// maxBodyBytes caps the size of a cart snapshot accepted by the preview server.
const maxBodyBytes = 1 << 20

// Base provides shared functionality for all handlers.
type Base struct {
	registry *transform.Registry
}

// NewBase creates a new base handler with the given transform registry.
func NewBase(registry *transform.Registry) *Base {
	return &Base{registry: registry}
}

// WriteJSON writes a JSON response with the given status code.
func (b *Base) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes an error response with the given status code.
func (b *Base) WriteError(w http.ResponseWriter, r *http.Request, status int, err dto.APIError) {
	b.WriteJSON(w, status, err.WithRequestID(middleware.RequestID(r.Context())))
}

// transformNames lists the registered transforms in name order.
func (b *Base) transformNames() []string {
	list := b.registry.List()
	names := make([]string, 0, len(list))
	for _, t := range list {
		names = append(names, t.Name())
	}
	return names
}
