package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eshaffer321/cart-bundle-transforms/internal/api/dto"
	"github.com/eshaffer321/cart-bundle-transforms/internal/domain/cart"
	"github.com/eshaffer321/cart-bundle-transforms/internal/transform"
)

// TransformsHandler exposes the registered cart transforms over HTTP.
type TransformsHandler struct {
	*Base
}

// NewTransformsHandler creates a new transforms handler.
func NewTransformsHandler(registry *transform.Registry) *TransformsHandler {
	return &TransformsHandler{Base: NewBase(registry)}
}

// List handles GET /api/transforms - returns the registered transforms.
func (h *TransformsHandler) List(w http.ResponseWriter, r *http.Request) {
	list := h.registry.List()

	response := dto.TransformListResponse{
		Transforms: make([]dto.TransformResponse, 0, len(list)),
		Count:      len(list),
	}
	for _, t := range list {
		response.Transforms = append(response.Transforms, dto.TransformResponse{
			Name:        t.Name(),
			Description: t.Description(),
			RunPath:     "/api/transforms/" + t.Name() + "/run",
		})
	}

	h.WriteJSON(w, http.StatusOK, response)
}

// Run handles POST /api/transforms/{name}/run - evaluates a cart snapshot
// and returns the operations the host would receive.
func (h *TransformsHandler) Run(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		h.WriteError(w, r, http.StatusBadRequest, dto.BadRequestError("transform name is required"))
		return
	}

	if _, err := h.registry.Get(name); err != nil {
		h.WriteError(w, r, http.StatusNotFound, dto.NotFoundError("transform "+name))
		return
	}

	input, err := cart.DecodeInput(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.WriteError(w, r, http.StatusBadRequest, dto.InvalidCartError(err.Error()))
		return
	}

	result, err := h.registry.Run(name, input)
	if err != nil {
		if errors.Is(err, transform.ErrUnknownTransform) {
			h.WriteError(w, r, http.StatusNotFound, dto.NotFoundError("transform "+name))
			return
		}
		h.WriteError(w, r, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}
