// Package transform wires the bundle cart transforms behind a common interface
// so the function runner and the preview server can dispatch them by name.
package transform

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/eshaffer321/cart-bundle-transforms/internal/domain/cart"
	"github.com/eshaffer321/cart-bundle-transforms/internal/infrastructure/config"
	"github.com/eshaffer321/cart-bundle-transforms/internal/transform/expand"
	"github.com/eshaffer321/cart-bundle-transforms/internal/transform/merge"
)

// Transform computes cart operations from a cart snapshot.
// Implementations must be pure: the same input always yields the same result.
type Transform interface {
	Name() string
	Description() string
	Run(input *cart.Input) cart.Result
}

// Registry manages all registered transforms
type Registry struct {
	transforms map[string]Transform
	mu         sync.RWMutex
	logger     *slog.Logger
}

// NewRegistry creates a new transform registry
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		transforms: make(map[string]Transform),
		logger:     logger,
	}
}

// NewDefaultRegistry registers every transform enabled in cfg.
func NewDefaultRegistry(cfg config.TransformsConfig, logger *slog.Logger) (*Registry, error) {
	r := NewRegistry(logger)

	if cfg.Merge.Enabled {
		t := merge.New(merge.Options{DefaultTitle: cfg.Merge.DefaultTitle}, r.logger)
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	if cfg.Expand.Enabled {
		t := expand.New(expand.Options{DefaultTitle: cfg.Expand.DefaultTitle}, r.logger)
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Register adds a transform to the registry
func (r *Registry) Register(t Transform) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := t.Name()
	if _, exists := r.transforms[name]; exists {
		return fmt.Errorf("transform %s already registered", name)
	}

	r.transforms[name] = t
	r.logger.Debug("registered transform", slog.String("transform", name))
	return nil
}

// Get returns a transform by name
func (r *Registry) Get(name string) (Transform, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, exists := r.transforms[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTransform, name)
	}
	return t, nil
}

// List returns all registered transforms sorted by name
func (r *Registry) List() []Transform {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Transform, 0, len(r.transforms))
	for _, t := range r.transforms {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Run executes the named transform against input.
func (r *Registry) Run(name string, input *cart.Input) (cart.Result, error) {
	t, err := r.Get(name)
	if err != nil {
		return cart.Result{}, err
	}

	lines := 0
	if input != nil {
		lines = len(input.Cart.Lines)
	}

	result := t.Run(input)
	r.logger.Info("cart transform completed",
		slog.String("transform", name),
		slog.Int("lines", lines),
		slog.Int("operations", len(result.Operations)))

	return result, nil
}
