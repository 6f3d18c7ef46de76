package bundle

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrNoComponents is returned when a component list is missing or empty.
	ErrNoComponents = errors.New("bundle has no components")

	// ErrInvalidComponent is returned when a component cannot be priced or referenced.
	ErrInvalidComponent = errors.New("invalid bundle component")
)

// maxQuantity bounds a component quantity so it always fits an int32.
var maxQuantity = decimal.NewFromInt(1<<31 - 1)

// Component is one entry of a line's bundle_components list.
type Component struct {
	VariantID string
	Quantity  int
	// Price is the pre-discount unit price.
	Price decimal.Decimal
}

// rawComponent mirrors the storefront JSON. Price may be a string or a number.
// Quantity may be any integral number, so 2 and 2.0 are the same.
type rawComponent struct {
	VariantID string           `json:"variantId"`
	Quantity  decimal.Decimal  `json:"quantity"`
	Price     *decimal.Decimal `json:"price"`
}

// ParseComponents decodes a JSON-encoded component list and validates every entry.
func ParseComponents(raw string) ([]Component, error) {
	if raw == "" {
		return nil, ErrNoComponents
	}

	var entries []rawComponent
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("failed to parse bundle components: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrNoComponents
	}

	components := make([]Component, 0, len(entries))
	for i, entry := range entries {
		if err := entry.validate(); err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		components = append(components, Component{
			VariantID: entry.VariantID,
			Quantity:  int(entry.Quantity.IntPart()),
			Price:     *entry.Price,
		})
	}

	return components, nil
}

func (c rawComponent) validate() error {
	if c.VariantID == "" {
		return fmt.Errorf("%w: missing variantId", ErrInvalidComponent)
	}
	if !c.Quantity.IsPositive() || !c.Quantity.IsInteger() {
		return fmt.Errorf("%w: quantity must be a positive whole number, got %s", ErrInvalidComponent, c.Quantity)
	}
	if c.Quantity.GreaterThan(maxQuantity) {
		return fmt.Errorf("%w: quantity %s is too large", ErrInvalidComponent, c.Quantity)
	}
	if c.Price == nil {
		return fmt.Errorf("%w: missing price", ErrInvalidComponent)
	}
	if c.Price.IsNegative() {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidComponent)
	}
	return nil
}
