// Package expand implements the line-expand cart transform.
//
// Each line that carries bundle_components is replaced by its components,
// every component pinned to its discounted unit price. Lines that are not
// bundles, or whose component list cannot be used, are left untouched.
package expand

import (
	"log/slog"

	"github.com/eshaffer321/cart-bundle-transforms/internal/domain/bundle"
	"github.com/eshaffer321/cart-bundle-transforms/internal/domain/cart"
	"github.com/eshaffer321/cart-bundle-transforms/internal/domain/pricing"
)

// Name is the registry name of the expand transform.
const Name = "expand"

// DefaultTitle is used when a bundle line has no bundle_name.
const DefaultTitle = "Bundle"

// Options configures the expand transform.
type Options struct {
	DefaultTitle string
}

// Transformer expands bundle lines into their components.
type Transformer struct {
	opts   Options
	logger *slog.Logger
}

// New creates an expand transformer.
func New(opts Options, logger *slog.Logger) *Transformer {
	if opts.DefaultTitle == "" {
		opts.DefaultTitle = DefaultTitle
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Transformer{
		opts:   opts,
		logger: logger.With("system", Name),
	}
}

// Name implements transform.Transform.
func (t *Transformer) Name() string { return Name }

// Description implements transform.Transform.
func (t *Transformer) Description() string {
	return "expands lines carrying bundle_components into discounted component lines"
}

// Run computes the expand operations for a cart snapshot. Lines are handled
// independently and the input is not modified.
func (t *Transformer) Run(input *cart.Input) cart.Result {
	if input == nil {
		return cart.NoChanges()
	}

	var ops []cart.Operation
	for _, line := range input.Cart.Lines {
		op, ok := t.expandLine(line)
		if !ok {
			continue
		}
		ops = append(ops, cart.Operation{LineExpand: op})
	}

	return cart.NewResult(ops)
}

func (t *Transformer) expandLine(line cart.Line) (*cart.LineExpand, bool) {
	meta := bundle.Read(line)
	if !meta.HasComponents() {
		return nil, false
	}

	components, err := bundle.ParseComponents(meta.Components)
	if err != nil {
		t.logger.Warn("skipping bundle line with unusable components",
			slog.String("cart_line_id", line.ID),
			slog.String("bundle_key", meta.Key),
			slog.Any("error", err))
		return nil, false
	}

	discount := pricing.ParsePercent(meta.Discount)

	items := make([]cart.ExpandedItem, 0, len(components))
	for _, c := range components {
		unit := pricing.DiscountedUnitPrice(c.Price, discount)
		items = append(items, cart.ExpandedItem{
			MerchandiseID: c.VariantID,
			Quantity:      c.Quantity,
			Price:         cart.FixedUnitPrice(pricing.FormatAmount(unit)),
		})
	}

	t.logger.Debug("expanding bundle line",
		slog.String("cart_line_id", line.ID),
		slog.String("bundle_key", meta.Key),
		slog.Int("components", len(items)),
		slog.String("discount", pricing.FormatPercent(discount)))

	return &cart.LineExpand{
		CartLineID:        line.ID,
		ExpandedCartItems: items,
		Title:             meta.TitleOr(t.opts.DefaultTitle),
	}, true
}
