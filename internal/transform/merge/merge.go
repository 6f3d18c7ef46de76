// Package merge implements the line-merge cart transform.
//
// Lines sharing a bundle_key are collapsed into a single line priced off
// the first line's product variant:
//
//	group lines by bundle_key (first-seen order)
//	skip groups with fewer than MinGroupSize lines
//	name/discount come from the first line of the group
//	emit linesMerge{cartLines, parentVariantId, title, price?}
package merge

import (
	"log/slog"

	"github.com/eshaffer321/cart-bundle-transforms/internal/domain/bundle"
	"github.com/eshaffer321/cart-bundle-transforms/internal/domain/cart"
	"github.com/eshaffer321/cart-bundle-transforms/internal/domain/pricing"
)

// Name is the registry name of the merge transform.
const Name = "merge"

// MinGroupSize is the number of lines a bundle key needs before a merge is emitted.
const MinGroupSize = 2

// DefaultTitle is used when the first line of a group has no bundle_name.
const DefaultTitle = "Bundle"

// Options configures the merge transform.
type Options struct {
	DefaultTitle string
}

// Transformer merges bundle lines. It keeps no state between runs.
type Transformer struct {
	opts   Options
	logger *slog.Logger
}

// New creates a merge transformer.
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
	return "merges lines sharing a bundle_key into one parent variant line"
}

// Run computes the merge operations for a cart snapshot. The input is not modified.
func (t *Transformer) Run(input *cart.Input) cart.Result {
	if input == nil {
		return cart.NoChanges()
	}

	var ops []cart.Operation
	for _, group := range bundle.GroupByKey(input.Cart.Lines) {
		op, ok := t.mergeGroup(group)
		if !ok {
			continue
		}
		ops = append(ops, cart.Operation{LinesMerge: op})
	}

	return cart.NewResult(ops)
}

func (t *Transformer) mergeGroup(group bundle.Group) (*cart.LinesMerge, bool) {
	if len(group.Lines) < MinGroupSize {
		t.logger.Debug("skipping bundle group below minimum size",
			slog.String("bundle_key", group.Key),
			slog.Int("lines", len(group.Lines)))
		return nil, false
	}

	first := group.First()
	if !first.Merchandise.IsProductVariant() {
		t.logger.Debug("skipping bundle group without product variant parent",
			slog.String("bundle_key", group.Key),
			slog.String("cart_line_id", first.ID),
			slog.String("typename", first.Merchandise.Typename))
		return nil, false
	}

	meta := bundle.Read(first)

	cartLines := make([]cart.CartLineInput, 0, len(group.Lines))
	for _, line := range group.Lines {
		cartLines = append(cartLines, cart.CartLineInput{
			CartLineID: line.ID,
			Quantity:   line.Quantity,
		})
	}

	op := &cart.LinesMerge{
		CartLines:       cartLines,
		ParentVariantID: first.Merchandise.ID,
		Title:           meta.TitleOr(t.opts.DefaultTitle),
		Attributes:      []cart.AttributeInput{},
	}

	if discount := pricing.ParsePercent(meta.Discount); discount.IsPositive() {
		op.Price = &cart.PriceAdjustment{
			PercentageDecrease: &cart.PercentageDecrease{Value: pricing.FormatPercent(discount)},
		}
	}

	t.logger.Debug("merging bundle group",
		slog.String("bundle_key", group.Key),
		slog.String("parent_variant_id", op.ParentVariantID),
		slog.Int("lines", len(cartLines)))

	return op, true
}
