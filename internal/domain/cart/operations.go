package cart

import (
	"encoding/json"
	"fmt"
	"io"
)

// Result is what a cart transform returns to the host. An empty Operations
// list means no changes are requested.
type Result struct {
	Operations []Operation `json:"operations"`
}

// NoChanges returns a result with an explicit empty operation list.
func NoChanges() Result {
	return Result{Operations: []Operation{}}
}

// NewResult wraps ops, falling back to NoChanges when there are none.
func NewResult(ops []Operation) Result {
	if len(ops) == 0 {
		return NoChanges()
	}
	return Result{Operations: ops}
}

// Encode writes the result as JSON.
func (r Result) Encode(w io.Writer, pretty bool) error {
	if r.Operations == nil {
		r.Operations = []Operation{}
	}
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}

// Operation is a tagged union: exactly one of LinesMerge or LineExpand is set.
type Operation struct {
	LinesMerge *LinesMerge `json:"linesMerge,omitempty"`
	LineExpand *LineExpand `json:"lineExpand,omitempty"`
}

// Kind returns the wire name of the populated variant.
func (o Operation) Kind() string {
	switch {
	case o.LinesMerge != nil:
		return "linesMerge"
	case o.LineExpand != nil:
		return "lineExpand"
	default:
		return ""
	}
}

// LinesMerge collapses several cart lines into one parent line.
type LinesMerge struct {
	CartLines       []CartLineInput  `json:"cartLines"`
	ParentVariantID string           `json:"parentVariantId"`
	Title           string           `json:"title"`
	Price           *PriceAdjustment `json:"price"`
	Image           *Image           `json:"image"`
	Attributes      []AttributeInput `json:"attributes"`
}

// CartLineInput references a line (and how much of it) taking part in a merge.
type CartLineInput struct {
	CartLineID string `json:"cartLineId"`
	Quantity   int    `json:"quantity"`
}

// PriceAdjustment applies a percentage decrease to a merged line.
type PriceAdjustment struct {
	PercentageDecrease *PercentageDecrease `json:"percentageDecrease"`
}

// PercentageDecrease is a decimal percentage, encoded as a string.
type PercentageDecrease struct {
	Value string `json:"value"`
}

// Image is an optional image override. The bundle transforms never set one.
type Image struct {
	URL string `json:"url"`
}

// AttributeInput is a key/value attribute attached to the merged line.
type AttributeInput struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// LineExpand replaces one line with its component items.
type LineExpand struct {
	CartLineID        string                 `json:"cartLineId"`
	ExpandedCartItems []ExpandedItem         `json:"expandedCartItems"`
	Title             string                 `json:"title"`
	Image             *Image                 `json:"image"`
	Price             *ExpandPriceAdjustment `json:"price"`
}

// ExpandPriceAdjustment overrides the price of the whole expanded line.
// Bundle expansion prices each item instead, so it is always nil.
type ExpandPriceAdjustment struct {
	PercentageDecrease *PercentageDecrease `json:"percentageDecrease"`
}

// ExpandedItem is one component line produced by an expand.
type ExpandedItem struct {
	MerchandiseID string    `json:"merchandiseId"`
	Quantity      int       `json:"quantity"`
	Price         ItemPrice `json:"price"`
}

// ItemPrice wraps the per-item adjustment.
type ItemPrice struct {
	Adjustment ItemPriceAdjustment `json:"adjustment"`
}

// ItemPriceAdjustment sets a fixed unit price on an expanded item.
type ItemPriceAdjustment struct {
	FixedPricePerUnit Money `json:"fixedPricePerUnit"`
}

// Money is a decimal amount formatted with two fraction digits.
type Money struct {
	Amount string `json:"amount"`
}

// FixedUnitPrice builds an item price that pins each unit to amount.
func FixedUnitPrice(amount string) ItemPrice {
	return ItemPrice{Adjustment: ItemPriceAdjustment{FixedPricePerUnit: Money{Amount: amount}}}
}
