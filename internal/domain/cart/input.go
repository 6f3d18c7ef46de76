// Package cart models the cart-transform contract of the checkout host.
//
// The host hands a transform a cart snapshot and expects back a list of
// declarative operations. Input lines carry their custom metadata as extra
// top-level keys (one per queried property), each either null or
// {"value": "..."}:
//
//	{"cart":{"lines":[{
//	    "id": "gid://shopify/CartLine/1",
//	    "quantity": 1,
//	    "merchandise": {"__typename": "ProductVariant", "id": "gid://shopify/ProductVariant/1"},
//	    "bundle_key": {"value": "bundle-123"}
//	}]}}
package cart

import (
	"encoding/json"
	"fmt"
	"io"
)

// Metadata keys read by the bundle transforms.
const (
	AttrBundleKey        = "bundle_key"
	AttrBundleName       = "bundle_name"
	AttrBundleDiscount   = "bundle_discount"
	AttrBundleComponents = "bundle_components"
)

// TypenameProductVariant is the merchandise kind that can anchor a merge.
const TypenameProductVariant = "ProductVariant"

// Input is the payload the host passes to a cart transform.
type Input struct {
	Cart Cart `json:"cart"`
}

// Cart is an ordered list of lines.
type Cart struct {
	Lines []Line `json:"lines"`
}

// Merchandise references what a line is selling.
type Merchandise struct {
	Typename string `json:"__typename"`
	ID       string `json:"id,omitempty"`
}

// IsProductVariant reports whether the merchandise is a product variant.
func (m Merchandise) IsProductVariant() bool {
	return m.Typename == TypenameProductVariant && m.ID != ""
}

// Attribute is a single custom line property.
type Attribute struct {
	Value string `json:"value"`
}

// Line is one entry of the cart.
type Line struct {
	ID          string
	Quantity    int
	Merchandise Merchandise

	// Attributes holds every custom property key present on the line.
	// A nil entry means the host sent null for that key.
	Attributes map[string]*Attribute
}

// Attribute returns the value of a custom property. Absent keys, null
// values and empty strings are all reported as not present.
func (l Line) Attribute(key string) (string, bool) {
	attr, ok := l.Attributes[key]
	if !ok || attr == nil || attr.Value == "" {
		return "", false
	}
	return attr.Value, true
}

// UnmarshalJSON decodes a line, collecting every key other than the fixed
// fields into Attributes. Extra keys of any other shape are dropped.
func (l *Line) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var line Line
	for key, value := range raw {
		switch key {
		case "id":
			if err := json.Unmarshal(value, &line.ID); err != nil {
				return fmt.Errorf("line id: %w", err)
			}
		case "quantity":
			if err := json.Unmarshal(value, &line.Quantity); err != nil {
				return fmt.Errorf("line quantity: %w", err)
			}
		case "merchandise":
			if err := json.Unmarshal(value, &line.Merchandise); err != nil {
				return fmt.Errorf("line merchandise: %w", err)
			}
		default:
			// Keys that are not {"value": "..."} or null carry no metadata.
			var attr *Attribute
			if err := json.Unmarshal(value, &attr); err != nil {
				continue
			}
			if line.Attributes == nil {
				line.Attributes = make(map[string]*Attribute)
			}
			line.Attributes[key] = attr
		}
	}

	*l = line
	return nil
}

// MarshalJSON encodes a line in the same flattened shape the host sends.
func (l Line) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(l.Attributes)+3)
	for key, attr := range l.Attributes {
		out[key] = attr
	}
	out["id"] = l.ID
	out["quantity"] = l.Quantity
	out["merchandise"] = l.Merchandise
	return json.Marshal(out)
}

// DecodeInput reads a cart snapshot from r.
func DecodeInput(r io.Reader) (*Input, error) {
	var input Input
	if err := json.NewDecoder(r).Decode(&input); err != nil {
		return nil, fmt.Errorf("failed to decode cart input: %w", err)
	}
	return &input, nil
}
