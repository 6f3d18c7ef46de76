// Package bundle interprets the bundle metadata that storefronts attach to
// cart lines.
//
// A bundle is not a first-class platform entity. It is expressed entirely
// through line properties:
//   - bundle_key groups lines that belong together (merge)
//   - bundle_components lists the variants a single line stands for (expand)
//   - bundle_name and bundle_discount carry the title and percentage discount
package bundle

import (
	"github.com/eshaffer321/cart-bundle-transforms/internal/domain/cart"
)

// Metadata is the raw bundle metadata read from one line.
type Metadata struct {
	Key        string
	Name       string
	Discount   string
	Components string
}

// Read extracts the bundle properties of a line. Missing properties are empty strings.
func Read(line cart.Line) Metadata {
	var m Metadata
	m.Key, _ = line.Attribute(cart.AttrBundleKey)
	m.Name, _ = line.Attribute(cart.AttrBundleName)
	m.Discount, _ = line.Attribute(cart.AttrBundleDiscount)
	m.Components, _ = line.Attribute(cart.AttrBundleComponents)
	return m
}

// HasComponents reports whether the line advertises itself as an expandable bundle.
func (m Metadata) HasComponents() bool {
	return m.Key != "" && m.Components != ""
}

// TitleOr returns the bundle name, or fallback when none was set.
func (m Metadata) TitleOr(fallback string) string {
	if m.Name != "" {
		return m.Name
	}
	return fallback
}

// Group is a set of lines sharing one bundle key, in cart order.
type Group struct {
	Key   string
	Lines []cart.Line
}

// First returns the line that carries the group's name, discount and parent variant.
func (g Group) First() cart.Line {
	return g.Lines[0]
}

// GroupByKey partitions lines by bundle_key. Groups come back in the order
// their key was first seen; lines without a key are left out.
func GroupByKey(lines []cart.Line) []Group {
	index := make(map[string]int)
	var groups []Group

	for _, line := range lines {
		key, ok := line.Attribute(cart.AttrBundleKey)
		if !ok {
			continue
		}
		i, seen := index[key]
		if !seen {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Lines = append(groups[i].Lines, line)
	}

	return groups
}
