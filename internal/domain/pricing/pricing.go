// Package pricing provides the money math used by bundle transforms.
//
// Amounts are handled as decimals end to end so that a 20% discount on
// 25.00 is exactly 20.00:
//
//	discounted = unit * (1 - percent/100), rounded half away from zero to cents
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// ParsePercent parses a percentage string on a 0-100 scale.
// Empty or malformed values yield zero. Values outside the range are clamped.
func ParsePercent(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	pct, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	if pct.IsNegative() {
		return decimal.Zero
	}
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}

// DiscountedUnitPrice applies a percentage discount to a unit price and rounds to cents.
func DiscountedUnitPrice(unit, percent decimal.Decimal) decimal.Decimal {
	factor := one.Sub(percent.Div(hundred))
	return roundToCents(unit.Mul(factor))
}

// FormatAmount renders an amount with exactly two fraction digits.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatPercent renders a percentage without trailing zeros (e.g. "12.5").
func FormatPercent(percent decimal.Decimal) string {
	return percent.String()
}

// roundToCents rounds to 2 decimal places.
func roundToCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}
