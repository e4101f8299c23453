package cart

import (
	"encoding/json"
	"strconv"
	"strings"
)

// NormalizePrice converts a heterogeneous price representation into a
// canonical non-negative float. Numeric inputs pass through; strings may
// carry a currency symbol and thousands separators ("₹1,234.50"). An
// unparsable value normalizes to 0 rather than failing, so a bad price in
// denormalized data degrades a line total instead of breaking the cart.
func NormalizePrice(v any) float64 {
	switch p := v.(type) {
	case float64:
		return clampPrice(p)
	case float32:
		return clampPrice(float64(p))
	case int:
		return clampPrice(float64(p))
	case int64:
		return clampPrice(float64(p))
	case json.Number:
		f, err := p.Float64()
		if err != nil {
			return 0
		}
		return clampPrice(f)
	case string:
		return ParsePrice(p)
	default:
		return 0
	}
}

// ParsePrice strips everything but digits and the decimal point from a
// currency-formatted string and parses the remainder.
func ParsePrice(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return clampPrice(f)
}

func clampPrice(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}
