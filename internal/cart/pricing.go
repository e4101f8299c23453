package cart

import (
	"fmt"
	"math"

	"github.com/ineat-platform/ineat-cart-service/internal/config"
	"github.com/ineat-platform/ineat-cart-service/internal/models"
)

// PricingEngine derives the pricing breakdown from a cart's line items.
// Carts are small, so the breakdown is recomputed on every read instead of
// being cached incrementally.
type PricingEngine struct {
	taxRate     float64
	deliveryFee float64
	symbol      string
}

func NewPricingEngine(cfg config.PricingConfig) *PricingEngine {
	return &PricingEngine{
		taxRate:     cfg.TaxRate,
		deliveryFee: cfg.DeliveryFee,
		symbol:      cfg.CurrencySymbol,
	}
}

// Subtotal accumulates price × quantity without intermediate rounding;
// rounding is a presentation concern.
func (e *PricingEngine) Subtotal(items []models.LineItem) float64 {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}
	return subtotal
}

// DeliveryFee is the flat configured fee, waived for an empty cart.
func (e *PricingEngine) DeliveryFee(items []models.LineItem) float64 {
	if len(items) == 0 {
		return 0
	}
	return e.deliveryFee
}

// Tax computes tax on a subtotal, rounded to cents.
func (e *PricingEngine) Tax(subtotal float64) float64 {
	return math.Round(subtotal*e.taxRate*100) / 100
}

// Quote computes the full breakdown plus display strings.
func (e *PricingEngine) Quote(items []models.LineItem) models.PricingSnapshot {
	subtotal := e.Subtotal(items)
	fee := e.DeliveryFee(items)
	tax := e.Tax(subtotal)
	total := subtotal + fee + tax

	return models.PricingSnapshot{
		Subtotal:             subtotal,
		DeliveryFee:          fee,
		Tax:                  tax,
		Total:                total,
		FormattedSubtotal:    e.Format(subtotal),
		FormattedDeliveryFee: e.Format(fee),
		FormattedTax:         e.Format(tax),
		FormattedTotal:       e.Format(total),
	}
}

// Format renders a numeric amount as a display string, e.g. "₹123.45".
func (e *PricingEngine) Format(amount float64) string {
	return fmt.Sprintf("%s%.2f", e.symbol, amount)
}
