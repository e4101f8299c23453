package models

// LineItem is one product entry in a cart. Price carries the canonical
// numeric unit price; display fields are denormalized from the menu so the
// cart renders without a catalog round trip.
type LineItem struct {
	ProductID      string  `json:"product_id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Quantity       int     `json:"quantity"`
	RestaurantID   string  `json:"restaurant_id"`
	RestaurantName string  `json:"restaurant_name"`
	Image          string  `json:"image,omitempty"`
	Description    string  `json:"description,omitempty"`
}

// PricingSnapshot is the derived pricing breakdown for a cart. It is
// recomputed from the line items on every read, never stored.
type PricingSnapshot struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"delivery_fee"`
	Tax         float64 `json:"tax"`
	Total       float64 `json:"total"`

	FormattedSubtotal    string `json:"formatted_subtotal"`
	FormattedDeliveryFee string `json:"formatted_delivery_fee"`
	FormattedTax         string `json:"formatted_tax"`
	FormattedTotal       string `json:"formatted_total"`
}

// CartSnapshot is a by-value view of a cart handed to callers. Mutating a
// snapshot never affects the live cart.
type CartSnapshot struct {
	UserID       string          `json:"user_id"`
	RestaurantID string          `json:"restaurant_id,omitempty"`
	Items        []LineItem      `json:"items"`
	TotalItems   int             `json:"total_items"`
	Pricing      PricingSnapshot `json:"pricing"`
}

// AddItemRequest identifies the product to add; price and display fields
// are resolved from the catalog, not trusted from the client.
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// CheckoutSnapshot is the read-only hand-off to the checkout flow.
type CheckoutSnapshot struct {
	CheckoutID   string          `json:"checkout_id"`
	UserID       string          `json:"user_id"`
	RestaurantID string          `json:"restaurant_id"`
	Items        []LineItem      `json:"items"`
	Pricing      PricingSnapshot `json:"pricing"`
}
