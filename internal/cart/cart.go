package cart

import (
	"github.com/ineat-platform/ineat-cart-service/internal/models"
)

// Cart is an ordered collection of line items from a single restaurant.
// Line items are unique by product ID and keep their first-added position.
//
// Cart is not safe for concurrent use; the Manager serializes access.
type Cart struct {
	userID string
	items  []models.LineItem
}

func New(userID string) *Cart {
	return &Cart{userID: userID}
}

// AddItem merges the item into the cart. An existing line gains one unit;
// a new line is appended with quantity 1, with its price normalized on
// entry. Adding across restaurants is rejected with ErrDifferentRestaurant.
func (c *Cart) AddItem(item models.LineItem) error {
	if !c.IsEmpty() && item.RestaurantID != c.RestaurantID() {
		return ErrDifferentRestaurant
	}

	if i := c.find(item.ProductID); i >= 0 {
		c.items[i].Quantity++
		return nil
	}

	item.Price = NormalizePrice(item.Price)
	item.Quantity = 1
	c.items = append(c.items, item)
	return nil
}

// IncrementItem adds one unit to an existing line. Unknown product IDs are
// a no-op; the returned bool reports whether anything changed.
func (c *Cart) IncrementItem(productID string) bool {
	i := c.find(productID)
	if i < 0 {
		return false
	}
	c.items[i].Quantity++
	return true
}

// DecrementItem removes one unit but never drops below quantity 1 and
// never removes the line. Going below 1 requires an explicit RemoveItem,
// so the UI can gate removal behind a confirmation.
func (c *Cart) DecrementItem(productID string) bool {
	i := c.find(productID)
	if i < 0 || c.items[i].Quantity <= 1 {
		return false
	}
	c.items[i].Quantity--
	return true
}

// RemoveItem deletes the line entirely, regardless of quantity.
func (c *Cart) RemoveItem(productID string) bool {
	i := c.find(productID)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return true
}

// Clear empties the cart. Idempotent.
func (c *Cart) Clear() {
	c.items = nil
}

// ItemQuantity returns the quantity for a product, or 0 when absent.
func (c *Cart) ItemQuantity(productID string) int {
	if i := c.find(productID); i >= 0 {
		return c.items[i].Quantity
	}
	return 0
}

// RestaurantID returns the shared restaurant of all lines, or "" when the
// cart is empty.
func (c *Cart) RestaurantID() string {
	if len(c.items) == 0 {
		return ""
	}
	return c.items[0].RestaurantID
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// TotalItems is the sum of all line quantities.
func (c *Cart) TotalItems() int {
	var n int
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []models.LineItem {
	items := make([]models.LineItem, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Cart) UserID() string {
	return c.userID
}

// Restore replaces the cart contents from a persisted snapshot. Lines with
// nonpositive quantities or a restaurant differing from the first line are
// dropped so a corrupt snapshot cannot break the cart invariants.
func (c *Cart) Restore(items []models.LineItem) {
	c.items = nil
	for _, item := range items {
		if item.Quantity < 1 {
			continue
		}
		if !c.IsEmpty() && item.RestaurantID != c.RestaurantID() {
			continue
		}
		if c.find(item.ProductID) >= 0 {
			continue
		}
		item.Price = NormalizePrice(item.Price)
		c.items = append(c.items, item)
	}
}

func (c *Cart) find(productID string) int {
	for i, item := range c.items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
