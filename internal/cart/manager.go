package cart

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/ineat-platform/ineat-cart-service/internal/models"
)

// Bridge is the opaque save/restore mechanism for cart durability across
// sessions. The in-memory cart is always the source of truth; the bridge
// is best effort and never gates a mutation.
type Bridge interface {
	Save(ctx context.Context, snapshot models.CartSnapshot) error
	Load(ctx context.Context, userID string) (*models.CartSnapshot, error)
	Delete(ctx context.Context, userID string) error
}

// Subscriber is notified with a fresh snapshot after every cart mutation.
type Subscriber func(snapshot models.CartSnapshot)

// Manager owns the live carts, one per user, and serializes all mutations.
// Carts are restored lazily from the bridge the first time a user's cart
// is touched in this process.
type Manager struct {
	mu       sync.Mutex
	carts    map[string]*Cart
	restored map[string]bool

	engine *PricingEngine
	bridge Bridge
	subs   []Subscriber
	logger *zap.Logger
}

func NewManager(engine *PricingEngine, bridge Bridge, logger *zap.Logger) *Manager {
	return &Manager{
		carts:    make(map[string]*Cart),
		restored: make(map[string]bool),
		engine:   engine,
		bridge:   bridge,
		logger:   logger.Named("cart-manager"),
	}
}

// Subscribe registers a mutation observer. Subscribers run synchronously
// under the manager lock and must hand off any blocking work themselves.
func (m *Manager) Subscribe(fn Subscriber) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// AddItem merges an item into the user's cart. A cross-restaurant add
// returns ErrDifferentRestaurant and leaves the cart untouched.
func (m *Manager) AddItem(ctx context.Context, userID string, item models.LineItem) (models.CartSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.cart(ctx, userID)
	if err := c.AddItem(item); err != nil {
		return m.snapshot(c), err
	}

	m.logger.Debug("item added",
		zap.String("user_id", userID),
		zap.String("product_id", item.ProductID),
		zap.Int("quantity", c.ItemQuantity(item.ProductID)),
	)

	return m.commit(c), nil
}

// IncrementItem adds one unit to an existing line. Unknown products are a
// deliberate no-op so a stale UI reference cannot fail a request.
func (m *Manager) IncrementItem(ctx context.Context, userID, productID string) (models.CartSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.cart(ctx, userID)
	if !c.IncrementItem(productID) {
		return m.snapshot(c), nil
	}
	return m.commit(c), nil
}

// DecrementItem removes one unit, floored at quantity 1.
func (m *Manager) DecrementItem(ctx context.Context, userID, productID string) (models.CartSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.cart(ctx, userID)
	if !c.DecrementItem(productID) {
		return m.snapshot(c), nil
	}
	return m.commit(c), nil
}

// RemoveItem deletes a line entirely.
func (m *Manager) RemoveItem(ctx context.Context, userID, productID string) (models.CartSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.cart(ctx, userID)
	if !c.RemoveItem(productID) {
		return m.snapshot(c), nil
	}
	return m.commit(c), nil
}

// Clear empties the user's cart. Idempotent.
func (m *Manager) Clear(ctx context.Context, userID string) (models.CartSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.cart(ctx, userID)
	if c.IsEmpty() {
		return m.snapshot(c), nil
	}
	c.Clear()
	return m.commit(c), nil
}

// Snapshot returns the current by-value view of the user's cart.
func (m *Manager) Snapshot(ctx context.Context, userID string) models.CartSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot(m.cart(ctx, userID))
}

// ItemQuantity reports the quantity of a product in the user's cart, or 0.
func (m *Manager) ItemQuantity(ctx context.Context, userID, productID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart(ctx, userID).ItemQuantity(productID)
}

// ActiveCarts counts carts currently holding at least one item.
func (m *Manager) ActiveCarts() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int
	for _, c := range m.carts {
		if !c.IsEmpty() {
			n++
		}
	}
	return n
}

// cart returns the user's live cart, restoring it from the bridge on the
// first touch. A bridge failure degrades to an empty cart.
func (m *Manager) cart(ctx context.Context, userID string) *Cart {
	if c, ok := m.carts[userID]; ok {
		return c
	}

	c := New(userID)
	m.carts[userID] = c

	if m.bridge != nil && !m.restored[userID] {
		m.restored[userID] = true
		snap, err := m.bridge.Load(ctx, userID)
		if err != nil {
			m.logger.Warn("cart restore failed",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		} else if snap != nil {
			c.Restore(snap.Items)
			m.logger.Info("cart restored",
				zap.String("user_id", userID),
				zap.Int("items", len(snap.Items)),
			)
		}
	}

	return c
}

func (m *Manager) snapshot(c *Cart) models.CartSnapshot {
	items := c.Items()
	return models.CartSnapshot{
		UserID:       c.UserID(),
		RestaurantID: c.RestaurantID(),
		Items:        items,
		TotalItems:   c.TotalItems(),
		Pricing:      m.engine.Quote(items),
	}
}

func (m *Manager) commit(c *Cart) models.CartSnapshot {
	snap := m.snapshot(c)
	for _, fn := range m.subs {
		fn(snap)
	}
	return snap
}
