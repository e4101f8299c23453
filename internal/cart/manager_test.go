package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ineat-platform/ineat-cart-service/internal/models"
)

type fakeBridge struct {
	saved   []models.CartSnapshot
	stored  map[string]*models.CartSnapshot
	loadErr error
}

func newFakeBridge() *fakeBridge {
	return &fakeBridge{stored: make(map[string]*models.CartSnapshot)}
}

func (b *fakeBridge) Save(_ context.Context, snap models.CartSnapshot) error {
	b.saved = append(b.saved, snap)
	b.stored[snap.UserID] = &snap
	return nil
}

func (b *fakeBridge) Load(_ context.Context, userID string) (*models.CartSnapshot, error) {
	if b.loadErr != nil {
		return nil, b.loadErr
	}
	return b.stored[userID], nil
}

func (b *fakeBridge) Delete(_ context.Context, userID string) error {
	delete(b.stored, userID)
	return nil
}

func newTestManager(bridge Bridge) *Manager {
	return NewManager(testEngine(), bridge, zap.NewNop())
}

func TestManagerAddThroughRemoveScenario(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(nil)

	snap, err := m.AddItem(ctx, "user_1", models.LineItem{
		ProductID:    "x",
		Price:        NormalizePrice("₹99"),
		RestaurantID: "R1",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, snap.TotalItems)
	assert.Equal(t, 99.0, snap.Pricing.Subtotal)

	snap, err = m.IncrementItem(ctx, "user_1", "x")
	require.NoError(t, err)
	assert.Equal(t, 2, snap.TotalItems)
	assert.Equal(t, 198.0, snap.Pricing.Subtotal)

	snap, err = m.DecrementItem(ctx, "user_1", "x")
	require.NoError(t, err)
	assert.Equal(t, 1, snap.TotalItems)

	// Decrement keeps the line at quantity 1.
	snap, err = m.DecrementItem(ctx, "user_1", "x")
	require.NoError(t, err)
	assert.Equal(t, 1, snap.TotalItems)

	snap, err = m.RemoveItem(ctx, "user_1", "x")
	require.NoError(t, err)
	assert.Empty(t, snap.Items)
	assert.Equal(t, "", snap.RestaurantID)
	assert.Equal(t, 0, m.ItemQuantity(ctx, "user_1", "x"))
}

func TestManagerCrossRestaurantAddIsRejected(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(nil)

	_, err := m.AddItem(ctx, "user_1", lineItem("p1", "rest_a", 100))
	require.NoError(t, err)

	snap, err := m.AddItem(ctx, "user_1", lineItem("p2", "rest_b", 50))
	assert.ErrorIs(t, err, ErrDifferentRestaurant)
	assert.Equal(t, "rest_a", snap.RestaurantID)
	assert.Len(t, snap.Items, 1)
}

func TestManagerIsolatesUsers(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(nil)

	_, err := m.AddItem(ctx, "user_1", lineItem("p1", "rest_a", 100))
	require.NoError(t, err)
	_, err = m.AddItem(ctx, "user_2", lineItem("p2", "rest_b", 50))
	require.NoError(t, err)

	assert.Equal(t, 1, m.ItemQuantity(ctx, "user_1", "p1"))
	assert.Equal(t, 0, m.ItemQuantity(ctx, "user_2", "p1"))
	assert.Equal(t, 2, m.ActiveCarts())
}

func TestManagerNotifiesSubscribersOnMutation(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(nil)

	var notified []models.CartSnapshot
	m.Subscribe(func(snap models.CartSnapshot) {
		notified = append(notified, snap)
	})

	_, err := m.AddItem(ctx, "user_1", lineItem("p1", "r1", 100))
	require.NoError(t, err)
	_, err = m.IncrementItem(ctx, "user_1", "p1")
	require.NoError(t, err)

	// A no-op mutation must not notify.
	_, err = m.IncrementItem(ctx, "user_1", "ghost")
	require.NoError(t, err)
	m.Snapshot(ctx, "user_1")

	require.Len(t, notified, 2)
	assert.Equal(t, 2, notified[1].TotalItems)
}

func TestManagerRestoresFromBridge(t *testing.T) {
	ctx := context.Background()
	bridge := newFakeBridge()
	bridge.stored["user_1"] = &models.CartSnapshot{
		UserID: "user_1",
		Items: []models.LineItem{
			{ProductID: "p1", RestaurantID: "r1", Price: 100, Quantity: 2},
		},
	}

	m := newTestManager(bridge)

	snap := m.Snapshot(ctx, "user_1")
	assert.Equal(t, 2, snap.TotalItems)
	assert.Equal(t, "r1", snap.RestaurantID)
	assert.Equal(t, 200.0, snap.Pricing.Subtotal)
}

func TestManagerBridgeFailureDegradesToEmptyCart(t *testing.T) {
	ctx := context.Background()
	bridge := newFakeBridge()
	bridge.loadErr = errors.New("redis down")

	m := newTestManager(bridge)

	snap := m.Snapshot(ctx, "user_1")
	assert.Empty(t, snap.Items)

	// Mutations still work; in-memory state is the source of truth.
	snap, err := m.AddItem(ctx, "user_1", lineItem("p1", "r1", 100))
	require.NoError(t, err)
	assert.Equal(t, 1, snap.TotalItems)
}
