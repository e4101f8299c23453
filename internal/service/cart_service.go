package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ineat-platform/ineat-cart-service/internal/cart"
	"github.com/ineat-platform/ineat-cart-service/internal/config"
	"github.com/ineat-platform/ineat-cart-service/internal/events"
	"github.com/ineat-platform/ineat-cart-service/internal/models"
)

// persistTimeout bounds the detached best-effort cart save.
const persistTimeout = 5 * time.Second

// Catalog resolves products against the menu so cart lines carry canonical
// prices and display fields instead of trusting the client.
type Catalog interface {
	GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error)
	GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error)
}

// CartService orchestrates the cart manager, catalog lookups, best-effort
// persistence and the checkout hand-off.
type CartService struct {
	manager   *cart.Manager
	catalog   Catalog
	bridge    cart.Bridge
	publisher events.Publisher
	config    *config.Config
	logger    *zap.Logger
}

func NewCartService(
	manager *cart.Manager,
	catalog Catalog,
	bridge cart.Bridge,
	publisher events.Publisher,
	cfg *config.Config,
	logger *zap.Logger,
) *CartService {
	s := &CartService{
		manager:   manager,
		catalog:   catalog,
		bridge:    bridge,
		publisher: publisher,
		config:    cfg,
		logger:    logger.Named("cart-service"),
	}

	// Mutations persist asynchronously; the in-memory cart never waits on
	// Redis.
	if bridge != nil && cfg.Features.EnableCartPersistence {
		manager.Subscribe(func(snap models.CartSnapshot) {
			go s.persist(snap)
		})
	}

	return s
}

// AddItem resolves the product against the catalog and merges it into the
// user's cart.
func (s *CartService) AddItem(ctx context.Context, userID, productID string) (models.CartSnapshot, error) {
	item, err := s.catalog.GetMenuItem(ctx, productID)
	if err != nil {
		s.logger.Error("catalog lookup failed",
			zap.String("product_id", productID),
			zap.Error(err),
		)
		return models.CartSnapshot{}, err
	}
	if item == nil {
		return s.manager.Snapshot(ctx, userID), cart.ErrUnknownProduct
	}
	if !item.Available {
		return s.manager.Snapshot(ctx, userID), cart.ErrItemUnavailable
	}

	line := models.LineItem{
		ProductID:    item.ID,
		Name:         item.Name,
		Price:        item.Price,
		RestaurantID: item.RestaurantID,
		Image:        item.Image,
		Description:  item.Description,
	}

	// Denormalized display copy; a missing restaurant row only costs the
	// label.
	if rest, err := s.catalog.GetRestaurant(ctx, item.RestaurantID); err == nil && rest != nil {
		line.RestaurantName = rest.Name
	}

	return s.manager.AddItem(ctx, userID, line)
}

func (s *CartService) IncrementItem(ctx context.Context, userID, productID string) (models.CartSnapshot, error) {
	return s.manager.IncrementItem(ctx, userID, productID)
}

func (s *CartService) DecrementItem(ctx context.Context, userID, productID string) (models.CartSnapshot, error) {
	return s.manager.DecrementItem(ctx, userID, productID)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) (models.CartSnapshot, error) {
	return s.manager.RemoveItem(ctx, userID, productID)
}

// ClearCart empties the cart and publishes the clear so downstream state
// (abandoned-cart tooling) can reconcile.
func (s *CartService) ClearCart(ctx context.Context, userID string) (models.CartSnapshot, error) {
	before := s.manager.Snapshot(ctx, userID)
	snap, err := s.manager.Clear(ctx, userID)
	if err != nil {
		return snap, err
	}

	if s.publisher != nil && s.config.Features.EnableCartEvents && before.TotalItems > 0 {
		if err := s.publisher.PublishCartCleared(ctx, userID, before.RestaurantID); err != nil {
			s.logger.Error("failed to publish cart cleared event",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}
	}

	return snap, nil
}

func (s *CartService) GetCart(ctx context.Context, userID string) models.CartSnapshot {
	return s.manager.Snapshot(ctx, userID)
}

func (s *CartService) ItemQuantity(ctx context.Context, userID, productID string) int {
	return s.manager.ItemQuantity(ctx, userID, productID)
}

// Checkout freezes the cart into a read-only snapshot, publishes the
// hand-off event and clears the cart. The returned snapshot is passed by
// value; the service does not know how checkout consumes it.
func (s *CartService) Checkout(ctx context.Context, userID string) (*models.CheckoutSnapshot, error) {
	snap := s.manager.Snapshot(ctx, userID)
	if snap.TotalItems == 0 {
		return nil, cart.ErrEmptyCart
	}

	checkout := &models.CheckoutSnapshot{
		CheckoutID:   uuid.NewString(),
		UserID:       userID,
		RestaurantID: snap.RestaurantID,
		Items:        snap.Items,
		Pricing:      snap.Pricing,
	}

	if s.publisher != nil && s.config.Features.EnableCartEvents {
		if err := s.publisher.PublishCartCheckedOut(ctx, checkout); err != nil {
			// The caller still gets the snapshot; the event stream heals
			// via reconciliation.
			s.logger.Error("failed to publish checkout event",
				zap.String("checkout_id", checkout.CheckoutID),
				zap.Error(err),
			)
		}
	}

	if _, err := s.manager.Clear(ctx, userID); err != nil {
		return nil, err
	}

	if s.bridge != nil && s.config.Features.EnableCartPersistence {
		go s.dropPersisted(userID)
	}

	s.logger.Info("cart checked out",
		zap.String("checkout_id", checkout.CheckoutID),
		zap.String("user_id", userID),
		zap.Int("items", len(checkout.Items)),
		zap.Float64("total", checkout.Pricing.Total),
	)

	return checkout, nil
}

func (s *CartService) persist(snap models.CartSnapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if snap.TotalItems == 0 {
		if err := s.bridge.Delete(ctx, snap.UserID); err != nil {
			s.logger.Warn("cart delete failed", zap.String("user_id", snap.UserID), zap.Error(err))
		}
		return
	}

	if err := s.bridge.Save(ctx, snap); err != nil {
		s.logger.Warn("cart save failed", zap.String("user_id", snap.UserID), zap.Error(err))
	}
}

func (s *CartService) dropPersisted(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := s.bridge.Delete(ctx, userID); err != nil {
		s.logger.Warn("persisted cart delete failed", zap.String("user_id", userID), zap.Error(err))
	}
}
