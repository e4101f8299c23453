package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/ineat-platform/ineat-cart-service/internal/config"
	"github.com/ineat-platform/ineat-cart-service/internal/events"
	"github.com/ineat-platform/ineat-cart-service/internal/models"
)

// MenuRepository is the catalog storage used by the menu service.
type MenuRepository interface {
	Catalog
	ListRestaurants(ctx context.Context) ([]models.Restaurant, error)
	ListMenu(ctx context.Context, restaurantID string) ([]models.MenuItem, error)
	CreateMenuItem(ctx context.Context, restaurantID string, req *models.CreateMenuItemRequest) (*models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, restaurantID, itemID string, req *models.UpdateMenuItemRequest) (*models.MenuItem, error)
	DeleteMenuItem(ctx context.Context, restaurantID, itemID string) (bool, error)
}

// MenuCache is the read-through cache for restaurant menus.
type MenuCache interface {
	Get(ctx context.Context, restaurantID string) ([]models.MenuItem, error)
	Set(ctx context.Context, restaurantID string, items []models.MenuItem) error
	Invalidate(ctx context.Context, restaurantID string) error
}

// MenuService serves the restaurant catalog and the vendor menu dashboard.
type MenuService struct {
	repo      MenuRepository
	cache     MenuCache
	publisher events.Publisher
	config    *config.Config
	logger    *zap.Logger
}

func NewMenuService(
	repo MenuRepository,
	cache MenuCache,
	publisher events.Publisher,
	cfg *config.Config,
	logger *zap.Logger,
) *MenuService {
	return &MenuService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		config:    cfg,
		logger:    logger.Named("menu-service"),
	}
}

func (s *MenuService) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	return s.repo.ListRestaurants(ctx)
}

func (s *MenuService) GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	return s.repo.GetRestaurant(ctx, id)
}

// GetMenu reads through the cache when caching is enabled.
func (s *MenuService) GetMenu(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	if s.cacheEnabled() {
		if items, err := s.cache.Get(ctx, restaurantID); err == nil && items != nil {
			return items, nil
		}
	}

	items, err := s.repo.ListMenu(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	if s.cacheEnabled() && len(items) > 0 {
		if err := s.cache.Set(ctx, restaurantID, items); err != nil {
			s.logger.Warn("menu cache set failed",
				zap.String("restaurant_id", restaurantID),
				zap.Error(err),
			)
		}
	}

	return items, nil
}

// CreateMenuItem adds an item to a vendor's menu. Returns nil, nil when the
// restaurant does not exist.
func (s *MenuService) CreateMenuItem(ctx context.Context, restaurantID string, req *models.CreateMenuItemRequest) (*models.MenuItem, error) {
	rest, err := s.repo.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if rest == nil {
		return nil, nil
	}

	item, err := s.repo.CreateMenuItem(ctx, restaurantID, req)
	if err != nil {
		return nil, err
	}

	s.afterMenuChange(ctx, restaurantID, item, "")
	return item, nil
}

// UpdateMenuItem applies a partial update. Returns nil, nil when the item
// is not on that vendor's menu.
func (s *MenuService) UpdateMenuItem(ctx context.Context, restaurantID, itemID string, req *models.UpdateMenuItemRequest) (*models.MenuItem, error) {
	item, err := s.repo.UpdateMenuItem(ctx, restaurantID, itemID, req)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	s.afterMenuChange(ctx, restaurantID, item, "")
	return item, nil
}

// DeleteMenuItem removes an item from a vendor's menu. The bool reports
// whether anything was deleted.
func (s *MenuService) DeleteMenuItem(ctx context.Context, restaurantID, itemID string) (bool, error) {
	deleted, err := s.repo.DeleteMenuItem(ctx, restaurantID, itemID)
	if err != nil {
		return false, err
	}
	if deleted {
		s.afterMenuChange(ctx, restaurantID, nil, itemID)
	}
	return deleted, nil
}

// afterMenuChange invalidates the cached menu and publishes the change.
// Both are best effort; the database row is already committed.
func (s *MenuService) afterMenuChange(ctx context.Context, restaurantID string, item *models.MenuItem, deletedItemID string) {
	if s.cacheEnabled() {
		if err := s.cache.Invalidate(ctx, restaurantID); err != nil {
			s.logger.Warn("menu cache invalidation failed",
				zap.String("restaurant_id", restaurantID),
				zap.Error(err),
			)
		}
	}

	if s.publisher == nil || !s.config.Features.EnableCartEvents {
		return
	}

	var err error
	if item != nil {
		err = s.publisher.PublishMenuItemUpdated(ctx, item)
	} else {
		err = s.publisher.PublishMenuItemDeleted(ctx, restaurantID, deletedItemID)
	}
	if err != nil {
		s.logger.Error("failed to publish menu event",
			zap.String("restaurant_id", restaurantID),
			zap.Error(err),
		)
	}
}

func (s *MenuService) cacheEnabled() bool {
	return s.cache != nil && s.config.Features.EnableMenuCaching
}
