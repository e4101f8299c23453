package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ineat-platform/ineat-cart-service/internal/cart"
	"github.com/ineat-platform/ineat-cart-service/internal/config"
	"github.com/ineat-platform/ineat-cart-service/internal/models"
)

const (
	cartKeyPrefix = "cart:"
	menuKeyPrefix = "menu:"

	defaultCartTTL = 24 * time.Hour
	defaultMenuTTL = 5 * time.Minute
)

// Ensure RedisCartStore satisfies the persistence bridge contract.
var _ cart.Bridge = (*RedisCartStore)(nil)

// RedisCartStore persists cart snapshots in Redis. It backs the cart
// manager's best-effort persistence bridge: a failed save or load is
// logged and otherwise ignored by callers.
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisCartStore(cfg config.RedisConfig, logger *zap.Logger) *RedisCartStore {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ttl := cfg.CartTTL
	if ttl == 0 {
		ttl = defaultCartTTL
	}

	return &RedisCartStore{
		client: client,
		ttl:    ttl,
		logger: logger.Named("cart-store"),
	}
}

// Save stores the snapshot under the user's key, refreshing the TTL.
func (s *RedisCartStore) Save(ctx context.Context, snap models.CartSnapshot) error {
	key := cartKeyPrefix + snap.UserID

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.logger.Error("cart save failed",
			zap.String("user_id", snap.UserID),
			zap.Error(err),
		)
		return err
	}

	s.logger.Debug("cart saved",
		zap.String("user_id", snap.UserID),
		zap.Int("items", len(snap.Items)),
	)
	return nil
}

// Load retrieves a persisted snapshot, or nil when none exists.
func (s *RedisCartStore) Load(ctx context.Context, userID string) (*models.CartSnapshot, error) {
	data, err := s.client.Get(ctx, cartKeyPrefix+userID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snap models.CartSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Delete drops the persisted snapshot, e.g. after checkout.
func (s *RedisCartStore) Delete(ctx context.Context, userID string) error {
	return s.client.Del(ctx, cartKeyPrefix+userID).Err()
}

// Ping reports whether Redis is reachable, for readiness checks.
func (s *RedisCartStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Client exposes the underlying connection so the menu cache can share it.
func (s *RedisCartStore) Client() *redis.Client {
	return s.client
}

// RedisMenuCache caches restaurant menus with a short TTL. Vendor menu
// mutations and menu events invalidate entries.
type RedisMenuCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisMenuCache(client *redis.Client, cfg config.RedisConfig, logger *zap.Logger) *RedisMenuCache {
	ttl := cfg.MenuTTL
	if ttl == 0 {
		ttl = defaultMenuTTL
	}

	return &RedisMenuCache{
		client: client,
		ttl:    ttl,
		logger: logger.Named("menu-cache"),
	}
}

func (c *RedisMenuCache) Get(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	data, err := c.client.Get(ctx, menuKeyPrefix+restaurantID).Bytes()
	if err == redis.Nil {
		c.logger.Debug("menu cache miss", zap.String("restaurant_id", restaurantID))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []models.MenuItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}

	c.logger.Debug("menu cache hit", zap.String("restaurant_id", restaurantID))
	return items, nil
}

func (c *RedisMenuCache) Set(ctx context.Context, restaurantID string, items []models.MenuItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, menuKeyPrefix+restaurantID, data, c.ttl).Err()
}

func (c *RedisMenuCache) Invalidate(ctx context.Context, restaurantID string) error {
	if err := c.client.Del(ctx, menuKeyPrefix+restaurantID).Err(); err != nil {
		c.logger.Error("menu cache invalidation failed",
			zap.String("restaurant_id", restaurantID),
			zap.Error(err),
		)
		return err
	}
	return nil
}
