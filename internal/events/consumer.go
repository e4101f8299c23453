package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/ineat-platform/ineat-cart-service/internal/config"
)

// MenuCacheInvalidator drops cached menus when the catalog changes.
type MenuCacheInvalidator interface {
	Invalidate(ctx context.Context, restaurantID string) error
}

// KafkaConsumer consumes menu events published by other vendor tooling and
// keeps the local menu cache coherent.
type KafkaConsumer struct {
	reader *kafka.Reader
	cache  MenuCacheInvalidator
	logger *zap.Logger
	stopCh chan struct{}
}

func NewKafkaConsumer(cfg config.KafkaConfig, cache MenuCacheInvalidator, logger *zap.Logger) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.MenuTopic,
		GroupID:  cfg.ConsumerGroup,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  time.Second,
	})

	return &KafkaConsumer{
		reader: reader,
		cache:  cache,
		logger: logger.Named("event-consumer"),
		stopCh: make(chan struct{}),
	}
}

// Start consumes until the context ends or Stop is called.
func (c *KafkaConsumer) Start(ctx context.Context) error {
	c.logger.Info("starting menu event consumer")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.stopCh:
			c.logger.Info("menu event consumer stopped")
			return nil
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				c.logger.Error("failed to read message", zap.Error(err))
				continue
			}

			c.handleMessage(ctx, msg)
		}
	}
}

// Stop stops the consumer and closes the reader.
func (c *KafkaConsumer) Stop() {
	close(c.stopCh)
	c.reader.Close()
}

func (c *KafkaConsumer) handleMessage(ctx context.Context, msg kafka.Message) {
	var event Event
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Error("failed to unmarshal event",
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return
	}

	switch event.Type {
	case EventTypeMenuItemUpdated, EventTypeMenuItemDeleted:
		c.handleMenuChange(ctx, &event)
	default:
		c.logger.Debug("ignoring event", zap.String("type", string(event.Type)))
	}
}

func (c *KafkaConsumer) handleMenuChange(ctx context.Context, event *Event) {
	var payload MenuItemEvent
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		c.logger.Error("failed to unmarshal menu payload", zap.Error(err))
		return
	}

	if payload.RestaurantID == "" {
		return
	}

	if err := c.cache.Invalidate(ctx, payload.RestaurantID); err != nil {
		c.logger.Warn("menu cache invalidation failed",
			zap.String("restaurant_id", payload.RestaurantID),
			zap.Error(err),
		)
		return
	}

	c.logger.Debug("menu cache invalidated",
		zap.String("restaurant_id", payload.RestaurantID),
		zap.String("event_type", string(event.Type)),
	)
}
