package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/ineat-platform/ineat-cart-service/internal/config"
	"github.com/ineat-platform/ineat-cart-service/internal/models"
)

// EventType identifies the kind of cart or menu event.
type EventType string

const (
	EventTypeCartCheckedOut  EventType = "cart.checked_out"
	EventTypeCartCleared     EventType = "cart.cleared"
	EventTypeMenuItemUpdated EventType = "menu.item_updated"
	EventTypeMenuItemDeleted EventType = "menu.item_deleted"
)

// Event is the envelope written to Kafka.
type Event struct {
	ID           string          `json:"id"`
	Type         EventType       `json:"type"`
	UserID       string          `json:"user_id,omitempty"`
	RestaurantID string          `json:"restaurant_id,omitempty"`
	Data         json.RawMessage `json:"data"`
	Timestamp    time.Time       `json:"timestamp"`
}

// MenuItemEvent is the payload for menu item change events.
type MenuItemEvent struct {
	ItemID       string   `json:"item_id"`
	RestaurantID string   `json:"restaurant_id"`
	Available    *bool    `json:"available,omitempty"`
	Price        *float64 `json:"price,omitempty"`
}

// Publisher publishes cart and menu events.
type Publisher interface {
	PublishCartCheckedOut(ctx context.Context, snapshot *models.CheckoutSnapshot) error
	PublishCartCleared(ctx context.Context, userID, restaurantID string) error
	PublishMenuItemUpdated(ctx context.Context, item *models.MenuItem) error
	PublishMenuItemDeleted(ctx context.Context, restaurantID, itemID string) error
	Close() error
}

var _ Publisher = (*KafkaPublisher)(nil)

// KafkaPublisher publishes events to Kafka. Cart events are keyed by user
// ID and menu events by restaurant ID so consumers see them in order.
type KafkaPublisher struct {
	cartWriter *kafka.Writer
	menuWriter *kafka.Writer
	logger     *zap.Logger
}

func NewKafkaPublisher(cfg config.KafkaConfig, logger *zap.Logger) *KafkaPublisher {
	newWriter := func(topic string) *kafka.Writer {
		return &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			WriteTimeout: 10 * time.Second,
			RequiredAcks: kafka.RequireOne,
		}
	}

	return &KafkaPublisher{
		cartWriter: newWriter(cfg.CartsTopic),
		menuWriter: newWriter(cfg.MenuTopic),
		logger:     logger.Named("event-publisher"),
	}
}

// PublishCartCheckedOut hands the checkout snapshot to downstream order
// processing.
func (p *KafkaPublisher) PublishCartCheckedOut(ctx context.Context, snapshot *models.CheckoutSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	event := newEvent(EventTypeCartCheckedOut, snapshot.UserID, snapshot.RestaurantID, data)
	return p.publish(ctx, p.cartWriter, snapshot.UserID, event)
}

func (p *KafkaPublisher) PublishCartCleared(ctx context.Context, userID, restaurantID string) error {
	event := newEvent(EventTypeCartCleared, userID, restaurantID, json.RawMessage(`{}`))
	return p.publish(ctx, p.cartWriter, userID, event)
}

func (p *KafkaPublisher) PublishMenuItemUpdated(ctx context.Context, item *models.MenuItem) error {
	payload := MenuItemEvent{
		ItemID:       item.ID,
		RestaurantID: item.RestaurantID,
		Available:    &item.Available,
		Price:        &item.Price,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	event := newEvent(EventTypeMenuItemUpdated, "", item.RestaurantID, data)
	return p.publish(ctx, p.menuWriter, item.RestaurantID, event)
}

func (p *KafkaPublisher) PublishMenuItemDeleted(ctx context.Context, restaurantID, itemID string) error {
	data, err := json.Marshal(MenuItemEvent{ItemID: itemID, RestaurantID: restaurantID})
	if err != nil {
		return err
	}

	event := newEvent(EventTypeMenuItemDeleted, "", restaurantID, data)
	return p.publish(ctx, p.menuWriter, restaurantID, event)
}

func (p *KafkaPublisher) publish(ctx context.Context, writer *kafka.Writer, key string, event *Event) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: eventData,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}

	if err := writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("event publish failed",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err),
		)
		return err
	}

	p.logger.Info("event published",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
	)
	return nil
}

// Close closes both Kafka writers.
func (p *KafkaPublisher) Close() error {
	p.logger.Info("closing kafka publisher")
	if err := p.cartWriter.Close(); err != nil {
		return err
	}
	return p.menuWriter.Close()
}

func newEvent(eventType EventType, userID, restaurantID string, data json.RawMessage) *Event {
	return &Event{
		ID:           uuid.NewString(),
		Type:         eventType,
		UserID:       userID,
		RestaurantID: restaurantID,
		Data:         data,
		Timestamp:    time.Now(),
	}
}

// MockPublisher records events for tests.
type MockPublisher struct {
	Events []*Event
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{Events: make([]*Event, 0)}
}

func (m *MockPublisher) PublishCartCheckedOut(ctx context.Context, snapshot *models.CheckoutSnapshot) error {
	m.Events = append(m.Events, &Event{Type: EventTypeCartCheckedOut, UserID: snapshot.UserID, RestaurantID: snapshot.RestaurantID})
	return nil
}

func (m *MockPublisher) PublishCartCleared(ctx context.Context, userID, restaurantID string) error {
	m.Events = append(m.Events, &Event{Type: EventTypeCartCleared, UserID: userID, RestaurantID: restaurantID})
	return nil
}

func (m *MockPublisher) PublishMenuItemUpdated(ctx context.Context, item *models.MenuItem) error {
	m.Events = append(m.Events, &Event{Type: EventTypeMenuItemUpdated, RestaurantID: item.RestaurantID})
	return nil
}

func (m *MockPublisher) PublishMenuItemDeleted(ctx context.Context, restaurantID, itemID string) error {
	m.Events = append(m.Events, &Event{Type: EventTypeMenuItemDeleted, RestaurantID: restaurantID})
	return nil
}

func (m *MockPublisher) Close() error { return nil }
