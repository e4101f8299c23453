package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingInvalidator struct {
	invalidated []string
}

func (r *recordingInvalidator) Invalidate(_ context.Context, restaurantID string) error {
	r.invalidated = append(r.invalidated, restaurantID)
	return nil
}

func menuEventMessage(t *testing.T, eventType EventType, restaurantID string) kafka.Message {
	t.Helper()

	payload, err := json.Marshal(MenuItemEvent{ItemID: "item_1", RestaurantID: restaurantID})
	require.NoError(t, err)

	event := newEvent(eventType, "", restaurantID, payload)
	value, err := json.Marshal(event)
	require.NoError(t, err)

	return kafka.Message{Value: value}
}

func TestConsumerInvalidatesMenuCacheOnMenuEvents(t *testing.T) {
	inv := &recordingInvalidator{}
	c := &KafkaConsumer{cache: inv, logger: zap.NewNop()}

	c.handleMessage(context.Background(), menuEventMessage(t, EventTypeMenuItemUpdated, "r1"))
	c.handleMessage(context.Background(), menuEventMessage(t, EventTypeMenuItemDeleted, "r2"))

	assert.Equal(t, []string{"r1", "r2"}, inv.invalidated)
}

func TestConsumerIgnoresCartEvents(t *testing.T) {
	inv := &recordingInvalidator{}
	c := &KafkaConsumer{cache: inv, logger: zap.NewNop()}

	c.handleMessage(context.Background(), menuEventMessage(t, EventTypeCartCheckedOut, "r1"))

	assert.Empty(t, inv.invalidated)
}

func TestConsumerIgnoresMalformedMessages(t *testing.T) {
	inv := &recordingInvalidator{}
	c := &KafkaConsumer{cache: inv, logger: zap.NewNop()}

	c.handleMessage(context.Background(), kafka.Message{Value: []byte("not json")})

	assert.Empty(t, inv.invalidated)
}
