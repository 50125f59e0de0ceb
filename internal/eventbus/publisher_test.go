package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/Black-And-White-Club/frolf-rounds/internal/observability/attr"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	RoundID int64  `json:"round_id"`
	Title   string `json:"title"`
}

func TestPublish_InMemory(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pubsub := NewInMemory(slog.Default())
	defer pubsub.Close()

	messages, err := pubsub.Subscribe(ctx, "round.created.v1")
	require.NoError(t, err)

	ctx = attr.WithCorrelationID(ctx, "corr-1")
	require.NoError(t, Publish(ctx, pubsub, "round.created.v1", samplePayload{RoundID: 7, Title: "Sunday Doubles"}))

	select {
	case msg := <-messages:
		msg.Ack()
		assert.Equal(t, "corr-1", msg.Metadata.Get(middleware.CorrelationIDMetadataKey))
		assert.Equal(t, "round.created.v1", msg.Metadata.Get("topic"))

		var got samplePayload
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, samplePayload{RoundID: 7, Title: "Sunday Doubles"}, got)
	case <-ctx.Done():
		t.Fatal("timed out waiting for message")
	}
}

func TestNewMessage_MintsCorrelationID(t *testing.T) {
	msg, err := NewMessage(context.Background(), samplePayload{RoundID: 1})
	require.NoError(t, err)
	assert.NotEmpty(t, msg.Metadata.Get(middleware.CorrelationIDMetadataKey))
}

func TestNewMessage_MarshalError(t *testing.T) {
	_, err := NewMessage(context.Background(), make(chan int))
	assert.Error(t, err)
}

type failingPublisher struct{}

func (failingPublisher) Publish(string, ...*message.Message) error { return errors.New("broker down") }
func (failingPublisher) Close() error                              { return nil }

func TestPublish_PublisherError(t *testing.T) {
	err := Publish(context.Background(), failingPublisher{}, "round.deleted.v1", samplePayload{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "round.deleted.v1")
}
