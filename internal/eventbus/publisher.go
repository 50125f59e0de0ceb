// Package eventbus builds the Watermill publishers used to emit round and user events.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/frolf-rounds/internal/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	nc "github.com/nats-io/nats.go"
)

// NATSConfig configures the NATS publisher.
type NATSConfig struct {
	URL       string
	JetStream bool
}

// NewNATSPublisher creates a Watermill publisher backed by NATS. With JetStream
// enabled, streams are provisioned on first publish.
func NewNATSPublisher(cfg NATSConfig, logger *slog.Logger) (message.Publisher, error) {
	options := []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.Timeout(30 * time.Second),
		nc.ReconnectWait(1 * time.Second),
	}

	publisher, err := nats.NewPublisher(
		nats.PublisherConfig{
			URL:         cfg.URL,
			NatsOptions: options,
			Marshaler:   &nats.NATSMarshaler{},
			JetStream: nats.JetStreamConfig{
				Disabled:      !cfg.JetStream,
				AutoProvision: cfg.JetStream,
			},
			SubjectCalculator: nats.DefaultSubjectCalculator,
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
	}

	return publisher, nil
}

// NewInMemory returns an in-process pub/sub, used in tests and when no broker is configured.
func NewInMemory(logger *slog.Logger) *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, watermill.NewSlogLogger(logger))
}

// NewMessage marshals payload to JSON and copies the correlation ID from ctx,
// minting a new one when ctx carries none.
func NewMessage(ctx context.Context, payload any) (*message.Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	correlationID := attr.CorrelationIDFromContext(ctx)
	if correlationID == "" {
		correlationID = watermill.NewUUID()
	}

	msg := message.NewMessage(watermill.NewUUID(), payloadBytes)
	msg.Metadata.Set(middleware.CorrelationIDMetadataKey, correlationID)
	msg.SetContext(ctx)
	return msg, nil
}

// Publish marshals payload and publishes it on topic.
func Publish(ctx context.Context, publisher message.Publisher, topic string, payload any) error {
	msg, err := NewMessage(ctx, payload)
	if err != nil {
		return fmt.Errorf("event %s: %w", topic, err)
	}
	msg.Metadata.Set("topic", topic)

	if err := publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", topic, err)
	}
	return nil
}
