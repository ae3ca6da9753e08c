package publishers

import (
	"context"
	"fmt"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"
)

// pubsubSink publishes change events to a Pub/Sub topic and waits for the
// server ack. PUBSUB_EMULATOR_HOST is honoured by the SDK.
type pubsubSink struct {
	id          string
	client      *pubsub.Client
	topic       *pubsub.Topic
	orderByList bool
	log         Logger
}

func newPubSubSink(ctx context.Context, cfg SinkConfig, log Logger) (Publisher, error) {
	if cfg.PubSub == nil {
		return nil, fmt.Errorf("publisher %q missing gcp_pubsub configuration", cfg.ID)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var opts []option.ClientOption
	if cfg.PubSub.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.PubSub.CredentialsFile))
	}
	client, err := pubsub.NewClient(ctx, cfg.PubSub.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create pubsub client: %w", err)
	}

	topic := client.Topic(cfg.PubSub.Topic)
	topic.EnableMessageOrdering = cfg.PubSub.OrderByList
	return &pubsubSink{
		id:          cfg.ID,
		client:      client,
		topic:       topic,
		orderByList: cfg.PubSub.OrderByList,
		log:         orDiscard(log),
	}, nil
}

func (p *pubsubSink) ID() string   { return p.id }
func (p *pubsubSink) Type() string { return TypePubSub }

func (p *pubsubSink) Publish(ctx context.Context, evt Event) error {
	body, err := evt.encode()
	if err != nil {
		return err
	}
	msg := &pubsub.Message{Data: body, Attributes: evt.attributes()}
	if p.orderByList {
		msg.OrderingKey = evt.groupKey()
	}

	msgID, err := p.topic.Publish(ctx, msg).Get(ctx)
	if err != nil {
		if p.orderByList {
			p.topic.ResumePublish(msg.OrderingKey)
		}
		p.log.ErrorObj("pubsub publish failed", "publisher_pubsub_error", map[string]any{
			"publisher_id": p.id,
			"operation":    evt.Operation,
			"error":        err.Error(),
		})
		return fmt.Errorf("publish to pubsub: %w", err)
	}
	p.log.DebugObj("pubsub delivered change", "publisher_pubsub_delivery", map[string]any{
		"publisher_id": p.id,
		"message_id":   msgID,
	})
	return nil
}

// Close flushes pending messages and releases the client.
func (p *pubsubSink) Close() error {
	p.topic.Stop()
	return p.client.Close()
}
