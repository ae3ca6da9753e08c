package publishers

import (
	"context"
	"testing"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
	"github.com/samvad-hq/responder-client/internal/domain"
)

func TestPubSubSinkPublishes(t *testing.T) {
	server := pstest.NewServer()
	defer server.Close()
	t.Setenv("PUBSUB_EMULATOR_HOST", server.Addr)

	ctx := context.Background()
	admin, err := pubsub.NewClient(ctx, "test-project")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	defer admin.Close()
	if _, err := admin.CreateTopic(ctx, "changes"); err != nil {
		t.Fatalf("create topic: %v", err)
	}

	pub, err := newPubSubSink(ctx, SinkConfig{
		ID:     "gcp",
		Type:   TypePubSub,
		PubSub: &PubSubConfig{ProjectID: "test-project", Topic: "changes", OrderByList: true},
	}, nil)
	if err != nil {
		t.Fatalf("newPubSubSink: %v", err)
	}
	defer pub.(*pubsubSink).Close()

	if err := pub.Publish(ctx, NewEvent("test", domain.Change{Operation: "delete_personal_fields", ListID: 1})); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	msgs := server.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if got := msgs[0].Attributes["operation"]; got != "delete_personal_fields" {
		t.Fatalf("operation attribute = %q", got)
	}
	if got := msgs[0].OrderingKey; got != "list-1" {
		t.Fatalf("ordering key = %q", got)
	}
}
