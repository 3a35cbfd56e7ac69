package publishers

import (
	"context"
	"testing"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"

	"github.com/NirGallner/asana-go/internal/domain"
)

func TestPubSubPublisherPublishes(t *testing.T) {
	// In-memory Pub/Sub emulator.
	server := pstest.NewServer()
	defer server.Close()
	t.Setenv("PUBSUB_EMULATOR_HOST", server.Addr)

	ctx := context.Background()
	client, err := pubsub.NewClient(ctx, "test-project")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	defer client.Close()
	if _, err := client.CreateTopic(ctx, "tasks"); err != nil {
		t.Fatalf("create topic: %v", err)
	}

	pub, err := newPubSubPublisher(ctx, PublisherConfig{
		ID:     "gcp",
		Type:   TypePubSub,
		PubSub: &PubSubPublisherConfig{ProjectID: "test-project", Topic: "tasks"},
	}, nil)
	if err != nil {
		t.Fatalf("newPubSubPublisher: %v", err)
	}
	defer pub.(*pubsubPublisher).Close()

	err = pub.Publish(ctx, Event{
		SourceID: "roadmap",
		Task:     domain.TaskRecord{GID: "1001"},
	})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}

	msgs := server.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if got := msgs[0].Attributes["source_id"]; got != "roadmap" {
		t.Fatalf("source_id attribute = %q", got)
	}
}

func TestNewPubSubPublisherRequiresConfig(t *testing.T) {
	if _, err := newPubSubPublisher(context.Background(), PublisherConfig{ID: "gcp", Type: TypePubSub}, nil); err == nil {
		t.Fatalf("expected error for missing pubsub block")
	}
}
