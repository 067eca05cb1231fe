package publishers

import (
	"context"
	"encoding/json"
	"testing"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPubSubPublisherPublishes(t *testing.T) {
	// In-memory Pub/Sub emulator.
	server := pstest.NewServer()
	defer server.Close()
	t.Setenv("PUBSUB_EMULATOR_HOST", server.Addr)

	ctx := context.Background()
	client, err := pubsub.NewClient(ctx, "test-project")
	require.NoError(t, err)
	defer client.Close()
	_, err = client.CreateTopic(ctx, "topic-1")
	require.NoError(t, err)

	pub, err := newPubSubPublisher(ctx, PublisherConfig{
		ID:   "gcp",
		Type: TypePubSub,
		PubSub: &PubSubPublisherConfig{
			ProjectID: "test-project",
			Topic:     "topic-1",
		},
	}, nil)
	require.NoError(t, err)
	defer pub.Close()

	evt := NewEvent(KindShortURLCreated, "https://example.com", []byte(`{"shortUrl":"https://s.id/abc"}`))
	require.NoError(t, pub.Publish(ctx, evt))

	msgs := server.Messages()
	require.Len(t, msgs, 1)
	var got Event
	require.NoError(t, json.Unmarshal(msgs[0].Data, &got))
	assert.Equal(t, evt.ID, got.ID)
	assert.Equal(t, KindShortURLCreated, got.Kind)
	assert.Equal(t, KindShortURLCreated, msgs[0].Attributes["event_kind"])
}
