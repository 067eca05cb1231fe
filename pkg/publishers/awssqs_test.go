package publishers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSQSClient struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQSClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-123")}, nil
}

func TestSQSPublisherPublishSuccess(t *testing.T) {
	client := &fakeSQSClient{}
	pub := &sqsPublisher{
		id:       "queue",
		queueURL: "https://example.com/queue",
		client:   client,
		log:      ensureLogger(nil),
	}

	evt := NewEvent(KindShortURLCreated, "https://example.com", json.RawMessage(`{"shortUrl":"https://s.id/abc"}`))
	require.NoError(t, pub.Publish(context.Background(), evt))
	require.NotNil(t, client.input)

	assert.Equal(t, "https://example.com/queue", aws.ToString(client.input.QueueUrl))
	attr, ok := client.input.MessageAttributes["event_kind"]
	require.True(t, ok)
	assert.Equal(t, KindShortURLCreated, aws.ToString(attr.StringValue))
	assert.Equal(t, "String", aws.ToString(attr.DataType))
	assert.Contains(t, aws.ToString(client.input.MessageBody), `"response":{"shortUrl":"https://s.id/abc"}`)
}

func TestSQSPublisherPublishError(t *testing.T) {
	pub := &sqsPublisher{
		id:       "queue",
		queueURL: "https://example.com/queue",
		client:   &fakeSQSClient{err: errors.New("boom")},
		log:      ensureLogger(nil),
	}

	err := pub.Publish(context.Background(), NewEvent(KindFileUploaded, "a.txt", nil))
	assert.ErrorContains(t, err, "boom")
}
