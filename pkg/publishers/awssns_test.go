package publishers

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSNSClient struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNSClient) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-123")}, nil
}

func TestSNSPublisherPublishSuccess(t *testing.T) {
	client := &fakeSNSClient{}
	pub := &snsPublisher{
		id:       "topic",
		topicARN: "arn:aws:sns:::topic",
		client:   client,
		log:      ensureLogger(nil),
	}

	evt := NewEvent(KindFileUploaded, "cat.png", []byte(`{"url":"https://cdn.example/cat.png"}`))
	require.NoError(t, pub.Publish(context.Background(), evt))
	require.NotNil(t, client.input)

	assert.Equal(t, "arn:aws:sns:::topic", aws.ToString(client.input.TopicArn))
	attr, ok := client.input.MessageAttributes["event_id"]
	require.True(t, ok)
	assert.Equal(t, evt.ID, aws.ToString(attr.StringValue))
	assert.Contains(t, aws.ToString(client.input.Message), `"subject":"cat.png"`)
}

func TestSNSPublisherPublishError(t *testing.T) {
	pub := &snsPublisher{
		id:       "topic",
		topicARN: "arn:aws:sns:::topic",
		client:   &fakeSNSClient{err: errors.New("boom")},
		log:      ensureLogger(nil),
	}

	err := pub.Publish(context.Background(), NewEvent(KindFileUploaded, "a.txt", nil))
	assert.ErrorContains(t, err, "boom")
}
