package sns

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
)

// maxSubjectLength is the SNS limit on subject lines.
const maxSubjectLength = 100

// api is the subset of the SNS client the publisher uses.
type api interface {
	Publish(ctx context.Context, params *awssns.PublishInput, optFns ...func(*awssns.Options)) (*awssns.PublishOutput, error)
}

// Client publishes notifications to an SNS topic.
type Client struct {
	client   api
	topicARN string
}

// NewClient creates a new SNS publisher for the given topic.
func NewClient(cfg aws.Config, topicARN string) *Client {
	return &Client{
		client:   awssns.NewFromConfig(cfg),
		topicARN: topicARN,
	}
}

// NewClientWithAPI creates a new publisher with an explicit client. Used in tests.
func NewClientWithAPI(client api, topicARN string) *Client {
	return &Client{client: client, topicARN: topicARN}
}

// Publish sends one message to the topic and returns the message id. The
// acknowledgment covers acceptance by the topic, not end delivery.
func (c *Client) Publish(ctx context.Context, subject, message string) (string, error) {
	if len(subject) > maxSubjectLength {
		subject = subject[:maxSubjectLength]
	}

	out, err := c.client.Publish(ctx, &awssns.PublishInput{
		TopicArn: aws.String(c.topicARN),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})
	if err != nil {
		return "", fmt.Errorf("failed to publish notification: %w", err)
	}

	return aws.ToString(out.MessageId), nil
}
