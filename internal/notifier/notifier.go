package notifier

import (
	"context"
	"fmt"

	"github.com/ansa-dev/ansa/internal/clients/slack"
	"github.com/ansa-dev/ansa/internal/clients/sns"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/spf13/viper"
)

// Notifier delivers a composed notification to the system owner's channel.
// Publish returns the channel's message id; it acknowledges acceptance by
// the channel, not receipt by the owner.
type Notifier interface {
	Publish(ctx context.Context, subject, message string) (string, error)
}

// New creates a new Notifier from configuration.
func New(ctx context.Context) (Notifier, error) {
	notifierType := viper.GetString("notifier.type")
	switch notifierType {
	case "sns":
		topicARN := viper.GetString("notifier.sns.topic_arn")
		if topicARN == "" {
			return nil, fmt.Errorf("notifier.sns.topic_arn must be set when using sns")
		}

		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load aws config: %w", err)
		}
		return sns.NewClient(cfg, topicARN), nil
	case "slack":
		token := viper.GetString("notifier.slack.token")
		channel := viper.GetString("notifier.slack.channel")
		if token == "" || channel == "" {
			return nil, fmt.Errorf("notifier.slack.token and notifier.slack.channel must be set when using slack")
		}
		return slack.NewClient(token, channel), nil
	default:
		return nil, fmt.Errorf("unknown notifier type: %s", notifierType)
	}
}
