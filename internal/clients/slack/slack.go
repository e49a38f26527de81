package slack

import (
	"context"
	"fmt"
	"strings"

	"github.com/slack-go/slack"
)

// api is the subset of the Slack API the client uses.
type api interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	GetConversationsContext(ctx context.Context, params *slack.GetConversationsParameters) ([]slack.Channel, string, error)
}

// Client posts call notifications to a Slack channel. It is the alternative
// to the SNS topic for owners who live in Slack rather than email.
type Client struct {
	api     api
	channel string
}

// NewClient creates a new Slack client publishing to the given channel.
func NewClient(token, channel string) *Client {
	return &Client{
		api:     slack.New(token),
		channel: channel,
	}
}

// NewClientWithAPI creates a Slack client with the given API implementation.
func NewClientWithAPI(a api, channel string) *Client {
	return &Client{
		api:     a,
		channel: channel,
	}
}

// Publish sends one message to the configured channel and returns the
// message timestamp as its id.
func (c *Client) Publish(ctx context.Context, subject, message string) (string, error) {
	text := message
	if subject != "" {
		text = fmt.Sprintf("*%s*\n%s", subject, text)
	}

	channelID, err := c.getChannelID(ctx, c.channel)
	if err != nil {
		return "", fmt.Errorf("failed to get channel id: %w", err)
	}

	_, timestamp, err := c.api.PostMessageContext(ctx, channelID, slack.MsgOptionText(text, false))
	if err != nil {
		return "", fmt.Errorf("failed to post message: %w", err)
	}
	return timestamp, nil
}

// getChannelID retrieves the ID of a channel given its name. Names without a
// leading '#' are assumed to already be IDs.
func (c *Client) getChannelID(ctx context.Context, channelName string) (string, error) {
	if !strings.HasPrefix(channelName, "#") {
		return channelName, nil
	}

	var channels []slack.Channel
	params := &slack.GetConversationsParameters{
		Limit: 1000,
		Types: []string{"public_channel", "private_channel"},
	}
	for {
		page, nextCursor, err := c.api.GetConversationsContext(ctx, params)
		if err != nil {
			return "", fmt.Errorf("failed to get conversations: %w", err)
		}
		channels = append(channels, page...)
		if nextCursor == "" {
			break
		}
		params.Cursor = nextCursor
	}

	normalized := strings.TrimPrefix(strings.ToLower(channelName), "#")
	for _, channel := range channels {
		if strings.ToLower(channel.Name) == normalized {
			return channel.ID, nil
		}
	}

	return "", fmt.Errorf("channel '%s' not found", channelName)
}
