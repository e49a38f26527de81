package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	PostMessageFunc      func(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	GetConversationsFunc func(ctx context.Context, params *slack.GetConversationsParameters) ([]slack.Channel, string, error)

	PostMessageCount      int
	GetConversationsCount int
	PostedChannelID       string
}

func (f *fakeAPI) PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	f.PostMessageCount++
	f.PostedChannelID = channelID
	if f.PostMessageFunc != nil {
		return f.PostMessageFunc(ctx, channelID, options...)
	}
	return channelID, "1234567890.123456", nil
}

func (f *fakeAPI) GetConversationsContext(ctx context.Context, params *slack.GetConversationsParameters) ([]slack.Channel, string, error) {
	f.GetConversationsCount++
	if f.GetConversationsFunc != nil {
		return f.GetConversationsFunc(ctx, params)
	}
	return nil, "", nil
}

func namedChannel(id, name string) slack.Channel {
	c := slack.Channel{}
	c.ID = id
	c.Name = name
	return c
}

func TestPublish(t *testing.T) {
	t.Run("posts to a channel id without resolving it", func(t *testing.T) {
		api := &fakeAPI{}
		client := NewClientWithAPI(api, "C1234567890")

		timestamp, err := client.Publish(context.Background(), "Missed call", "details")
		require.NoError(t, err)

		assert.Equal(t, "1234567890.123456", timestamp)
		assert.Equal(t, "C1234567890", api.PostedChannelID)
		assert.Equal(t, 0, api.GetConversationsCount)
	})

	t.Run("resolves a channel name to its id", func(t *testing.T) {
		api := &fakeAPI{
			GetConversationsFunc: func(ctx context.Context, params *slack.GetConversationsParameters) ([]slack.Channel, string, error) {
				return []slack.Channel{
					namedChannel("C0000000001", "random"),
					namedChannel("C0000000002", "missed-calls"),
				}, "", nil
			},
		}
		client := NewClientWithAPI(api, "#missed-calls")

		_, err := client.Publish(context.Background(), "Missed call", "details")
		require.NoError(t, err)

		assert.Equal(t, "C0000000002", api.PostedChannelID)
	})

	t.Run("pages through conversations", func(t *testing.T) {
		api := &fakeAPI{}
		api.GetConversationsFunc = func(ctx context.Context, params *slack.GetConversationsParameters) ([]slack.Channel, string, error) {
			if params.Cursor == "" {
				return []slack.Channel{namedChannel("C0000000001", "random")}, "page-2", nil
			}
			return []slack.Channel{namedChannel("C0000000002", "missed-calls")}, "", nil
		}
		client := NewClientWithAPI(api, "#missed-calls")

		_, err := client.Publish(context.Background(), "", "details")
		require.NoError(t, err)

		assert.Equal(t, 2, api.GetConversationsCount)
		assert.Equal(t, "C0000000002", api.PostedChannelID)
	})

	t.Run("fails when the channel is not found", func(t *testing.T) {
		api := &fakeAPI{}
		client := NewClientWithAPI(api, "#missed-calls")

		_, err := client.Publish(context.Background(), "", "details")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
		assert.Equal(t, 0, api.PostMessageCount)
	})

	t.Run("propagates post failures", func(t *testing.T) {
		api := &fakeAPI{
			PostMessageFunc: func(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
				return "", "", errors.New("rate limited")
			},
		}
		client := NewClientWithAPI(api, "C1234567890")

		_, err := client.Publish(context.Background(), "", "details")
		require.Error(t, err)
	})
}
