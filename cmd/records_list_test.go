package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/ansa-dev/ansa/internal/datastore"
	"github.com/ansa-dev/ansa/internal/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordsListCmd(t *testing.T) {
	store := datastore.NewMockStore()
	for _, r := range []*kv.CallRecord{
		{
			CallID: "call-1", Timestamp: "2025-06-01T10:00:00Z",
			CallerName: "Jane Doe", CallerPhone: "+14155550100",
			Reason: "plumbing quote", CallStatus: kv.StatusCompleted,
		},
		{
			CallID: "call-2", Timestamp: "2025-06-01T11:00:00Z",
			CallerName: "Robo Dialer", CallerPhone: "+14155550199",
			Reason: "warranty", IsSpam: true, CallStatus: kv.StatusSpamBlocked,
		},
	} {
		require.NoError(t, store.PutCallRecord(context.Background(), r))
	}

	original := datastoreNewStore
	datastoreNewStore = func(ctx context.Context) (kv.Storer, error) {
		return store, nil
	}
	t.Cleanup(func() { datastoreNewStore = original })

	t.Run("lists all records", func(t *testing.T) {
		var out bytes.Buffer
		rootCmd.SetArgs([]string{"records", "list"})
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&out)

		require.NoError(t, rootCmd.Execute())

		assert.Contains(t, out.String(), "call-1")
		assert.Contains(t, out.String(), "call-2")
		assert.Contains(t, out.String(), "Jane Doe")
		assert.Contains(t, out.String(), "spam_blocked")
	})

	t.Run("filters by phone number", func(t *testing.T) {
		var out bytes.Buffer
		rootCmd.SetArgs([]string{"records", "list", "--phone", "+14155550100"})
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&out)

		require.NoError(t, rootCmd.Execute())

		assert.Contains(t, out.String(), "call-1")
		assert.NotContains(t, out.String(), "call-2")
	})
}
