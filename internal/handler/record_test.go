package handler_test

import (
	"context"
	"testing"
	"time"

	"github.com/ansa-dev/ansa/internal/handler"
	"github.com/ansa-dev/ansa/internal/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveCallRecord(t *testing.T) {
	h, deps := newTestHandler(t, handler.Config{})

	result := h.SaveCallRecord(context.Background(), handler.SaveCallRecordInput{
		CallerName:  "Jordan",
		CallerPhone: "+61400000000",
		Reason:      "Booking enquiry",
	})

	require.True(t, result.Success)
	require.NotEmpty(t, result.CallID)

	record, err := deps.store.GetCallRecord(context.Background(), result.CallID)
	require.NoError(t, err)
	assert.Equal(t, "Jordan", record.CallerName)
	assert.Equal(t, "+61400000000", record.CallerPhone)
	assert.Equal(t, kv.StatusCompleted, record.CallStatus)
	assert.False(t, record.NotificationSent)
}

func TestSaveCallRecordTwiceCreatesDistinctRecords(t *testing.T) {
	h, deps := newTestHandler(t, handler.Config{})

	in := handler.SaveCallRecordInput{
		CallerName:  "Jordan",
		CallerPhone: "+61400000000",
		Reason:      "Booking enquiry",
	}
	first := h.SaveCallRecord(context.Background(), in)
	second := h.SaveCallRecord(context.Background(), in)

	require.True(t, first.Success)
	require.True(t, second.Success)
	assert.NotEqual(t, first.CallID, second.CallID)
	assert.NotEqual(t, first.Timestamp, second.Timestamp)

	records, err := deps.store.ListCallRecordsByPhone(context.Background(), "+61400000000")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestSaveCallRecordEmptyOptionalFields(t *testing.T) {
	h, deps := newTestHandler(t, handler.Config{})

	result := h.SaveCallRecord(context.Background(), handler.SaveCallRecordInput{
		CallerPhone: "+61400000000",
	})
	require.True(t, result.Success)

	record, err := deps.store.GetCallRecord(context.Background(), result.CallID)
	require.NoError(t, err)
	assert.Equal(t, "", record.CallerName)
	assert.Equal(t, "", record.Reason)
}

func TestSaveCallRecordHonoursSuppliedCallID(t *testing.T) {
	h, _ := newTestHandler(t, handler.Config{})

	result := h.SaveCallRecord(context.Background(), handler.SaveCallRecordInput{
		CallID: "contact-flow-123",
	})
	require.True(t, result.Success)
	assert.Equal(t, "contact-flow-123", result.CallID)
}

func TestSaveCallRecordSpamStatus(t *testing.T) {
	h, deps := newTestHandler(t, handler.Config{})

	result := h.SaveCallRecord(context.Background(), handler.SaveCallRecordInput{
		CallerPhone: "+61400000000",
		IsSpam:      true,
	})
	require.True(t, result.Success)

	record, err := deps.store.GetCallRecord(context.Background(), result.CallID)
	require.NoError(t, err)
	assert.True(t, record.IsSpam)
	assert.Equal(t, kv.StatusSpamBlocked, record.CallStatus)
}

func TestSaveCallRecordStoreFailure(t *testing.T) {
	h, deps := newTestHandler(t, handler.Config{})
	deps.store.PutErr = kv.ErrDBOperationFailed

	result := h.SaveCallRecord(context.Background(), handler.SaveCallRecordInput{
		CallerName: "Jordan",
	})

	assert.False(t, result.Success)
	assert.True(t, result.Retryable)
	assert.NotEmpty(t, result.Error)
	assert.Empty(t, result.CallID)
}

func TestSaveCallRecordTimestampIsFixedWidth(t *testing.T) {
	h, _ := newTestHandler(t, handler.Config{})

	result := h.SaveCallRecord(context.Background(), handler.SaveCallRecordInput{CallerPhone: "+61400000000"})
	require.True(t, result.Success)

	// Every timestamp must render at the same width, including the
	// fractional seconds, so that string comparison orders records
	// chronologically.
	assert.Len(t, result.Timestamp, len("2006-01-02T15:04:05.000000000Z"))

	parsed, err := time.Parse(kv.TimestampLayout, result.Timestamp)
	require.NoError(t, err)
	assert.Equal(t, result.Timestamp, parsed.UTC().Format(kv.TimestampLayout))
}

func TestTimestampLayoutOrdersWithinASecond(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 5, 0, time.UTC)
	earlier := base.Add(120 * time.Millisecond).Format(kv.TimestampLayout)
	later := base.Add(125 * time.Millisecond).Format(kv.TimestampLayout)

	// RFC3339Nano would render these as ".12Z" and ".125Z", which string
	// sort in the wrong order.
	assert.True(t, earlier < later, "expected %q to sort before %q", earlier, later)
}

func TestSaveCallRecordPhoneHistoryOrdering(t *testing.T) {
	h, deps := newTestHandler(t, handler.Config{})

	first := h.SaveCallRecord(context.Background(), handler.SaveCallRecordInput{CallerPhone: "+61400000000", Reason: "first"})
	second := h.SaveCallRecord(context.Background(), handler.SaveCallRecordInput{CallerPhone: "+61400000000", Reason: "second"})
	require.True(t, first.Success)
	require.True(t, second.Success)

	records, err := deps.store.ListCallRecordsByPhone(context.Background(), "+61400000000")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "second", records[0].Reason)
	assert.Equal(t, "first", records[1].Reason)
}
