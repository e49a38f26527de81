package kv

import (
	"context"
	"errors"
)

// Err* are common errors returned by the datastore.
var (
	ErrNotFound            = errors.New("not found")
	ErrDBOperationFailed   = errors.New("db operation failed")
	ErrSerializationFailed = errors.New("serialization failed")
)

// TimestampLayout is the format record timestamps are stored in. The
// fractional seconds are fixed-width: every store backend orders records by
// comparing the timestamp as a string, which is only correct when
// lexicographic order matches chronological order. RFC3339Nano does not
// qualify, as it trims trailing zeros.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Status represents the final status of a call.
type Status string

const (
	// StatusCompleted means the call ran to completion normally.
	StatusCompleted Status = "completed"
	// StatusSpamBlocked means the call was flagged as spam.
	StatusSpamBlocked Status = "spam_blocked"
)

// CallRecord represents one completed interaction with a caller.
//
// Records are keyed by (call_id, timestamp). The caller's phone number is a
// secondary lookup key, ordered by timestamp, so a caller's history can be
// retrieved most-recent-first.
type CallRecord struct {
	CallID           string `json:"call_id" dynamodbav:"call_id"`
	Timestamp        string `json:"timestamp" dynamodbav:"timestamp"`
	CallerName       string `json:"caller_name" dynamodbav:"caller_name"`
	CallerPhone      string `json:"caller_phone" dynamodbav:"caller_phone"`
	Reason           string `json:"reason" dynamodbav:"reason"`
	IsSpam           bool   `json:"is_spam" dynamodbav:"is_spam"`
	CallStatus       Status `json:"call_status" dynamodbav:"call_status"`
	NotificationSent bool   `json:"notification_sent" dynamodbav:"notification_sent"`
}

// Storer is an interface that defines the methods for interacting with the datastore.
type Storer interface {
	PutCallRecord(ctx context.Context, record *CallRecord) error
	GetCallRecord(ctx context.Context, callID string) (*CallRecord, error)
	ListCallRecords(ctx context.Context) ([]*CallRecord, error)
	ListCallRecordsByPhone(ctx context.Context, phone string) ([]*CallRecord, error)
	MarkNotificationSent(ctx context.Context, callID, timestamp string) error
	Close() error
}
