package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/ansa-dev/ansa/internal/kv"
	"github.com/google/uuid"
)

// SaveCallRecordInput carries the fields collected during a conversation.
// Any of them may be empty when the caller declined to provide it.
type SaveCallRecordInput struct {
	CallID      string
	CallerName  string
	CallerPhone string
	Reason      string
	IsSpam      bool
}

// SaveCallRecordResult confirms (or not) the persistence of one record.
type SaveCallRecordResult struct {
	Success   bool   `json:"success"`
	CallID    string `json:"call_id,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Error     string `json:"error,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}

// SaveCallRecord persists one completed call. A fresh call id and timestamp
// are generated per invocation, so re-invocation creates a new record rather
// than overwriting. A store failure is reported as retryable so the
// conversation can tell the caller their details may not have been saved.
func (h *Handler) SaveCallRecord(ctx context.Context, in SaveCallRecordInput) *SaveCallRecordResult {
	callID := in.CallID
	if callID == "" {
		callID = uuid.NewString()
	}
	timestamp := time.Now().UTC().Format(kv.TimestampLayout)

	status := kv.StatusCompleted
	if in.IsSpam {
		status = kv.StatusSpamBlocked
	}

	record := &kv.CallRecord{
		CallID:           callID,
		Timestamp:        timestamp,
		CallerName:       in.CallerName,
		CallerPhone:      in.CallerPhone,
		Reason:           in.Reason,
		IsSpam:           in.IsSpam,
		CallStatus:       status,
		NotificationSent: false,
	}

	if err := h.store.PutCallRecord(ctx, record); err != nil {
		slog.Error("failed to save call record", "call_id", callID, "error", err)
		return &SaveCallRecordResult{
			Success:   false,
			Error:     err.Error(),
			Retryable: true,
		}
	}

	slog.Info("saved call record", "call_id", callID, "status", string(status))
	return &SaveCallRecordResult{
		Success:   true,
		CallID:    callID,
		Timestamp: timestamp,
	}
}
