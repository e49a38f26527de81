package handler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ansa-dev/ansa/internal/processor"
)

// DefaultSubjectTemplate and DefaultBodyTemplate compose the owner
// notification when no templates are configured.
const (
	DefaultSubjectTemplate = `Missed call from {{ .CallerName | default "an unknown caller" }}`

	DefaultBodyTemplate = `You have a new message from a caller.

--- Call Details ---
Caller Name: {{ .CallerName | default "unknown" }}
Phone Number: {{ .CallerPhone | default "unknown" }}
Reason/Message: {{ .Reason | default "not provided" }}
Call ID: {{ .CallID | default "unknown" }}
Spam Verdict: {{ if .IsSpam }}likely spam{{ else }}not spam{{ end }}
Time: {{ date "2006-01-02 15:04:05" .SentAt }} UTC
---

This message was recorded by your automated caller agent.`
)

// SendNotificationInput carries the call summary to deliver to the owner.
type SendNotificationInput struct {
	CallID      string
	Timestamp   string
	CallerName  string
	CallerPhone string
	Reason      string
	IsSpam      bool
}

// SendNotificationResult reports whether the notification was accepted by
// the channel.
type SendNotificationResult struct {
	Success   bool   `json:"success"`
	Delivered bool   `json:"delivered"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// SendNotification composes a call summary and publishes it once. Publish
// failure is non-fatal: it is logged and reported as undelivered, but the
// call can still conclude without the owner being notified.
func (h *Handler) SendNotification(ctx context.Context, in SendNotificationInput) *SendNotificationResult {
	data := map[string]interface{}{
		"CallerName":  in.CallerName,
		"CallerPhone": in.CallerPhone,
		"Reason":      in.Reason,
		"CallID":      in.CallID,
		"IsSpam":      in.IsSpam,
		"SentAt":      time.Now().UTC(),
	}

	stack := processor.ProcessorStack{processor.NewTemplateProcessor()}

	subject, err := stack.Process(h.cfg.SubjectTemplate, data)
	if err != nil {
		slog.Error("failed to render notification subject", "error", err)
		subject = "Missed call"
	}
	body, err := stack.Process(h.cfg.BodyTemplate, data)
	if err != nil {
		slog.Error("failed to render notification body", "error", err)
		body = fmt.Sprintf("Missed call from %s (%s): %s", in.CallerName, in.CallerPhone, in.Reason)
	}

	messageID, err := h.notifier.Publish(ctx, subject, body)
	if err != nil {
		slog.Warn("failed to publish notification", "call_id", in.CallID, "error", err)
		return &SendNotificationResult{
			Success:   false,
			Delivered: false,
			Error:     err.Error(),
		}
	}

	// Best effort: the notification already went out, so a failure to
	// record that fact is not worth failing the action over.
	if in.CallID != "" && in.Timestamp != "" {
		if err := h.store.MarkNotificationSent(ctx, in.CallID, in.Timestamp); err != nil {
			slog.Warn("could not mark notification as sent", "call_id", in.CallID, "error", err)
		}
	}

	slog.Info("published notification", "call_id", in.CallID, "message_id", messageID)
	return &SendNotificationResult{
		Success:   true,
		Delivered: true,
		MessageID: messageID,
	}
}
