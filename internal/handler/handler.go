// Package handler implements the actions the conversational agent can take
// during a phone call: checking a caller's reputation, looking up line
// information, persisting a call record, and notifying the owner.
package handler

import (
	"context"
	"log/slog"

	"github.com/ansa-dev/ansa/internal/agent"
	"github.com/ansa-dev/ansa/internal/clients/reputation"
	"github.com/ansa-dev/ansa/internal/kv"
	"github.com/ansa-dev/ansa/internal/notifier"
)

// Config carries the handler's behavioral configuration. It is resolved once
// at construction; the handler never reads process-wide configuration
// itself.
type Config struct {
	// SpamCheckEnabled gates the reputation lookup. When false, every
	// caller is treated as not spam without any external call.
	SpamCheckEnabled bool

	// SpamLineTypes are line types classified as spam outright.
	SpamLineTypes []string
	// ReviewLineTypes are line types flagged for review but not blocked.
	ReviewLineTypes []string
	// FlagInvalid classifies numbers the reputation service rejects as
	// invalid to be spam.
	FlagInvalid bool

	// SubjectTemplate and BodyTemplate compose the owner notification.
	// Empty values fall back to the defaults.
	SubjectTemplate string
	BodyTemplate    string
}

// Handler executes actions on behalf of the agent runtime. It is stateless
// across invocations; concurrent calls share nothing but the injected
// clients.
type Handler struct {
	cfg        Config
	store      kv.Storer
	notifier   notifier.Notifier
	reputation reputation.Client
}

// New creates a new Handler.
func New(cfg Config, store kv.Storer, n notifier.Notifier, rep reputation.Client) *Handler {
	if cfg.SubjectTemplate == "" {
		cfg.SubjectTemplate = DefaultSubjectTemplate
	}
	if cfg.BodyTemplate == "" {
		cfg.BodyTemplate = DefaultBodyTemplate
	}

	return &Handler{
		cfg:        cfg,
		store:      store,
		notifier:   n,
		reputation: rep,
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// Handle dispatches one agent event to the matching operation and wraps the
// result in the response envelope. It never returns an error: the runtime
// expects a structured response for every invocation, so failures are
// embedded in the body instead.
func (h *Handler) Handle(ctx context.Context, req *agent.Request) (*agent.Response, error) {
	action, err := agent.ResolveAction(req.HTTPMethod, req.APIPath)
	if err != nil {
		slog.Warn("unsupported action", "method", req.HTTPMethod, "path", req.APIPath)
		return agent.NewResponse(req, errorBody{Error: err.Error()}), nil
	}

	slog.Info("handling action", "action", action.String(), "action_group", req.ActionGroup)

	var result any
	switch action {
	case agent.ActionCheckSpam:
		result = h.CheckSpam(ctx, req.Parameter("phoneNumber"))
	case agent.ActionCallerInfo:
		result = h.CallerInfo(ctx, req.Parameter("phoneNumber"))
	case agent.ActionSaveCallRecord:
		result = h.SaveCallRecord(ctx, SaveCallRecordInput{
			CallID:      req.BodyString("call_id"),
			CallerName:  req.BodyString("caller_name"),
			CallerPhone: req.BodyString("caller_phone"),
			Reason:      req.BodyString("reason"),
			IsSpam:      req.BodyBool("is_spam"),
		})
	case agent.ActionSendNotification:
		result = h.SendNotification(ctx, SendNotificationInput{
			CallID:      req.BodyString("call_id"),
			Timestamp:   req.BodyString("timestamp"),
			CallerName:  req.BodyString("caller_name"),
			CallerPhone: req.BodyString("caller_phone"),
			Reason:      req.BodyString("reason"),
			IsSpam:      req.BodyBool("is_spam"),
		})
	}

	return agent.NewResponse(req, result), nil
}
