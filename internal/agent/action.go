// Package agent implements the calling convention of the conversational
// agent runtime: the event envelope it invokes actions with, and the
// response envelope it expects back. Field names are part of the runtime's
// schema and must not change.
package agent

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedAction is returned when an event does not map onto a known
// action.
var ErrUnsupportedAction = errors.New("unsupported action")

// Action is one of the operations the handler implements. The set is closed;
// adding an action means extending ResolveAction and every switch over it.
type Action int

const (
	// ActionCheckSpam checks a phone number against the reputation service.
	ActionCheckSpam Action = iota
	// ActionCallerInfo looks up line information for a phone number.
	ActionCallerInfo
	// ActionSaveCallRecord persists one completed call.
	ActionSaveCallRecord
	// ActionSendNotification notifies the owner about a call.
	ActionSendNotification
)

// String implements fmt.Stringer.
func (a Action) String() string {
	switch a {
	case ActionCheckSpam:
		return "checkSpam"
	case ActionCallerInfo:
		return "getCallerInfo"
	case ActionSaveCallRecord:
		return "saveCallRecord"
	case ActionSendNotification:
		return "sendNotification"
	}
	return "unknown"
}

// ResolveAction maps an event's method and path onto an Action.
func ResolveAction(method, path string) (Action, error) {
	method = strings.ToUpper(method)

	switch {
	case method == "GET" && strings.HasPrefix(path, "/check-spam/"):
		return ActionCheckSpam, nil
	case method == "GET" && strings.HasPrefix(path, "/caller-info/"):
		return ActionCallerInfo, nil
	case method == "POST" && path == "/call-record":
		return ActionSaveCallRecord, nil
	case method == "POST" && path == "/notification":
		return ActionSendNotification, nil
	}

	return 0, fmt.Errorf("%w: %s %s", ErrUnsupportedAction, method, path)
}
