package agent_test

import (
	"encoding/json"
	"testing"

	"github.com/ansa-dev/ansa/internal/agent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAction(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		want   agent.Action
	}{
		{"check spam", "GET", "/check-spam/+61400000000", agent.ActionCheckSpam},
		{"caller info", "GET", "/caller-info/+61400000000", agent.ActionCallerInfo},
		{"save record", "POST", "/call-record", agent.ActionSaveCallRecord},
		{"notification", "POST", "/notification", agent.ActionSendNotification},
		{"lowercase method", "post", "/notification", agent.ActionSendNotification},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := agent.ResolveAction(tt.method, tt.path)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveActionUnsupported(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"unknown path", "GET", "/weather"},
		{"wrong method", "DELETE", "/call-record"},
		{"empty", "", ""},
		{"path without prefix slash", "GET", "check-spam/+61400000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := agent.ResolveAction(tt.method, tt.path)
			assert.ErrorIs(t, err, agent.ErrUnsupportedAction)
		})
	}
}

func TestRequestParameter(t *testing.T) {
	req := &agent.Request{
		Parameters: []agent.Parameter{
			{Name: "phoneNumber", Type: "string", Value: "+61400000000"},
		},
	}

	assert.Equal(t, "+61400000000", req.Parameter("phoneNumber"))
	assert.Equal(t, "", req.Parameter("missing"))
}

func TestRequestBodyCoercesBooleans(t *testing.T) {
	req := &agent.Request{
		RequestBody: agent.RequestBody{
			Content: map[string]agent.Content{
				"application/json": {
					Properties: []agent.Parameter{
						{Name: "caller_name", Value: "Jordan"},
						{Name: "is_spam", Value: "True"},
						{Name: "flagged", Value: "false"},
					},
				},
			},
		},
	}

	body := req.Body()
	assert.Equal(t, "Jordan", body["caller_name"])
	assert.Equal(t, true, body["is_spam"])
	assert.Equal(t, false, body["flagged"])

	assert.Equal(t, "Jordan", req.BodyString("caller_name"))
	assert.True(t, req.BodyBool("is_spam"))
	assert.False(t, req.BodyBool("caller_name"))
	assert.Equal(t, "", req.BodyString("missing"))
}

func TestNewResponseEnvelope(t *testing.T) {
	req := &agent.Request{
		ActionGroup:             "caller-agent-actions",
		APIPath:                 "/call-record",
		HTTPMethod:              "POST",
		SessionAttributes:       map[string]string{"contactId": "abc"},
		PromptSessionAttributes: map[string]string{"tone": "friendly"},
	}

	resp := agent.NewResponse(req, map[string]any{"success": true})

	// The runtime parses these fields by name; they are load-bearing.
	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Equal(t, "1.0", envelope["messageVersion"])
	assert.Equal(t, map[string]any{"contactId": "abc"}, envelope["sessionAttributes"])
	assert.Equal(t, map[string]any{"tone": "friendly"}, envelope["promptSessionAttributes"])

	inner, ok := envelope["response"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "caller-agent-actions", inner["actionGroup"])
	assert.Equal(t, "/call-record", inner["apiPath"])
	assert.Equal(t, "POST", inner["httpMethod"])
	assert.Equal(t, float64(200), inner["httpStatusCode"])

	content, ok := inner["responseBody"].(map[string]any)
	require.True(t, ok)
	jsonBody, ok := content["application/json"].(map[string]any)
	require.True(t, ok)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(jsonBody["body"].(string)), &result))
	assert.Equal(t, true, result["success"])
}
