package agent

import (
	"encoding/json"
	"fmt"
)

// ContentBody holds the serialized result of an action.
type ContentBody struct {
	Body string `json:"body"`
}

// ActionResponse is the inner response the runtime reads the result from.
type ActionResponse struct {
	ActionGroup    string                 `json:"actionGroup"`
	APIPath        string                 `json:"apiPath"`
	HTTPMethod     string                 `json:"httpMethod"`
	HTTPStatusCode int                    `json:"httpStatusCode"`
	ResponseBody   map[string]ContentBody `json:"responseBody"`
}

// Response is the envelope returned for every invocation. The runtime
// expects one for every event, including failures; a transport-level error
// aborts the conversation.
type Response struct {
	MessageVersion          string            `json:"messageVersion"`
	Response                ActionResponse    `json:"response"`
	SessionAttributes       map[string]string `json:"sessionAttributes"`
	PromptSessionAttributes map[string]string `json:"promptSessionAttributes"`
}

// NewResponse wraps an action result in the response envelope, echoing the
// request's routing fields and session context.
func NewResponse(req *Request, result any) *Response {
	body, err := json.Marshal(result)
	if err != nil {
		body = []byte(fmt.Sprintf(`{"error": %q}`, err.Error()))
	}

	return &Response{
		MessageVersion: "1.0",
		Response: ActionResponse{
			ActionGroup:    req.ActionGroup,
			APIPath:        req.APIPath,
			HTTPMethod:     req.HTTPMethod,
			HTTPStatusCode: 200,
			ResponseBody: map[string]ContentBody{
				"application/json": {Body: string(body)},
			},
		},
		SessionAttributes:       req.SessionAttributes,
		PromptSessionAttributes: req.PromptSessionAttributes,
	}
}
