package agent

// Parameter is a single named value in an event. The runtime sends every
// value as a string, typed only by the Type hint.
type Parameter struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Content holds the typed body of a POST event.
type Content struct {
	Properties []Parameter `json:"properties"`
}

// RequestBody wraps the body content, keyed by media type.
type RequestBody struct {
	Content map[string]Content `json:"content"`
}

// Request is the event the runtime invokes an action with.
type Request struct {
	MessageVersion          string            `json:"messageVersion"`
	ActionGroup             string            `json:"actionGroup"`
	APIPath                 string            `json:"apiPath"`
	HTTPMethod              string            `json:"httpMethod"`
	Parameters              []Parameter       `json:"parameters"`
	RequestBody             RequestBody       `json:"requestBody"`
	SessionAttributes       map[string]string `json:"sessionAttributes"`
	PromptSessionAttributes map[string]string `json:"promptSessionAttributes"`
}

// Parameter returns the named path/query parameter, or "" when absent.
func (r *Request) Parameter(name string) string {
	for _, p := range r.Parameters {
		if p.Name == name {
			return p.Value
		}
	}
	return ""
}

// Body flattens the JSON body properties into a map. String booleans are
// coerced, since the runtime serializes every property value as a string.
func (r *Request) Body() map[string]any {
	body := make(map[string]any)
	for _, p := range r.RequestBody.Content["application/json"].Properties {
		switch p.Value {
		case "true", "True":
			body[p.Name] = true
		case "false", "False":
			body[p.Name] = false
		default:
			body[p.Name] = p.Value
		}
	}
	return body
}

// BodyString returns the named body property as a string, or "" when absent
// or not a string.
func (r *Request) BodyString(name string) string {
	if v, ok := r.Body()[name].(string); ok {
		return v
	}
	return ""
}

// BodyBool returns the named body property as a bool, or false when absent
// or not a bool.
func (r *Request) BodyBool(name string) bool {
	if v, ok := r.Body()[name].(bool); ok {
		return v
	}
	return false
}
