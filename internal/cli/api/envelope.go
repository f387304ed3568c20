package api

import "encoding/json"

// Envelope — ответ API с известными опциональными полями.
// Value is the decoded JSON value of any type. Body is that value when it
// is an object and empty otherwise; the typed fields are copied out of Body
// only when they are strings (a non-string detail is stringified).
type Envelope struct {
	AccessToken string
	TokenType   string
	Detail      string
	Message     string
	Status      string

	Value any
	Body  map[string]any
}

// DecodeEnvelope decodes a response body holding any JSON value.
// Only bytes that are not valid JSON are an error.
func DecodeEnvelope(data []byte) (*Envelope, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	body, ok := v.(map[string]any)
	if !ok {
		return &Envelope{Value: v, Body: map[string]any{}}, nil
	}
	env := &Envelope{Value: v, Body: body}
	env.AccessToken = stringField(body, "access_token", false)
	env.TokenType = stringField(body, "token_type", false)
	env.Detail = stringField(body, "detail", true)
	env.Message = stringField(body, "message", true)
	env.Status = stringField(body, "status", false)
	return env, nil
}

func emptyEnvelope() *Envelope {
	body := map[string]any{}
	return &Envelope{Value: body, Body: body}
}

func stringField(body map[string]any, key string, stringify bool) string {
	v, ok := body[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	if !stringify {
		return ""
	}
	// ложные значения (false, 0) не считаются сообщением
	switch x := v.(type) {
	case bool:
		if !x {
			return ""
		}
	case float64:
		if x == 0 {
			return ""
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// ErrorMessage picks detail, then message, then the stringified value.
// A null or missing value reads as the empty object.
func (e *Envelope) ErrorMessage() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Message != "" {
		return e.Message
	}
	v := e.Value
	if v == nil && e.Body != nil {
		v = e.Body
	}
	if v == nil {
		return "{}"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
