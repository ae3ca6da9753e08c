package responder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Response is the reply to a single API call. Body holds the decoded
// JSON value (usually map[string]any); when the reply was not JSON and
// the operation allows it, the body is passed through unparsed in Raw.
//
// Non-2xx replies are still returned as a Response: the service reports
// failures in its payload (e.g. an ERRORS array), so callers should
// inspect StatusCode and Errors.
type Response struct {
	StatusCode int
	Body       any
	Raw        string

	raw bool
}

// IsRaw reports whether the body was passed through without JSON decoding.
func (r *Response) IsRaw() bool { return r != nil && r.raw }

// Map returns the body as a JSON object, or nil when it is not one.
func (r *Response) Map() map[string]any {
	if r == nil {
		return nil
	}
	m, _ := r.Body.(map[string]any)
	return m
}

// Errors returns the service-level ERRORS array, if the body carries one.
func (r *Response) Errors() []any {
	errs, _ := r.Map()["ERRORS"].([]any)
	return errs
}

// Decode re-encodes the decoded body into v, for callers that want a typed view.
func (r *Response) Decode(v any) error {
	if r == nil {
		return fmt.Errorf("nil response")
	}
	if r.raw {
		return fmt.Errorf("response body is not json")
	}
	raw, err := json.Marshal(r.Body)
	if err != nil {
		return fmt.Errorf("re-encode body: %w", err)
	}
	return json.Unmarshal(raw, v)
}

// parseResponse decodes body as JSON. With passThrough set, bodies that
// are not JSON (by content type and leading byte) are returned unparsed.
func parseResponse(status int, contentType string, body []byte, passThrough bool) (*Response, error) {
	out := &Response{StatusCode: status}

	if passThrough && !looksLikeJSON(contentType, body) {
		out.Raw = string(body)
		out.raw = true
		return out, nil
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, &DecodeError{StatusCode: status, Snippet: readBodySnippet(body), Err: err}
	}
	out.Body = v
	return out, nil
}

func looksLikeJSON(contentType string, body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return false
	}
	if strings.Contains(strings.ToLower(contentType), "json") {
		return true
	}
	return trimmed[0] == '{' || trimmed[0] == '['
}

func readBodySnippet(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if len(body) > 512 {
		body = body[:512]
	}
	return strings.TrimSpace(string(body))
}
