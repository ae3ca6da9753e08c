package responder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/samvad-hq/responder-client/pkg/httpclient"
)

// Object names wrapping request payloads.
const (
	objectInfo           = "info"
	objectSubscribers    = "subscribers"
	objectPersonalFields = "personal_fields"
)

// request describes one call to the lists resource.
type request struct {
	method     string
	objectName string
	suffix     string
	query      url.Values
	args       Args

	// stringifyArgs sends {objectName: "<json of args>"} even for empty args.
	stringifyArgs bool

	// strictJSON disables the raw pass-through of non-JSON replies.
	strictJSON bool
}

// payload builds the wrapped body, or nil when nothing is sent.
func (req request) payload() (map[string]any, error) {
	if req.stringifyArgs {
		args := req.args
		if args == nil {
			args = Args{}
		}
		raw, err := json.Marshal(args)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", req.objectName, err)
		}
		return map[string]any{req.objectName: string(raw)}, nil
	}
	if len(req.args) == 0 || req.objectName == "" {
		return nil, nil
	}
	return map[string]any{req.objectName: req.args}, nil
}

// endpoint joins the base URL, the /v1.0/lists prefix, the escaped suffix and the query.
func (c *Client) endpoint(suffix string, query url.Values) string {
	u := url.URL{Path: apiPrefix + suffix}
	target := c.baseURL + u.EscapedPath()
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target
}

// dispatch sends req and parses the reply. Transport failures are returned
// as-is (wrapped); there are no retries.
func (c *Client) dispatch(ctx context.Context, req request) (*Response, error) {
	payload, err := req.payload()
	if err != nil {
		return nil, err
	}
	body, contentType, err := encodeBody(c.encoding, payload)
	if err != nil {
		return nil, err
	}

	target := c.endpoint(req.suffix, req.query)
	headers := map[string]string{"Accept": contentTypeJSON}
	if contentType != "" {
		headers["Content-Type"] = contentType
	}

	c.log.DebugObj("responder request", "responder_request", map[string]any{
		"method":   req.method,
		"url":      target,
		"object":   req.objectName,
		"has_body": body != nil,
		"encoding": c.encoding.String(),
	})

	resp, err := c.http.Do(ctx, httpclient.Request{
		Method:  req.method,
		URL:     target,
		Headers: headers,
		Body:    body,
	})
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.method, target, err)
	}

	out, err := parseResponse(resp.StatusCode(), resp.Header("Content-Type"), resp.Body(), !req.strictJSON)
	if err != nil {
		c.log.WarnObj("responder response not decodable", "responder_response", map[string]any{
			"method": req.method,
			"url":    target,
			"status": resp.StatusCode(),
		})
		return nil, err
	}

	c.log.DebugObj("responder response", "responder_response", map[string]any{
		"method": req.method,
		"url":    target,
		"status": out.StatusCode,
		"raw":    out.IsRaw(),
	})
	return out, nil
}
