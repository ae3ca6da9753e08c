package responder

import (
	"context"
	"net/http"
	"net/url"
)

func subscribersPath(listID int64) string { return listPath(listID) + "/subscribers" }

// methodDelete is the query flag the API uses instead of the DELETE verb for batch deletes.
var methodDelete = url.Values{"method": {"delete"}}

// GetSubscribers returns the subscribers of a list.
//
// API: GET /v1.0/lists/{listID}/subscribers
func (c *Client) GetSubscribers(ctx context.Context, listID int64) (*Response, error) {
	return c.dispatch(ctx, request{
		method: http.MethodGet,
		suffix: subscribersPath(listID),
	})
}

// CreateSubscribers adds subscribers, keyed "0", "1", ... with EMAIL, NAME and personal fields.
//
// API: POST /v1.0/lists/{listID}/subscribers, body {"subscribers": subscribers}
func (c *Client) CreateSubscribers(ctx context.Context, listID int64, subscribers Args) (*Response, error) {
	return c.dispatch(ctx, request{
		method:     http.MethodPost,
		objectName: objectSubscribers,
		suffix:     subscribersPath(listID),
		args:       subscribers,
	})
}

// EditSubscribers updates subscribers addressed by IDENTIFIER (email or id).
//
// API: PUT /v1.0/lists/{listID}/subscribers, body {"subscribers": subscribers}
func (c *Client) EditSubscribers(ctx context.Context, listID int64, subscribers Args) (*Response, error) {
	return c.dispatch(ctx, request{
		method:     http.MethodPut,
		objectName: objectSubscribers,
		suffix:     subscribersPath(listID),
		args:       subscribers,
	})
}

// DeleteSubscribers removes subscribers addressed by EMAIL or ID.
//
// API: POST /v1.0/lists/{listID}/subscribers?method=delete, body {"subscribers": identifiers}
func (c *Client) DeleteSubscribers(ctx context.Context, listID int64, identifiers Args) (*Response, error) {
	return c.dispatch(ctx, request{
		method:     http.MethodPost,
		objectName: objectSubscribers,
		suffix:     subscribersPath(listID),
		query:      methodDelete,
		args:       identifiers,
	})
}
