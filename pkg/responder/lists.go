package responder

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

func listPath(id int64) string { return "/" + strconv.FormatInt(id, 10) }

// GetLists returns every list of the account.
//
// API: GET /v1.0/lists
func (c *Client) GetLists(ctx context.Context) (*Response, error) {
	return c.dispatch(ctx, request{method: http.MethodGet})
}

// GetList returns a single list.
//
// API: GET /v1.0/lists?list_ids={id}
func (c *Client) GetList(ctx context.Context, id int64) (*Response, error) {
	return c.dispatch(ctx, request{
		method: http.MethodGet,
		query:  url.Values{"list_ids": {strconv.FormatInt(id, 10)}},
	})
}

// CreateList creates a list from fields such as NAME and DESCRIPTION.
//
// API: POST /v1.0/lists, body {"info": fields}
func (c *Client) CreateList(ctx context.Context, fields Args) (*Response, error) {
	return c.dispatch(ctx, request{
		method:     http.MethodPost,
		objectName: objectInfo,
		args:       fields,
	})
}

// EditList updates the given list.
//
// API: PUT /v1.0/lists/{id}, body {"info": fields}
func (c *Client) EditList(ctx context.Context, id int64, fields Args) (*Response, error) {
	return c.dispatch(ctx, request{
		method:     http.MethodPut,
		objectName: objectInfo,
		suffix:     listPath(id),
		args:       fields,
	})
}

// DeleteList deletes the given list.
//
// API: DELETE /v1.0/lists/{id}
func (c *Client) DeleteList(ctx context.Context, id int64) (*Response, error) {
	return c.dispatch(ctx, request{
		method:     http.MethodDelete,
		objectName: objectInfo,
		suffix:     listPath(id),
	})
}
