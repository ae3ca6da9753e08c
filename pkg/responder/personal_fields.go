package responder

import (
	"context"
	"net/http"
)

// Personal-field endpoints take their payload as a JSON string under
// "personal_fields" and always answer JSON; a non-JSON reply is a DecodeError.

func personalFieldsPath(listID int64) string { return listPath(listID) + "/personal_fields" }

// GetPersonalFields returns the personal fields defined on a list.
//
// API: GET /v1.0/lists/{listID}/personal_fields
func (c *Client) GetPersonalFields(ctx context.Context, listID int64) (*Response, error) {
	return c.dispatch(ctx, request{
		method:     http.MethodGet,
		suffix:     personalFieldsPath(listID),
		strictJSON: true,
	})
}

// CreatePersonalFields defines new fields (NAME, DEFAULT_VALUE, DIR, TYPE) keyed "0", "1", ...
//
// API: POST /v1.0/lists/{listID}/personal_fields, body {"personal_fields": "<json>"}
func (c *Client) CreatePersonalFields(ctx context.Context, listID int64, fields Args) (*Response, error) {
	return c.dispatch(ctx, request{
		method:        http.MethodPost,
		objectName:    objectPersonalFields,
		suffix:        personalFieldsPath(listID),
		args:          fields,
		stringifyArgs: true,
		strictJSON:    true,
	})
}

// EditPersonalFields updates fields addressed by ID.
//
// API: PUT /v1.0/lists/{listID}/personal_fields, body {"personal_fields": "<json>"}
func (c *Client) EditPersonalFields(ctx context.Context, listID int64, fields Args) (*Response, error) {
	return c.dispatch(ctx, request{
		method:        http.MethodPut,
		objectName:    objectPersonalFields,
		suffix:        personalFieldsPath(listID),
		args:          fields,
		stringifyArgs: true,
		strictJSON:    true,
	})
}

// DeletePersonalFields removes fields addressed by ID.
//
// API: POST /v1.0/lists/{listID}/personal_fields?method=delete, body {"personal_fields": "<json>"}
func (c *Client) DeletePersonalFields(ctx context.Context, listID int64, ids Args) (*Response, error) {
	return c.dispatch(ctx, request{
		method:        http.MethodPost,
		objectName:    objectPersonalFields,
		suffix:        personalFieldsPath(listID),
		query:         methodDelete,
		args:          ids,
		stringifyArgs: true,
		strictJSON:    true,
	})
}
