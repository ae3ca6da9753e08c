package domain

import "time"

// Change records one mutating call against the Responder API.
type Change struct {
	Seq        uint64         `json:"seq,omitempty"`
	Operation  string         `json:"operation"`
	ListID     int64          `json:"list_id,omitempty"`
	Request    map[string]any `json:"request,omitempty"`
	StatusCode int            `json:"status_code"`
	Response   any            `json:"response,omitempty"`
	At         time.Time      `json:"at"`
}
