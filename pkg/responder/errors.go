package responder

import (
	"errors"
	"fmt"
)

// DecodeError is returned when a reply that should be JSON fails to parse.
type DecodeError struct {
	StatusCode int
	Snippet    string
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response (status %d): %v: %s", e.StatusCode, e.Err, e.Snippet)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsDecodeError checks if the error represents a malformed JSON reply.
func IsDecodeError(err error) bool {
	var decErr *DecodeError
	return errors.As(err, &decErr)
}
