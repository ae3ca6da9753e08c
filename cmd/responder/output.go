package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/samvad-hq/responder-client/pkg/responder"
)

func writeResponse(w io.Writer, resp *responder.Response) error {
	if resp == nil {
		return nil
	}
	if resp.IsRaw() {
		_, err := fmt.Fprintln(w, resp.Raw)
		return err
	}
	return writeJSON(w, resp.Body)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// statusError turns a non-2xx reply into a non-zero exit after the body was printed.
func statusError(resp *responder.Response) error {
	if resp == nil || (resp.StatusCode >= 200 && resp.StatusCode <= 299) {
		return nil
	}
	return fmt.Errorf("responder returned status %d", resp.StatusCode)
}
