package responder

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Encoding selects the wire format of request bodies.
type Encoding int

const (
	// EncodingJSON sends the wrapped payload as an application/json document.
	EncodingJSON Encoding = iota
	// EncodingForm sends each top-level key as a form field whose value is
	// the JSON text of the wrapped value. Form fields are OAuth1-signed.
	EncodingForm
)

func (e Encoding) String() string {
	switch e {
	case EncodingJSON:
		return "json"
	case EncodingForm:
		return "form"
	default:
		return fmt.Sprintf("encoding(%d)", int(e))
	}
}

// ParseEncoding maps "json" / "form" (case-insensitive, empty means json) to an Encoding.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return EncodingJSON, nil
	case "form", "urlencoded":
		return EncodingForm, nil
	default:
		return EncodingJSON, fmt.Errorf("unsupported body encoding %q", s)
	}
}

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

// encodeBody renders payload in the given encoding. A nil payload yields no body.
func encodeBody(enc Encoding, payload map[string]any) ([]byte, string, error) {
	if payload == nil {
		return nil, "", nil
	}

	switch enc {
	case EncodingForm:
		form := url.Values{}
		for k, v := range payload {
			if s, ok := v.(string); ok {
				form.Set(k, s)
				continue
			}
			raw, err := json.Marshal(v)
			if err != nil {
				return nil, "", fmt.Errorf("marshal form field %q: %w", k, err)
			}
			form.Set(k, string(raw))
		}
		return []byte(form.Encode()), contentTypeForm, nil
	default:
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, "", fmt.Errorf("marshal request body: %w", err)
		}
		return raw, contentTypeJSON, nil
	}
}
