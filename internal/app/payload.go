package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samvad-hq/responder-client/pkg/responder"
	"gopkg.in/yaml.v3"
)

// LoadArgs reads a payload file; the extension picks the decoder (.json, .yaml, .yml).
func LoadArgs(path string) (responder.Args, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("payload file path is empty")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payload file: %w", err)
	}
	return ParseArgs(raw, filepath.Ext(path))
}

// ParseArgs decodes a JSON or YAML object. With an empty ext every decoder is tried in turn.
func ParseArgs(data []byte, ext string) (responder.Args, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		ext string
		fn  func([]byte, any) error
	}{
		{ext: ".json", fn: json.Unmarshal},
		{ext: ".yaml", fn: yaml.Unmarshal},
		{ext: ".yml", fn: yaml.Unmarshal},
	}

	var errs []error
	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var v any
		if err := d.fn(data, &v); err != nil {
			errs = append(errs, fmt.Errorf("decode %s payload: %w", strings.TrimPrefix(d.ext, "."), err))
			continue
		}
		obj, ok := normalize(v).(map[string]any)
		if !ok {
			return nil, errors.New("payload must be an object")
		}
		return responder.Args(obj), nil
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("payload format %q not recognized (expected YAML or JSON)", ext)
	}
	return nil, errors.Join(errs...)
}

// normalize turns YAML's map[any]any (e.g. integer batch keys) into JSON-encodable map[string]any.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		for i := range t {
			t[i] = normalize(t[i])
		}
		return t
	default:
		return v
	}
}
