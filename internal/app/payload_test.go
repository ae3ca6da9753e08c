package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/samvad-hq/responder-client/pkg/responder"
)

func TestParseArgsJSONAndYAML(t *testing.T) {
	want := responder.Args{
		"0": map[string]any{"EMAIL": "a@b.co", "NAME": "Dana"},
	}

	got, err := ParseArgs([]byte(`{"0":{"EMAIL":"a@b.co","NAME":"Dana"}}`), "")
	if err != nil {
		t.Fatalf("ParseArgs json: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}

	got, err = ParseArgs([]byte("0:\n  EMAIL: a@b.co\n  NAME: Dana\n"), "")
	if err != nil {
		t.Fatalf("ParseArgs yaml: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("yaml mismatch (-want +got):\n%s", diff)
	}
}

func TestParseArgsRejectsNonObjects(t *testing.T) {
	if _, err := ParseArgs([]byte(`[1,2]`), ".json"); err == nil {
		t.Fatalf("expected error for array payload")
	}
	if _, err := ParseArgs([]byte(`{}`), ".toml"); err == nil {
		t.Fatalf("expected error for unknown extension")
	}
	if _, err := ParseArgs([]byte(`{bad`), ".json"); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestLoadArgsByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fields.yml")
	if err := os.WriteFile(path, []byte("NAME: text\nAGE: 3\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := LoadArgs(path)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if diff := cmp.Diff(responder.Args{"NAME": "text", "AGE": 3}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	if _, err := LoadArgs(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
