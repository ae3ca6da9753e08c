package publishers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/samvad-hq/responder-client/internal/domain"
)

func TestWebhookSinkPostsEvent(t *testing.T) {
	var received Event
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if got := r.Header.Get("X-Test"); got != "1" {
			t.Errorf("configured header = %q", got)
		}
		if got := r.Header.Get("X-Responder-Operation"); got != "create_list" {
			t.Errorf("operation header = %q", got)
		}
		if got := r.Header.Get("X-Responder-List-Id"); got != "9" {
			t.Errorf("list id header = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode event: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	cfg := SinkConfig{
		ID:   "hook",
		Type: TypeHTTP,
		HTTP: &HTTPConfig{URL: srv.URL, Method: "put", Headers: map[string]string{" X-Test ": "1"}},
	}.normalized()
	pub, err := newWebhookSink(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("newWebhookSink: %v", err)
	}

	if err := pub.Publish(context.Background(), NewEvent("test", domain.Change{Operation: "create_list", ListID: 9})); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if received.Operation != "create_list" || received.ListID != 9 {
		t.Fatalf("server did not receive the event: %+v", received)
	}
}

func TestWebhookSinkErrorOnNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer srv.Close()

	cfg := SinkConfig{ID: "hook", Type: TypeHTTP, HTTP: &HTTPConfig{URL: srv.URL}}.normalized()
	pub, err := newWebhookSink(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("newWebhookSink: %v", err)
	}
	if err := pub.Publish(context.Background(), Event{Operation: "delete_list"}); err == nil {
		t.Fatalf("expected error on non-2xx response")
	}
}

func TestAttributeHeader(t *testing.T) {
	if got := attributeHeader("list_id"); got != "X-Responder-List-Id" {
		t.Fatalf("attributeHeader = %q", got)
	}
}
