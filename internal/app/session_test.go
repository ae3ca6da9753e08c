package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/samvad-hq/responder-client/internal/config"
	"github.com/samvad-hq/responder-client/internal/storage"
	"github.com/samvad-hq/responder-client/pkg/publishers"
	"github.com/samvad-hq/responder-client/pkg/responder"
)

type recordingPublisher struct {
	events []publishers.Event
	err    error
}

func (r *recordingPublisher) ID() string   { return "rec" }
func (r *recordingPublisher) Type() string { return "stub" }
func (r *recordingPublisher) Publish(_ context.Context, evt publishers.Event) error {
	r.events = append(r.events, evt)
	return r.err
}

type seenRequest struct {
	method string
	path   string
	body   string
}

func newSessionServer(t *testing.T, status int, reply string) (*httptest.Server, *[]seenRequest) {
	t.Helper()
	var seen []seenRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		seen = append(seen, seenRequest{method: r.Method, path: r.URL.Path, body: string(body)})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv, &seen
}

func newTestSession(t *testing.T, srv *httptest.Server, pub publishers.Publisher) *Session {
	t.Helper()
	journal, err := storage.NewJournal("bbolt", filepath.Join(t.TempDir(), "journal.db"), storage.Options{})
	if err != nil {
		t.Fatalf("NewJournal: %v", err)
	}
	client := responder.New("ck", "cs", "uk", "us", responder.WithBaseURL(srv.URL))
	var pubs []publishers.Publisher
	if pub != nil {
		pubs = append(pubs, pub)
	}
	s := newSession(client, journal, publishers.NewFanout(pubs), nil)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionRunJournalsAndPublishesMutations(t *testing.T) {
	srv, seen := newSessionServer(t, http.StatusOK, `{"ERRORS":[],"LIST_ID":7}`)
	pub := &recordingPublisher{}
	s := newTestSession(t, srv, pub)

	resp, err := s.Run(context.Background(), Operation{
		Name: OpCreateList,
		Args: responder.Args{"NAME": "try"},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if resp.Map()["LIST_ID"] != float64(7) {
		t.Fatalf("unexpected body %v", resp.Body)
	}
	if len(*seen) != 1 || (*seen)[0].method != http.MethodPost || (*seen)[0].path != "/v1.0/lists" {
		t.Fatalf("unexpected requests %+v", *seen)
	}

	changes, err := s.Recent(0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("expected one journaled change, got %d", len(changes))
	}
	if diff := cmp.Diff(map[string]any{"NAME": "try"}, changes[0].Request); diff != "" {
		t.Fatalf("journaled request mismatch (-want +got):\n%s", diff)
	}
	if changes[0].Operation != OpCreateList || changes[0].StatusCode != http.StatusOK {
		t.Fatalf("unexpected change %+v", changes[0])
	}

	if len(pub.events) != 1 {
		t.Fatalf("expected one published event, got %d", len(pub.events))
	}
	if pub.events[0].Source != EventSource || pub.events[0].Operation != OpCreateList {
		t.Fatalf("unexpected event %+v", pub.events[0])
	}
	if pub.events[0].Change.Seq != changes[0].Seq {
		t.Fatalf("published change seq %d, journaled %d", pub.events[0].Change.Seq, changes[0].Seq)
	}
}

func TestSessionRunSkipsReadsAndFailures(t *testing.T) {
	srv, _ := newSessionServer(t, http.StatusUnauthorized, `{"ERRORS":["bad token"]}`)
	pub := &recordingPublisher{}
	s := newTestSession(t, srv, pub)

	if _, err := s.Run(context.Background(), Operation{Name: OpGetLists}); err != nil {
		t.Fatalf("Run get_lists: %v", err)
	}
	resp, err := s.Run(context.Background(), Operation{Name: OpDeleteList, ListID: 3})
	if err != nil {
		t.Fatalf("non-2xx must not be an error: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized || len(resp.Errors()) != 1 {
		t.Fatalf("unexpected response %+v", resp)
	}

	changes, _ := s.Recent(0)
	if len(changes) != 0 || len(pub.events) != 0 {
		t.Fatalf("expected nothing recorded, got %d changes and %d events", len(changes), len(pub.events))
	}
}

func TestSessionRunKeepsResponseWhenPublishFails(t *testing.T) {
	srv, _ := newSessionServer(t, http.StatusOK, `{"SUCCESS":true}`)
	pub := &recordingPublisher{err: errors.New("sink down")}
	s := newTestSession(t, srv, pub)

	resp, err := s.Run(context.Background(), Operation{
		Name:   OpCreateSubscribers,
		ListID: 42,
		Args:   responder.Args{"0": map[string]any{"EMAIL": "a@b.co"}},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	changes, _ := s.Recent(1)
	if len(changes) != 1 || changes[0].ListID != 42 {
		t.Fatalf("expected the change to be journaled despite publish failure: %+v", changes)
	}
}

func TestSessionRunRejectsBadOperations(t *testing.T) {
	srv, seen := newSessionServer(t, http.StatusOK, `{}`)
	s := newTestSession(t, srv, nil)

	if _, err := s.Run(context.Background(), Operation{Name: "rename_list"}); err == nil {
		t.Fatalf("expected unknown operation error")
	}
	if _, err := s.Run(context.Background(), Operation{Name: OpGetSubscribers}); err == nil {
		t.Fatalf("expected missing list id error")
	}
	if len(*seen) != 0 {
		t.Fatalf("rejected operations must not reach the server")
	}
}

func TestNewSessionFromConfig(t *testing.T) {
	cfg := &config.Config{
		AppName:                "responder-client",
		BaseURL:                "http://localhost:1/",
		BodyEncoding:           "form",
		Timeout:                time.Second,
		JournalType:            "bbolt",
		JournalPath:            filepath.Join(t.TempDir(), "j.db"),
		JournalTTL:             time.Hour,
		JournalCleanupInterval: time.Hour,
	}
	s, err := NewSession(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	defer s.Close()
	if s.client.BaseURL() != "http://localhost:1" {
		t.Fatalf("unexpected base url %q", s.client.BaseURL())
	}
	if s.fanout.Size() != 0 {
		t.Fatalf("expected no publishers without a publishers file")
	}

	cfg.BodyEncoding = "xml"
	if _, err := NewSession(context.Background(), cfg, nil); err == nil {
		t.Fatalf("expected error for unknown body encoding")
	}
}
