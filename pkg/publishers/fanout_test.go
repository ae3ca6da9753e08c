package publishers

import (
	"context"
	"errors"
	"testing"
)

type stubPublisher struct {
	id     string
	typ    string
	err    error
	calls  int
	closed bool
}

func (s *stubPublisher) ID() string   { return s.id }
func (s *stubPublisher) Type() string { return s.typ }
func (s *stubPublisher) Publish(context.Context, Event) error {
	s.calls++
	return s.err
}

type closingPublisher struct{ stubPublisher }

func (c *closingPublisher) Close() error {
	c.closed = true
	return nil
}

func TestFanoutPublishAggregatesErrors(t *testing.T) {
	fanout := NewFanout([]Publisher{
		&stubPublisher{id: "ok", typ: TypeHTTP},
		&stubPublisher{id: "bad", typ: TypeHTTP, err: errors.New("failed")},
	})

	count, err := fanout.Publish(context.Background(), Event{Operation: "create_list"})
	if count != 1 {
		t.Fatalf("expected 1 success, got %d", count)
	}
	if err == nil {
		t.Fatalf("expected aggregated error")
	}
}

func TestRegistryFanoutRoutesByOperation(t *testing.T) {
	built := map[string]*stubPublisher{}
	reg := NewRegistry(map[string]Builder{
		"stub": func(_ context.Context, cfg SinkConfig, _ Logger) (Publisher, error) {
			p := &stubPublisher{id: cfg.ID, typ: "stub"}
			built[cfg.ID] = p
			return p, nil
		},
	})

	fanout, err := reg.Fanout(context.Background(), []SinkConfig{
		{ID: "all", Type: "stub"},
		{ID: "lists", Type: "STUB", Operations: []string{"create_list"}},
	}, nil)
	if err != nil {
		t.Fatalf("Fanout: %v", err)
	}

	n, err := fanout.Publish(context.Background(), Event{Operation: "create_subscribers"})
	if err != nil || n != 1 {
		t.Fatalf("Publish = %d, %v", n, err)
	}
	n, _ = fanout.Publish(context.Background(), Event{Operation: "create_list"})
	if n != 2 {
		t.Fatalf("expected both sinks for create_list, got %d", n)
	}
	if built["all"].calls != 2 || built["lists"].calls != 1 {
		t.Fatalf("unexpected deliveries all=%d lists=%d", built["all"].calls, built["lists"].calls)
	}
}

func TestRegistryFanoutClosesOnBuildFailure(t *testing.T) {
	first := &closingPublisher{stubPublisher{id: "first", typ: "closer"}}
	reg := NewRegistry(map[string]Builder{
		"closer": func(context.Context, SinkConfig, Logger) (Publisher, error) { return first, nil },
	})

	_, err := reg.Fanout(context.Background(), []SinkConfig{
		{ID: "first", Type: "closer"},
		{ID: "second", Type: "missing"},
	}, nil)
	if err == nil {
		t.Fatalf("expected error for unregistered type")
	}
	if !first.closed {
		t.Fatalf("expected built sinks to be closed after failure")
	}
}

func TestDefaultRegistryBuildsWebhook(t *testing.T) {
	pub, err := DefaultRegistry().Build(context.Background(), SinkConfig{
		ID: "hook", Type: TypeHTTP, HTTP: &HTTPConfig{URL: "https://example.com", Method: "POST", TimeoutSeconds: 1},
	}, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if pub.Type() != TypeHTTP || pub.ID() != "hook" {
		t.Fatalf("unexpected publisher %s/%s", pub.Type(), pub.ID())
	}
}

func TestFanoutCloseReleasesClosers(t *testing.T) {
	closer := &closingPublisher{stubPublisher{id: "gcp", typ: TypePubSub}}
	fanout := NewFanout([]Publisher{&stubPublisher{id: "plain", typ: TypeHTTP}, closer, nil})

	if fanout.Size() != 2 {
		t.Fatalf("expected nil publishers to be dropped, size=%d", fanout.Size())
	}
	if err := fanout.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !closer.closed {
		t.Fatalf("expected closer publisher to be closed")
	}
}
