package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/samvad-hq/responder-client/internal/config"
	"github.com/samvad-hq/responder-client/internal/domain"
	"github.com/samvad-hq/responder-client/internal/logger"
	"github.com/samvad-hq/responder-client/internal/storage"
	"github.com/samvad-hq/responder-client/pkg/publishers"
	"github.com/samvad-hq/responder-client/pkg/responder"
)

// EventSource tags change events emitted by this runtime.
const EventSource = "responder-client"

// Session is the CLI runtime. It runs operations against the Responder API,
// journals successful mutations locally and fans them out to publishers.
type Session struct {
	client  *responder.Client
	journal storage.Journal
	fanout  *publishers.Fanout
	log     logger.Logger
}

// NewSession builds a session from config.
func NewSession(ctx context.Context, cfg *config.Config, log logger.Logger) (*Session, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	enc, err := responder.ParseEncoding(cfg.BodyEncoding)
	if err != nil {
		return nil, err
	}
	client := responder.New(cfg.ConsumerKey, cfg.ConsumerSecret, cfg.UserKey, cfg.UserSecret,
		responder.WithBaseURL(cfg.BaseURL),
		responder.WithTimeout(cfg.Timeout),
		responder.WithUserAgent(cfg.AppName),
		responder.WithBodyEncoding(enc),
		responder.WithLogger(log),
	)

	journal, err := storage.NewJournal(cfg.JournalType, cfg.JournalPath, storage.Options{
		TTL:             cfg.JournalTTL,
		CleanupInterval: cfg.JournalCleanupInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("init journal: %w", err)
	}
	log.DebugObj("journal initialized", "journal_config", map[string]any{
		"type":                     cfg.JournalType,
		"path":                     cfg.JournalPath,
		"ttl_seconds":              int(cfg.JournalTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.JournalCleanupInterval.Seconds()),
	})

	fanout, err := buildFanout(ctx, cfg.PublishersFile, log)
	if err != nil {
		journal.Close()
		return nil, err
	}

	return newSession(client, journal, fanout, log), nil
}

func newSession(client *responder.Client, journal storage.Journal, fanout *publishers.Fanout, log logger.Logger) *Session {
	if journal == nil {
		journal, _ = storage.NewJournal("none", "", storage.Options{})
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &Session{client: client, journal: journal, fanout: fanout, log: log}
}

// buildFanout loads the publishers file. No file means no publishers.
func buildFanout(ctx context.Context, path string, log logger.Logger) (*publishers.Fanout, error) {
	if path == "" {
		return publishers.NewFanout(nil), nil
	}
	cfg, err := publishers.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("load publishers: %w", err)
	}
	enabled := cfg.Enabled()
	fanout, err := publishers.DefaultRegistry().Fanout(ctx, enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	summaries := make([]map[string]any, 0, len(enabled))
	for _, sink := range enabled {
		summaries = append(summaries, map[string]any{
			"id":         sink.ID,
			"type":       sink.Type,
			"operations": sink.Operations,
		})
	}
	log.DebugObj("publishers loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})
	return fanout, nil
}

// Run executes one operation. The response is returned even when the
// service answered with a non-2xx status; only 2xx mutations are journaled
// and published.
func (s *Session) Run(ctx context.Context, op Operation) (*responder.Response, error) {
	if s == nil || s.client == nil {
		return nil, fmt.Errorf("session is not initialized")
	}
	spec, err := lookupOperation(op)
	if err != nil {
		return nil, err
	}

	resp, err := spec.call(ctx, s.client, op)
	if err != nil {
		return nil, err
	}
	if !spec.mutating || resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, nil
	}

	change := domain.Change{
		Operation:  op.Name,
		ListID:     op.ListID,
		Request:    op.Args,
		StatusCode: resp.StatusCode,
		Response:   resp.Body,
	}
	if resp.IsRaw() {
		change.Response = resp.Raw
	}
	stamped, err := s.journal.Record(change)
	if err != nil {
		s.log.WarnObj("journal record failed", "error", err.Error())
	} else {
		change = stamped
	}
	delivered, err := s.fanout.Publish(ctx, publishers.NewEvent(EventSource, change))
	if err != nil {
		s.log.ErrorObj("publish change failed", "publish_error", map[string]any{
			"operation": op.Name,
			"delivered": delivered,
			"error":     err.Error(),
		})
	}
	s.log.InfoObj("change applied", "change", map[string]any{
		"operation":   op.Name,
		"list_id":     op.ListID,
		"seq":         change.Seq,
		"status_code": resp.StatusCode,
		"delivered":   delivered,
	})
	return resp, nil
}

// Recent returns journaled changes, newest first.
func (s *Session) Recent(limit int) ([]domain.Change, error) {
	if s == nil || s.journal == nil {
		return nil, nil
	}
	return s.journal.Recent(limit)
}

// Close releases the journal and publisher connections.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.journal != nil {
		if err := s.journal.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close journal: %w", err))
		}
	}
	if err := s.fanout.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
