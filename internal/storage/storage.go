package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/samvad-hq/responder-client/internal/domain"
)

// Package storage provides the local change journal.

// Journal keeps a time-bounded record of mutating API calls.
type Journal interface {
	Close() error
	// Record stores change and returns it stamped with its sequence and time.
	Record(change domain.Change) (domain.Change, error)
	// Recent returns up to limit unexpired changes, newest first. limit <= 0 means all.
	Recent(limit int) ([]domain.Change, error)
}

// Options controls retention characteristics for concrete journal implementations.
type Options struct {
	TTL             time.Duration
	CleanupInterval time.Duration
}

const (
	defaultTTL             = 30 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewJournal creates the configured journal backend.
func NewJournal(typ, path string, opts Options) (Journal, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopJournal{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt journal requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported journal type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopJournal struct{}

func (noopJournal) Close() error                        { return nil }
func (noopJournal) Recent(int) ([]domain.Change, error) { return nil, nil }

func (noopJournal) Record(c domain.Change) (domain.Change, error) {
	if c.At.IsZero() {
		c.At = time.Now().UTC()
	}
	return c, nil
}
