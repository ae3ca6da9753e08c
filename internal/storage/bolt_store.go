package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/samvad-hq/responder-client/internal/domain"
	bolt "go.etcd.io/bbolt"
)

const (
	changeBucket     = "changes"
	expiryValueBytes = 8
)

// boltJournal implements a Journal backed by BoltDB. Keys are the bucket
// sequence (big-endian) so cursor order is insertion order; values are an
// 8-byte expiry followed by the JSON-encoded change.
type boltJournal struct {
	db              *bolt.DB
	cleanupMu       sync.Mutex
	lastCleanup     atomic.Int64
	ttl             time.Duration
	cleanupInterval time.Duration
	now             func() time.Time
}

// openBolt initializes a BoltDB-backed Journal.
func openBolt(path string, opts Options) (Journal, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(changeBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	j := &boltJournal{
		db:              db,
		ttl:             opts.TTL,
		cleanupInterval: opts.CleanupInterval,
		now:             time.Now,
	}
	j.lastCleanup.Store(j.now().Unix())
	return j, nil
}

// Close closes the BoltDB journal.
func (b *boltJournal) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Record appends a change with an expiry of now+TTL.
func (b *boltJournal) Record(change domain.Change) (domain.Change, error) {
	if b == nil || b.db == nil {
		return change, nil
	}

	now := b.now()
	if err := b.maybeCleanupExpired(now); err != nil {
		return change, err
	}
	if change.At.IsZero() {
		change.At = now.UTC()
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(changeBucket))
		if bucket == nil {
			return fmt.Errorf("change bucket missing")
		}
		seq, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("next sequence: %w", err)
		}
		change.Seq = seq

		payload, err := json.Marshal(change)
		if err != nil {
			return fmt.Errorf("marshal change: %w", err)
		}
		buf := make([]byte, expiryValueBytes, expiryValueBytes+len(payload))
		binary.BigEndian.PutUint64(buf, uint64(now.Add(b.ttl).Unix()))
		buf = append(buf, payload...)

		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)
		return bucket.Put(key, buf)
	})
	if err != nil {
		change.Seq = 0
	}
	return change, err
}

// Recent returns unexpired changes, newest first.
func (b *boltJournal) Recent(limit int) ([]domain.Change, error) {
	if b == nil || b.db == nil {
		return nil, nil
	}

	now := b.now()
	if err := b.maybeCleanupExpired(now); err != nil {
		return nil, err
	}

	var out []domain.Change
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(changeBucket))
		if bucket == nil {
			return fmt.Errorf("change bucket missing")
		}

		cursor := bucket.Cursor()
		for k, v := cursor.Last(); k != nil; k, v = cursor.Prev() {
			// Keys are insertion-ordered and TTL is fixed, so everything older is expired too.
			if !live(v, now) {
				break
			}
			var change domain.Change
			if err := json.Unmarshal(v[expiryValueBytes:], &change); err != nil {
				return fmt.Errorf("decode change %d: %w", binary.BigEndian.Uint64(k), err)
			}
			out = append(out, change)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
		return nil
	})
	return out, err
}

// maybeCleanupExpired drops the expired prefix of the bucket at most once per cleanup interval.
func (b *boltJournal) maybeCleanupExpired(now time.Time) error {
	if b == nil || b.db == nil {
		return nil
	}
	due := func() bool {
		return now.Sub(time.Unix(b.lastCleanup.Load(), 0)) >= b.cleanupInterval
	}
	if !due() {
		return nil
	}

	b.cleanupMu.Lock()
	defer b.cleanupMu.Unlock()
	if !due() {
		return nil
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(changeBucket))
		if bucket == nil {
			return fmt.Errorf("change bucket missing")
		}
		cursor := bucket.Cursor()
		for k, v := cursor.First(); k != nil && !live(v, now); k, v = cursor.First() {
			if err := cursor.Delete(); err != nil {
				return fmt.Errorf("delete change %d: %w", binary.BigEndian.Uint64(k), err)
			}
		}
		return nil
	})
	if err == nil {
		b.lastCleanup.Store(now.Unix())
	}
	return err
}

// live reports whether a stored value's expiry header is still ahead of now.
func live(value []byte, now time.Time) bool {
	if len(value) < expiryValueBytes {
		return false
	}
	expiry := int64(binary.BigEndian.Uint64(value[:expiryValueBytes]))
	return expiry > now.Unix()
}
