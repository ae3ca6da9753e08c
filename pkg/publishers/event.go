package publishers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/samvad-hq/responder-client/internal/domain"
)

// Event is the envelope published for every applied change.
type Event struct {
	Source    string        `json:"source"`
	Operation string        `json:"operation"`
	ListID    int64         `json:"list_id,omitempty"`
	Change    domain.Change `json:"change"`
	EmittedAt time.Time     `json:"emitted_at"`
}

// NewEvent wraps change for publishing.
func NewEvent(source string, change domain.Change) Event {
	return Event{
		Source:    source,
		Operation: change.Operation,
		ListID:    change.ListID,
		Change:    change,
		EmittedAt: time.Now().UTC(),
	}
}

// encode renders the JSON body shared by every sink.
func (e Event) encode() ([]byte, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return payload, nil
}

// attributes are the routing keys sinks expose next to the body.
func (e Event) attributes() map[string]string {
	attrs := map[string]string{
		"operation": e.Operation,
		"source":    e.Source,
	}
	if e.ListID != 0 {
		attrs["list_id"] = strconv.FormatInt(e.ListID, 10)
	}
	return attrs
}

// groupKey orders events per list on FIFO sinks; list-level creates share one group.
func (e Event) groupKey() string {
	if e.ListID == 0 {
		return "lists"
	}
	return "list-" + strconv.FormatInt(e.ListID, 10)
}

// dedupKey identifies the change independently of when it was emitted.
func (e Event) dedupKey() string {
	if e.Change.Seq != 0 {
		return fmt.Sprintf("%s-%d", e.Source, e.Change.Seq)
	}
	raw, _ := json.Marshal(e.Change)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
