package publishers

import (
	"context"
	"errors"
	"fmt"
	"io"
)

type route struct {
	pub     Publisher
	accepts func(operation string) bool
}

// Fanout delivers each event to every sink subscribed to its operation.
type Fanout struct {
	routes []route
}

// NewFanout subscribes pubs to all operations. Nil entries are skipped.
func NewFanout(pubs []Publisher) *Fanout {
	f := &Fanout{routes: make([]route, 0, len(pubs))}
	for _, p := range pubs {
		if p != nil {
			f.routes = append(f.routes, route{pub: p})
		}
	}
	return f
}

// Publish returns how many sinks accepted the event. Failures of
// individual sinks are joined; delivery to the rest continues.
func (f *Fanout) Publish(ctx context.Context, evt Event) (int, error) {
	if f == nil {
		return 0, nil
	}

	var errs []error
	delivered := 0
	for _, r := range f.routes {
		if r.accepts != nil && !r.accepts(evt.Operation) {
			continue
		}
		if err := r.pub.Publish(ctx, evt); err != nil {
			errs = append(errs, fmt.Errorf("%s publisher[%s]: %w", r.pub.Type(), r.pub.ID(), err))
			continue
		}
		delivered++
	}
	return delivered, errors.Join(errs...)
}

// Size returns the number of sinks.
func (f *Fanout) Size() int {
	if f == nil {
		return 0
	}
	return len(f.routes)
}

// Close releases sinks that hold connections.
func (f *Fanout) Close() error {
	if f == nil {
		return nil
	}
	var errs []error
	for _, r := range f.routes {
		c, ok := r.pub.(io.Closer)
		if !ok {
			continue
		}
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s publisher[%s]: %w", r.pub.Type(), r.pub.ID(), err))
		}
	}
	return errors.Join(errs...)
}
