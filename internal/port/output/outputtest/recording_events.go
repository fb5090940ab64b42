package outputtest

import (
	"context"
	"sync"

	"github.com/cashflow/mcp-gateway/internal/core"
)

// RecordingEvents is a DispatchEvents that keeps published events in memory
type RecordingEvents struct {
	mu     sync.Mutex
	events []core.DispatchEvent

	// Err is returned from every publish when set
	Err error
}

func (r *RecordingEvents) PublishDispatchEvent(_ context.Context, event core.DispatchEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.Err
}

func (r *RecordingEvents) Close() error { return nil }

// Events returns a copy of the published events
func (r *RecordingEvents) Events() []core.DispatchEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]core.DispatchEvent(nil), r.events...)
}
