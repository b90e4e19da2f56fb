package connector

import (
	"sync"

	"github.com/rohankumardubey/liveoak/types"
)

// correlationTable maps outstanding request identities to their completion
// handlers. It is the connector's only shared mutable state. The remove
// operation is the concurrency-safety mechanism: an entry leaves the table
// atomically with the decision to invoke it, so a handler can never fire
// twice, and invocation itself happens outside the lock.
type correlationTable struct {
	mu       sync.Mutex
	handlers map[types.RequestID]Handler
}

func newCorrelationTable() *correlationTable {
	return &correlationTable{handlers: map[types.RequestID]Handler{}}
}

// put registers a handler for id. At most one entry per identity can exist;
// identities are fresh per submission, so collisions cannot happen through
// the public API.
func (t *correlationTable) put(id types.RequestID, handler Handler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handlers[id] = handler
}

// remove atomically looks up and deletes the handler for id.
func (t *correlationTable) remove(id types.RequestID) (Handler, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	handler, ok := t.handlers[id]
	if ok {
		delete(t.handlers, id)
	}
	return handler, ok
}

// size returns the number of outstanding entries.
func (t *correlationTable) size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.handlers)
}
