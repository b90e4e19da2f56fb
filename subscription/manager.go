// Package subscription provides fan-out of resource change events to
// registered subscribers. Subscriptions are keyed by path prefix: a
// subscriber at /widgets sees changes to /widgets/w1 and below.
package subscription

import (
	"log/slog"
	"sync"

	"github.com/rohankumardubey/liveoak/types"
)

// Event describes one committed change to the resource tree.
type Event struct {
	Type  types.ResponseType
	Path  types.ResourcePath
	State *types.ResourceState
}

// Subscriber receives change events. OnEvent must not block; slow consumers
// should hand off internally.
type Subscriber interface {
	OnEvent(event Event)
}

// SubscriberFunc adapts a function to the Subscriber interface.
type SubscriberFunc func(event Event)

// OnEvent implements Subscriber.
func (f SubscriberFunc) OnEvent(event Event) { f(event) }

type registration struct {
	id         int
	prefix     types.ResourcePath
	subscriber Subscriber
}

// Manager tracks subscriptions and fans events out to matching subscribers.
type Manager struct {
	mu     sync.RWMutex
	nextID int
	subs   []registration
	logger *slog.Logger
}

// NewManager creates an empty subscription manager.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{logger: logger}
}

// Subscribe registers sub for events at or below prefix and returns a token
// for Unsubscribe.
func (m *Manager) Subscribe(prefix string, sub Subscriber) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.subs = append(m.subs, registration{
		id:         m.nextID,
		prefix:     types.ParsePath(prefix),
		subscriber: sub,
	})
	return m.nextID
}

// Unsubscribe removes a subscription by token. It reports whether the token
// was known.
func (m *Manager) Unsubscribe(token int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, reg := range m.subs {
		if reg.id == token {
			m.subs = append(m.subs[:i], m.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Notify delivers event to every subscriber whose prefix covers event.Path.
// Delivery order between subscribers is unspecified.
func (m *Manager) Notify(event Event) {
	m.mu.RLock()
	matched := make([]Subscriber, 0, len(m.subs))
	for _, reg := range m.subs {
		if event.Path.HasPrefix(reg.prefix) {
			matched = append(matched, reg.subscriber)
		}
	}
	m.mu.RUnlock()

	for _, sub := range matched {
		sub.OnEvent(event)
	}
}
