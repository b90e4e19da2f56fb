// Package tree provides a thread-safe in-memory resource tree implementing
// every capability interface. It serves as the default dispatch target and
// as the fixture for connector and pipeline tests.
package tree

import (
	"sort"
	"strconv"
	"sync"

	liverr "github.com/rohankumardubey/liveoak/errors"
	"github.com/rohankumardubey/liveoak/types"
)

// InMemoryResource is a container resource holding properties and child
// members in memory. All operations are safe for concurrent use.
type InMemoryResource struct {
	id     string
	parent *InMemoryResource

	mu      sync.RWMutex
	props   map[string]any
	members map[string]*InMemoryResource
}

// NewRoot creates an empty tree root.
func NewRoot() *InMemoryResource {
	return newResource("", nil)
}

func newResource(id string, parent *InMemoryResource) *InMemoryResource {
	return &InMemoryResource{
		id:      id,
		parent:  parent,
		props:   map[string]any{},
		members: map[string]*InMemoryResource{},
	}
}

// ID implements types.Resource.
func (r *InMemoryResource) ID() string { return r.id }

// SetProperty sets a property directly, outside any request flow.
func (r *InMemoryResource) SetProperty(name string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.props[name] = value
}

// ReadProperties implements types.Readable. Properties are emitted in sorted
// name order for stable encodings.
func (r *InMemoryResource) ReadProperties(_ *types.RequestContext, sink types.PropertySink) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.props))
	for name := range r.props {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sink.Accept(name, r.props[name])
	}
	return nil
}

// CreateMember implements types.Creatable. An empty state id gets a
// generated ordinal id. Creating over an existing id fails with
// AlreadyExistsError.
func (r *InMemoryResource) CreateMember(_ *types.RequestContext, state *types.ResourceState) (types.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if state == nil {
		state = types.NewState("")
	}

	id := state.ID()
	if id == "" {
		id = r.generateID()
	}

	if _, exists := r.members[id]; exists {
		return nil, &liverr.AlreadyExistsError{ID: id}
	}

	member := newResource(id, r)
	for _, name := range state.PropertyNames() {
		value, _ := state.Get(name)
		member.props[name] = value
	}
	r.members[id] = member
	return member, nil
}

// generateID returns the first free ordinal id. Caller holds the lock.
func (r *InMemoryResource) generateID() string {
	for i := len(r.members) + 1; ; i++ {
		id := "r" + strconv.Itoa(i)
		if _, exists := r.members[id]; !exists {
			return id
		}
	}
}

// UpdateProperties implements types.Updatable. The new state replaces all
// existing properties.
func (r *InMemoryResource) UpdateProperties(_ *types.RequestContext, state *types.ResourceState) (types.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if state == nil {
		state = types.NewState(r.id)
	}

	r.props = map[string]any{}
	for _, name := range state.PropertyNames() {
		value, _ := state.Get(name)
		r.props[name] = value
	}
	return r, nil
}

// Delete implements types.Deletable. Deleting the root is not supported.
func (r *InMemoryResource) Delete(_ *types.RequestContext) error {
	if r.parent == nil {
		return &liverr.NotSupportedError{Type: types.RequestDelete, Path: "/"}
	}

	r.parent.mu.Lock()
	defer r.parent.mu.Unlock()
	delete(r.parent.members, r.id)
	return nil
}

// Member implements types.MemberResolver.
func (r *InMemoryResource) Member(_ *types.RequestContext, id string) (types.Resource, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	member, ok := r.members[id]
	return member, ok
}

// Members implements types.MemberLister, in sorted id order.
func (r *InMemoryResource) Members(_ *types.RequestContext) []types.Resource {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.members))
	for id := range r.members {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]types.Resource, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.members[id])
	}
	return out
}
