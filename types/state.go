package types

import "encoding/json"

// ResourceState is the transport-neutral representation of a resource's
// properties, as produced by an encoder or supplied by a caller on CREATE and
// UPDATE. Property insertion order is preserved.
type ResourceState struct {
	id      string
	keys    []string
	props   map[string]any
	members []*ResourceState
}

// NewState creates an empty state with the given resource id. The id may be
// empty for a CREATE where the target container assigns one.
func NewState(id string) *ResourceState {
	return &ResourceState{id: id, props: map[string]any{}}
}

// ID returns the resource id this state describes.
func (s *ResourceState) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// SetID sets the resource id.
func (s *ResourceState) SetID(id string) { s.id = id }

// Put sets a property, preserving first-insertion order across overwrites.
func (s *ResourceState) Put(name string, value any) {
	if _, exists := s.props[name]; !exists {
		s.keys = append(s.keys, name)
	}
	s.props[name] = value
}

// Get returns a property value.
func (s *ResourceState) Get(name string) (any, bool) {
	v, ok := s.props[name]
	return v, ok
}

// PropertyNames returns the property names in insertion order.
func (s *ResourceState) PropertyNames() []string {
	return append([]string(nil), s.keys...)
}

// Clone returns an independent copy of the state: mutating the copy's id,
// properties, or member list leaves the original untouched. Property values
// themselves are shared.
func (s *ResourceState) Clone() *ResourceState {
	if s == nil {
		return nil
	}
	c := &ResourceState{
		id:      s.id,
		keys:    append([]string(nil), s.keys...),
		props:   make(map[string]any, len(s.props)),
		members: append([]*ResourceState(nil), s.members...),
	}
	for k, v := range s.props {
		c.props[k] = v
	}
	return c
}

// AddMember appends a nested member state, used when a container resource is
// encoded with member expansion.
func (s *ResourceState) AddMember(m *ResourceState) {
	s.members = append(s.members, m)
}

// Members returns the nested member states.
func (s *ResourceState) Members() []*ResourceState {
	return append([]*ResourceState(nil), s.members...)
}

// MarshalJSON renders the state as a JSON object. Nested ResourceState
// property values and members are rendered recursively.
func (s *ResourceState) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.props)+2)
	if s.id != "" {
		out["id"] = s.id
	}
	for k, v := range s.props {
		out[k] = v
	}
	if len(s.members) > 0 {
		out["members"] = s.members
	}
	return json.Marshal(out)
}
