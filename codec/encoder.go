// Package codec converts resolved resources into transport-neutral
// ResourceState values. It is invoked on the success path of the blocking
// facade, after the pipeline has answered and before the caller's future is
// completed.
package codec

import (
	liverr "github.com/rohankumardubey/liveoak/errors"
	"github.com/rohankumardubey/liveoak/types"
)

// Encoder turns a resource into its state representation.
type Encoder interface {
	Encode(rctx *types.RequestContext, resource types.Resource) (*types.ResourceState, error)
}

// StateEncoder is the default encoder. It drives Readable.ReadProperties
// through a property sink, encodes nested Resource property values one level
// deep, and expands container members when the request context asks for them.
type StateEncoder struct{}

// NewStateEncoder creates the default encoder.
func NewStateEncoder() *StateEncoder { return &StateEncoder{} }

// Encode implements Encoder.
func (e *StateEncoder) Encode(rctx *types.RequestContext, resource types.Resource) (*types.ResourceState, error) {
	if resource == nil {
		return nil, &liverr.ProcessingError{Message: "cannot encode nil resource"}
	}
	return e.encode(rctx, resource, true)
}

func (e *StateEncoder) encode(rctx *types.RequestContext, resource types.Resource, expand bool) (*types.ResourceState, error) {
	state := types.NewState(resource.ID())

	if readable, ok := resource.(types.Readable); ok {
		sink := &propertySink{encoder: e, rctx: rctx, state: state}
		if err := readable.ReadProperties(rctx, sink); err != nil {
			return nil, err
		}
		if sink.err != nil {
			return nil, sink.err
		}
	}

	if expand && rctx.ReturnsField(types.FieldMembers) {
		if lister, ok := resource.(types.MemberLister); ok {
			for _, member := range lister.Members(rctx) {
				memberState, err := e.encode(rctx, member, false)
				if err != nil {
					return nil, err
				}
				state.AddMember(memberState)
			}
		}
	}

	return state, nil
}

// propertySink collects properties into a state, encoding nested resources
// one level deep so property values never carry live Resource handles.
type propertySink struct {
	encoder *StateEncoder
	rctx    *types.RequestContext
	state   *types.ResourceState
	err     error
}

// Accept implements types.PropertySink.
func (s *propertySink) Accept(name string, value any) {
	if s.err != nil {
		return
	}
	if nested, ok := value.(types.Resource); ok {
		nestedState, err := s.encoder.encode(s.rctx, nested, false)
		if err != nil {
			s.err = err
			return
		}
		s.state.Put(name, nestedState)
		return
	}
	s.state.Put(name, value)
}
