package types

// Resource is an addressable entity in the data tree. Implementations opt in
// to operations by implementing the capability interfaces below; the dispatch
// stage reports the matching *_NOT_SUPPORTED error kind for a capability a
// resource lacks.
type Resource interface {
	ID() string
}

// PropertySink receives the properties of a resource as it is read. Encoders
// supply the sink; resources drive it.
type PropertySink interface {
	Accept(name string, value any)
}

// Readable is a resource whose properties can be read.
type Readable interface {
	Resource
	ReadProperties(rctx *RequestContext, sink PropertySink) error
}

// Creatable is a container resource that can create child members.
type Creatable interface {
	Resource
	CreateMember(rctx *RequestContext, state *ResourceState) (Resource, error)
}

// Updatable is a resource whose properties can be replaced.
type Updatable interface {
	Resource
	UpdateProperties(rctx *RequestContext, state *ResourceState) (Resource, error)
}

// Deletable is a resource that can be removed from its parent.
type Deletable interface {
	Resource
	Delete(rctx *RequestContext) error
}

// MemberResolver is a container resource that can resolve a direct child by
// id. Path resolution walks MemberResolvers segment by segment.
type MemberResolver interface {
	Resource
	Member(rctx *RequestContext, id string) (Resource, bool)
}

// MemberLister is a container resource that can enumerate its direct
// children, used by encoders when the caller requests member expansion.
type MemberLister interface {
	Resource
	Members(rctx *RequestContext) []Resource
}
