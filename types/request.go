package types

import "github.com/google/uuid"

// RequestID is the opaque identity correlating a response back to its
// request. It is fresh per submission: two requests are never equal even when
// logically identical.
type RequestID = uuid.UUID

// ResourceRequest is an immutable request travelling forward through the
// pipeline. Construct via NewRequest; the zero value is not valid.
type ResourceRequest struct {
	id      RequestID
	reqType RequestType
	path    ResourcePath
	rctx    *RequestContext
	state   *ResourceState
}

// NewRequest builds a request with a fresh identity. state may be nil for
// READ and DELETE.
func NewRequest(reqType RequestType, path string, rctx *RequestContext, state *ResourceState) *ResourceRequest {
	if rctx == nil {
		rctx = NewRequestContext(nil)
	}
	return &ResourceRequest{
		id:      uuid.New(),
		reqType: reqType,
		path:    ParsePath(path),
		rctx:    rctx,
		state:   state,
	}
}

// ID returns the request's correlation identity.
func (r *ResourceRequest) ID() RequestID { return r.id }

// Type returns the operation kind.
func (r *ResourceRequest) Type() RequestType { return r.reqType }

// Path returns the target resource path.
func (r *ResourceRequest) Path() ResourcePath { return r.path }

// Context returns the caller's request context, never nil.
func (r *ResourceRequest) Context() *RequestContext { return r.rctx }

// State returns the inbound state payload, nil when the operation carries
// none.
func (r *ResourceRequest) State() *ResourceState { return r.state }
