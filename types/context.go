package types

import "context"

// FieldAll is the ReturnFields wildcard requesting every field, including
// expanded members.
const FieldAll = "*"

// FieldMembers requests member expansion when encoding container resources.
const FieldMembers = "members"

// RequestContext carries per-request caller context: cancellation, field
// expansion hints, and free-form attributes (auth principal, tenant, and the
// like). It travels with the request through the pipeline untouched.
type RequestContext struct {
	ctx          context.Context
	returnFields []string
	attributes   map[string]any
}

// NewRequestContext creates a request context bound to ctx. A nil ctx is
// treated as context.Background.
func NewRequestContext(ctx context.Context) *RequestContext {
	if ctx == nil {
		ctx = context.Background()
	}
	return &RequestContext{ctx: ctx, attributes: map[string]any{}}
}

// Context returns the underlying context.Context, never nil.
func (rc *RequestContext) Context() context.Context {
	if rc == nil || rc.ctx == nil {
		return context.Background()
	}
	return rc.ctx
}

// WithReturnFields sets the fields the caller wants returned. It returns rc
// for chaining during construction.
func (rc *RequestContext) WithReturnFields(fields ...string) *RequestContext {
	rc.returnFields = append([]string(nil), fields...)
	return rc
}

// ReturnsField reports whether the caller asked for the named field, either
// explicitly or via the wildcard. With no fields configured, plain properties
// are returned but expansions are not.
func (rc *RequestContext) ReturnsField(name string) bool {
	if rc == nil {
		return false
	}
	for _, f := range rc.returnFields {
		if f == name || f == FieldAll {
			return true
		}
	}
	return false
}

// SetAttribute stores a free-form attribute on the context.
func (rc *RequestContext) SetAttribute(key string, value any) {
	if rc.attributes == nil {
		rc.attributes = map[string]any{}
	}
	rc.attributes[key] = value
}

// Attribute returns a previously stored attribute.
func (rc *RequestContext) Attribute(key string) (any, bool) {
	v, ok := rc.attributes[key]
	return v, ok
}
