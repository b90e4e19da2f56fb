package types

// ResourceResponse is the single terminal outcome of a request, travelling
// backward through the pipeline to the connector. It is a tagged value: the
// Type decides once, at the pipeline tail, whether this is a success carrying
// a resource or an error carrying a structured kind.
type ResourceResponse struct {
	inReplyTo RequestID
	respType  ResponseType
	request   *ResourceRequest
	resource  Resource
	errKind   ErrorKind
	message   string
	cause     error
}

// NewResponse builds a success response for req carrying the resulting
// resource.
func NewResponse(req *ResourceRequest, respType ResponseType, resource Resource) *ResourceResponse {
	return &ResourceResponse{
		inReplyTo: req.ID(),
		respType:  respType,
		request:   req,
		resource:  resource,
	}
}

// NewErrorResponse builds an error response for req. message and cause are
// optional and carried through to classification.
func NewErrorResponse(req *ResourceRequest, kind ErrorKind, message string, cause error) *ResourceResponse {
	return &ResourceResponse{
		inReplyTo: req.ID(),
		respType:  ResponseError,
		request:   req,
		errKind:   kind,
		message:   message,
		cause:     cause,
	}
}

// InReplyTo returns the identity of the request this response answers.
func (r *ResourceResponse) InReplyTo() RequestID { return r.inReplyTo }

// Type returns the outcome kind.
func (r *ResourceResponse) Type() ResponseType { return r.respType }

// Request returns the originating request.
func (r *ResourceResponse) Request() *ResourceRequest { return r.request }

// Resource returns the result resource on success, nil on error.
func (r *ResourceResponse) Resource() Resource { return r.resource }

// IsError reports whether this is an error outcome.
func (r *ResourceResponse) IsError() bool { return r.respType == ResponseError }

// ErrorKind returns the structured error kind; meaningful only when IsError.
func (r *ResourceResponse) ErrorKind() ErrorKind { return r.errKind }

// Message returns the optional error message.
func (r *ResourceResponse) Message() string { return r.message }

// Cause returns the optional underlying error.
func (r *ResourceResponse) Cause() error { return r.cause }
