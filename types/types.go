// Package types contains the shared domain types used across the liveoak
// connector: request/response values, paths, state, and the resource
// capability interfaces. It is the vocabulary every other package speaks.
package types

import (
	"fmt"
)

// RequestType identifies the operation a request performs against a resource.
type RequestType string

// Request type constants
const (
	RequestCreate RequestType = "CREATE"
	RequestRead   RequestType = "READ"
	RequestUpdate RequestType = "UPDATE"
	RequestDelete RequestType = "DELETE"
)

// Validate ensures the request type is one of the known operations.
func (t RequestType) Validate() error {
	switch t {
	case RequestCreate, RequestRead, RequestUpdate, RequestDelete:
		return nil
	default:
		return fmt.Errorf("invalid request type: %q", string(t))
	}
}

// String returns the string form of the request type.
func (t RequestType) String() string { return string(t) }

// ExpectedResponse returns the success response type a blocking caller
// expects for this operation.
func (t RequestType) ExpectedResponse() ResponseType {
	switch t {
	case RequestCreate:
		return ResponseCreated
	case RequestRead:
		return ResponseRead
	case RequestUpdate:
		return ResponseUpdated
	case RequestDelete:
		return ResponseDeleted
	default:
		return ResponseError
	}
}

// NotSupportedKind returns the error kind reported when a resource does not
// implement the capability this operation requires.
func (t RequestType) NotSupportedKind() ErrorKind {
	switch t {
	case RequestCreate:
		return ErrorCreateNotSupported
	case RequestRead:
		return ErrorReadNotSupported
	case RequestUpdate:
		return ErrorUpdateNotSupported
	case RequestDelete:
		return ErrorDeleteNotSupported
	default:
		return ErrorInternal
	}
}

// ResponseType identifies the outcome kind of a response. It is decided once
// at the pipeline tail; downstream dispatch is a single match, never type
// probing.
type ResponseType string

// Response type constants
const (
	ResponseCreated ResponseType = "CREATED"
	ResponseRead    ResponseType = "READ"
	ResponseUpdated ResponseType = "UPDATED"
	ResponseDeleted ResponseType = "DELETED"
	ResponseError   ResponseType = "ERROR"
)

// Validate ensures the response type is one of the known outcomes.
func (t ResponseType) Validate() error {
	switch t {
	case ResponseCreated, ResponseRead, ResponseUpdated, ResponseDeleted, ResponseError:
		return nil
	default:
		return fmt.Errorf("invalid response type: %q", string(t))
	}
}

// String returns the string form of the response type.
func (t ResponseType) String() string { return string(t) }

// ErrorKind is the closed set of structured error outcomes a pipeline can
// report. Each kind maps 1:1 to a typed failure in the errors package.
type ErrorKind string

// Error kind constants
const (
	ErrorNotAuthorized      ErrorKind = "NOT_AUTHORIZED"
	ErrorNotAcceptable      ErrorKind = "NOT_ACCEPTABLE"
	ErrorNoSuchResource     ErrorKind = "NO_SUCH_RESOURCE"
	ErrorAlreadyExists      ErrorKind = "RESOURCE_ALREADY_EXISTS"
	ErrorCreateNotSupported ErrorKind = "CREATE_NOT_SUPPORTED"
	ErrorReadNotSupported   ErrorKind = "READ_NOT_SUPPORTED"
	ErrorUpdateNotSupported ErrorKind = "UPDATE_NOT_SUPPORTED"
	ErrorDeleteNotSupported ErrorKind = "DELETE_NOT_SUPPORTED"
	ErrorInternal           ErrorKind = "INTERNAL_ERROR"
)

// ErrorKinds lists every member of the closed set, in declaration order.
// Tests walk this slice to prove classifier totality.
func ErrorKinds() []ErrorKind {
	return []ErrorKind{
		ErrorNotAuthorized,
		ErrorNotAcceptable,
		ErrorNoSuchResource,
		ErrorAlreadyExists,
		ErrorCreateNotSupported,
		ErrorReadNotSupported,
		ErrorUpdateNotSupported,
		ErrorDeleteNotSupported,
		ErrorInternal,
	}
}

// Validate ensures the error kind is a member of the closed set.
func (k ErrorKind) Validate() error {
	for _, known := range ErrorKinds() {
		if k == known {
			return nil
		}
	}
	return fmt.Errorf("invalid error kind: %q", string(k))
}

// String returns the string form of the error kind.
func (k ErrorKind) String() string { return string(k) }
