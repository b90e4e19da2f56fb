// Package errors defines the typed failures a blocking caller receives when a
// request ends in a structured error outcome. Each kind in the closed
// ErrorKind set maps to exactly one type here, except INTERNAL_ERROR, whose
// original cause is surfaced verbatim.
package errors

import (
	"errors"
	"fmt"

	"github.com/rohankumardubey/liveoak/types"
)

// Sentinel errors for connector and pipeline lifecycle conditions.
var (
	// ErrPipelineStopped indicates a submission to a pipeline that is not
	// running.
	ErrPipelineStopped = errors.New("pipeline stopped")

	// ErrQueueFull indicates the pipeline's submission queue is at capacity.
	ErrQueueFull = errors.New("pipeline queue full")

	// ErrNilHandler indicates an asynchronous submission without a completion
	// handler.
	ErrNilHandler = errors.New("completion handler cannot be nil")
)

// NotAuthorizedError reports that the caller is not authorized for the
// target resource.
type NotAuthorizedError struct {
	Path string
}

func (e *NotAuthorizedError) Error() string {
	return fmt.Sprintf("not authorized: %s", e.Path)
}

// NotAcceptableError reports that the inbound state or requested encoding
// was rejected during processing.
type NotAcceptableError struct {
	Path    string
	Message string
	Cause   error
}

func (e *NotAcceptableError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("not acceptable: %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("not acceptable: %s", e.Path)
}

// Unwrap returns the underlying cause.
func (e *NotAcceptableError) Unwrap() error { return e.Cause }

// NotFoundError reports that no resource exists at the target path.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no such resource: %s", e.Path)
}

// AlreadyExistsError reports a CREATE against an id that is already taken in
// the target container.
type AlreadyExistsError struct {
	ID string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("resource already exists: %s", e.ID)
}

// NotSupportedError reports that the target resource does not support the
// attempted operation.
type NotSupportedError struct {
	Type types.RequestType
	Path string
}

func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("%s not supported: %s", e.Type, e.Path)
}

// ProcessingError marks a recoverable encoding or processing failure. The
// connector converts it into a NOT_ACCEPTABLE outcome rather than an
// internal error.
type ProcessingError struct {
	Message string
	Cause   error
}

func (e *ProcessingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("processing failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("processing failed: %s", e.Message)
}

// Unwrap returns the underlying cause.
func (e *ProcessingError) Unwrap() error { return e.Cause }

// IsNotAuthorized reports whether err is a NotAuthorizedError.
func IsNotAuthorized(err error) bool {
	var target *NotAuthorizedError
	return errors.As(err, &target)
}

// IsNotAcceptable reports whether err is a NotAcceptableError.
func IsNotAcceptable(err error) bool {
	var target *NotAcceptableError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsAlreadyExists reports whether err is an AlreadyExistsError.
func IsAlreadyExists(err error) bool {
	var target *AlreadyExistsError
	return errors.As(err, &target)
}

// IsNotSupported reports whether err is a NotSupportedError, optionally for
// a specific operation type.
func IsNotSupported(err error, reqType types.RequestType) bool {
	var target *NotSupportedError
	if !errors.As(err, &target) {
		return false
	}
	return reqType == "" || target.Type == reqType
}
