package connector

import (
	"fmt"

	liverr "github.com/rohankumardubey/liveoak/errors"
	"github.com/rohankumardubey/liveoak/types"
)

// classify converts an error response into the typed failure a blocking
// caller receives. It is total over the closed ErrorKind set; the tests walk
// every kind. INTERNAL_ERROR surfaces the original cause verbatim.
func classify(resp *types.ResourceResponse) error {
	path := resp.Request().Path().String()

	switch resp.ErrorKind() {
	case types.ErrorNotAuthorized:
		return &liverr.NotAuthorizedError{Path: path}
	case types.ErrorNotAcceptable:
		return &liverr.NotAcceptableError{Path: path, Message: resp.Message(), Cause: resp.Cause()}
	case types.ErrorNoSuchResource:
		return &liverr.NotFoundError{Path: path}
	case types.ErrorAlreadyExists:
		return &liverr.AlreadyExistsError{ID: conflictingID(resp)}
	case types.ErrorCreateNotSupported:
		return &liverr.NotSupportedError{Type: types.RequestCreate, Path: path}
	case types.ErrorReadNotSupported:
		return &liverr.NotSupportedError{Type: types.RequestRead, Path: path}
	case types.ErrorUpdateNotSupported:
		return &liverr.NotSupportedError{Type: types.RequestUpdate, Path: path}
	case types.ErrorDeleteNotSupported:
		return &liverr.NotSupportedError{Type: types.RequestDelete, Path: path}
	case types.ErrorInternal:
		if cause := resp.Cause(); cause != nil {
			return cause
		}
		return fmt.Errorf("internal error: %s: %s", path, resp.Message())
	default:
		// Unreachable through the public API; the kind set is closed.
		return fmt.Errorf("unhandled error kind %q: %s", resp.ErrorKind(), path)
	}
}

// conflictingID names the resource id a failed CREATE collided on, taken
// from the originating request's state.
func conflictingID(resp *types.ResourceResponse) string {
	if state := resp.Request().State(); state != nil && state.ID() != "" {
		return state.ID()
	}
	return resp.Request().Path().Name()
}
