package pipeline

import (
	"errors"
	"log/slog"

	liverr "github.com/rohankumardubey/liveoak/errors"
	"github.com/rohankumardubey/liveoak/types"
)

// DispatchStage resolves a request's path against the resource tree and
// applies the operation. It is terminal: every request it receives is
// completed with either a success or an error response.
//
// UPDATE has upsert semantics: an update addressed to a missing resource is
// retried as a create against the implied parent container.
type DispatchStage struct {
	root   types.Resource
	logger *slog.Logger
}

// NewDispatchStage creates a dispatch stage rooted at root.
func NewDispatchStage(root types.Resource, logger *slog.Logger) *DispatchStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &DispatchStage{root: root, logger: logger}
}

// Name implements Stage.
func (s *DispatchStage) Name() string { return "dispatch" }

// HandleResponse implements Stage. Dispatch is the last stage; responses
// never pass through it.
func (s *DispatchStage) HandleResponse(*types.ResourceResponse) {}

// HandleRequest implements Stage.
func (s *DispatchStage) HandleRequest(ctx *Context, req *types.ResourceRequest) {
	switch req.Type() {
	case types.RequestCreate:
		ctx.Complete(s.create(req))
	case types.RequestRead:
		ctx.Complete(s.read(req))
	case types.RequestUpdate:
		ctx.Complete(s.update(req))
	case types.RequestDelete:
		ctx.Complete(s.delete(req))
	default:
		ctx.Complete(types.NewErrorResponse(req, types.ErrorInternal,
			"unknown request type "+req.Type().String(), nil))
	}
}

// resolve walks the path from the root, one MemberResolver at a time.
func (s *DispatchStage) resolve(rctx *types.RequestContext, path types.ResourcePath) (types.Resource, bool) {
	current := s.root
	for _, segment := range path.Segments() {
		container, ok := current.(types.MemberResolver)
		if !ok {
			return nil, false
		}
		child, ok := container.Member(rctx, segment)
		if !ok {
			return nil, false
		}
		current = child
	}
	return current, true
}

func (s *DispatchStage) create(req *types.ResourceRequest) *types.ResourceResponse {
	target, ok := s.resolve(req.Context(), req.Path())
	if !ok {
		return types.NewErrorResponse(req, types.ErrorNoSuchResource, "", nil)
	}

	container, ok := target.(types.Creatable)
	if !ok {
		return types.NewErrorResponse(req, types.ErrorCreateNotSupported, "", nil)
	}

	created, err := container.CreateMember(req.Context(), req.State())
	if err != nil {
		return s.errorResponse(req, err)
	}
	return types.NewResponse(req, types.ResponseCreated, created)
}

func (s *DispatchStage) read(req *types.ResourceRequest) *types.ResourceResponse {
	target, ok := s.resolve(req.Context(), req.Path())
	if !ok {
		return types.NewErrorResponse(req, types.ErrorNoSuchResource, "", nil)
	}
	if _, ok := target.(types.Readable); !ok {
		return types.NewErrorResponse(req, types.ErrorReadNotSupported, "", nil)
	}
	return types.NewResponse(req, types.ResponseRead, target)
}

func (s *DispatchStage) update(req *types.ResourceRequest) *types.ResourceResponse {
	target, ok := s.resolve(req.Context(), req.Path())
	if !ok {
		return s.upsert(req)
	}

	updatable, ok := target.(types.Updatable)
	if !ok {
		return types.NewErrorResponse(req, types.ErrorUpdateNotSupported, "", nil)
	}

	updated, err := updatable.UpdateProperties(req.Context(), req.State())
	if err != nil {
		return s.errorResponse(req, err)
	}
	return types.NewResponse(req, types.ResponseUpdated, updated)
}

// upsert handles an UPDATE against a missing resource by creating it in the
// implied parent container.
func (s *DispatchStage) upsert(req *types.ResourceRequest) *types.ResourceResponse {
	parent, ok := s.resolve(req.Context(), req.Path().Parent())
	if !ok {
		return types.NewErrorResponse(req, types.ErrorNoSuchResource, "", nil)
	}

	container, ok := parent.(types.Creatable)
	if !ok {
		return types.NewErrorResponse(req, types.ErrorNoSuchResource, "", nil)
	}

	// The request's state stays untouched: the id fallback is applied to a
	// copy, never to the caller's payload.
	state := req.State().Clone()
	if state == nil {
		state = types.NewState(req.Path().Name())
	} else if state.ID() == "" {
		state.SetID(req.Path().Name())
	}

	created, err := container.CreateMember(req.Context(), state)
	if err != nil {
		return s.errorResponse(req, err)
	}
	s.logger.Debug("update fell back to create",
		"path", req.Path().String(), "request_id", req.ID())
	return types.NewResponse(req, types.ResponseUpdated, created)
}

func (s *DispatchStage) delete(req *types.ResourceRequest) *types.ResourceResponse {
	target, ok := s.resolve(req.Context(), req.Path())
	if !ok {
		return types.NewErrorResponse(req, types.ErrorNoSuchResource, "", nil)
	}

	deletable, ok := target.(types.Deletable)
	if !ok {
		return types.NewErrorResponse(req, types.ErrorDeleteNotSupported, "", nil)
	}

	if err := deletable.Delete(req.Context()); err != nil {
		return s.errorResponse(req, err)
	}
	return types.NewResponse(req, types.ResponseDeleted, target)
}

// errorResponse maps a resource-reported error to a structured outcome.
func (s *DispatchStage) errorResponse(req *types.ResourceRequest, err error) *types.ResourceResponse {
	var exists *liverr.AlreadyExistsError
	if errors.As(err, &exists) {
		return types.NewErrorResponse(req, types.ErrorAlreadyExists, err.Error(), err)
	}
	var notFound *liverr.NotFoundError
	if errors.As(err, &notFound) {
		return types.NewErrorResponse(req, types.ErrorNoSuchResource, err.Error(), err)
	}
	var notAuth *liverr.NotAuthorizedError
	if errors.As(err, &notAuth) {
		return types.NewErrorResponse(req, types.ErrorNotAuthorized, err.Error(), err)
	}
	var notAcceptable *liverr.NotAcceptableError
	if errors.As(err, &notAcceptable) {
		return types.NewErrorResponse(req, types.ErrorNotAcceptable, notAcceptable.Message, err)
	}
	var notSupported *liverr.NotSupportedError
	if errors.As(err, &notSupported) {
		return types.NewErrorResponse(req, notSupported.Type.NotSupportedKind(), err.Error(), err)
	}
	return types.NewErrorResponse(req, types.ErrorInternal, err.Error(), err)
}
