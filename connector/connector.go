// Package connector is the in-process facade over the request pipeline. It
// assigns each outbound request a unique identity, registers a completion
// handler against it, submits the request to the pipeline head, and when the
// pipeline tail emits the matching response, removes and invokes that
// handler exactly once.
//
// Every operation comes in two forms: an asynchronous one that returns
// immediately and delivers the outcome to a caller-supplied handler, and a
// blocking one that bridges the handler to a single-shot future and returns
// the encoded result state. Only the blocking caller's goroutine blocks;
// pipeline processing is never held up by a waiting caller.
package connector

import (
	"errors"
	"log/slog"

	"github.com/rohankumardubey/liveoak/codec"
	liverr "github.com/rohankumardubey/liveoak/errors"
	"github.com/rohankumardubey/liveoak/metric"
	"github.com/rohankumardubey/liveoak/pipeline"
	"github.com/rohankumardubey/liveoak/types"
)

// Handler receives the single terminal response for a request.
type Handler func(*types.ResourceResponse)

// Connector correlates responses back to their requests across the pipeline
// boundary.
type Connector struct {
	pipeline *pipeline.Pipeline
	table    *correlationTable
	encoder  codec.Encoder
	logger   *slog.Logger
	metrics  *connectorMetrics

	registry *metric.Registry
}

// Option configures a Connector.
type Option func(*Connector)

// WithEncoder sets the encoder applied to success results in the blocking
// facade.
func WithEncoder(encoder codec.Encoder) Option {
	return func(c *Connector) { c.encoder = encoder }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Connector) { c.logger = logger }
}

// WithMetrics registers connector metrics with the given registry.
func WithMetrics(registry *metric.Registry) Option {
	return func(c *Connector) { c.registry = registry }
}

// New creates a connector bound to p and wires p's response emission to the
// connector's dispatch entry point. One connector owns one pipeline;
// independent pipelines get independent connectors and correlation state.
func New(p *pipeline.Pipeline, opts ...Option) *Connector {
	c := &Connector{
		pipeline: p,
		table:    newCorrelationTable(),
		encoder:  codec.NewStateEncoder(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.registry != nil {
		c.metrics = newConnectorMetrics(c.registry, c.logger)
	}
	p.OnResponse(c.dispatch)
	return c
}

// CreateAsync submits a CREATE and returns immediately. The outcome arrives
// via handler. The returned error covers submission only (full queue,
// stopped pipeline).
func (c *Connector) CreateAsync(rctx *types.RequestContext, path string, state *types.ResourceState, handler Handler) error {
	return c.submit(types.NewRequest(types.RequestCreate, path, rctx, state), handler)
}

// ReadAsync submits a READ and returns immediately.
func (c *Connector) ReadAsync(rctx *types.RequestContext, path string, handler Handler) error {
	return c.submit(types.NewRequest(types.RequestRead, path, rctx, nil), handler)
}

// UpdateAsync submits an UPDATE and returns immediately. UPDATE has upsert
// semantics: a missing target falls back to creation in the implied parent.
func (c *Connector) UpdateAsync(rctx *types.RequestContext, path string, state *types.ResourceState, handler Handler) error {
	return c.submit(types.NewRequest(types.RequestUpdate, path, rctx, state), handler)
}

// DeleteAsync submits a DELETE and returns immediately.
func (c *Connector) DeleteAsync(rctx *types.RequestContext, path string, handler Handler) error {
	return c.submit(types.NewRequest(types.RequestDelete, path, rctx, nil), handler)
}

// Create performs a blocking CREATE and returns the encoded state of the
// created resource. A success of an unexpected kind resolves as (nil, nil).
func (c *Connector) Create(rctx *types.RequestContext, path string, state *types.ResourceState) (*types.ResourceState, error) {
	return c.blocking(types.RequestCreate, rctx, path, state)
}

// Read performs a blocking READ and returns the encoded state of the
// resource at path.
func (c *Connector) Read(rctx *types.RequestContext, path string) (*types.ResourceState, error) {
	return c.blocking(types.RequestRead, rctx, path, nil)
}

// Update performs a blocking UPDATE, with upsert semantics, and returns the
// encoded state of the updated (or created) resource.
func (c *Connector) Update(rctx *types.RequestContext, path string, state *types.ResourceState) (*types.ResourceState, error) {
	return c.blocking(types.RequestUpdate, rctx, path, state)
}

// Delete performs a blocking DELETE and returns the encoded state the
// resource had at deletion.
func (c *Connector) Delete(rctx *types.RequestContext, path string) (*types.ResourceState, error) {
	return c.blocking(types.RequestDelete, rctx, path, nil)
}

// Fetch performs a blocking READ and returns the raw resource handle rather
// than its encoded state. Error semantics match Read.
func (c *Connector) Fetch(rctx *types.RequestContext, path string) (types.Resource, error) {
	if rctx == nil {
		rctx = types.NewRequestContext(nil)
	}
	req := types.NewRequest(types.RequestRead, path, rctx, nil)

	resp, err := c.await(req)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.Type() == types.ResponseRead:
		return resp.Resource(), nil
	case resp.IsError():
		return nil, classify(resp)
	default:
		// Defined fallback for outcome kinds the caller didn't ask for.
		return nil, nil
	}
}

// Outstanding returns the number of requests awaiting a response.
func (c *Connector) Outstanding() int { return c.table.size() }

// submit registers handler under the request's identity and hands the
// request to the pipeline head. A failed submission removes the entry again
// so nothing leaks.
func (c *Connector) submit(req *types.ResourceRequest, handler Handler) error {
	if handler == nil {
		return liverr.ErrNilHandler
	}

	c.table.put(req.ID(), handler)
	if err := c.pipeline.Submit(req); err != nil {
		c.table.remove(req.ID())
		c.logger.Warn("request submission failed",
			"request_id", req.ID(), "path", req.Path().String(), "error", err)
		return err
	}

	if c.metrics != nil {
		c.metrics.outstanding.Inc()
	}
	return nil
}

// dispatch is the pipeline tail's emission hook, invoked once per response.
// The lookup-and-remove is atomic; a response whose identity has no entry
// (duplicate delivery, already-serviced, timed out) is dropped silently.
func (c *Connector) dispatch(resp *types.ResourceResponse) {
	handler, ok := c.table.remove(resp.InReplyTo())
	if !ok {
		c.logger.Debug("dropping response with no outstanding request",
			"in_reply_to", resp.InReplyTo())
		if c.metrics != nil {
			c.metrics.dropped.Inc()
		}
		return
	}

	if c.metrics != nil {
		c.metrics.outstanding.Dec()
		c.metrics.dispatched.WithLabelValues(resp.Type().String()).Inc()
	}

	// Invoked outside the table lock: the handler runs arbitrary caller code.
	handler(resp)
}

// blocking runs one operation through a single-shot future and resolves the
// result per kind: expected success is encoded, errors are classified, any
// other kind is the defined absent-result fallback.
func (c *Connector) blocking(reqType types.RequestType, rctx *types.RequestContext, path string, state *types.ResourceState) (*types.ResourceState, error) {
	if rctx == nil {
		rctx = types.NewRequestContext(nil)
	}
	req := types.NewRequest(reqType, path, rctx, state)

	resp, err := c.await(req)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.Type() == reqType.ExpectedResponse():
		return c.encode(req, resp)
	case resp.IsError():
		return nil, classify(resp)
	default:
		return nil, nil
	}
}

// await submits req bridged to a future and waits for its response. If the
// caller's context expires first, the correlation entry is removed again (a
// compensating delete) so a late response is dropped instead of leaking or
// firing into nothing.
func (c *Connector) await(req *types.ResourceRequest) (*types.ResourceResponse, error) {
	future := newResponseFuture()
	if err := c.submit(req, future.complete); err != nil {
		return nil, err
	}

	resp, err := future.wait(req.Context().Context())
	if err != nil {
		if _, ok := c.table.remove(req.ID()); ok && c.metrics != nil {
			c.metrics.outstanding.Dec()
		}
		return nil, err
	}
	return resp, nil
}

// encode converts the result resource to state. Failures reach the caller:
// a processing error as NOT_ACCEPTABLE, anything else verbatim.
func (c *Connector) encode(req *types.ResourceRequest, resp *types.ResourceResponse) (*types.ResourceState, error) {
	state, err := c.encoder.Encode(req.Context(), resp.Resource())
	if err != nil {
		var pe *liverr.ProcessingError
		if errors.As(err, &pe) {
			return nil, classify(types.NewErrorResponse(req, types.ErrorNotAcceptable, pe.Message, pe.Cause))
		}
		return nil, classify(types.NewErrorResponse(req, types.ErrorInternal, err.Error(), err))
	}
	return state, nil
}
