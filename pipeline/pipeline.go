// Package pipeline implements the staged, push-based processing line a
// request travels through. A request enters at the head and moves forward
// stage by stage; whichever stage completes it produces the response, which
// then travels back through the earlier stages before being emitted to the
// registered response hook.
//
// The pipeline guarantees a terminal response for every accepted request:
// a request that falls off the end of the stage list, or whose stage panics,
// is answered with an INTERNAL_ERROR response.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	liverr "github.com/rohankumardubey/liveoak/errors"
	"github.com/rohankumardubey/liveoak/metric"
	"github.com/rohankumardubey/liveoak/pkg/worker"
	"github.com/rohankumardubey/liveoak/types"
)

// Stage is one step of forward processing. HandleRequest must either call
// ctx.Forward to pass the request on, or ctx.Complete to terminate it with a
// response. HandleResponse observes the response on its way back out and may
// not redirect it.
type Stage interface {
	Name() string
	HandleRequest(ctx *Context, req *types.ResourceRequest)
	HandleResponse(resp *types.ResourceResponse)
}

// Context is handed to a stage's HandleRequest. It is valid only for the
// duration of that call.
type Context struct {
	traversal *traversal
	index     int
}

// Forward passes the request to the next stage.
func (c *Context) Forward(req *types.ResourceRequest) {
	c.traversal.forward(c.index+1, req)
}

// Complete terminates forward processing with resp. The response travels
// back through the stages before this one and is then emitted. Calling
// Complete more than once for the same request is a no-op.
func (c *Context) Complete(resp *types.ResourceResponse) {
	c.traversal.complete(c.index, resp)
}

// Pipeline is an ordered sequence of stages plus the response emission hook.
type Pipeline struct {
	stages     []Stage
	onResponse func(*types.ResourceResponse)
	pool       *worker.Pool[*types.ResourceRequest]
	logger     *slog.Logger
	metrics    *pipelineMetrics

	workers   int
	queueSize int
	registry  *metric.Registry
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// WithMetrics registers pipeline metrics with the given registry.
func WithMetrics(registry *metric.Registry) Option {
	return func(p *Pipeline) { p.registry = registry }
}

// WithWorkers sets the number of processing workers.
func WithWorkers(n int) Option {
	return func(p *Pipeline) { p.workers = n }
}

// WithQueueSize sets the submission queue capacity.
func WithQueueSize(n int) Option {
	return func(p *Pipeline) { p.queueSize = n }
}

// New creates a pipeline with the given stages, head first.
func New(stages []Stage, opts ...Option) *Pipeline {
	p := &Pipeline{
		stages:    stages,
		logger:    slog.Default(),
		workers:   4,
		queueSize: 256,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.registry != nil {
		p.metrics = newPipelineMetrics(p.registry, p.logger)
	}
	p.pool = worker.NewPool(p.workers, p.queueSize, p.process,
		poolMetricsOption(p.registry), worker.WithLogger[*types.ResourceRequest](p.logger))
	return p
}

func poolMetricsOption(registry *metric.Registry) worker.Option[*types.ResourceRequest] {
	if registry == nil {
		return func(*worker.Pool[*types.ResourceRequest]) {}
	}
	return worker.WithMetrics[*types.ResourceRequest](registry, "pipeline")
}

// OnResponse registers the hook invoked for every emitted response. It must
// be set before Start; the connector wires it to its dispatch entry point.
func (p *Pipeline) OnResponse(fn func(*types.ResourceResponse)) {
	p.onResponse = fn
}

// Start launches the processing workers.
func (p *Pipeline) Start(ctx context.Context) error {
	return p.pool.Start(ctx)
}

// Stop drains in-flight requests, waiting up to timeout.
func (p *Pipeline) Stop(timeout time.Duration) error {
	return p.pool.Stop(timeout)
}

// Submit accepts a request for forward processing. It never blocks: a full
// queue or stopped pipeline is reported to the submitter as an error, so no
// request is ever silently lost at the head.
func (p *Pipeline) Submit(req *types.ResourceRequest) error {
	if err := p.pool.Submit(req); err != nil {
		switch err {
		case worker.ErrQueueFull:
			return liverr.ErrQueueFull
		case worker.ErrPoolNotStarted, worker.ErrPoolStopped:
			return liverr.ErrPipelineStopped
		default:
			return err
		}
	}
	if p.metrics != nil {
		p.metrics.requests.WithLabelValues(req.Type().String()).Inc()
		p.metrics.inflight.Inc()
	}
	return nil
}

// process runs one request through the stages on a worker goroutine.
func (p *Pipeline) process(_ context.Context, req *types.ResourceRequest) error {
	start := time.Now()
	t := &traversal{pipeline: p, request: req}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("pipeline stage panicked",
				"request_id", req.ID(), "path", req.Path().String(), "panic", r)
			t.complete(len(p.stages),
				types.NewErrorResponse(req, types.ErrorInternal,
					fmt.Sprintf("stage panic: %v", r), nil))
		}
		if p.metrics != nil {
			p.metrics.inflight.Dec()
			p.metrics.duration.WithLabelValues(req.Type().String()).Observe(time.Since(start).Seconds())
		}
	}()

	t.forward(0, req)

	if !t.completed {
		// Liveness: no stage produced a terminal response.
		t.complete(len(p.stages),
			types.NewErrorResponse(req, types.ErrorInternal, "request not handled by any stage", nil))
	}
	return nil
}

// traversal tracks one request's trip through the stages. It lives on a
// single worker goroutine; no locking needed.
type traversal struct {
	pipeline  *Pipeline
	request   *types.ResourceRequest
	completed bool
}

func (t *traversal) forward(index int, req *types.ResourceRequest) {
	if t.completed || index >= len(t.pipeline.stages) {
		return
	}
	ctx := &Context{traversal: t, index: index}
	t.pipeline.stages[index].HandleRequest(ctx, req)
}

func (t *traversal) complete(fromIndex int, resp *types.ResourceResponse) {
	if t.completed {
		return
	}
	t.completed = true

	stages := t.pipeline.stages
	if fromIndex > len(stages) {
		fromIndex = len(stages)
	}
	for i := fromIndex - 1; i >= 0; i-- {
		stages[i].HandleResponse(resp)
	}

	if t.pipeline.metrics != nil {
		t.pipeline.metrics.responses.WithLabelValues(resp.Type().String()).Inc()
	}
	if t.pipeline.onResponse != nil {
		t.pipeline.onResponse(resp)
	}
}
