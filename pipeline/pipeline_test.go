package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	liverr "github.com/rohankumardubey/liveoak/errors"
	"github.com/rohankumardubey/liveoak/types"
)

// recordingStage forwards requests and records responses passing back out.
type recordingStage struct {
	name      string
	requests  []*types.ResourceRequest
	responses []*types.ResourceResponse
}

func (s *recordingStage) Name() string { return s.name }

func (s *recordingStage) HandleRequest(ctx *Context, req *types.ResourceRequest) {
	s.requests = append(s.requests, req)
	ctx.Forward(req)
}

func (s *recordingStage) HandleResponse(resp *types.ResourceResponse) {
	s.responses = append(s.responses, resp)
}

// scriptStage completes every request with the scripted response.
type scriptStage struct {
	fn func(*types.ResourceRequest) *types.ResourceResponse
}

func (s *scriptStage) Name() string                          { return "script" }
func (s *scriptStage) HandleResponse(*types.ResourceResponse) {}

func (s *scriptStage) HandleRequest(ctx *Context, req *types.ResourceRequest) {
	ctx.Complete(s.fn(req))
}

// runRequest drives one request through the stages synchronously, bypassing
// the worker pool.
func runRequest(t *testing.T, p *Pipeline, req *types.ResourceRequest) *types.ResourceResponse {
	t.Helper()
	var got *types.ResourceResponse
	p.OnResponse(func(r *types.ResourceResponse) { got = r })
	require.NoError(t, p.process(context.Background(), req))
	require.NotNil(t, got, "pipeline must emit a terminal response")
	return got
}

func TestPipeline_ForwardAndComplete(t *testing.T) {
	front := &recordingStage{name: "front"}
	terminal := &scriptStage{fn: func(req *types.ResourceRequest) *types.ResourceResponse {
		return types.NewResponse(req, types.ResponseRead, nil)
	}}
	p := New([]Stage{front, terminal})

	req := types.NewRequest(types.RequestRead, "/widgets/w1", nil, nil)
	resp := runRequest(t, p, req)

	assert.Equal(t, types.ResponseRead, resp.Type())
	assert.Equal(t, req.ID(), resp.InReplyTo())

	// The request passed forward through the front stage, and the response
	// passed backward through it.
	require.Len(t, front.requests, 1)
	require.Len(t, front.responses, 1)
	assert.Same(t, resp, front.responses[0])
}

func TestPipeline_LivenessWhenNoStageCompletes(t *testing.T) {
	front := &recordingStage{name: "front"}
	p := New([]Stage{front})

	req := types.NewRequest(types.RequestRead, "/widgets/w1", nil, nil)
	resp := runRequest(t, p, req)

	require.True(t, resp.IsError())
	assert.Equal(t, types.ErrorInternal, resp.ErrorKind())
	assert.Equal(t, req.ID(), resp.InReplyTo())
}

func TestPipeline_EmptyStageList(t *testing.T) {
	p := New(nil)

	req := types.NewRequest(types.RequestDelete, "/w", nil, nil)
	resp := runRequest(t, p, req)

	require.True(t, resp.IsError())
	assert.Equal(t, types.ErrorInternal, resp.ErrorKind())
}

type panicStage struct{}

func (panicStage) Name() string                                  { return "panic" }
func (panicStage) HandleResponse(*types.ResourceResponse)        {}
func (panicStage) HandleRequest(*Context, *types.ResourceRequest) { panic("stage blew up") }

func TestPipeline_PanicBecomesInternalError(t *testing.T) {
	p := New([]Stage{panicStage{}})

	req := types.NewRequest(types.RequestRead, "/w", nil, nil)
	resp := runRequest(t, p, req)

	require.True(t, resp.IsError())
	assert.Equal(t, types.ErrorInternal, resp.ErrorKind())
	assert.Contains(t, resp.Message(), "stage blew up")
}

type doubleCompleteStage struct{}

func (doubleCompleteStage) Name() string                           { return "double" }
func (doubleCompleteStage) HandleResponse(*types.ResourceResponse) {}

func (doubleCompleteStage) HandleRequest(ctx *Context, req *types.ResourceRequest) {
	ctx.Complete(types.NewResponse(req, types.ResponseRead, nil))
	ctx.Complete(types.NewErrorResponse(req, types.ErrorInternal, "second", nil))
}

func TestPipeline_CompleteIsIdempotent(t *testing.T) {
	p := New([]Stage{doubleCompleteStage{}})

	var emitted []*types.ResourceResponse
	p.OnResponse(func(r *types.ResourceResponse) { emitted = append(emitted, r) })

	req := types.NewRequest(types.RequestRead, "/w", nil, nil)
	require.NoError(t, p.process(context.Background(), req))

	require.Len(t, emitted, 1)
	assert.Equal(t, types.ResponseRead, emitted[0].Type())
}

func TestPipeline_SubmitBeforeStart(t *testing.T) {
	p := New([]Stage{&scriptStage{fn: func(req *types.ResourceRequest) *types.ResourceResponse {
		return types.NewResponse(req, types.ResponseRead, nil)
	}}})

	err := p.Submit(types.NewRequest(types.RequestRead, "/w", nil, nil))
	assert.ErrorIs(t, err, liverr.ErrPipelineStopped)
}

func TestPipeline_AsyncSubmit(t *testing.T) {
	p := New([]Stage{&scriptStage{fn: func(req *types.ResourceRequest) *types.ResourceResponse {
		return types.NewResponse(req, req.Type().ExpectedResponse(), nil)
	}}}, WithWorkers(2), WithQueueSize(16))

	done := make(chan *types.ResourceResponse, 1)
	p.OnResponse(func(r *types.ResourceResponse) { done <- r })

	require.NoError(t, p.Start(context.Background()))
	defer p.Stop(2 * time.Second)

	req := types.NewRequest(types.RequestUpdate, "/w", nil, nil)
	require.NoError(t, p.Submit(req))

	select {
	case resp := <-done:
		assert.Equal(t, types.ResponseUpdated, resp.Type())
		assert.Equal(t, req.ID(), resp.InReplyTo())
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for response")
	}
}

func TestPipeline_QueueFull(t *testing.T) {
	block := make(chan struct{})
	p := New([]Stage{&scriptStage{fn: func(req *types.ResourceRequest) *types.ResourceResponse {
		<-block
		return types.NewResponse(req, types.ResponseRead, nil)
	}}}, WithWorkers(1), WithQueueSize(1))

	p.OnResponse(func(*types.ResourceResponse) {})
	require.NoError(t, p.Start(context.Background()))
	defer func() {
		close(block)
		p.Stop(2 * time.Second)
	}()

	var sawFull bool
	for i := 0; i < 5; i++ {
		err := p.Submit(types.NewRequest(types.RequestRead, "/w", nil, nil))
		if err != nil {
			assert.ErrorIs(t, err, liverr.ErrQueueFull)
			sawFull = true
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	assert.True(t, sawFull, "expected a queue-full rejection")
}
