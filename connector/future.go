package connector

import (
	"context"
	"sync"

	"github.com/rohankumardubey/liveoak/types"
)

// responseFuture is a single-shot result cell bridging the asynchronous
// dispatch path to a blocking caller. Exactly one producer (dispatch)
// completes it; exactly one consumer waits on it. Duplicate completions are
// ignored.
type responseFuture struct {
	ch   chan struct{}
	resp *types.ResourceResponse
	once sync.Once
}

func newResponseFuture() *responseFuture {
	return &responseFuture{ch: make(chan struct{})}
}

// complete resolves the future. The write to resp happens before the channel
// close, so waiters observe it safely.
func (f *responseFuture) complete(resp *types.ResourceResponse) {
	f.once.Do(func() {
		f.resp = resp
		close(f.ch)
	})
}

// wait blocks until the future resolves or ctx expires, whichever is first.
func (f *responseFuture) wait(ctx context.Context) (*types.ResourceResponse, error) {
	select {
	case <-f.ch:
		return f.resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
