package vera

import (
	"context"
	"sync"
)

// Streamer opens one answer stream for a question and delivers its events
// to sink.
//
// Stream blocks until the cycle ends. It returns nil after OnComplete, and
// also when ctx is cancelled: cancellation is an expected outcome, so no
// terminal callback is delivered for it. On transport failure the error is
// delivered to OnError exactly once and then returned.
type Streamer interface {
	Stream(ctx context.Context, query string, sink EventSink) error
}

// Handle controls a cycle started with Begin.
type Handle struct {
	cancel context.CancelFunc
	guard  *guardedSink
	done   chan struct{}
	err    error
}

// Begin runs one Stream cycle on its own goroutine and returns immediately.
// Cancelling ctx or calling Handle.Cancel stops the cycle.
func Begin(ctx context.Context, s Streamer, query string, sink EventSink) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{
		cancel: cancel,
		guard:  &guardedSink{ctx: ctx, sink: sink},
		done:   make(chan struct{}),
	}
	go func() {
		defer close(h.done)
		defer cancel()
		h.err = s.Stream(ctx, query, h.guard)
	}()
	return h
}

// Cancel aborts the cycle. Once Cancel returns no further sink callbacks
// fire. Cancel waits for a callback already in progress, so it must not be
// called from inside a sink callback; cancel the parent context there instead.
func (h *Handle) Cancel() {
	h.cancel()
	h.guard.mu.Lock()
	h.guard.cancelled = true
	h.guard.mu.Unlock()
}

// Done is closed when the Stream call has returned.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the Stream call returns and reports its error. A
// cancelled cycle reports nil.
func (h *Handle) Wait() error {
	<-h.done
	return h.err
}

// guardedSink enforces the callback contract on behalf of every Streamer:
// nothing after cancellation, at most one terminal callback.
type guardedSink struct {
	mu        sync.Mutex
	ctx       context.Context
	sink      EventSink
	cancelled bool
	finished  bool
}

func (g *guardedSink) deliver(terminal bool, fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancelled || g.finished || g.ctx.Err() != nil {
		return
	}
	if terminal {
		g.finished = true
	}
	fn()
}

func (g *guardedSink) OnChunk(text string) {
	g.deliver(false, func() { g.sink.OnChunk(text) })
}

func (g *guardedSink) OnSearchStep(steps []ProgressStep) {
	g.deliver(false, func() { g.sink.OnSearchStep(steps) })
}

func (g *guardedSink) OnError(err error) {
	g.deliver(true, func() { g.sink.OnError(err) })
}

func (g *guardedSink) OnComplete() {
	g.deliver(true, func() { g.sink.OnComplete() })
}
