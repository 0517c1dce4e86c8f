package mock

import (
	"sync"

	"github.com/clinicalqa/vera"
)

// Interface compliance checks.
var (
	_ vera.EventSink = (*Sink)(nil)
	_ vera.EventSink = (*Recorder)(nil)
)

// Sink is a test double for vera.EventSink.
// Unset function fields are no-ops.
type Sink struct {
	OnChunkFn      func(text string)
	OnSearchStepFn func(steps []vera.ProgressStep)
	OnErrorFn      func(err error)
	OnCompleteFn   func()
}

// OnChunk delegates to OnChunkFn.
func (s *Sink) OnChunk(text string) {
	if s.OnChunkFn != nil {
		s.OnChunkFn(text)
	}
}

// OnSearchStep delegates to OnSearchStepFn.
func (s *Sink) OnSearchStep(steps []vera.ProgressStep) {
	if s.OnSearchStepFn != nil {
		s.OnSearchStepFn(steps)
	}
}

// OnError delegates to OnErrorFn.
func (s *Sink) OnError(err error) {
	if s.OnErrorFn != nil {
		s.OnErrorFn(err)
	}
}

// OnComplete delegates to OnCompleteFn.
func (s *Sink) OnComplete() {
	if s.OnCompleteFn != nil {
		s.OnCompleteFn()
	}
}

// Recorder is an EventSink that records every callback as a vera.Event.
// It is safe to read from another goroutine while a stream writes to it.
type Recorder struct {
	mu     sync.Mutex
	events []vera.Event
}

// OnChunk records EventTextDelta.
func (r *Recorder) OnChunk(text string) { r.record(vera.EventTextDelta{Text: text}) }

// OnSearchStep records EventProgressSteps.
func (r *Recorder) OnSearchStep(steps []vera.ProgressStep) {
	r.record(vera.EventProgressSteps{Steps: steps})
}

// OnError records EventFailed.
func (r *Recorder) OnError(err error) { r.record(vera.EventFailed{Message: err.Error()}) }

// OnComplete records EventCompleted.
func (r *Recorder) OnComplete() { r.record(vera.EventCompleted{}) }

func (r *Recorder) record(e vera.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []vera.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]vera.Event(nil), r.events...)
}

// Text concatenates every recorded text delta.
func (r *Recorder) Text() string {
	var s string
	for _, e := range r.Events() {
		if d, ok := e.(vera.EventTextDelta); ok {
			s += d.Text
		}
	}
	return s
}

// Terminals counts recorded EventCompleted and EventFailed.
func (r *Recorder) Terminals() (completed, failed int) {
	for _, e := range r.Events() {
		switch e.(type) {
		case vera.EventCompleted:
			completed++
		case vera.EventFailed:
			failed++
		}
	}
	return completed, failed
}
