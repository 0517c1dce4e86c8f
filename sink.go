package vera

import "errors"

// EventSink receives the callbacks of one question/answer cycle. Callbacks
// are invoked in arrival order and never concurrently. OnError and
// OnComplete are terminal and mutually exclusive; a cancelled cycle
// receives neither.
type EventSink interface {
	OnChunk(text string)
	OnSearchStep(steps []ProgressStep)
	OnError(err error)
	OnComplete()
}

// SinkFunc adapts a function that consumes Events into an EventSink.
type SinkFunc func(Event)

// Interface compliance check.
var _ EventSink = SinkFunc(nil)

// OnChunk delivers EventTextDelta.
func (f SinkFunc) OnChunk(text string) { f(EventTextDelta{Text: text}) }

// OnSearchStep delivers EventProgressSteps.
func (f SinkFunc) OnSearchStep(steps []ProgressStep) { f(EventProgressSteps{Steps: steps}) }

// OnError delivers EventFailed with the error's message.
func (f SinkFunc) OnError(err error) { f(EventFailed{Message: err.Error()}) }

// OnComplete delivers EventCompleted.
func (f SinkFunc) OnComplete() { f(EventCompleted{}) }

// Deliver routes e to the matching sink callback.
func Deliver(sink EventSink, e Event) {
	switch e := e.(type) {
	case EventTextDelta:
		sink.OnChunk(e.Text)
	case EventProgressSteps:
		sink.OnSearchStep(e.Steps)
	case EventCompleted:
		sink.OnComplete()
	case EventFailed:
		sink.OnError(errors.New(e.Message))
	}
}
