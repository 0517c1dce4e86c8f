// Package vera renders server-streamed answers to clinical questions.
//
// The root package holds the domain: stream events and the sink contract
// transports deliver them through, progress steps, content sections, and the
// Segmenter that turns a growing answer buffer into ordered sections.
// Subpackages implement transports and presentation on top of it.
package vera

// Event is a sealed interface representing one stream event.
// The unexported marker method prevents external implementations.
type Event interface {
	event()
}

// EventTextDelta carries an incremental slice of answer text.
type EventTextDelta struct {
	Text string
}

func (EventTextDelta) event() {}

// EventProgressSteps carries a full replacement snapshot of the progress
// list. Steps are never merged with a previous snapshot.
type EventProgressSteps struct {
	Steps []ProgressStep
}

func (EventProgressSteps) event() {}

// EventCompleted signals that the stream ended successfully.
type EventCompleted struct{}

func (EventCompleted) event() {}

// EventFailed signals that the stream ended abnormally.
type EventFailed struct {
	Message string
}

func (EventFailed) event() {}

// Interface compliance checks.
var (
	_ Event = EventTextDelta{}
	_ Event = EventProgressSteps{}
	_ Event = EventCompleted{}
	_ Event = EventFailed{}
)
