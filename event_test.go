package vera_test

import (
	"errors"
	"testing"

	"github.com/clinicalqa/vera"
	"github.com/clinicalqa/vera/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventTypeSwitch_Exhaustive(t *testing.T) {
	t.Parallel()
	events := []vera.Event{
		vera.EventTextDelta{Text: "hello"},
		vera.EventProgressSteps{Steps: []vera.ProgressStep{{Text: "Searching"}}},
		vera.EventCompleted{},
		vera.EventFailed{Message: "boom"},
	}
	assert.Len(t, events, 4, "update slice and switch when adding new Event types")
	for _, e := range events {
		switch e.(type) {
		case vera.EventTextDelta:
		case vera.EventProgressSteps:
		case vera.EventCompleted:
		case vera.EventFailed:
		default:
			t.Fatalf("unhandled event type: %T", e)
		}
	}
}

func TestSinkFunc(t *testing.T) {
	t.Parallel()

	var got []vera.Event
	sink := vera.SinkFunc(func(e vera.Event) { got = append(got, e) })

	sink.OnSearchStep([]vera.ProgressStep{{Text: "Searching", IsActive: true}})
	sink.OnChunk("hi")
	sink.OnError(errors.New("HTTP 500"))
	sink.OnComplete()

	assert.Equal(t, []vera.Event{
		vera.EventProgressSteps{Steps: []vera.ProgressStep{{Text: "Searching", IsActive: true}}},
		vera.EventTextDelta{Text: "hi"},
		vera.EventFailed{Message: "HTTP 500"},
		vera.EventCompleted{},
	}, got)
}

func TestDeliver(t *testing.T) {
	t.Parallel()

	var rec mock.Recorder
	in := []vera.Event{
		vera.EventTextDelta{Text: "a"},
		vera.EventProgressSteps{Steps: []vera.ProgressStep{{Text: "Done", IsCompleted: true}}},
		vera.EventFailed{Message: "lost connection"},
		vera.EventCompleted{},
	}
	for _, e := range in {
		vera.Deliver(&rec, e)
	}
	require.Equal(t, in, rec.Events())
}

func TestProgressStep_State(t *testing.T) {
	t.Parallel()

	assert.Equal(t, vera.StepPending, vera.ProgressStep{Text: "a"}.State())
	assert.Equal(t, vera.StepActive, vera.ProgressStep{Text: "a", IsActive: true}.State())
	assert.Equal(t, vera.StepCompleted, vera.ProgressStep{Text: "a", IsCompleted: true}.State())
	assert.Equal(t, vera.StepActive, vera.ProgressStep{Text: "a", IsActive: true, IsCompleted: true}.State())
}
