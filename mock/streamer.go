// Package mock provides test doubles for vera interfaces using function fields.
package mock

import (
	"context"

	"github.com/clinicalqa/vera"
)

// Interface compliance check.
var _ vera.Streamer = (*Streamer)(nil)

// Streamer is a test double for vera.Streamer.
// Set StreamFn before calling Stream.
type Streamer struct {
	StreamFn func(ctx context.Context, query string, sink vera.EventSink) error
}

// Stream delegates to StreamFn.
func (s *Streamer) Stream(ctx context.Context, query string, sink vera.EventSink) error {
	return s.StreamFn(ctx, query, sink)
}

// Script returns a Streamer that delivers events in order and then returns
// nil. It stops early, without a terminal callback, when ctx is cancelled.
func Script(events ...vera.Event) *Streamer {
	return &Streamer{
		StreamFn: func(ctx context.Context, _ string, sink vera.EventSink) error {
			for _, e := range events {
				if ctx.Err() != nil {
					return nil
				}
				vera.Deliver(sink, e)
			}
			return nil
		},
	}
}
