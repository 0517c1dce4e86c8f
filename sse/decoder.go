package sse

import (
	"bytes"
	"encoding/json"

	"github.com/clinicalqa/vera"
	"github.com/rs/zerolog"
)

// Decoder turns raw stream bytes into sink callbacks. Bytes may arrive split
// at any position; a line is only processed once its newline has arrived.
//
// A Decoder serves a single stream and is not safe for concurrent use.
type Decoder struct {
	sink   vera.EventSink
	logger zerolog.Logger
	carry  []byte
	seen   int
	events int
}

// NewDecoder returns a Decoder delivering to sink.
func NewDecoder(sink vera.EventSink, logger zerolog.Logger) *Decoder {
	return &Decoder{sink: sink, logger: logger}
}

// Write buffers p and processes every line it completes. It never fails.
func (d *Decoder) Write(p []byte) (int, error) {
	d.carry = append(d.carry, p...)
	i := bytes.LastIndexByte(d.carry, '\n')
	if i < 0 {
		return len(p), nil
	}
	complete := d.carry[:i]
	rest := bytes.Clone(d.carry[i+1:])
	for _, line := range bytes.Split(complete, []byte{'\n'}) {
		d.line(line)
	}
	d.carry = rest
	return len(p), nil
}

// Snapshot accepts the whole response received so far, for transports that
// only expose the accumulated body. Only the bytes beyond the previous
// snapshot are processed. Snapshot and Write must not be mixed on one
// Decoder.
func (d *Decoder) Snapshot(body string) {
	if len(body) <= d.seen {
		return
	}
	_, _ = d.Write([]byte(body[d.seen:]))
	d.seen = len(body)
}

// Flush processes buffered bytes as a final line. Call it once the stream
// has ended.
func (d *Decoder) Flush() {
	if len(d.carry) == 0 {
		return
	}
	line := d.carry
	d.carry = nil
	d.line(line)
}

// Events returns the number of callbacks delivered so far.
func (d *Decoder) Events() int {
	return d.events
}

func (d *Decoder) line(line []byte) {
	line = bytes.TrimSuffix(line, []byte{'\r'})
	payload, ok := bytes.CutPrefix(line, []byte(dataPrefix))
	if !ok {
		return
	}
	var f frame
	if err := json.Unmarshal(payload, &f); err != nil {
		d.logger.Warn().Err(err).Bytes("payload", payload).Msg("dropping malformed event")
		return
	}
	switch f.kind {
	case frameText:
		d.events++
		d.sink.OnChunk(f.text)
	case frameSteps:
		d.events++
		d.sink.OnSearchStep(f.steps)
	default:
		d.logger.Debug().Bytes("payload", payload).Msg("ignoring unrecognised event")
	}
}
