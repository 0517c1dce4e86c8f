package anthropic

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// reader assembles SSE events from a response body.
type reader struct {
	scanner *bufio.Scanner
}

func newReader(body io.Reader) *reader {
	return &reader{scanner: bufio.NewScanner(body)}
}

// next reads lines until a complete SSE event is assembled and returns its
// type and data payload. It returns io.EOF once the body is exhausted.
func (r *reader) next() (string, string, error) {
	var eventType string
	var dataBuf strings.Builder

	for r.scanner.Scan() {
		line := r.scanner.Text()

		if line == "" {
			// Empty line signals end of event.
			if dataBuf.Len() > 0 {
				return eventType, dataBuf.String(), nil
			}
			continue
		}

		if v, ok := strings.CutPrefix(line, "event: "); ok {
			eventType = v
		} else if v, ok := strings.CutPrefix(line, "data: "); ok {
			if dataBuf.Len() > 0 {
				dataBuf.WriteByte('\n')
			}
			dataBuf.WriteString(v)
		}
		// Ignore comments (lines starting with ':') and unknown fields.
	}

	if err := r.scanner.Err(); err != nil {
		return "", "", fmt.Errorf("anthropic: %w", err)
	}
	if dataBuf.Len() > 0 {
		return eventType, dataBuf.String(), nil
	}
	return "", "", io.EOF
}

// textDelta extracts the text of a content_block_delta event. Deltas of
// other kinds, such as thinking or signatures, yield ok == false.
func textDelta(data string) (text string, ok bool, err error) {
	var evt sseContentBlockDelta
	if err := json.Unmarshal([]byte(data), &evt); err != nil {
		return "", false, fmt.Errorf("anthropic: failed to parse content_block_delta: %w", err)
	}
	if evt.Delta.Type != "text_delta" {
		return "", false, nil
	}
	return evt.Delta.Text, true, nil
}

func parseStreamError(data string) error {
	var evt sseError
	if err := json.Unmarshal([]byte(data), &evt); err != nil {
		return fmt.Errorf("anthropic: failed to parse error event: %w", err)
	}
	return fmt.Errorf("anthropic: %s: %s", evt.Error.Type, evt.Error.Message)
}
