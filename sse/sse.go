// Package sse implements [vera.Streamer] for the answer endpoint's
// server-sent event stream.
//
// The response body is fed to a [Decoder], which buffers partial lines,
// decodes each "data: " payload and classifies it into sink callbacks.
package sse

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/clinicalqa/vera"
)

const (
	// DefaultEndpoint serves streamed answers.
	DefaultEndpoint = "https://vera-assignment-api.vercel.app/api/stream"

	dataPrefix = "data: "
	readSize   = 32 * 1024
)

// Node names carried by the nested payload shape.
const (
	nodeStream         = "STREAM"
	nodeSearchSteps    = "SEARCH_STEPS"
	nodeSearchProgress = "SEARCH_PROGRESS"
)

type frameKind int

const (
	frameUnknown frameKind = iota
	frameText
	frameSteps
)

// frame is one decoded data payload. The server uses two shapes:
//
//	{"type":"STREAM","content":"text"}
//	{"content":{"nodeName":"STREAM"|"SEARCH_STEPS"|"SEARCH_PROGRESS","content":...}}
//
// Both decode into a frame; anything else decodes to frameUnknown.
type frame struct {
	kind  frameKind
	text  string
	steps []vera.ProgressStep
}

// Wire fields are kept raw and type-checked one by one, so a field of an
// unexpected type only disqualifies the rule that reads it.
type wirePayload struct {
	Type    json.RawMessage `json:"type"`
	Content json.RawMessage `json:"content"`
}

type wireNode struct {
	NodeName json.RawMessage `json:"nodeName"`
	Content  json.RawMessage `json:"content"`
}

type wireStep struct {
	Text        json.RawMessage `json:"text"`
	IsActive    json.RawMessage `json:"isActive"`
	IsCompleted json.RawMessage `json:"isCompleted"`
	ExtraInfo   json.RawMessage `json:"extraInfo"`
}

func (f *frame) UnmarshalJSON(b []byte) error {
	*f = frame{}
	if !isJSON(b, '{') {
		return nil
	}
	var p wirePayload
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}

	if typ, _ := jsonString(p.Type); typ == nodeStream {
		if s, ok := jsonString(p.Content); ok {
			f.kind, f.text = frameText, s
			return nil
		}
	}

	if !isJSON(p.Content, '{') {
		return nil
	}
	var n wireNode
	if err := json.Unmarshal(p.Content, &n); err != nil {
		return fmt.Errorf("content: %w", err)
	}
	name, _ := jsonString(n.NodeName)
	switch name {
	case nodeStream:
		if s, ok := jsonString(n.Content); ok {
			f.kind, f.text = frameText, s
		}
	case nodeSearchSteps, nodeSearchProgress:
		if !isJSON(n.Content, '[') {
			return nil
		}
		var items []json.RawMessage
		if err := json.Unmarshal(n.Content, &items); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		f.kind, f.steps = frameSteps, decodeSteps(items)
	}
	return nil
}

// decodeSteps converts step objects, skipping array items that are not
// objects. Fields of the wrong type read as their zero value.
func decodeSteps(items []json.RawMessage) []vera.ProgressStep {
	steps := make([]vera.ProgressStep, 0, len(items))
	for _, item := range items {
		if !isJSON(item, '{') {
			continue
		}
		var w wireStep
		if err := json.Unmarshal(item, &w); err != nil {
			continue
		}
		text, _ := jsonString(w.Text)
		extra, _ := jsonString(w.ExtraInfo)
		steps = append(steps, vera.ProgressStep{
			Text:        text,
			IsActive:    jsonTrue(w.IsActive),
			IsCompleted: jsonTrue(w.IsCompleted),
			ExtraInfo:   extra,
		})
	}
	return steps
}

// jsonTrue reports whether raw is the JSON literal true.
func jsonTrue(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("true"))
}

// isJSON reports whether raw holds a JSON value starting with open.
func isJSON(raw json.RawMessage, open byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == open
}

// jsonString decodes raw when it holds a JSON string. null is not a string.
func jsonString(raw json.RawMessage) (string, bool) {
	if !isJSON(raw, '"') {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
