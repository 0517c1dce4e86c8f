package sse_test

import (
	"bytes"
	"testing"

	"github.com/clinicalqa/vera"
	"github.com/clinicalqa/vera/mock"
	"github.com/clinicalqa/vera/sse"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDecoder(t *testing.T) (*sse.Decoder, *mock.Recorder, *bytes.Buffer) {
	t.Helper()
	var rec mock.Recorder
	var logs bytes.Buffer
	return sse.NewDecoder(&rec, zerolog.New(&logs).Level(zerolog.DebugLevel)), &rec, &logs
}

func write(t *testing.T, d *sse.Decoder, chunks ...string) {
	t.Helper()
	for _, c := range chunks {
		n, err := d.Write([]byte(c))
		require.NoError(t, err)
		require.Equal(t, len(c), n)
	}
}

func TestDecoder_SplitLine(t *testing.T) {
	t.Parallel()
	d, rec, logs := newDecoder(t)

	write(t, d, `data: {"type":"STR`)
	assert.Empty(t, rec.Events())

	write(t, d, "EAM\",\"content\":\"hi\"}\n")
	assert.Equal(t, []vera.Event{vera.EventTextDelta{Text: "hi"}}, rec.Events())
	assert.NotContains(t, logs.String(), "malformed")
}

func TestDecoder_PayloadShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want []vera.Event
	}{
		{
			name: "flat stream",
			line: `data: {"type":"STREAM","content":"Metformin"}`,
			want: []vera.Event{vera.EventTextDelta{Text: "Metformin"}},
		},
		{
			name: "nested stream",
			line: `data: {"content":{"nodeName":"STREAM","content":" is first line"}}`,
			want: []vera.Event{vera.EventTextDelta{Text: " is first line"}},
		},
		{
			name: "search steps",
			line: `data: {"content":{"nodeName":"SEARCH_STEPS","content":[{"text":"Searching guidelines","isActive":true},{"text":"Reading","isCompleted":true,"extraInfo":"3 sources"}]}}`,
			want: []vera.Event{vera.EventProgressSteps{Steps: []vera.ProgressStep{
				{Text: "Searching guidelines", IsActive: true},
				{Text: "Reading", IsCompleted: true, ExtraInfo: "3 sources"},
			}}},
		},
		{
			name: "search progress",
			line: `data: {"content":{"nodeName":"SEARCH_PROGRESS","content":[{"text":"Ranking"}]}}`,
			want: []vera.Event{vera.EventProgressSteps{Steps: []vera.ProgressStep{{Text: "Ranking"}}}},
		},
		{
			name: "empty step list",
			line: `data: {"content":{"nodeName":"SEARCH_STEPS","content":[]}}`,
			want: []vera.Event{vera.EventProgressSteps{Steps: []vera.ProgressStep{}}},
		},
		{
			name: "stream type with nested node",
			line: `data: {"type":"STREAM","content":{"nodeName":"STREAM","content":"nested"}}`,
			want: []vera.Event{vera.EventTextDelta{Text: "nested"}},
		},
		{
			name: "empty text",
			line: `data: {"type":"STREAM","content":""}`,
			want: []vera.Event{vera.EventTextDelta{Text: ""}},
		},
		{
			name: "trailing carriage return",
			line: "data: {\"type\":\"STREAM\",\"content\":\"crlf\"}\r",
			want: []vera.Event{vera.EventTextDelta{Text: "crlf"}},
		},
		{
			name: "numeric type falls through to node",
			line: `data: {"type":7,"content":{"nodeName":"STREAM","content":"hi"}}`,
			want: []vera.Event{vera.EventTextDelta{Text: "hi"}},
		},
		{
			name: "other type falls through to node",
			line: `data: {"type":"NodeChunk","content":{"nodeName":"STREAM","content":"hi"}}`,
			want: []vera.Event{vera.EventTextDelta{Text: "hi"}},
		},
		{
			name: "off-type step fields read as zero",
			line: `data: {"content":{"nodeName":"SEARCH_STEPS","content":[{"text":"Searching","isActive":"yes"},{"text":3,"isCompleted":true,"extraInfo":["x"]},"junk"]}}`,
			want: []vera.Event{vera.EventProgressSteps{Steps: []vera.ProgressStep{
				{Text: "Searching"},
				{IsCompleted: true},
			}}},
		},
		{name: "numeric node name", line: `data: {"content":{"nodeName":5,"content":"x"}}`},
		{name: "unknown type", line:`data: {"type":"METADATA","content":{"id":1}}`},
		{name: "stream type with object content", line: `data: {"type":"STREAM","content":{"text":"x"}}`},
		{name: "unknown node", line: `data: {"content":{"nodeName":"CITATIONS","content":[]}}`},
		{name: "nested stream with array", line: `data: {"content":{"nodeName":"STREAM","content":["x"]}}`},
		{name: "steps with string", line: `data: {"content":{"nodeName":"SEARCH_STEPS","content":"x"}}`},
		{name: "null content", line: `data: {"type":"STREAM","content":null}`},
		{name: "non-object payload", line: `data: [1,2,3]`},
		{name: "comment line", line: `: keep-alive`},
		{name: "event line", line: `event: message`},
		{name: "missing space after marker", line: `data:{"type":"STREAM","content":"x"}`},
		{name: "blank line", line: ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d, rec, logs := newDecoder(t)
			write(t, d, tt.line+"\n")
			assert.Equal(t, tt.want, rec.Events())
			assert.NotContains(t, logs.String(), "malformed")
		})
	}
}

func TestDecoder_MalformedPayloadDropped(t *testing.T) {
	t.Parallel()
	d, rec, logs := newDecoder(t)

	write(t, d,
		"data: {\"type\":\"STREAM\",\"content\":\"a\"}\n",
		"data: {not json\n",
		"data: {\"type\":\"STREAM\",\"content\":\"b\"}\n",
	)

	assert.Equal(t, "ab", rec.Text())
	assert.Contains(t, logs.String(), "dropping malformed event")
	assert.Contains(t, logs.String(), `"level":"warn"`)
}

func TestDecoder_ManyLinesInOneWrite(t *testing.T) {
	t.Parallel()
	d, rec, _ := newDecoder(t)

	write(t, d, "data: {\"type\":\"STREAM\",\"content\":\"1\"}\n\ndata: {\"type\":\"STREAM\",\"content\":\"2\"}\ndata: {\"type\":\"STR")
	assert.Equal(t, "12", rec.Text())
	assert.Equal(t, 2, d.Events())

	write(t, d, "EAM\",\"content\":\"3\"}\n")
	assert.Equal(t, "123", rec.Text())
}

func TestDecoder_ByteAtATime(t *testing.T) {
	t.Parallel()
	d, rec, _ := newDecoder(t)

	body := "data: {\"content\":{\"nodeName\":\"SEARCH_STEPS\",\"content\":[{\"text\":\"Searching\",\"isActive\":true}]}}\n" +
		"data: {\"type\":\"STREAM\",\"content\":\"Use <drug>aspirin</drug>\"}\n" +
		"data: {\"content\":{\"nodeName\":\"STREAM\",\"content\":\" daily.\"}}\n"
	for i := 0; i < len(body); i++ {
		write(t, d, body[i:i+1])
	}

	events := rec.Events()
	require.Len(t, events, 3)
	assert.Equal(t, vera.EventProgressSteps{Steps: []vera.ProgressStep{{Text: "Searching", IsActive: true}}}, events[0])
	assert.Equal(t, "Use <drug>aspirin</drug> daily.", rec.Text())
}

func TestDecoder_Flush(t *testing.T) {
	t.Parallel()

	t.Run("processes final line without newline", func(t *testing.T) {
		t.Parallel()
		d, rec, _ := newDecoder(t)
		write(t, d, `data: {"type":"STREAM","content":"tail"}`)
		assert.Empty(t, rec.Events())

		d.Flush()
		assert.Equal(t, "tail", rec.Text())

		d.Flush()
		assert.Len(t, rec.Events(), 1)
	})

	t.Run("incomplete final line is logged and dropped", func(t *testing.T) {
		t.Parallel()
		d, rec, logs := newDecoder(t)
		write(t, d, `data: {"type":"STREAM","con`)
		d.Flush()
		assert.Empty(t, rec.Events())
		assert.Contains(t, logs.String(), "dropping malformed event")
	})
}

func TestDecoder_Snapshot(t *testing.T) {
	t.Parallel()
	d, rec, _ := newDecoder(t)

	body := "data: {\"type\":\"STREAM\",\"content\":\"a\"}\ndata: {\"type\":\"STREAM\",\"con"
	d.Snapshot(body)
	assert.Equal(t, "a", rec.Text())

	d.Snapshot(body)
	assert.Equal(t, "a", rec.Text(), "unchanged body is not reprocessed")

	body += "tent\":\"b\"}\n"
	d.Snapshot(body)
	assert.Equal(t, "ab", rec.Text())

	body += "data: {\"type\":\"STREAM\",\"content\":\"c\"}\n"
	d.Snapshot(body)
	assert.Equal(t, "abc", rec.Text())
	assert.Equal(t, 3, d.Events())
}
