package vera

import (
	"regexp"
	"strconv"
	"strings"
)

// openTag matches an opening marker such as <guideline>.
var openTag = regexp.MustCompile(`<(\w+)>`)

// Segmenter turns a growing answer buffer into ordered sections. Every call
// rescans the whole buffer, so callers replace their view with the returned
// list instead of patching it.
//
// A Segmenter is owned by one goroutine; it is not safe for concurrent use.
type Segmenter struct {
	buf      strings.Builder
	sections []Section
}

// Reset clears the buffer and the derived sections.
func (s *Segmenter) Reset() {
	s.buf.Reset()
	s.sections = nil
}

// AddChunk appends text to the buffer and returns the sections derived from
// the whole buffer.
func (s *Segmenter) AddChunk(text string) []Section {
	s.buf.WriteString(text)
	return s.parse()
}

// Finalize rescans the buffer once more at end of stream. It has no other
// effect and may be called repeatedly.
func (s *Segmenter) Finalize() []Section {
	return s.parse()
}

// Sections returns the result of the most recent pass.
func (s *Segmenter) Sections() []Section {
	return s.sections
}

// Buffer returns the raw text accumulated since the last Reset.
func (s *Segmenter) Buffer() string {
	return s.buf.String()
}

func (s *Segmenter) parse() []Section {
	s.sections = Segment(s.buf.String())
	return s.sections
}

// span is a complete tagged region of the buffer.
type span struct {
	start, end int
	name       string
	content    string
}

// Segment splits text into sections. Complete <name>...</name> spans become
// tagged sections, the text between them becomes text sections, and trailing
// text from an unterminated opening marker onward is withheld.
func Segment(text string) []Section {
	var out []Section
	add := func(typ SectionType, content, tag string) {
		out = append(out, Section{
			ID:      "section-" + strconv.Itoa(len(out)),
			Type:    typ,
			Content: content,
			TagName: tag,
		})
	}

	pos := 0
	for _, sp := range findSpans(text) {
		if plain := strings.TrimSpace(text[pos:sp.start]); plain != "" {
			add(SectionText, plain, "")
		}
		add(SectionTypeFor(sp.name), strings.TrimSpace(sp.content), sp.name)
		pos = sp.end
	}

	rest := text[pos:]
	if loc := openTag.FindStringIndex(rest); loc != nil {
		rest = rest[:loc[0]]
	}
	if plain := strings.TrimSpace(rest); plain != "" {
		add(SectionText, plain, "")
	}
	return out
}

// findSpans returns the complete spans of text in order. The closing marker
// must repeat the opener's name exactly and the first one found ends the
// span. An opener without a close is skipped and the scan resumes after it.
func findSpans(text string) []span {
	var spans []span
	pos := 0
	for pos < len(text) {
		loc := openTag.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		start, openEnd := pos+loc[0], pos+loc[1]
		name := text[pos+loc[2] : pos+loc[3]]
		closer := "</" + name + ">"
		i := strings.Index(text[openEnd:], closer)
		if i < 0 {
			pos = openEnd
			continue
		}
		end := openEnd + i + len(closer)
		spans = append(spans, span{
			start:   start,
			end:     end,
			name:    name,
			content: text[openEnd : openEnd+i],
		})
		pos = end
	}
	return spans
}
