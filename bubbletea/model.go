package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/clinicalqa/vera"
)

var _ tea.Model = Model{}

// Option configures a Model.
type Option func(*Model)

// WithUpdateInterval sets the minimum time between re-renders caused by
// stream events. Zero or negative disables throttling.
func WithUpdateInterval(d time.Duration) Option {
	return func(m *Model) {
		m.throttle = newThrottle(d)
	}
}

// Model is the Bubble Tea model for the vera TUI.
type Model struct {
	// Input is the question input. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable transcript. Exported for test access.
	Viewport viewport.Model
	// Spinner animates the status line and active steps.
	Spinner spinner.Model

	streamer vera.Streamer
	history  *vera.History
	theme    vera.Theme
	styles   Styles
	throttle *throttle

	blocks     []MessageBlock
	blockFocus int // index of focused section block (-1 = none)

	// State of the exchange being streamed. Blocks from liveStart onward
	// are derived from the segmenter and replaced on every render.
	live      vera.Exchange
	segmenter *vera.Segmenter
	progress  *ProgressBlock
	liveStart int

	running   bool
	cancelled bool
	cancel    context.CancelFunc
	eventCh   chan vera.Event
	doneCh    chan error
	err       error
	ready     bool
}

// New creates a TUI Model that answers questions with streamer. Finished
// exchanges are appended to history, whose existing exchanges are shown
// collapsed on start.
func New(streamer vera.Streamer, history *vera.History, theme vera.Theme, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask a clinical question..."
	ti.Prompt = "> "
	ti.CharLimit = vera.MaxQueryLength
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	if history == nil {
		history = &vera.History{}
	}
	styles := NewStyles(theme)

	m := Model{
		Input:      ti,
		Spinner:    sp,
		streamer:   streamer,
		history:    history,
		theme:      theme,
		styles:     styles,
		throttle:   newThrottle(DefaultUpdateInterval),
		blockFocus: -1,
		segmenter:  &vera.Segmenter{},
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Running returns whether a question is being answered.
func (m Model) Running() bool { return m.running }

// Err returns the error of the last exchange, if any.
func (m Model) Err() error { return m.err }

// History returns the session history, including restored exchanges.
func (m Model) History() *vera.History { return m.history }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.handleWindowSize(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case StreamEventMsg:
		var cmd tea.Cmd
		if m.running && !m.cancelled {
			m, cmd = m.processEvent(msg.Event)
		}
		if m.eventCh != nil {
			return m, tea.Batch(cmd, listenForEvent(m.eventCh, m.doneCh))
		}
		return m, cmd

	case StreamDoneMsg:
		if !m.running {
			return m, nil
		}
		m = m.finish(msg.Err)
		cmd := m.Input.Focus()
		return m, cmd

	case flushMsg:
		m.throttle.flushed()
		if m.running && !m.cancelled {
			m = m.refresh()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		m.progress.SetFrame(m.Spinner.View())
		if m.progress.hasActive() {
			m.Viewport.SetContent(m.renderContent())
		}
		return m, cmd
	}

	// Viewport always receives messages for scrolling (keyboard and mouse).
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)

	if !m.running {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	inputH := 1
	statusHeight := 1
	borderHeight := 2 // newlines between sections
	vpHeight := msg.Height - inputH - statusHeight - borderHeight

	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m = m.renderHistory()
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()

	m.Input.Width = msg.Width - len(m.Input.Prompt) - 1
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.running {
			if !m.cancelled && m.cancel != nil {
				m.cancel()
			}
			m.cancelled = true
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyEnter:
		if m.running {
			return m, nil
		}
		if strings.TrimSpace(m.Input.Value()) == "" {
			return m, nil
		}
		query, err := vera.ValidateQuery(m.Input.Value())
		if err != nil {
			m.err = err
			return m, nil
		}
		return m.submit(query)

	case tea.KeyTab:
		if !m.running && m.blockFocus >= 0 {
			block, cmd := m.blocks[m.blockFocus].Update(ToggleMsg{})
			m.blocks[m.blockFocus] = block
			m.Viewport.SetContent(m.renderContent())
			return m, cmd
		}
		return m, nil

	case tea.KeyShiftTab:
		if !m.running {
			m = m.cycleFocusPrev()
			m.Viewport.SetContent(m.renderContent())
		}
		return m, nil
	}

	// When idle, pass keys to both input (for typing) and viewport
	// (for scrolling). Only forward non-character keys to viewport to avoid
	// conflicts (e.g. 'j'/'k' are viewport scroll AND text characters).
	if !m.running {
		var cmd tea.Cmd
		var cmds []tea.Cmd

		if msg.Type != tea.KeyRunes {
			m.Viewport, cmd = m.Viewport.Update(msg)
			cmds = append(cmds, cmd)
		}

		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)

		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m Model) submit(query string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	m.Input.Blur()
	m.err = nil
	m = m.setFocus(-1)

	m.live = vera.NewExchange(query)
	m.segmenter.Reset()
	m.progress = NewProgressBlock(m.styles)
	m.progress.SetFrame(m.Spinner.View())
	m.blocks = append(m.blocks, NewQuestionBlock(query, m.styles), m.progress)
	m.liveStart = len(m.blocks)

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.cancelled = false
	m.eventCh = make(chan vera.Event, 256)
	m.doneCh = make(chan error, 1)
	m.running = true

	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()

	return m, tea.Batch(
		startStream(ctx, m.streamer, query, m.eventCh, m.doneCh),
		listenForEvent(m.eventCh, m.doneCh),
		m.Spinner.Tick,
	)
}

// processEvent applies one stream event to the live exchange. Text and
// progress updates are rendered subject to the throttle; terminal events
// are rendered immediately.
func (m Model) processEvent(evt vera.Event) (Model, tea.Cmd) {
	switch e := evt.(type) {
	case vera.EventTextDelta:
		m.segmenter.AddChunk(e.Text)
	case vera.EventProgressSteps:
		m.live.Steps = e.Steps
		m.progress.SetSteps(e.Steps)
	case vera.EventFailed:
		m.live.Err = e.Message
		return m.refresh(), nil
	case vera.EventCompleted:
		m.segmenter.Finalize()
		return m.refresh(), nil
	}
	ok, cmd := m.throttle.admit()
	if ok {
		m = m.refresh()
	}
	return m, cmd
}

// refresh rebuilds the live section blocks and re-renders the viewport.
func (m Model) refresh() Model {
	m = m.syncSections(m.segmenter.Sections())
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()
	return m
}

// syncSections replaces the live blocks with blocks for sections. A tagged
// section keeps the collapsed state of the block previously shown at the
// same position for the same tag.
func (m Model) syncSections(sections []vera.Section) Model {
	prev := m.blocks[m.liveStart:]
	blocks := make([]MessageBlock, 0, len(sections))
	for i, s := range sections {
		if !s.Tagged() {
			blocks = append(blocks, NewTextBlock(s.Content, m.theme))
			continue
		}
		collapsed := false
		if i < len(prev) {
			if old, ok := prev[i].(*SectionBlock); ok && old.section.TagName == s.TagName {
				collapsed = old.collapsed
			}
		}
		blocks = append(blocks, NewSectionBlock(s, collapsed, m.theme, m.styles))
	}
	m.blocks = append(m.blocks[:m.liveStart:m.liveStart], blocks...)
	return m
}

// finish closes the live exchange and records it in history.
func (m Model) finish(err error) Model {
	if m.cancel != nil {
		m.cancel()
	}
	m.running = false
	m.cancel = nil
	m.eventCh = nil
	m.doneCh = nil

	if !m.cancelled {
		m = m.syncSections(m.segmenter.Finalize())
	}
	m.live.Answer = m.segmenter.Buffer()
	m.live.Sections = m.segmenter.Sections()
	m.live.Cancelled = m.cancelled
	if err != nil && !m.cancelled && m.live.Err == "" {
		m.live.Err = err.Error()
	}

	switch {
	case m.live.Cancelled:
		m.blocks = append(m.blocks, NewNoticeBlock("Answer cancelled.", m.styles))
	case m.live.Failed():
		m.err = errors.New(m.live.Err)
		m.blocks = append(m.blocks, NewErrorBlock(m.live.Err, m.styles))
	}
	m.history.Append(m.live)
	m.cancelled = false

	m = m.updateBlockFocus()
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()
	return m
}

// renderHistory creates blocks for exchanges restored from history.
func (m Model) renderHistory() Model {
	for _, ex := range m.history.Exchanges {
		m.blocks = append(m.blocks, NewQuestionBlock(ex.Question, m.styles))
		if len(ex.Steps) > 0 {
			pb := NewProgressBlock(m.styles)
			pb.SetSteps(ex.Steps)
			m.blocks = append(m.blocks, pb)
		}
		for _, s := range ex.Sections {
			if s.Tagged() {
				m.blocks = append(m.blocks, NewSectionBlock(s, true, m.theme, m.styles))
			} else {
				m.blocks = append(m.blocks, NewTextBlock(s.Content, m.theme))
			}
		}
		switch {
		case ex.Cancelled:
			m.blocks = append(m.blocks, NewNoticeBlock("Answer cancelled.", m.styles))
		case ex.Failed():
			m.blocks = append(m.blocks, NewErrorBlock(ex.Err, m.styles))
		}
	}
	return m.updateBlockFocus()
}

func (m Model) renderContent() string {
	if len(m.blocks) == 0 {
		return m.styles.Muted.Render("Ask a clinical question to get started.")
	}
	var b strings.Builder
	for _, block := range m.blocks {
		view := block.View(m.Viewport.Width)
		if view == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
			if _, ok := block.(*QuestionBlock); ok {
				b.WriteString("\n")
			}
		}
		b.WriteString(view)
	}
	return b.String()
}

// updateBlockFocus focuses the last section block.
func (m Model) updateBlockFocus() Model {
	for i := len(m.blocks) - 1; i >= 0; i-- {
		if _, ok := m.blocks[i].(*SectionBlock); ok {
			return m.setFocus(i)
		}
	}
	return m.setFocus(-1)
}

// cycleFocusPrev moves blockFocus to the previous section block, wrapping around.
func (m Model) cycleFocusPrev() Model {
	start := m.blockFocus - 1
	if start < 0 {
		start = len(m.blocks) - 1
	}
	for i := range len(m.blocks) {
		idx := (start - i + len(m.blocks)) % len(m.blocks)
		if _, ok := m.blocks[idx].(*SectionBlock); ok {
			return m.setFocus(idx)
		}
	}
	return m.setFocus(-1)
}

func (m Model) setFocus(idx int) Model {
	if m.blockFocus >= 0 && m.blockFocus < len(m.blocks) {
		m.blocks[m.blockFocus].Update(FocusMsg{Focused: false})
	}
	m.blockFocus = idx
	if idx >= 0 {
		m.blocks[idx].Update(FocusMsg{Focused: true})
	}
	return m
}

func (m Model) statusLine() string {
	switch {
	case m.running && m.cancelled:
		return m.styles.Muted.Render("Cancelling...")
	case m.running && len(m.segmenter.Sections()) == 0:
		return m.styles.StepActive.Render(m.Spinner.View()) + " " + m.styles.Muted.Render("Thinking...")
	case m.running:
		return m.styles.StepActive.Render(m.Spinner.View()) + " " + m.styles.Muted.Render("Streaming... Ctrl+C to cancel")
	case m.err != nil:
		return m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err))
	}
	return m.styles.Muted.Render("Enter to ask, Tab to toggle, Shift+Tab to cycle, Ctrl+C to quit")
}

// startStream runs one stream cycle and signals completion. Events are
// dropped once ctx is cancelled so a cancelled cycle never blocks on a
// full channel.
func startStream(ctx context.Context, s vera.Streamer, query string, eventCh chan<- vera.Event, doneCh chan<- error) tea.Cmd {
	return func() tea.Msg {
		h := vera.Begin(ctx, s, query, vera.SinkFunc(func(e vera.Event) {
			select {
			case eventCh <- e:
			case <-ctx.Done():
			}
		}))
		err := h.Wait()
		close(eventCh)
		doneCh <- err
		return nil
	}
}

// listenForEvent waits for the next event from the channel.
// When the channel closes, it reads the error from doneCh and returns StreamDoneMsg.
func listenForEvent(ch <-chan vera.Event, doneCh <-chan error) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			err := <-doneCh
			return StreamDoneMsg{Err: err}
		}
		return StreamEventMsg{Event: evt}
	}
}
