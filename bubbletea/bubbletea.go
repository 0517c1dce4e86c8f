// Package bubbletea provides the Bubble Tea TUI for asking clinical
// questions and reading streamed answers.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/clinicalqa/vera"
)

// Run creates and runs the Bubble Tea program. It blocks until the program
// exits. Finished exchanges are recorded in the model's History. Cancelling
// ctx quits the program.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// StreamEventMsg wraps a stream event for delivery to the model.
type StreamEventMsg struct {
	Event vera.Event
}

// StreamDoneMsg signals that the stream for the current question returned.
type StreamDoneMsg struct {
	Err error
}

// flushMsg asks the model to render updates that were held back by the
// render throttle.
type flushMsg struct{}
