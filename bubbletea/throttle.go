package bubbletea

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"
)

// DefaultUpdateInterval is the minimum time between two re-renders driven
// by stream events.
const DefaultUpdateInterval = 100 * time.Millisecond

// throttle limits how often stream events re-render the transcript. An
// event that arrives too early schedules a single flush so the latest
// state is shown once the interval has passed.
type throttle struct {
	limiter  *rate.Limiter
	interval time.Duration
	pending  bool
}

func newThrottle(interval time.Duration) *throttle {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &throttle{limiter: rate.NewLimiter(limit, 1), interval: interval}
}

// admit reports whether the caller may render now. When it may not, the
// returned command delivers a flushMsg after the interval, unless one is
// already scheduled.
func (t *throttle) admit() (bool, tea.Cmd) {
	if t.limiter.Allow() {
		return true, nil
	}
	if t.pending {
		return false, nil
	}
	t.pending = true
	return false, tea.Tick(t.interval, func(time.Time) tea.Msg { return flushMsg{} })
}

// flushed records that a scheduled flush has been delivered.
func (t *throttle) flushed() {
	t.pending = false
}
