package vera

import (
	"time"

	"github.com/google/uuid"
)

// Exchange is one question/answer cycle.
type Exchange struct {
	ID        string
	Question  string
	Answer    string // Raw answer buffer, tags included.
	Sections  []Section
	Steps     []ProgressStep
	Err       string
	Cancelled bool
	CreatedAt time.Time
}

// NewExchange starts an exchange for question with a fresh random ID.
func NewExchange(question string) Exchange {
	return Exchange{
		ID:        uuid.NewString(),
		Question:  question,
		CreatedAt: time.Now(),
	}
}

// Failed reports whether the exchange ended with a transport error.
func (e Exchange) Failed() bool {
	return e.Err != ""
}

// Resegment derives Sections from Answer.
func (e *Exchange) Resegment() {
	e.Sections = Segment(e.Answer)
}

// History is the ordered list of finished exchanges of one session.
type History struct {
	Exchanges []Exchange
}

// Append adds a finished exchange.
func (h *History) Append(e Exchange) {
	h.Exchanges = append(h.Exchanges, e)
}

// Len returns the number of exchanges.
func (h History) Len() int {
	return len(h.Exchanges)
}

// Last returns the most recent exchange.
func (h History) Last() (Exchange, bool) {
	if len(h.Exchanges) == 0 {
		return Exchange{}, false
	}
	return h.Exchanges[len(h.Exchanges)-1], true
}
