package vera

// ProgressStep is one step of the backend's multi-step search process.
type ProgressStep struct {
	Text        string `json:"text"`
	IsActive    bool   `json:"isActive,omitempty"`
	IsCompleted bool   `json:"isCompleted,omitempty"`
	ExtraInfo   string `json:"extraInfo,omitempty"`
}

// StepState classifies a step for display.
type StepState int

const (
	StepPending   StepState = iota // Neither active nor completed.
	StepActive                     // Currently running.
	StepCompleted                  // Finished.
)

// State returns the display state of the step. Active wins over completed
// when the backend reports both.
func (s ProgressStep) State() StepState {
	switch {
	case s.IsActive:
		return StepActive
	case s.IsCompleted:
		return StepCompleted
	default:
		return StepPending
	}
}
