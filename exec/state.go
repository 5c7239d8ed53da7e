package exec

// State is a task's lifecycle state. Transitions:
//
//	New → Running → Completed
//	New → Canceled
//	Running → Canceled
//
// Completed and Canceled are terminal; no transition leaves them.
type State int

const (
	// StateNew is the only initial state.
	StateNew State = iota

	// StateRunning indicates the action is executing.
	StateRunning

	// StateCompleted indicates the task finished and its delivery step
	// ran without observing cancellation.
	StateCompleted

	// StateCanceled indicates cancellation was observed.
	StateCanceled
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// IsTerminal returns true if no transition leaves the state.
func (s State) IsTerminal() bool {
	return s == StateCompleted || s == StateCanceled
}
