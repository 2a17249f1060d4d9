package pipeline

// State is the lifecycle phase of the pipeline. Transitions only move
// forward within a session; terminal states admit a new session.
type State int32

// Pipeline states.
const (
	StateIdle State = iota
	StateInitializing
	StateRecording
	StateFinalizing
	StateCompleted
	StateFailed
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInitializing:
		return "initializing"
	case StateRecording:
		return "recording"
	case StateFinalizing:
		return "finalizing"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state ends a session.
func (s State) Terminal() bool {
	switch s {
	case StateCompleted, StateFailed, StateCancelled:
		return true
	}
	return false
}
