// internal/playback/state.go
package playback

// State represents the session state machine.
//
//	┌──────┐  play   ┌─────────┐  pause  ┌────────┐
//	│ Idle │ ──────▶ │ Playing │ ──────▶ │ Paused │
//	└──────┘         └─────────┘ ◀────── └────────┘
//	                   ▲     │     play
//	     restart/play  │     │ last segment elapsed
//	                   │     ▼
//	                 ┌──────────┐
//	                 │ Finished │
//	                 └──────────┘
//
// SeekTo keeps Playing sessions playing and leaves every other state
// Paused at the target index. No state is terminal.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StatePaused
	StateFinished
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a segment is on screen mid-session (playing or paused).
func (s State) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}
