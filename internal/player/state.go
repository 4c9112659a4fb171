// internal/player/state.go
package player

// State represents the player state machine.
//
//	Stopped ──Play──▶ Playing ──Pause──▶ Paused
//	   ▲                 │   ◀──Resume──   │
//	   └──────Stop───────┴───────Stop──────┘
//
// A file that plays to its end returns the player to Stopped.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a file is loaded (Playing or Paused).
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}

// CanPause returns true if the state allows pausing.
func (s State) CanPause() bool {
	return s == Playing
}

// CanResume returns true if the state allows resuming.
func (s State) CanResume() bool {
	return s == Paused
}
