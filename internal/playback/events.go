package playback

import "time"

// EventKind identifies a controller transition.
type EventKind int

const (
	EventStarted EventKind = iota
	EventPaused
	EventSeeked
	EventAdvanced
	EventFinished
	EventDisposed
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "playback-started"
	case EventPaused:
		return "playback-paused"
	case EventSeeked:
		return "seeked"
	case EventAdvanced:
		return "advanced"
	case EventFinished:
		return "finished"
	case EventDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// Event is emitted to listeners after every transition.
//
// Emitted by:
//   - Play/Restart: EventStarted (Resumed is true only for Paused → Playing)
//   - Pause: EventPaused
//   - SeekTo/Next/Previous: EventSeeked
//   - a segment's dwell elapsing: EventAdvanced, or EventFinished on the last one
//   - Dispose: EventDisposed (listeners only, subscriptions are closed instead)
//
// NOT emitted by no-op calls (Pause while not playing, Play while playing,
// Play on an empty timeline) or by stale timer callbacks.
type Event struct {
	Kind     EventKind
	Snapshot Snapshot
	Resumed  bool
	At       time.Time
}

// Listener receives events synchronously, in transition order, while the
// controller is locked. Implementations must not call back into the
// controller; everything they need is in the event.
type Listener interface {
	OnEvent(e Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(e Event)

// OnEvent calls f(e).
func (f ListenerFunc) OnEvent(e Event) { f(e) }
