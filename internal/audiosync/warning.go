package audiosync

import "fmt"

// PlaybackWarning is a non-fatal audio failure. It is logged and reported,
// never returned from playback operations.
type PlaybackWarning struct {
	TrackRef string
	Op       string // "start" or "resume"
	Err      error
}

func (w *PlaybackWarning) Error() string {
	return fmt.Sprintf("audio %s %q: %v", w.Op, w.TrackRef, w.Err)
}

func (w *PlaybackWarning) Unwrap() error {
	return w.Err
}
