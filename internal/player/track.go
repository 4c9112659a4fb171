package player

import "github.com/llehouerou/reelpreview/internal/audiosync"

// Track binds one audio file to a player so the synchronizer can drive it.
type Track struct {
	p    Interface
	path string
}

// NewTrack returns a Track that plays path on p.
func NewTrack(p Interface, path string) *Track {
	return &Track{p: p, path: path}
}

// Start plays the file from its beginning.
func (t *Track) Start() error { return t.p.Play(t.path) }

// Pause pauses in place.
func (t *Track) Pause() { t.p.Pause() }

// Resume continues from the paused position.
func (t *Track) Resume() error { return t.p.Resume() }

// Stop stops playback and releases the decoder.
func (t *Track) Stop() { t.p.Stop() }

// Ended reports whether the player has nothing loaded anymore. The
// synchronizer only asks while it believes the track is playing or paused,
// so a closed Done channel there means the file ran out.
func (t *Track) Ended() bool {
	select {
	case <-t.p.Done():
		return true
	default:
		return false
	}
}

// Verify Track implements audiosync.Track at compile time.
var _ audiosync.Track = (*Track)(nil)
