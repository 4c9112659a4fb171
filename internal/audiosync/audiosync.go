// Package audiosync keeps an optional background track in lockstep with a
// playback session. It only reacts to controller events; it never changes
// playback state, and audio failures never reach the visual timeline.
package audiosync

import (
	"sync"

	"go.uber.org/zap"

	"github.com/llehouerou/reelpreview/internal/playback"
)

// Track is an audio resource the synchronizer can drive.
type Track interface {
	Start() error // play from the beginning
	Pause()
	Resume() error
	Stop() // stop and release playback resources

	// Ended reports whether the track played to its end since the last
	// Start. A soundtrack shorter than the reel ends before the session does.
	Ended() bool
}

// Binding describes the track currently associated with the session.
type Binding struct {
	TrackRef string
	IsBound  bool
}

type audioState int

const (
	audioStopped audioState = iota
	audioPlaying
	audioPaused
	audioEnded // played to its end; silent until the next Start
)

// Verify Synchronizer implements playback.Listener at compile time.
var _ playback.Listener = (*Synchronizer)(nil)

// Synchronizer drives a Track from playback events.
type Synchronizer struct {
	mu sync.Mutex

	log       *zap.Logger
	onWarning func(*PlaybackWarning)

	ref   string
	track Track
	audio audioState

	// last session state seen in an event
	sessionPlaying bool
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithLogger sets the logger warnings are written to.
func WithLogger(l *zap.Logger) Option {
	return func(s *Synchronizer) {
		if l != nil {
			s.log = l
		}
	}
}

// WithWarningHandler is called for every audio failure, after it is logged.
// The handler runs with the controller locked and must not call into it.
func WithWarningHandler(fn func(*PlaybackWarning)) Option {
	return func(s *Synchronizer) { s.onWarning = fn }
}

// New creates a synchronizer with no track bound.
func New(opts ...Option) *Synchronizer {
	s := &Synchronizer{log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Binding returns the current binding.
func (s *Synchronizer) Binding() Binding {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Binding{TrackRef: s.ref, IsBound: s.track != nil}
}

// SetTrack binds t under ref, replacing and stopping any previous track.
// If the session is playing, the new track starts from its beginning.
func (s *Synchronizer) SetTrack(ref string, t Track) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	s.ref = ref
	s.track = t
	if t != nil && s.sessionPlaying {
		s.startLocked()
	}
}

// ClearTrack stops and unbinds the current track.
func (s *Synchronizer) ClearTrack() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unbindLocked()
}

// OnEvent implements playback.Listener.
func (s *Synchronizer) OnEvent(e playback.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.checkEndedLocked()

	switch e.Kind {
	case playback.EventStarted:
		s.sessionPlaying = true
		if s.track == nil {
			return
		}
		if e.Resumed {
			switch s.audio {
			case audioPaused:
				s.resumeLocked()
				return
			case audioEnded:
				return
			}
		}
		s.stopLocked()
		s.startLocked()

	case playback.EventPaused:
		s.sessionPlaying = false
		if s.audio == audioPlaying {
			s.track.Pause()
			s.audio = audioPaused
		}

	case playback.EventFinished:
		s.sessionPlaying = false
		s.stopLocked()

	case playback.EventDisposed:
		s.sessionPlaying = false
		s.unbindLocked()

	case playback.EventSeeked, playback.EventAdvanced:
		// Audio runs independently of segment boundaries.
	}
}

// checkEndedLocked notices a track that ran out on its own, so the next
// pause and resume do not act on a player that has nothing loaded.
func (s *Synchronizer) checkEndedLocked() {
	if s.track == nil || (s.audio != audioPlaying && s.audio != audioPaused) {
		return
	}
	if s.track.Ended() {
		s.log.Debug("background track ended before the reel", zap.String("track", s.ref))
		s.audio = audioEnded
	}
}

func (s *Synchronizer) startLocked() {
	if err := s.track.Start(); err != nil {
		s.warnLocked("start", err)
		s.audio = audioStopped
		return
	}
	s.audio = audioPlaying
}

func (s *Synchronizer) resumeLocked() {
	if err := s.track.Resume(); err != nil {
		s.warnLocked("resume", err)
		s.track.Stop()
		s.audio = audioStopped
		return
	}
	s.audio = audioPlaying
}

func (s *Synchronizer) stopLocked() {
	if s.track != nil && s.audio != audioStopped {
		s.track.Stop()
	}
	s.audio = audioStopped
}

func (s *Synchronizer) unbindLocked() {
	s.stopLocked()
	s.track = nil
	s.ref = ""
}

func (s *Synchronizer) warnLocked(op string, err error) {
	w := &PlaybackWarning{TrackRef: s.ref, Op: op, Err: err}
	s.log.Warn("background audio unavailable, continuing silently",
		zap.String("track", s.ref),
		zap.String("op", op),
		zap.Error(err))
	if s.onWarning != nil {
		s.onWarning(w)
	}
}
