//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"go.uber.org/zap"

	"github.com/llehouerou/reelpreview/internal/playback"
)

// Adapter connects the current preview session to MPRIS over D-Bus.
type Adapter struct {
	mu      sync.RWMutex
	session Session
	title   string

	server *server.Server
	log    *zap.Logger
}

// New creates and starts a new MPRIS adapter.
func New(s Session, title string, log *zap.Logger) (*Adapter, error) {
	a := newAdapter(s, title, log)
	a.server = server.NewServer("reelpreview", &rootAdapter{}, &playerAdapter{a: a})

	go func() {
		if err := a.server.Listen(); err != nil {
			a.log.Warn("mpris server stopped", zap.Error(err))
		}
	}()
	return a, nil
}

func newAdapter(s Session, title string, log *zap.Logger) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{session: s, title: title, log: log.Named("mpris")}
}

// SetSession points media controls at a new session, e.g. after the reel
// was reloaded.
func (a *Adapter) SetSession(s Session, title string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = s
	a.title = title
}

func (a *Adapter) current() (Session, string) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session, a.title
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	if a.server == nil {
		return nil
	}
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil
}

func (r *rootAdapter) Quit() error {
	return nil
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Reel Preview", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"application/yaml"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter. Tracks map to
// reel segments; position is the elapsed time of the whole reel.
type playerAdapter struct {
	a *Adapter
}

func (p *playerAdapter) Next() error {
	s, _ := p.a.current()
	return ignoreEdge(s.Next())
}

func (p *playerAdapter) Previous() error {
	s, _ := p.a.current()
	return ignoreEdge(s.Previous())
}

func (p *playerAdapter) Pause() error {
	s, _ := p.a.current()
	return s.Pause()
}

func (p *playerAdapter) PlayPause() error {
	s, _ := p.a.current()
	return s.Toggle()
}

// Stop pauses on the first segment.
func (p *playerAdapter) Stop() error {
	s, _ := p.a.current()
	if err := s.Pause(); err != nil {
		return err
	}
	if s.Snapshot().Count == 0 {
		return nil
	}
	return s.SeekTo(0)
}

func (p *playerAdapter) Play() error {
	s, _ := p.a.current()
	return s.Play()
}

// Seek jumps to the segment containing the current position plus offset.
func (p *playerAdapter) Seek(offset types.Microseconds) error {
	s, _ := p.a.current()
	return seekToPosition(s, s.Snapshot().Elapsed+time.Duration(offset)*time.Microsecond)
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	s, _ := p.a.current()
	return seekToPosition(s, time.Duration(position)*time.Microsecond)
}

func seekToPosition(s Session, pos time.Duration) error {
	i := s.Timeline().IndexAt(max(pos, 0))
	if i < 0 {
		return nil
	}
	return s.SeekTo(i)
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	s, _ := p.a.current()
	return playbackStatus(s.Snapshot()), nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	s, title := p.a.current()
	return metadata(s.Snapshot(), title), nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	s, _ := p.a.current()
	return s.Snapshot().Elapsed.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	s, _ := p.a.current()
	snap := s.Snapshot()
	return snap.Index >= 0 && snap.Index < snap.Count-1, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	s, _ := p.a.current()
	return s.Snapshot().Index > 0, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	s, _ := p.a.current()
	return s.Snapshot().Count > 0, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func playbackStatus(snap playback.Snapshot) types.PlaybackStatus {
	switch snap.State {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying
	case playback.StatePaused:
		return types.PlaybackStatusPaused
	case playback.StateIdle, playback.StateFinished:
		return types.PlaybackStatusStopped
	}
	return types.PlaybackStatusStopped
}

func metadata(snap playback.Snapshot, title string) types.Metadata {
	if snap.Segment == nil {
		return types.Metadata{}
	}

	meta := types.Metadata{
		TrackId:     dbus.ObjectPath(formatTrackID(snap.SessionID, snap.Index)),
		Length:      types.Microseconds(snap.Total.Microseconds()),
		Title:       fmt.Sprintf("Step %d/%d: %s", snap.Step(), snap.Count, snap.Segment.Kind),
		Album:       title,
		TrackNumber: snap.Step(),
	}
	if u := artURL(snap.Segment.PayloadRef); u != "" {
		meta.ArtUrl = u
	}
	return meta
}

func formatTrackID(sessionID string, index int) string {
	h := fnv.New64a()
	h.Write([]byte(sessionID))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x_%d", h.Sum64(), index)
}
