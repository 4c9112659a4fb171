package app

import (
	"go.uber.org/zap"

	"github.com/llehouerou/reelpreview/internal/audiosync"
	"github.com/llehouerou/reelpreview/internal/notify"
	"github.com/llehouerou/reelpreview/internal/playback"
	"github.com/llehouerou/reelpreview/internal/player"
	"github.com/llehouerou/reelpreview/internal/reel"
	"github.com/llehouerou/reelpreview/internal/timeline"
)

// session is one preview of one reel: a controller, its audio follower and
// the subscription feeding the view.
type session struct {
	reel  *reel.Reel
	ctrl  *playback.Controller
	audio *audiosync.Synchronizer
	sub   *playback.Subscription
}

func (m *Model) openSession(r *reel.Reel) (*session, error) {
	var opts []timeline.Option
	if m.cfg.Playback.RequireSegments {
		opts = append(opts, timeline.RequireSegments())
	}
	tl, err := r.Timeline(opts...)
	if err != nil {
		return nil, err
	}

	audio := audiosync.New(audiosync.WithLogger(m.log), audiosync.WithWarningHandler(m.warn))
	switch {
	case r.Audio == "" || m.player == nil || !m.cfg.AudioEnabled():
	case !player.IsAudioFile(r.Audio):
		m.log.Warn("unsupported background track, previewing without sound", zap.String("track", r.Audio))
	default:
		audio.SetTrack(r.Audio, player.NewTrack(m.player, r.Audio))
	}

	ctrlOpts := []playback.Option{playback.WithLogger(m.log), playback.WithListener(audio)}
	s := &session{reel: r, audio: audio}
	if m.notifier != nil {
		ctrlOpts = append(ctrlOpts, playback.WithListener(notify.NewFinishedListener(m.notifier, s.title(), m.log)))
	}
	s.ctrl = playback.New(tl, ctrlOpts...)
	s.sub = s.ctrl.Subscribe()
	if m.onSession != nil {
		m.onSession(s.ctrl, s.title())
	}
	return s, nil
}

func (s *session) id() string {
	return s.ctrl.ID()
}

func (s *session) title() string {
	if s.reel.Title != "" {
		return s.reel.Title
	}
	return "Untitled reel"
}
