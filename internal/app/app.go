package app

import (
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/reelpreview/internal/audiosync"
	"github.com/llehouerou/reelpreview/internal/config"
	"github.com/llehouerou/reelpreview/internal/errmsg"
	"github.com/llehouerou/reelpreview/internal/keymap"
	"github.com/llehouerou/reelpreview/internal/notify"
	"github.com/llehouerou/reelpreview/internal/playback"
	"github.com/llehouerou/reelpreview/internal/player"
	"github.com/llehouerou/reelpreview/internal/reel"
)

const defaultWidth = 80

type statusKind int

const (
	statusInfo statusKind = iota
	statusWarning
	statusError
)

// Options configures a preview Model.
type Options struct {
	Config   *config.Config
	Logger   *zap.Logger
	Player   player.Interface // nil previews without sound
	Notifier notify.Notifier  // nil disables the finished notification
	Autoplay bool

	// OnSession is called with every session the model opens, including
	// ones opened after a reload.
	OnSession func(ctrl *playback.Controller, title string)
}

// Model is the bubbletea model driving one reel preview at a time.
type Model struct {
	cfg    *config.Config
	log    *zap.Logger
	player player.Interface
	muted  bool

	notifier  notify.Notifier
	onSession func(*playback.Controller, string)

	session  *session
	snap     playback.Snapshot
	ticking  bool
	autoplay bool

	resolver *keymap.Resolver
	keys     []key.Binding
	help     help.Model

	warnings chan *audiosync.PlaybackWarning
	reloads  chan ReelChangedMsg

	status     string
	statusKind statusKind
	width      int
	quitting   bool
}

// New opens a preview session for r.
func New(r *reel.Reel, opts Options) (*Model, error) {
	if opts.Config == nil {
		opts.Config = &config.Config{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	m := &Model{
		cfg:       opts.Config,
		log:       opts.Logger,
		player:    opts.Player,
		notifier:  opts.Notifier,
		onSession: opts.OnSession,
		autoplay:  opts.Autoplay,
		resolver:  keymap.NewResolver(keymap.All),
		keys:      keymap.HelpBindings(keymap.All),
		help:      help.New(),
		warnings:  make(chan *audiosync.PlaybackWarning, 1),
		reloads:   make(chan ReelChangedMsg, 1),
		width:     defaultWidth,
	}

	s, err := m.openSession(r)
	if err != nil {
		return nil, err
	}
	m.session = s
	m.snap = s.ctrl.Snapshot()
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		waitForSnapshot(m.session.id(), m.session.sub),
		waitForWarning(m.warnings),
		waitForReload(m.reloads),
	}
	if m.autoplay {
		if err := m.session.ctrl.Play(); err != nil {
			m.setStatus(statusError, errmsg.Format(errmsg.OpPlaybackStart, err))
		}
	}
	return tea.Batch(cmds...)
}

// ReelChanged hands a reloaded reel to the running program. It never blocks,
// so it can be passed straight to reel.Watch. Only the latest change is kept.
func (m *Model) ReelChanged(r *reel.Reel, err error) {
	msg := ReelChangedMsg{Reel: r, Err: err}
	select {
	case m.reloads <- msg:
		return
	default:
	}
	select {
	case <-m.reloads:
	default:
	}
	select {
	case m.reloads <- msg:
	default:
	}
}

// Close disposes the current session.
func (m *Model) Close() {
	m.session.ctrl.Dispose()
}

// Snapshot returns the last snapshot the view rendered from.
func (m *Model) Snapshot() playback.Snapshot {
	return m.snap
}

// warn is called from controller listeners and must not block.
func (m *Model) warn(w *audiosync.PlaybackWarning) {
	select {
	case m.warnings <- w:
	default:
		m.log.Debug("dropping audio warning, one already pending", zap.Error(w))
	}
}

func (m *Model) setStatus(kind statusKind, msg string) {
	m.status = msg
	m.statusKind = kind
}

// swap replaces the current session with one built from r. A playing
// preview keeps playing from the first segment of the new reel.
func (m *Model) swap(r *reel.Reel) tea.Cmd {
	next, err := m.openSession(r)
	if err != nil {
		m.setStatus(statusError, errmsg.FormatWith(errmsg.OpReelBuild, r.Title, err))
		return nil
	}

	wasPlaying := m.snap.IsPlaying
	m.session.ctrl.Dispose()
	m.session = next
	m.log.Info("reel reloaded",
		zap.String("session", next.id()),
		zap.Int("segments", next.ctrl.Timeline().Len()),
	)

	if wasPlaying {
		if err := next.ctrl.Play(); err != nil {
			m.setStatus(statusError, errmsg.Format(errmsg.OpPlaybackStart, err))
		}
	}
	m.snap = next.ctrl.Snapshot()
	m.setStatus(statusInfo, "Reel reloaded")
	return waitForSnapshot(next.id(), next.sub)
}

// isEdge reports a next/previous past either end of the reel.
func isEdge(err error) bool {
	var oor *playback.IndexOutOfRangeError
	return errors.As(err, &oor)
}
