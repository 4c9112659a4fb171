package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/reelpreview/internal/errmsg"
	"github.com/llehouerou/reelpreview/internal/keymap"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case SnapshotMsg:
		if msg.SessionID != m.session.id() {
			return m, nil
		}
		m.snap = msg.Snapshot
		return m, tea.Batch(waitForSnapshot(m.session.id(), m.session.sub), m.ensureTicking())

	case SessionClosedMsg:
		return m, nil

	case TickMsg:
		m.ticking = false
		if m.quitting {
			return m, nil
		}
		m.snap = m.session.ctrl.Snapshot()
		return m, m.ensureTicking()

	case AudioWarningMsg:
		m.setStatus(statusWarning, errmsg.FormatAudioWarning(msg.Warning))
		return m, waitForWarning(m.warnings)

	case ReelChangedMsg:
		var cmd tea.Cmd
		if msg.Err != nil {
			m.setStatus(statusError, errmsg.Format(errmsg.OpReelReload, msg.Err))
		} else {
			cmd = m.swap(msg.Reel)
		}
		return m, tea.Batch(cmd, waitForReload(m.reloads))
	}
	return m, nil
}

// ensureTicking starts the refresh tick while the preview plays.
func (m *Model) ensureTicking() tea.Cmd {
	if m.ticking || !m.snap.IsPlaying {
		return nil
	}
	m.ticking = true
	return TickCmd()
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	ctrl := m.session.ctrl
	k := msg.String()

	var (
		err error
		op  errmsg.Op
	)
	switch m.resolver.Resolve(k) {
	case keymap.ActionQuit:
		m.quitting = true
		ctrl.Dispose()
		return tea.Quit
	case keymap.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case keymap.ActionMute:
		m.toggleMute()
		return nil
	case keymap.ActionPlayPause:
		op = errmsg.OpPlaybackStart
		if m.snap.IsPlaying {
			op = errmsg.OpPlaybackPause
		}
		err = ctrl.Toggle()
	case keymap.ActionRestart:
		op, err = errmsg.OpPlaybackRestart, ctrl.Restart()
	case keymap.ActionNext:
		op, err = errmsg.OpPlaybackSeek, ctrl.Next()
		if isEdge(err) {
			err = nil
		}
	case keymap.ActionPrevious:
		op, err = errmsg.OpPlaybackSeek, ctrl.Previous()
		if isEdge(err) {
			err = nil
		}
	case keymap.ActionJump:
		i, _ := keymap.JumpIndex(k)
		if err := ctrl.SeekTo(i); err != nil {
			m.setStatus(statusError, errmsg.FormatWith(errmsg.OpPlaybackSeek, fmt.Sprint(i+1), err))
			return nil
		}
	default:
		return nil
	}

	if err != nil {
		m.setStatus(statusError, errmsg.Format(op, err))
		return nil
	}
	if m.statusKind == statusError {
		m.setStatus(statusInfo, "")
	}
	m.snap = ctrl.Snapshot()
	return m.ensureTicking()
}

func (m *Model) toggleMute() {
	if m.player == nil {
		m.setStatus(statusInfo, "Audio disabled")
		return
	}
	m.muted = !m.muted
	m.player.SetMuted(m.muted)
	if m.muted {
		m.setStatus(statusInfo, "Muted")
	} else {
		m.setStatus(statusInfo, "")
	}
}
