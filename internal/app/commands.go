package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/reelpreview/internal/audiosync"
	"github.com/llehouerou/reelpreview/internal/playback"
)

const tickInterval = 250 * time.Millisecond

// TickCmd returns a command that sends TickMsg after tickInterval.
func TickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// waitForSnapshot blocks until the subscription delivers an update or closes.
func waitForSnapshot(id string, sub *playback.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case snap := <-sub.Updates:
			return SnapshotMsg{SessionID: id, Snapshot: snap}
		case <-sub.Done:
			return SessionClosedMsg{SessionID: id}
		}
	}
}

func waitForWarning(ch <-chan *audiosync.PlaybackWarning) tea.Cmd {
	return func() tea.Msg {
		return AudioWarningMsg{Warning: <-ch}
	}
}

func waitForReload(ch <-chan ReelChangedMsg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}
