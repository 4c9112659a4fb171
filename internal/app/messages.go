// Package app contains the bubbletea model for the reel preview.
package app

import (
	"time"

	"github.com/llehouerou/reelpreview/internal/audiosync"
	"github.com/llehouerou/reelpreview/internal/playback"
	"github.com/llehouerou/reelpreview/internal/reel"
)

// TickMsg refreshes the elapsed position between transitions.
type TickMsg time.Time

// SnapshotMsg carries a snapshot pushed by a session subscription.
type SnapshotMsg struct {
	SessionID string
	Snapshot  playback.Snapshot
}

// SessionClosedMsg is sent once a session's subscription is closed.
type SessionClosedMsg struct {
	SessionID string
}

// AudioWarningMsg reports a background audio failure.
type AudioWarningMsg struct {
	Warning *audiosync.PlaybackWarning
}

// ReelChangedMsg is sent when the watched reel file was saved.
type ReelChangedMsg struct {
	Reel *reel.Reel
	Err  error
}
