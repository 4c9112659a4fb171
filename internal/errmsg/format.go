// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"errors"
	"fmt"

	"github.com/llehouerou/reelpreview/internal/audiosync"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Reel operations
	OpReelLoad   Op = "load reel"
	OpReelReload Op = "reload reel"
	OpReelWatch  Op = "watch reel"
	OpReelBuild  Op = "build timeline"

	// Playback operations
	OpPlaybackStart   Op = "start playback"
	OpPlaybackPause   Op = "pause playback"
	OpPlaybackSeek    Op = "jump to step"
	OpPlaybackRestart Op = "restart playback"

	// Audio operations
	OpAudioStart  Op = "start background music"
	OpAudioResume Op = "resume background music"

	// Initialization
	OpConfigLoad Op = "load config"
	OpLogInit    Op = "initialize logging"
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// FormatAudioWarning describes a non-fatal audio failure. Playback goes on
// without sound, which the message says.
func FormatAudioWarning(w *audiosync.PlaybackWarning) string {
	if w == nil {
		return ""
	}
	op := OpAudioStart
	if w.Op == "resume" {
		op = OpAudioResume
	}
	return FormatWith(op, w.TrackRef, errors.Unwrap(w)) + " (playing without sound)"
}
