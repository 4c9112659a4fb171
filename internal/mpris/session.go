// Package mpris exposes the running preview to desktop media controls.
package mpris

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/llehouerou/reelpreview/internal/playback"
	"github.com/llehouerou/reelpreview/internal/timeline"
)

// Session is the part of a preview session media controls can drive.
// *playback.Controller satisfies it.
type Session interface {
	Play() error
	Pause() error
	Toggle() error
	Next() error
	Previous() error
	SeekTo(i int) error
	Snapshot() playback.Snapshot
	Timeline() *timeline.Timeline
}

var _ Session = (*playback.Controller)(nil)

var artExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// artURL returns a file URL for the photo behind ref, or "" when ref is not
// an existing image. Comparison refs use their first photo.
func artURL(ref string) string {
	first, _, _ := strings.Cut(ref, "|")
	if first == "" {
		return ""
	}
	ext := strings.ToLower(filepath.Ext(first))
	if !slices.Contains(artExtensions, ext) {
		return ""
	}
	abs, err := filepath.Abs(first)
	if err != nil {
		return ""
	}
	if _, err := os.Stat(abs); err != nil {
		return ""
	}
	return "file://" + abs
}

// ignoreEdge drops the error from stepping past either end of the reel;
// media keys treat that as a no-op.
func ignoreEdge(err error) error {
	var oor *playback.IndexOutOfRangeError
	if errors.As(err, &oor) {
		return nil
	}
	return err
}
