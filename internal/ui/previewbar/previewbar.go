// Package previewbar renders the playback position of a reel preview.
package previewbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/reelpreview/internal/playback"
	"github.com/llehouerou/reelpreview/internal/timeline"
	"github.com/llehouerou/reelpreview/internal/ui/render"
	"github.com/llehouerou/reelpreview/internal/ui/styles"
)

// Height is the number of lines Render produces.
const Height = 3

// Render draws the title line, the segment bar, and the current segment
// label for snap. The output is exactly Height lines of width cells.
//
//	▶ Makeover                              Step 2/5
//	0:03  ▓▓▓▓▓▓▓▓▓▓▓▓▓▓░░░░░░░░░░░░░░░░░░░░  0:09
//	◐ before  photos/before.jpg
func Render(title string, snap playback.Snapshot, tl *timeline.Timeline, width int) string {
	lines := []string{
		renderHeader(title, snap, width),
		renderProgress(snap, tl, width),
		renderLabel(snap, width),
	}
	return strings.Join(lines, "\n")
}

func statusIcon(snap playback.Snapshot) string {
	s := styles.T().S()
	switch snap.State {
	case playback.StatePlaying:
		return s.Playing.Render("▶")
	case playback.StatePaused:
		return s.Paused.Render("⏸")
	case playback.StateFinished:
		return s.Muted.Render("■")
	default:
		return s.Subtle.Render("·")
	}
}

func renderHeader(title string, snap playback.Snapshot, width int) string {
	s := styles.T().S()
	var step string
	switch {
	case snap.Count == 0:
		step = s.Muted.Render("empty reel")
	case snap.HasFinished:
		step = s.Muted.Render(fmt.Sprintf("Finished %d/%d", snap.Count, snap.Count))
	default:
		step = s.Muted.Render(fmt.Sprintf("Step %d/%d", snap.Step(), snap.Count))
	}

	title = render.Truncate(title, max(width-lipgloss.Width(step)-3, 1))
	left := statusIcon(snap) + " " + styles.TitleGradient(title)
	return render.Row(left, step, width)
}

// renderProgress draws "0:03  <bar>  0:09", falling back to the times alone
// when the bar would be too narrow to read.
func renderProgress(snap playback.Snapshot, tl *timeline.Timeline, width int) string {
	s := styles.T().S()
	posStr := timeline.FormatClock(snap.Elapsed)
	durStr := timeline.FormatClock(snap.Total)

	fixedWidth := lipgloss.Width(posStr) + 2 + 2 + lipgloss.Width(durStr)
	barWidth := width - fixedWidth
	if barWidth < max(snap.Count, 3) {
		return s.Base.Render(posStr + " / " + durStr)
	}

	return s.Base.Render(posStr) + "  " + renderSegmentBar(tl, snap.Elapsed, barWidth) + "  " + s.Muted.Render(durStr)
}

func renderLabel(snap playback.Snapshot, width int) string {
	s := styles.T().S()
	if snap.Segment == nil {
		return s.Subtle.Render(render.Truncate("no segments to preview", width))
	}

	seg := snap.Segment
	label := s.Current.Render(styles.KindGlyph(seg.Kind) + " " + string(seg.Kind))
	if seg.PayloadRef == "" {
		return render.TruncateStyled(label, width)
	}
	ref := render.Truncate(seg.PayloadRef, max(width-lipgloss.Width(label)-2, 1))
	return render.TruncateStyled(label+"  "+s.Muted.Render(ref), width)
}
