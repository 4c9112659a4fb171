package previewbar

import (
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/llehouerou/reelpreview/internal/timeline"
	"github.com/llehouerou/reelpreview/internal/ui/styles"
)

var (
	filledBlock = "▓"
	emptyBlock  = "░"
)

// segmentWidths splits width cells across segments in proportion to their
// durations. Every segment gets at least one cell when width allows it, and
// the result always sums to width.
func segmentWidths(durations []time.Duration, width int) []int {
	n := len(durations)
	if n == 0 || width <= 0 {
		return nil
	}

	total := lo.Sum(durations)

	widths := make([]int, n)
	avail := width
	if width >= n {
		for i := range widths {
			widths[i] = 1
		}
		avail = width - n
	}
	if total <= 0 {
		widths[n-1] += avail
		return widths
	}

	rems := make([]int64, n)
	used := 0
	for i, d := range durations {
		share := int64(avail) * int64(d)
		widths[i] += int(share / int64(total))
		used += int(share / int64(total))
		rems[i] = share % int64(total)
	}

	// Hand leftover cells to the largest remainders.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case rems[a] > rems[b]:
			return -1
		case rems[a] < rems[b]:
			return 1
		}
		return 0
	})
	for _, i := range order[:avail-used] {
		widths[i]++
	}
	return widths
}

// filledCells returns how many of cells are lit for a segment that started
// at offset and lasts dur, given the overall elapsed position.
func filledCells(elapsed, offset, dur time.Duration, cells int) int {
	if dur <= 0 || elapsed <= offset {
		return 0
	}
	if elapsed >= offset+dur {
		return cells
	}
	return min(int(float64(cells)*float64(elapsed-offset)/float64(dur)), cells)
}

// renderSegmentBar draws one colored block run per segment.
// Format: ▓▓▓░░░▓▓▓▓▓▓░░░ with each run tinted by its position in the reel.
func renderSegmentBar(tl *timeline.Timeline, elapsed time.Duration, width int) string {
	segs := tl.Segments()
	if len(segs) == 0 {
		return lipgloss.NewStyle().Foreground(styles.T().Track).Render(strings.Repeat(emptyBlock, max(width, 0)))
	}

	durations := lo.Map(segs, func(s timeline.Segment, _ int) time.Duration { return s.Duration })
	widths := segmentWidths(durations, width)
	colors := styles.SegmentColors(len(segs))
	track := lipgloss.NewStyle().Foreground(styles.T().Track)

	var b strings.Builder
	var offset time.Duration
	for i, w := range widths {
		lit := filledCells(elapsed, offset, durations[i], w)
		b.WriteString(lipgloss.NewStyle().Foreground(colors[i]).Render(strings.Repeat(filledBlock, lit)))
		b.WriteString(track.Render(strings.Repeat(emptyBlock, w-lit)))
		offset += durations[i]
	}
	return b.String()
}
