package previewbar

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/reelpreview/internal/playback"
	"github.com/llehouerou/reelpreview/internal/timeline"
)

const ms = time.Millisecond

func fiveSegmentTimeline(t *testing.T) *timeline.Timeline {
	t.Helper()
	tl, err := timeline.Build([]timeline.Segment{
		{Kind: timeline.KindIntro, Duration: 1500 * ms},
		{Kind: timeline.KindBefore, Duration: 1500 * ms, PayloadRef: "photos/before.jpg"},
		{Kind: timeline.KindAfter, Duration: 1500 * ms, PayloadRef: "photos/after.jpg"},
		{Kind: timeline.KindComparison, Duration: 3000 * ms},
		{Kind: timeline.KindOutro, Duration: 1500 * ms},
	})
	require.NoError(t, err)
	return tl
}

func TestSegmentWidths(t *testing.T) {
	durs := []time.Duration{1500 * ms, 1500 * ms, 1500 * ms, 3000 * ms, 1500 * ms}

	tests := []struct {
		name  string
		durs  []time.Duration
		width int
		want  []int
	}{
		{"proportional", durs, 18, []int{3, 3, 3, 6, 3}},
		{"one cell each", durs, 5, []int{1, 1, 1, 1, 1}},
		{"narrower than segments", durs, 2, []int{1, 0, 0, 1, 0}},
		{"single segment", []time.Duration{time.Second}, 7, []int{7}},
		{"empty", nil, 10, nil},
		{"zero width", durs, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, segmentWidths(tt.durs, tt.width))
		})
	}
}

func TestSegmentWidthsAlwaysSumToWidth(t *testing.T) {
	durs := []time.Duration{700 * ms, 1300 * ms, 2900 * ms, 100 * ms}
	for width := 4; width < 80; width++ {
		sum := 0
		for _, w := range segmentWidths(durs, width) {
			assert.GreaterOrEqual(t, w, 1)
			sum += w
		}
		assert.Equal(t, width, sum, "width %d", width)
	}
}

func TestFilledCells(t *testing.T) {
	assert.Equal(t, 0, filledCells(0, 0, time.Second, 10))
	assert.Equal(t, 5, filledCells(500*ms, 0, time.Second, 10))
	assert.Equal(t, 10, filledCells(2*time.Second, 0, time.Second, 10))
	assert.Equal(t, 0, filledCells(time.Second, 2*time.Second, time.Second, 10))
	assert.Equal(t, 0, filledCells(time.Second, 0, 0, 10))
}

func TestRender_Paused(t *testing.T) {
	tl := fiveSegmentTimeline(t)
	seg, err := tl.Segment(1)
	require.NoError(t, err)
	snap := playback.Snapshot{
		State:   playback.StatePaused,
		Index:   1,
		Count:   5,
		Segment: &seg,
		Elapsed: 2250 * ms,
		Total:   9 * time.Second,
	}

	out := Render("Makeover", snap, tl, 60)
	lines := strings.Split(ansi.Strip(out), "\n")
	require.Len(t, lines, Height)

	assert.Contains(t, lines[0], "⏸ Makeover")
	assert.True(t, strings.HasSuffix(lines[0], "Step 2/5"))
	assert.True(t, strings.HasPrefix(lines[1], "0:02  "))
	assert.True(t, strings.HasSuffix(lines[1], "  0:09"))
	assert.Contains(t, lines[2], "before")
	assert.Contains(t, lines[2], "photos/before.jpg")

	for i, line := range strings.Split(out, "\n")[:2] {
		assert.Equal(t, 60, lipgloss.Width(line), "line %d", i)
	}
}

func TestRender_Finished(t *testing.T) {
	tl := fiveSegmentTimeline(t)
	seg, _ := tl.Segment(4)
	snap := playback.Snapshot{
		State:       playback.StateFinished,
		Index:       4,
		Count:       5,
		Segment:     &seg,
		HasFinished: true,
		Elapsed:     9 * time.Second,
		Total:       9 * time.Second,
	}

	lines := strings.Split(ansi.Strip(Render("Makeover", snap, tl, 40)), "\n")
	assert.Contains(t, lines[0], "■")
	assert.Contains(t, lines[0], "Finished 5/5")
	assert.NotContains(t, lines[1], "░")
}

func TestRender_EmptyTimeline(t *testing.T) {
	tl, err := timeline.Build(nil)
	require.NoError(t, err)
	snap := playback.Snapshot{Index: -1}

	lines := strings.Split(ansi.Strip(Render("Nothing", snap, tl, 40)), "\n")
	require.Len(t, lines, Height)
	assert.Contains(t, lines[0], "empty reel")
	assert.Contains(t, lines[2], "no segments")
}

func TestRender_NarrowFallsBackToTimes(t *testing.T) {
	tl := fiveSegmentTimeline(t)
	seg, _ := tl.Segment(0)
	snap := playback.Snapshot{State: playback.StatePlaying, Count: 5, Segment: &seg, Total: 9 * time.Second}

	lines := strings.Split(ansi.Strip(Render("Makeover", snap, tl, 14)), "\n")
	assert.Equal(t, "0:00 / 0:09", lines[1])
}
