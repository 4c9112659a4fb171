package playback

import (
	"time"

	"github.com/llehouerou/reelpreview/internal/generation"
	"github.com/llehouerou/reelpreview/internal/timeline"
)

// Snapshot is the read model handed to renderers. It is a pure projection of
// controller state and never triggers side effects.
type Snapshot struct {
	SessionID   string
	State       State
	Index       int // -1 when the timeline is empty
	Count       int
	Segment     *timeline.Segment // nil when Index is -1
	IsPlaying   bool
	HasFinished bool
	Elapsed     time.Duration // approximate position within the whole timeline
	Total       time.Duration
	Generation  generation.Token // changes with every transition that rearms or cancels the dwell
}

// Percent returns Elapsed as a fraction of Total in [0, 1].
func (s Snapshot) Percent() float64 {
	if s.Total <= 0 {
		return 0
	}
	return min(float64(s.Elapsed)/float64(s.Total), 1)
}

// Step returns the 1-based step number shown to users, 0 when empty.
func (s Snapshot) Step() int {
	return s.Index + 1
}

// progress is the subset of session state the projection reads.
type progress struct {
	sessionID    string
	gen          generation.Token
	tl           *timeline.Timeline
	state        State
	index        int
	dwellStart   time.Time
	dwellElapsed time.Duration
}

// project derives a Snapshot from session state at time now.
func project(p progress, now time.Time) Snapshot {
	snap := Snapshot{
		SessionID:   p.sessionID,
		Generation:  p.gen,
		State:       p.state,
		Index:       p.index,
		Count:       p.tl.Len(),
		IsPlaying:   p.state == StatePlaying,
		HasFinished: p.state == StateFinished,
		Total:       p.tl.TotalDuration(),
	}
	if p.index < 0 {
		return snap
	}

	seg, err := p.tl.Segment(p.index)
	if err != nil {
		snap.Index = -1
		return snap
	}
	snap.Segment = &seg

	switch p.state {
	case StateFinished:
		snap.Elapsed = snap.Total
		return snap
	case StatePlaying:
		snap.Elapsed = min(max(now.Sub(p.dwellStart), 0), seg.Duration)
	default:
		snap.Elapsed = p.dwellElapsed
	}
	offset, _ := p.tl.OffsetOf(p.index)
	snap.Elapsed += offset
	return snap
}
