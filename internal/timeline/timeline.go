// Package timeline holds the ordered, immutable list of segments a playback
// session steps through.
package timeline

import (
	"fmt"
	"time"

	"github.com/samber/lo"
)

// Timeline is an ordered sequence of segments with precomputed offsets.
// It is never mutated after Build, so it can be shared freely.
type Timeline struct {
	segments []Segment
	offsets  []time.Duration // offsets[i] = start of segment i, offsets[len] = total
}

type buildOptions struct {
	requireSegments bool
}

// Option configures Build.
type Option func(*buildOptions)

// RequireSegments makes Build reject an empty segment list.
func RequireSegments() Option {
	return func(o *buildOptions) { o.requireSegments = true }
}

// Build validates segs and returns a timeline over a private copy of them.
// An empty timeline is valid unless RequireSegments is given; it never plays.
func Build(segs []Segment, opts ...Option) (*Timeline, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	if len(segs) == 0 && o.requireSegments {
		return nil, ErrEmptyNotAllowed
	}

	for i, s := range segs {
		if s.Duration <= 0 {
			return nil, &ConstructionError{Index: i, Kind: s.Kind, Duration: s.Duration}
		}
	}

	t := &Timeline{
		segments: append([]Segment(nil), segs...),
		offsets:  make([]time.Duration, len(segs)+1),
	}
	for i, s := range t.segments {
		t.offsets[i+1] = t.offsets[i] + s.Duration
	}
	return t, nil
}

// Len returns the number of segments.
func (t *Timeline) Len() int {
	return len(t.segments)
}

// IsEmpty returns true if the timeline has no segments.
func (t *Timeline) IsEmpty() bool {
	return len(t.segments) == 0
}

// TotalDuration returns the sum of all segment durations.
func (t *Timeline) TotalDuration() time.Duration {
	return t.offsets[len(t.segments)]
}

// Segment returns the segment at index i.
func (t *Timeline) Segment(i int) (Segment, error) {
	if err := t.Validate(i); err != nil {
		return Segment{}, err
	}
	return t.segments[i], nil
}

// Segments returns a copy of all segments.
func (t *Timeline) Segments() []Segment {
	return append([]Segment(nil), t.segments...)
}

// Validate returns an *IndexOutOfRangeError if i is not a segment index.
func (t *Timeline) Validate(i int) error {
	if i < 0 || i >= len(t.segments) {
		return &IndexOutOfRangeError{Index: i, Count: len(t.segments)}
	}
	return nil
}

// OffsetOf returns the cumulative start time of segment i.
// OffsetOf(Len()) is the total duration, so callers can draw the end marker.
func (t *Timeline) OffsetOf(i int) (time.Duration, error) {
	if i < 0 || i > len(t.segments) {
		return 0, &IndexOutOfRangeError{Index: i, Count: len(t.segments)}
	}
	return t.offsets[i], nil
}

// IndexAt returns the index of the segment current at elapsed time d.
// Times before zero clamp to the first segment and times at or past the
// total clamp to the last. Returns -1 for an empty timeline.
func (t *Timeline) IndexAt(d time.Duration) int {
	if len(t.segments) == 0 {
		return -1
	}
	_, idx, found := lo.FindLastIndexOf(t.offsets[:len(t.segments)], func(off time.Duration) bool {
		return off <= d
	})
	if !found {
		return 0
	}
	return idx
}

// FormatClock renders d as m:ss, truncating to whole seconds.
func FormatClock(d time.Duration) string {
	d = max(d, 0)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
