package timeline

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyNotAllowed is returned by Build when RequireSegments is set and no
// segment was supplied.
var ErrEmptyNotAllowed = errors.New("timeline: at least one segment is required")

// ConstructionError reports a segment with a non-positive duration.
type ConstructionError struct {
	Index    int // position in the Build input, -1 for a standalone segment
	Kind     Kind
	Duration time.Duration
}

func (e *ConstructionError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("timeline: %s segment has invalid duration %v", e.Kind, e.Duration)
	}
	return fmt.Sprintf("timeline: segment %d (%s) has invalid duration %v", e.Index, e.Kind, e.Duration)
}

// IndexOutOfRangeError reports an index outside the timeline.
type IndexOutOfRangeError struct {
	Index int
	Count int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("timeline: index %d out of range [0, %d)", e.Index, e.Count)
}
