package timeline

import "time"

// Kind identifies what a segment shows. The engine never branches on it;
// renderers do.
type Kind string

const (
	KindIntro      Kind = "intro"
	KindPhoto      Kind = "photo"
	KindBefore     Kind = "before"
	KindAfter      Kind = "after"
	KindComparison Kind = "comparison"
	KindOutro      Kind = "outro"
	KindVideo      Kind = "video"
)

// Segment is one playable unit of a timeline.
type Segment struct {
	Kind       Kind
	Duration   time.Duration // dwell time while playing, always > 0
	PayloadRef string        // resolved by the renderer (image path, photo ID, ...)
}

// NewSegment returns a validated segment.
func NewSegment(kind Kind, d time.Duration, ref string) (Segment, error) {
	s := Segment{Kind: kind, Duration: d, PayloadRef: ref}
	if d <= 0 {
		return Segment{}, &ConstructionError{Index: -1, Kind: kind, Duration: d}
	}
	return s, nil
}
