package reel

import (
	"github.com/samber/lo"

	"github.com/llehouerou/reelpreview/internal/config"
	"github.com/llehouerou/reelpreview/internal/timeline"
)

// ComparisonRef joins the two photos shown side by side.
func ComparisonRef(before, after string) string {
	return before + "|" + after
}

// Transformation builds the before/after reel: intro, before, after,
// side-by-side comparison, outro. An empty intro or outro ref drops that
// segment.
func Transformation(intro, before, after, outro string, d config.DurationsConfig) *Reel {
	var segs []SegmentSpec
	if intro != "" {
		segs = append(segs, SegmentSpec{Kind: timeline.KindIntro, Duration: d.Intro, Ref: intro})
	}
	segs = append(segs,
		SegmentSpec{Kind: timeline.KindBefore, Duration: d.Before, Ref: before},
		SegmentSpec{Kind: timeline.KindAfter, Duration: d.After, Ref: after},
		SegmentSpec{Kind: timeline.KindComparison, Duration: d.Comparison, Ref: ComparisonRef(before, after)},
	)
	if outro != "" {
		segs = append(segs, SegmentSpec{Kind: timeline.KindOutro, Duration: d.Outro, Ref: outro})
	}
	return &Reel{Title: "Transformation", Segments: segs}
}

// Progress builds the progress reel: intro, one segment per photo in order,
// outro. An empty intro or outro ref drops that segment.
func Progress(intro string, photos []string, outro string, d config.DurationsConfig) *Reel {
	var segs []SegmentSpec
	if intro != "" {
		segs = append(segs, SegmentSpec{Kind: timeline.KindIntro, Duration: d.Intro, Ref: intro})
	}
	segs = append(segs, lo.Map(photos, func(ref string, _ int) SegmentSpec {
		return SegmentSpec{Kind: timeline.KindPhoto, Duration: d.Photo, Ref: ref}
	})...)
	if outro != "" {
		segs = append(segs, SegmentSpec{Kind: timeline.KindOutro, Duration: d.Outro, Ref: outro})
	}
	return &Reel{Title: "Progress", Segments: segs}
}
