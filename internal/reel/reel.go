// Package reel loads reel scenarios and turns them into playback timelines.
//
// A scenario file is YAML:
//
//	title: Twelve weeks
//	audio: music/upbeat.mp3
//	segments:
//	  - kind: intro
//	  - kind: before
//	    ref: photos/week-0.jpg
//	  - kind: comparison
//	    duration: 4s
//	    ref: photos/week-0.jpg|photos/week-12.jpg
//
// Durations are Go duration strings with a unit ("1.5s", "750ms"); a bare
// number is rejected. Omitted ones take the configured default for the
// segment kind.
package reel

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/llehouerou/reelpreview/internal/config"
	"github.com/llehouerou/reelpreview/internal/timeline"
)

// ErrMissingKind is returned for a segment without a kind.
var ErrMissingKind = errors.New("segment kind is required")

// Reel is a parsed scenario.
type Reel struct {
	Title    string        `yaml:"title"`
	Audio    string        `yaml:"audio"` // background track, resolved against the file's directory
	Segments []SegmentSpec `yaml:"segments"`
}

// SegmentSpec is one segment as written in the scenario.
type SegmentSpec struct {
	Kind     timeline.Kind `yaml:"kind"`
	Duration time.Duration `yaml:"duration"`
	Ref      string        `yaml:"ref"`
}

// UnmarshalYAML reads the duration as a Go duration string. yaml would
// otherwise decode a bare integer into nanoseconds.
func (s *SegmentSpec) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Kind     timeline.Kind `yaml:"kind"`
		Duration yaml.Node     `yaml:"duration"`
		Ref      string        `yaml:"ref"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*s = SegmentSpec{Kind: raw.Kind, Ref: raw.Ref}

	if raw.Duration.Kind == 0 || raw.Duration.ShortTag() == "!!null" {
		return nil
	}
	if raw.Duration.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a string such as 1.5s", raw.Duration.Line)
	}
	d, err := time.ParseDuration(raw.Duration.Value)
	if err != nil {
		return fmt.Errorf("line %d: duration %q needs a unit such as 1.5s: %w", raw.Duration.Line, raw.Duration.Value, err)
	}
	s.Duration = d
	return nil
}

// Parse decodes a scenario and fills in default durations.
func Parse(data []byte, defaults config.DurationsConfig) (*Reel, error) {
	var r Reel
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse reel: %w", err)
	}

	for i := range r.Segments {
		s := &r.Segments[i]
		if s.Kind == "" {
			return nil, fmt.Errorf("segment %d: %w", i, ErrMissingKind)
		}
		if s.Duration == 0 {
			d, ok := DefaultDuration(defaults, s.Kind)
			if !ok {
				return nil, fmt.Errorf("segment %d: no duration given and no default for kind %q", i, s.Kind)
			}
			s.Duration = d
		}
	}
	return &r, nil
}

// Load reads and parses the scenario at path. A relative audio path is
// resolved against the scenario's directory.
func Load(path string, defaults config.DurationsConfig) (*Reel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r, err := Parse(data, defaults)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if r.Audio != "" && !filepath.IsAbs(r.Audio) {
		r.Audio = filepath.Join(filepath.Dir(path), r.Audio)
	}
	return r, nil
}

// Timeline builds the playback timeline for the reel.
func (r *Reel) Timeline(opts ...timeline.Option) (*timeline.Timeline, error) {
	segs := make([]timeline.Segment, len(r.Segments))
	for i, s := range r.Segments {
		segs[i] = timeline.Segment{Kind: s.Kind, Duration: s.Duration, PayloadRef: s.Ref}
	}
	return timeline.Build(segs, opts...)
}

// DefaultDuration returns the configured dwell for kind.
func DefaultDuration(d config.DurationsConfig, kind timeline.Kind) (time.Duration, bool) {
	switch kind {
	case timeline.KindIntro:
		return d.Intro, true
	case timeline.KindPhoto:
		return d.Photo, true
	case timeline.KindBefore:
		return d.Before, true
	case timeline.KindAfter:
		return d.After, true
	case timeline.KindComparison:
		return d.Comparison, true
	case timeline.KindOutro:
		return d.Outro, true
	case timeline.KindVideo:
		return d.Video, true
	default:
		return 0, false
	}
}
