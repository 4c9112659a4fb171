package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/llehouerou/reelpreview/internal/reel"
	"github.com/llehouerou/reelpreview/internal/timeline"
)

func newScheduleCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule FILE...",
		Short: "Print when each segment of a reel starts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				r, err := reel.Load(path, e.cfg.Durations)
				if err != nil {
					return err
				}
				tl, err := r.Timeline(timelineOptions(e)...)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				if err := writeSchedule(cmd.OutOrStdout(), path, tl); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func timelineOptions(e *env) []timeline.Option {
	if e.cfg.Playback.RequireSegments {
		return []timeline.Option{timeline.RequireSegments()}
	}
	return nil
}

// writeSchedule prints one row per segment followed by the total.
//
//	reels/makeover.yaml
//	STEP  START  DURATION  KIND    REF
//	1     0s     1.5s      intro
//	...
func writeSchedule(w io.Writer, name string, tl *timeline.Timeline) error {
	if _, err := fmt.Fprintln(w, name); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STEP\tSTART\tDURATION\tKIND\tREF")
	for i, seg := range tl.Segments() {
		start, err := tl.OffsetOf(i)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%d\t%v\t%v\t%s\t%s\n", i+1, start, seg.Duration, seg.Kind, seg.PayloadRef)
	}
	fmt.Fprintf(tw, "\t%v\t\ttotal\t\n", tl.TotalDuration())
	return tw.Flush()
}
