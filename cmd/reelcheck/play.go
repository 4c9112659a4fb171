package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/reelpreview/internal/playback"
	"github.com/llehouerou/reelpreview/internal/reel"
	"github.com/llehouerou/reelpreview/internal/timeline"
)

var errBadSpeed = errors.New("speed must be positive")

type playResult struct {
	Path     string
	Steps    int
	Expected time.Duration
	Measured time.Duration
}

// Drift is how far the measured run was from the expected total.
func (r playResult) Drift() time.Duration {
	return r.Measured - r.Expected
}

func newPlayCmd(e *env) *cobra.Command {
	var (
		speed   float64
		jobs    int
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "play FILE...",
		Short: "Play reels headless and report how long they took",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if speed <= 0 {
				return errBadSpeed
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			var (
				mu  sync.Mutex
				out = cmd.OutOrStdout()
			)
			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(max(jobs, 1))
			for _, path := range args {
				g.Go(func() error {
					r, err := reel.Load(path, e.cfg.Durations)
					if err != nil {
						return err
					}
					res, err := playReel(gctx, r, speed, timelineOptions(e), e.log.With(zap.String("reel", path)))
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					res.Path = path

					mu.Lock()
					defer mu.Unlock()
					_, err = fmt.Fprintf(out, "%s: %d steps in %v (expected %v, drift %+v)\n",
						res.Path, res.Steps, res.Measured.Round(time.Millisecond), res.Expected, res.Drift().Round(time.Millisecond))
					return err
				})
			}
			return g.Wait()
		},
	}

	cmd.Flags().Float64VarP(&speed, "speed", "s", 1, "playback speed multiplier")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 4, "reels played at once")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "give up after this long (0 waits forever)")
	return cmd
}

// scaleTimeline divides every dwell by speed.
func scaleTimeline(r *reel.Reel, speed float64, opts []timeline.Option) (*timeline.Timeline, error) {
	segs := lo.Map(r.Segments, func(s reel.SegmentSpec, _ int) timeline.Segment {
		return timeline.Segment{
			Kind:       s.Kind,
			Duration:   time.Duration(float64(s.Duration) / speed),
			PayloadRef: s.Ref,
		}
	})
	return timeline.Build(segs, opts...)
}

// playReel runs a silent session for r until it finishes or ctx is done.
func playReel(ctx context.Context, r *reel.Reel, speed float64, opts []timeline.Option, log *zap.Logger) (playResult, error) {
	tl, err := scaleTimeline(r, speed, opts)
	if err != nil {
		return playResult{}, err
	}
	res := playResult{Steps: tl.Len(), Expected: tl.TotalDuration()}
	if tl.IsEmpty() {
		return res, nil
	}

	ctrl := playback.New(tl, playback.WithLogger(log))
	defer ctrl.Dispose()
	sub := ctrl.Subscribe()

	start := time.Now()
	if err := ctrl.Play(); err != nil {
		return res, err
	}
	for {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		case snap := <-sub.Updates:
			if snap.HasFinished {
				res.Measured = time.Since(start)
				return res, nil
			}
		}
	}
}
