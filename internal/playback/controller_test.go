package playback

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/reelpreview/internal/timeline"
)

const ms = time.Millisecond

// recorder collects events in order.
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) OnEvent(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) kinds() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventKind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

func (r *recorder) count(k EventKind) int {
	n := 0
	for _, got := range r.kinds() {
		if got == k {
			n++
		}
	}
	return n
}

func (r *recorder) last() Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

func (r *recorder) all() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// reelTimeline is the five-step transformation reel: intro, before, after,
// comparison, outro.
func reelTimeline(t *testing.T) *timeline.Timeline {
	t.Helper()
	tl, err := timeline.Build([]timeline.Segment{
		{Kind: timeline.KindIntro, Duration: 1500 * ms},
		{Kind: timeline.KindBefore, Duration: 1500 * ms, PayloadRef: "before.jpg"},
		{Kind: timeline.KindAfter, Duration: 1500 * ms, PayloadRef: "after.jpg"},
		{Kind: timeline.KindComparison, Duration: 3000 * ms},
		{Kind: timeline.KindOutro, Duration: 1500 * ms},
	})
	require.NoError(t, err)
	return tl
}

// sleepUntil advances the bubble's clock to start+at and lets fired timers settle.
func sleepUntil(start time.Time, at time.Duration) {
	time.Sleep(time.Until(start.Add(at)))
	synctest.Wait()
}

func TestController_NewSession(t *testing.T) {
	c := New(reelTimeline(t), WithSessionID("reel-1"))
	defer c.Dispose()

	snap := c.Snapshot()
	assert.Equal(t, "reel-1", snap.SessionID)
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, 0, snap.Index)
	assert.Equal(t, 5, snap.Count)
	require.NotNil(t, snap.Segment)
	assert.Equal(t, timeline.KindIntro, snap.Segment.Kind)
	assert.False(t, snap.IsPlaying)
	assert.False(t, snap.HasFinished)
	assert.Equal(t, time.Duration(0), snap.Elapsed)
	assert.Equal(t, 9000*ms, snap.Total)
}

func TestController_UninterruptedPlay_VisitsEverySegment(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		c := New(reelTimeline(t), WithListener(rec))
		defer c.Dispose()

		start := time.Now()
		require.NoError(t, c.Play())

		checkpoints := []struct {
			at      time.Duration
			index   int
			state   State
			elapsed time.Duration
		}{
			{750 * ms, 0, StatePlaying, 750 * ms},
			{2250 * ms, 1, StatePlaying, 2250 * ms},
			{3750 * ms, 2, StatePlaying, 3750 * ms},
			{6000 * ms, 3, StatePlaying, 6000 * ms},
			{8250 * ms, 4, StatePlaying, 8250 * ms},
			{9750 * ms, 4, StateFinished, 9000 * ms},
		}
		for _, cp := range checkpoints {
			sleepUntil(start, cp.at)
			snap := c.Snapshot()
			assert.Equal(t, cp.index, snap.Index, "index at %v", cp.at)
			assert.Equal(t, cp.state, snap.State, "state at %v", cp.at)
			assert.Equal(t, cp.elapsed, snap.Elapsed, "elapsed at %v", cp.at)
		}

		assert.Equal(t, []EventKind{
			EventStarted, EventAdvanced, EventAdvanced, EventAdvanced, EventAdvanced, EventFinished,
		}, rec.kinds())

		var visited []int
		for _, e := range rec.all() {
			visited = append(visited, e.Snapshot.Index)
		}
		assert.Equal(t, []int{0, 1, 2, 3, 4, 4}, visited)

		fin := rec.last()
		assert.Equal(t, 9000*ms, fin.At.Sub(start), "finish time should equal total duration")
		assert.True(t, fin.Snapshot.HasFinished)
		assert.False(t, fin.Snapshot.IsPlaying)
		assert.InDelta(t, 1.0, fin.Snapshot.Percent(), 1e-9)
	})
}

func TestController_AdvanceTimes(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		c := New(reelTimeline(t), WithListener(rec))
		defer c.Dispose()

		start := time.Now()
		require.NoError(t, c.Play())
		sleepUntil(start, 10*time.Second)

		var at []time.Duration
		for _, e := range rec.all() {
			at = append(at, e.At.Sub(start))
		}
		assert.Equal(t, []time.Duration{0, 1500 * ms, 3000 * ms, 4500 * ms, 7500 * ms, 9000 * ms}, at)
	})
}

func TestController_SeekTo_IsIdempotent(t *testing.T) {
	t.Run("paused", func(t *testing.T) {
		c := New(reelTimeline(t))
		defer c.Dispose()

		require.NoError(t, c.SeekTo(2))
		once := c.Snapshot()
		require.NoError(t, c.SeekTo(2))
		assert.Equal(t, once, c.Snapshot())
		assert.Equal(t, StatePaused, once.State)
	})

	t.Run("playing", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			rec := &recorder{}
			c := New(reelTimeline(t), WithListener(rec))
			defer c.Dispose()

			start := time.Now()
			require.NoError(t, c.Play())
			sleepUntil(start, 500*ms)

			require.NoError(t, c.SeekTo(3))
			once := c.Snapshot()
			require.NoError(t, c.SeekTo(3))
			assert.Equal(t, once, c.Snapshot())

			// Only one dwell is pending: exactly one advance 3000ms after the seeks.
			sleepUntil(start, 3400*ms)
			assert.Equal(t, 3, c.Snapshot().Index)
			sleepUntil(start, 3600*ms)
			assert.Equal(t, 4, c.Snapshot().Index)
			assert.Equal(t, 1, rec.count(EventAdvanced))
		})
	})
}

func TestController_PauseThenPlaySameTick_NoDoubleAdvance(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		c := New(reelTimeline(t), WithListener(rec))
		defer c.Dispose()

		start := time.Now()
		require.NoError(t, c.Play())
		sleepUntil(start, 500*ms)

		require.NoError(t, c.Pause())
		require.NoError(t, c.Play())

		// The original dwell would have ended at 1500ms; it is stale now.
		sleepUntil(start, 1750*ms)
		assert.Equal(t, 0, c.Snapshot().Index)
		assert.Equal(t, 0, rec.count(EventAdvanced))

		// The fresh dwell started at 500ms ends at 2000ms.
		sleepUntil(start, 2250*ms)
		assert.Equal(t, 1, c.Snapshot().Index)
		assert.Equal(t, 1, rec.count(EventAdvanced))
	})
}

func TestController_RapidToggle_SingleAdvancePerDwell(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		c := New(reelTimeline(t), WithListener(rec))
		defer c.Dispose()

		start := time.Now()
		require.NoError(t, c.Play())
		for range 10 {
			require.NoError(t, c.Toggle())
			require.NoError(t, c.Toggle())
		}
		assert.Equal(t, StatePlaying, c.State())

		sleepUntil(start, 2*time.Second)
		assert.Equal(t, 1, rec.count(EventAdvanced))
		assert.Equal(t, 1, c.Snapshot().Index)
	})
}

func TestController_StaleTimerRacingPause(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		c := New(reelTimeline(t), WithListener(rec))
		defer c.Dispose()

		require.NoError(t, c.Play())
		c.mu.Lock()
		stale := c.gen.Current()
		c.mu.Unlock()

		require.NoError(t, c.Pause())
		require.NoError(t, c.Play())

		// A callback captured before the pause fires in the same tick.
		c.onTimerFire(stale)
		assert.Equal(t, 0, c.Snapshot().Index)
		assert.Equal(t, 0, rec.count(EventAdvanced))
	})
}

func TestController_PauseResume_PreservesIndex(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		c := New(reelTimeline(t), WithListener(rec))
		defer c.Dispose()

		start := time.Now()
		require.NoError(t, c.Play())
		sleepUntil(start, 2000*ms)
		require.NoError(t, c.Pause())

		paused := c.Snapshot()
		assert.Equal(t, 1, paused.Index)
		assert.Equal(t, StatePaused, paused.State)
		assert.Equal(t, 2000*ms, paused.Elapsed)

		// Nothing moves while paused.
		sleepUntil(start, 7000*ms)
		assert.Equal(t, paused, c.Snapshot())

		require.NoError(t, c.Play())
		resumed := rec.last()
		assert.Equal(t, EventStarted, resumed.Kind)
		assert.True(t, resumed.Resumed)
		assert.Equal(t, 1, resumed.Snapshot.Index)

		// Full dwell again from the resume point.
		sleepUntil(start, 8400*ms)
		assert.Equal(t, 1, c.Snapshot().Index)
		sleepUntil(start, 8600*ms)
		assert.Equal(t, 2, c.Snapshot().Index)
	})
}

func TestController_Pause_NoOpWhenNotPlaying(t *testing.T) {
	rec := &recorder{}
	c := New(reelTimeline(t), WithListener(rec))
	defer c.Dispose()

	require.NoError(t, c.Pause())
	assert.Equal(t, StateIdle, c.State())
	assert.Empty(t, rec.kinds())
}

func TestController_Play_NoOpWhilePlaying(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		c := New(reelTimeline(t), WithListener(rec))
		defer c.Dispose()

		start := time.Now()
		require.NoError(t, c.Play())
		sleepUntil(start, 1000*ms)
		require.NoError(t, c.Play())

		// Dwell is not restarted by the second Play.
		sleepUntil(start, 1600*ms)
		assert.Equal(t, 1, c.Snapshot().Index)
		assert.Equal(t, 1, rec.count(EventStarted))
	})
}

func TestController_SnapshotGeneration(t *testing.T) {
	c := New(reelTimeline(t))
	defer c.Dispose()

	idle := c.Snapshot().Generation
	assert.Equal(t, idle, c.Snapshot().Generation, "reading does not bump")

	require.NoError(t, c.Play())
	playing := c.Snapshot().Generation
	assert.Greater(t, playing, idle)

	require.NoError(t, c.SeekTo(3))
	seeked := c.Snapshot().Generation
	assert.Greater(t, seeked, playing)

	require.NoError(t, c.Pause())
	assert.Greater(t, c.Snapshot().Generation, seeked)
}

func TestController_SeekWhilePlaying_FullDwellOfTarget(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		c := New(reelTimeline(t), WithListener(rec))
		defer c.Dispose()

		start := time.Now()
		require.NoError(t, c.Play())
		sleepUntil(start, 500*ms)

		require.NoError(t, c.SeekTo(3))
		snap := c.Snapshot()
		assert.Equal(t, 3, snap.Index)
		assert.Equal(t, StatePlaying, snap.State)
		assert.Equal(t, 4500*ms, snap.Elapsed)
		assert.Equal(t, EventSeeked, rec.last().Kind)

		sleepUntil(start, 3400*ms)
		assert.Equal(t, 3, c.Snapshot().Index)
		sleepUntil(start, 3600*ms)
		assert.Equal(t, 4, c.Snapshot().Index)
		sleepUntil(start, 5100*ms)
		assert.Equal(t, StateFinished, c.State())
	})
}

func TestController_SeekWhileIdle_DoesNotStartPlayback(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		c := New(reelTimeline(t), WithListener(rec))
		defer c.Dispose()

		start := time.Now()
		require.NoError(t, c.SeekTo(4))
		assert.Equal(t, StatePaused, c.State())

		sleepUntil(start, 5*time.Second)
		assert.Equal(t, 4, c.Snapshot().Index)
		assert.Equal(t, []EventKind{EventSeeked}, rec.kinds())

		require.NoError(t, c.Play())
		sleepUntil(start, 6600*ms)
		assert.Equal(t, StateFinished, c.State())
	})
}

func TestController_SeekTo_OutOfRange(t *testing.T) {
	rec := &recorder{}
	c := New(reelTimeline(t), WithListener(rec))
	defer c.Dispose()
	require.NoError(t, c.SeekTo(2))
	before := c.Snapshot()

	for _, i := range []int{-1, 5, 99} {
		err := c.SeekTo(i)
		var rangeErr *IndexOutOfRangeError
		require.ErrorAs(t, err, &rangeErr, "SeekTo(%d)", i)
		assert.Equal(t, i, rangeErr.Index)
		assert.Equal(t, 5, rangeErr.Count)
	}

	assert.Equal(t, before, c.Snapshot())
	assert.Equal(t, []EventKind{EventSeeked}, rec.kinds())
}

func TestController_NextPrevious(t *testing.T) {
	c := New(reelTimeline(t))
	defer c.Dispose()

	require.NoError(t, c.Next())
	require.NoError(t, c.Next())
	assert.Equal(t, 2, c.Snapshot().Index)

	require.NoError(t, c.Previous())
	assert.Equal(t, 1, c.Snapshot().Index)

	require.NoError(t, c.Previous())
	var rangeErr *IndexOutOfRangeError
	require.ErrorAs(t, c.Previous(), &rangeErr)
	assert.Equal(t, 0, c.Snapshot().Index)

	require.NoError(t, c.SeekTo(4))
	require.ErrorAs(t, c.Next(), &rangeErr)
	assert.Equal(t, 4, c.Snapshot().Index)
}

func TestController_FinishThenRestart(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		c := New(reelTimeline(t), WithListener(rec))
		defer c.Dispose()

		start := time.Now()
		require.NoError(t, c.Play())
		sleepUntil(start, 9500*ms)
		require.Equal(t, StateFinished, c.State())

		require.NoError(t, c.Restart())
		snap := c.Snapshot()
		assert.Equal(t, 0, snap.Index)
		assert.False(t, snap.HasFinished)
		assert.True(t, snap.IsPlaying)

		ev := rec.last()
		assert.Equal(t, EventStarted, ev.Kind)
		assert.False(t, ev.Resumed)

		sleepUntil(start, 11100*ms)
		assert.Equal(t, 1, c.Snapshot().Index)
	})
}

func TestController_PlayAfterFinish_StartsOver(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		c := New(reelTimeline(t), WithListener(rec))
		defer c.Dispose()

		start := time.Now()
		require.NoError(t, c.Play())
		sleepUntil(start, 9500*ms)

		require.NoError(t, c.Play())
		snap := c.Snapshot()
		assert.Equal(t, 0, snap.Index)
		assert.Equal(t, StatePlaying, snap.State)
		assert.False(t, rec.last().Resumed)
	})
}

func TestController_SeekAfterFinish_ClearsFinished(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := New(reelTimeline(t))
		defer c.Dispose()

		start := time.Now()
		require.NoError(t, c.Play())
		sleepUntil(start, 9500*ms)

		require.NoError(t, c.SeekTo(2))
		snap := c.Snapshot()
		assert.False(t, snap.HasFinished)
		assert.Equal(t, StatePaused, snap.State)
		assert.Equal(t, 3000*ms, snap.Elapsed)
	})
}

func TestController_RestartWhilePlaying(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		c := New(reelTimeline(t), WithListener(rec))
		defer c.Dispose()

		start := time.Now()
		require.NoError(t, c.Play())
		sleepUntil(start, 5000*ms)
		require.Equal(t, 3, c.Snapshot().Index)

		require.NoError(t, c.Restart())
		// The comparison dwell would have ended at 7500ms.
		sleepUntil(start, 6400*ms)
		assert.Equal(t, 0, c.Snapshot().Index)
		sleepUntil(start, 6600*ms)
		assert.Equal(t, 1, c.Snapshot().Index)
	})
}

func TestController_Dispose_CancelsPendingWork(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		c := New(reelTimeline(t), WithListener(rec))
		sub := c.Subscribe()

		start := time.Now()
		require.NoError(t, c.Play())
		sleepUntil(start, 500*ms)

		c.mu.Lock()
		inFlight := c.gen.Current()
		c.mu.Unlock()

		c.Dispose()
		after := c.Snapshot()
		assert.False(t, after.IsPlaying)
		assert.Equal(t, EventDisposed, rec.last().Kind)

		// The captured callback fires late and must do nothing.
		c.onTimerFire(inFlight)
		sleepUntil(start, 10*time.Second)
		assert.Equal(t, after, c.Snapshot())
		assert.Equal(t, []EventKind{EventStarted, EventDisposed}, rec.kinds())

		assert.ErrorIs(t, c.Play(), ErrDisposed)
		assert.ErrorIs(t, c.Pause(), ErrDisposed)
		assert.ErrorIs(t, c.SeekTo(1), ErrDisposed)
		assert.ErrorIs(t, c.Restart(), ErrDisposed)
		assert.ErrorIs(t, c.Toggle(), ErrDisposed)

		<-sub.Done
		c.Dispose()
		assert.Len(t, rec.kinds(), 2)
	})
}

func TestController_EmptyTimeline(t *testing.T) {
	tl, err := timeline.Build(nil)
	require.NoError(t, err)

	rec := &recorder{}
	c := New(tl, WithListener(rec))
	defer c.Dispose()

	require.NoError(t, c.Play())
	require.NoError(t, c.Restart())
	snap := c.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, -1, snap.Index)
	assert.Nil(t, snap.Segment)
	assert.Equal(t, 0, snap.Step())

	var rangeErr *IndexOutOfRangeError
	require.ErrorAs(t, c.SeekTo(0), &rangeErr)
	assert.Empty(t, rec.kinds())
}

func TestController_Subscribe_OneUpdatePerTransition(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := New(reelTimeline(t))
		defer c.Dispose()
		sub := c.Subscribe()

		start := time.Now()
		require.NoError(t, c.Play())
		require.NoError(t, c.SeekTo(4))
		sleepUntil(start, 2*time.Second)

		var states []State
		var indices []int
		for range 3 {
			snap := <-sub.Updates
			states = append(states, snap.State)
			indices = append(indices, snap.Index)
		}
		assert.Equal(t, []State{StatePlaying, StatePlaying, StateFinished}, states)
		assert.Equal(t, []int{0, 4, 4}, indices)

		select {
		case extra := <-sub.Updates:
			t.Errorf("unexpected update %+v", extra)
		default:
		}
	})
}

func TestController_Unsubscribe(t *testing.T) {
	c := New(reelTimeline(t))
	defer c.Dispose()

	sub := c.Subscribe()
	c.Unsubscribe(sub)
	<-sub.Done

	require.NoError(t, c.SeekTo(1))
	select {
	case <-sub.Updates:
		t.Error("unsubscribed channel received an update")
	default:
	}
}

func TestController_SubscribeAfterDispose_IsClosed(t *testing.T) {
	c := New(reelTimeline(t))
	c.Dispose()

	sub := c.Subscribe()
	<-sub.Done
}

func TestController_ListenerFunc(t *testing.T) {
	var got []EventKind
	c := New(reelTimeline(t), WithListener(ListenerFunc(func(e Event) {
		got = append(got, e.Kind)
	})))

	require.NoError(t, c.SeekTo(1))
	c.Dispose()
	assert.Equal(t, []EventKind{EventSeeked, EventDisposed}, got)
}
