// Package playback steps a timeline's segments forward in real time.
//
// A Controller owns one session over one timeline. Each dwell is a
// single-shot timer tagged with a generation token; every operation that
// changes the index, the playing flag or resets state bumps the generation
// before scheduling anything new, so a callback from an older generation is
// a no-op no matter when it fires.
package playback

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/llehouerou/reelpreview/internal/generation"
	"github.com/llehouerou/reelpreview/internal/timeline"
)

// ErrDisposed is returned by every operation on a disposed controller.
var ErrDisposed = errors.New("playback: session disposed")

// IndexOutOfRangeError is returned by SeekTo for an invalid target.
type IndexOutOfRangeError = timeline.IndexOutOfRangeError

// Controller is the playback state machine for one session.
type Controller struct {
	mu sync.Mutex

	id  string
	tl  *timeline.Timeline
	log *zap.Logger

	state        State
	index        int
	gen          generation.Counter
	timer        *time.Timer
	dwellStart   time.Time     // when the current segment's dwell began
	dwellElapsed time.Duration // dwell progress frozen by Pause

	listeners []Listener
	subs      []*Subscription
	disposed  bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for transition tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithListener registers a listener before any transition can happen.
func WithListener(l Listener) Option {
	return func(c *Controller) { c.listeners = append(c.listeners, l) }
}

// WithSessionID overrides the generated session ID.
func WithSessionID(id string) Option {
	return func(c *Controller) { c.id = id }
}

// New creates an Idle session over tl. A non-empty timeline starts on its
// first segment so the renderer has something to show before playback.
func New(tl *timeline.Timeline, opts ...Option) *Controller {
	c := &Controller{
		id:    uuid.NewString(),
		tl:    tl,
		log:   zap.NewNop(),
		state: StateIdle,
		index: -1,
	}
	for _, opt := range opts {
		opt(c)
	}
	if !tl.IsEmpty() {
		c.index = 0
	}
	c.log = c.log.With(zap.String("session", c.id))
	return c
}

// ID returns the session ID.
func (c *Controller) ID() string {
	return c.id
}

// Timeline returns the session's timeline.
func (c *Controller) Timeline() *timeline.Timeline {
	return c.tl
}

// Snapshot returns the current read model.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked(time.Now())
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe creates a push stream of snapshots, one per transition.
// The subscription is closed by Unsubscribe or Dispose.
func (c *Controller) Subscribe() *Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	sub := newSubscription()
	if c.disposed {
		sub.close()
		return sub
	}
	c.subs = append(c.subs, sub)
	return sub
}

// Unsubscribe removes and closes sub.
func (c *Controller) Unsubscribe(sub *Subscription) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, s := range c.subs {
		if s == sub {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			break
		}
	}
	sub.close()
}

// Play starts or resumes playback. Finished sessions start over from the
// first segment. The current segment always gets its full dwell time.
// No-op on an empty timeline or while already playing.
func (c *Controller) Play() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playLocked()
}

func (c *Controller) playLocked() error {
	if c.disposed {
		return ErrDisposed
	}
	if c.tl.IsEmpty() || c.state == StatePlaying {
		return nil
	}

	resumed := c.state == StatePaused
	if c.state == StateFinished || c.index < 0 {
		c.index = 0
	}
	c.state = StatePlaying
	c.startDwellLocked(time.Now())
	c.emitLocked(EventStarted, resumed)
	return nil
}

// Pause stops the pending advance and keeps the current index.
// No-op when not playing.
func (c *Controller) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pauseLocked()
}

func (c *Controller) pauseLocked() error {
	if c.disposed {
		return ErrDisposed
	}
	if c.state != StatePlaying {
		return nil
	}

	c.freezeLocked()
	c.emitLocked(EventPaused, false)
	return nil
}

// Toggle pauses a playing session and plays any other.
func (c *Controller) Toggle() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StatePlaying {
		return c.pauseLocked()
	}
	return c.playLocked()
}

// SeekTo jumps to segment i. A playing session re-dwells the full duration
// of the target; any other session is left Paused on it.
// An invalid index returns an *IndexOutOfRangeError and changes nothing.
func (c *Controller) SeekTo(i int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seekLocked(i)
}

// Next seeks to the following segment.
func (c *Controller) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seekLocked(c.index + 1)
}

// Previous seeks to the preceding segment.
func (c *Controller) Previous() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seekLocked(c.index - 1)
}

func (c *Controller) seekLocked(i int) error {
	if c.disposed {
		return ErrDisposed
	}
	if err := c.tl.Validate(i); err != nil {
		return err
	}

	c.index = i
	if c.state == StatePlaying {
		c.startDwellLocked(time.Now())
	} else {
		c.invalidateLocked()
		c.dwellElapsed = 0
		c.state = StatePaused
	}
	c.emitLocked(EventSeeked, false)
	return nil
}

// Restart plays from the first segment. Unlike SeekTo(0) followed by Play it
// bumps the generation once, so nothing can fire in between.
func (c *Controller) Restart() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return ErrDisposed
	}
	if c.tl.IsEmpty() {
		return nil
	}

	c.index = 0
	c.state = StatePlaying
	c.startDwellLocked(time.Now())
	c.emitLocked(EventStarted, false)
	return nil
}

// Dispose ends the session: the pending advance is invalidated, listeners
// get EventDisposed and subscriptions are closed. Safe to call repeatedly.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return
	}
	if c.state == StatePlaying {
		c.freezeLocked()
	} else {
		c.invalidateLocked()
	}
	c.disposed = true

	ev := Event{Kind: EventDisposed, Snapshot: c.snapshotLocked(time.Now()), At: time.Now()}
	for _, l := range c.listeners {
		l.OnEvent(ev)
	}
	for _, s := range c.subs {
		s.close()
	}
	c.listeners = nil
	c.subs = nil
	c.log.Debug("session disposed")
}

// startDwellLocked bumps the generation and arms a single-shot timer for the
// current segment, counted from start.
func (c *Controller) startDwellLocked(start time.Time) {
	tok := c.invalidateLocked()
	seg, _ := c.tl.Segment(c.index)
	c.dwellStart = start
	c.dwellElapsed = 0
	c.timer = time.AfterFunc(time.Until(start.Add(seg.Duration)), func() {
		c.onTimerFire(tok)
	})
}

// freezeLocked stops a playing dwell where it is.
func (c *Controller) freezeLocked() {
	c.invalidateLocked()
	seg, _ := c.tl.Segment(c.index)
	c.dwellElapsed = min(time.Since(c.dwellStart), seg.Duration)
	c.state = StatePaused
}

// invalidateLocked makes every outstanding callback stale. Stopping the timer
// only releases it early; the generation bump is what makes it harmless.
func (c *Controller) invalidateLocked() generation.Token {
	tok := c.gen.Bump()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	return tok
}

func (c *Controller) onTimerFire(tok generation.Token) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed || !c.gen.IsCurrent(tok) || c.state != StatePlaying {
		c.log.Debug("stale dwell timer ignored", zap.Uint64("generation", uint64(tok)))
		return
	}
	c.timer = nil

	seg, _ := c.tl.Segment(c.index)
	if c.index == c.tl.Len()-1 {
		c.gen.Bump()
		c.state = StateFinished
		c.emitLocked(EventFinished, false)
		return
	}

	// Chain from the previous deadline rather than from now, so callback
	// latency does not accumulate across segments.
	next := c.dwellStart.Add(seg.Duration)
	c.index++
	c.startDwellLocked(next)
	c.emitLocked(EventAdvanced, false)
}

func (c *Controller) snapshotLocked(now time.Time) Snapshot {
	return project(progress{
		sessionID:    c.id,
		gen:          c.gen.Current(),
		tl:           c.tl,
		state:        c.state,
		index:        c.index,
		dwellStart:   c.dwellStart,
		dwellElapsed: c.dwellElapsed,
	}, now)
}

func (c *Controller) emitLocked(kind EventKind, resumed bool) {
	now := time.Now()
	snap := c.snapshotLocked(now)

	c.log.Debug("playback transition",
		zap.Stringer("event", kind),
		zap.Stringer("state", snap.State),
		zap.Int("index", snap.Index),
		zap.Duration("elapsed", snap.Elapsed),
		zap.Bool("resumed", resumed))

	ev := Event{Kind: kind, Snapshot: snap, Resumed: resumed, At: now}
	for _, l := range c.listeners {
		l.OnEvent(ev)
	}
	for _, s := range c.subs {
		s.send(snap)
	}
}
