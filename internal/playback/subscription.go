package playback

import "sync"

const updateBufferSize = 16

// Subscription delivers a Snapshot after every transition.
type Subscription struct {
	Updates <-chan Snapshot
	Done    <-chan struct{}

	// Internal write channels
	updatesCh chan Snapshot
	doneCh    chan struct{}
	closeOnce sync.Once
}

// newSubscription creates a new subscription with a buffered channel.
func newSubscription() *Subscription {
	s := &Subscription{
		updatesCh: make(chan Snapshot, updateBufferSize),
		doneCh:    make(chan struct{}),
	}
	s.Updates = s.updatesCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	s.closeOnce.Do(func() { close(s.doneCh) })
}

// send delivers snap without blocking. When the buffer is full the oldest
// pending snapshot is dropped, so a slow reader always ends on the latest state.
func (s *Subscription) send(snap Snapshot) {
	select {
	case s.updatesCh <- snap:
		return
	default:
	}

	select {
	case <-s.updatesCh:
	default:
	}
	select {
	case s.updatesCh <- snap:
	default:
	}
}
