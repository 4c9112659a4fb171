package player

import "sync"

// Mock is a test double for Player.
type Mock struct {
	mu        sync.Mutex
	state     State
	muted     bool
	playErr   error
	playCalls []string
	done      chan struct{}
}

// NewMock creates a new mock player for testing.
func NewMock() *Mock {
	done := make(chan struct{})
	close(done)
	return &Mock{state: Stopped, done: done}
}

func (m *Mock) Play(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCalls = append(m.playCalls, path)
	if m.playErr != nil {
		return m.playErr
	}
	m.stopLocked()
	m.state = Playing
	m.done = make(chan struct{})
	return nil
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Playing {
		m.state = Paused
	}
}

func (m *Mock) Resume() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Paused {
		return ErrNotPaused
	}
	m.state = Playing
	return nil
}

func (m *Mock) SetVolume(float64) {}

func (m *Mock) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

func (m *Mock) Done() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.done
}

func (m *Mock) stopLocked() {
	m.state = Stopped
	select {
	case <-m.done:
	default:
		close(m.done)
	}
}

// Test helpers

// Finish simulates the current file playing to its end.
func (m *Mock) Finish() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) SetPlayError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playErr = err
}

func (m *Mock) PlayCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.playCalls...)
}

func (m *Mock) IsMuted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
