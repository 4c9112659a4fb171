package audiosync

import (
	"errors"
	"sync"
)

var errNotPaused = errors.New("mock track: not paused")

// MockTrack is a test double for Track that records every call.
type MockTrack struct {
	mu        sync.Mutex
	calls     []string
	startErr  error
	resumeErr error
	playing   bool
	paused    bool
	ended     bool
}

// NewMock creates a new mock track.
func NewMock() *MockTrack {
	return &MockTrack{}
}

func (m *MockTrack) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "start")
	if m.startErr != nil {
		return m.startErr
	}
	m.playing = true
	m.paused = false
	m.ended = false
	return nil
}

func (m *MockTrack) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "pause")
	if m.playing {
		m.playing = false
		m.paused = true
	}
}

func (m *MockTrack) Resume() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "resume")
	if m.resumeErr != nil {
		return m.resumeErr
	}
	if !m.paused {
		return errNotPaused
	}
	m.playing = true
	m.paused = false
	return nil
}

func (m *MockTrack) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "stop")
	m.playing = false
	m.paused = false
}

func (m *MockTrack) Ended() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ended
}

// Test helpers

// Finish simulates the file playing to its end.
func (m *MockTrack) Finish() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playing = false
	m.paused = false
	m.ended = true
}

func (m *MockTrack) SetStartError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startErr = err
}

func (m *MockTrack) SetResumeError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resumeErr = err
}

func (m *MockTrack) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockTrack) Playing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

// Verify MockTrack implements Track at compile time.
var _ Track = (*MockTrack)(nil)
