// Package player plays a reel's background track through the system speaker.
package player

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extWAV  = ".wav"
)

// ErrNotPaused is returned by Resume when there is nothing to resume.
var ErrNotPaused = errors.New("player: not paused")

var (
	speakerOnce       sync.Once
	speakerErr        error
	speakerSampleRate beep.SampleRate
)

// Player streams one audio file at a time.
type Player struct {
	mu sync.Mutex

	state    State
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	streamer beep.StreamSeekCloser
	done     chan struct{}
	finish   func() // closes done exactly once

	volumeLevel float64
	muted       bool
}

// New creates a stopped player at full volume.
func New() *Player {
	done := make(chan struct{})
	close(done)
	return &Player{
		state:       Stopped,
		done:        done,
		finish:      func() {},
		volumeLevel: 1,
	}
}

// IsAudioFile returns true if path has a supported extension.
func IsAudioFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case extMP3, extFLAC, extWAV:
		return true
	}
	return false
}

// Play starts path from its beginning, replacing whatever was playing.
func (p *Player) Play(path string) error {
	p.Stop()

	streamer, format, err := decode(path)
	if err != nil {
		return err
	}

	speakerOnce.Do(func() {
		speakerSampleRate = format.SampleRate
		speakerErr = speaker.Init(speakerSampleRate, speakerSampleRate.N(time.Second/10))
	})
	if speakerErr != nil {
		streamer.Close()
		return fmt.Errorf("init speaker: %w", speakerErr)
	}

	var out beep.Streamer = streamer
	if format.SampleRate != speakerSampleRate {
		out = beep.Resample(4, format.SampleRate, speakerSampleRate, streamer)
	}

	p.mu.Lock()
	p.streamer = streamer
	p.ctrl = &beep.Ctrl{Streamer: out}
	p.volume = &effects.Volume{Streamer: p.ctrl, Base: 2, Volume: levelToVolume(p.volumeLevel), Silent: p.muted}
	p.state = Playing
	done := make(chan struct{})
	p.done = done
	p.finish = sync.OnceFunc(func() { close(done) })
	vol := p.volume
	p.mu.Unlock()

	// The callback runs with the speaker locked; p.mu is always taken before
	// the speaker lock, so finishing happens on its own goroutine.
	speaker.Play(beep.Seq(vol, beep.Callback(func() {
		go p.finished(done)
	})))
	return nil
}

func (p *Player) finished(done chan struct{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done != done {
		return
	}
	p.state = Stopped
	p.finish()
}

func decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !IsAudioFile(path) {
		return nil, beep.Format{}, fmt.Errorf("unsupported format: %s", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch ext {
	case extMP3:
		streamer, format, err = decodeMP3(f)
	case extFLAC:
		streamer, format, err = flac.Decode(f)
	case extWAV:
		streamer, format, err = wav.Decode(f)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return streamer, format, nil
}

// Stop stops playback and releases the decoder.
func (p *Player) Stop() {
	p.mu.Lock()
	if p.state == Stopped && p.streamer == nil {
		p.mu.Unlock()
		return
	}
	streamer := p.streamer
	p.streamer = nil
	p.ctrl = nil
	p.volume = nil
	p.state = Stopped
	p.finish()
	p.mu.Unlock()

	speaker.Clear()
	if streamer != nil {
		streamer.Close()
	}
}

// Pause pauses playback in place.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Playing || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.state = Paused
}

// Resume continues paused playback from where it stopped.
func (p *Player) Resume() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Paused || p.ctrl == nil {
		return ErrNotPaused
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	p.state = Playing
	return nil
}

// Done is closed when the current file stops, either by playing to its end
// or through Stop. Before the first Play it is already closed.
func (p *Player) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}
