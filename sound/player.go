// Package sound plays short feedback tones
package sound

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// Player mixes feedback tones onto the speaker
// A disabled or failed player silently drops every tone
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	enabled     bool
	initialized bool
}

func NewPlayer(enabled bool) *Player {
	return &Player{mixer: &beep.Mixer{}, enabled: enabled}
}

// Init opens the speaker; on failure the player disables itself and the
// error is returned for logging only
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		p.enabled = false
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Enabled reports whether tones will be heard
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled && p.initialized
}

func (p *Player) Confirm() { p.play(ConfirmTone(sampleRate)) }

func (p *Player) Error() { p.play(ErrorTone(sampleRate)) }

func (p *Player) play(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close drops queued tones
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
