package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape
type Wave int

const (
	Sine Wave = iota
	Square
)

const (
	confirmFreq     = 880.0
	confirmDuration = 60 * time.Millisecond
	errorFreq       = 110.0
	errorDuration   = 150 * time.Millisecond
	fade            = 10 * time.Millisecond
	toneVolume      = 0.25
)

// tone is a fixed-length oscillator with linear fade in and out
type tone struct {
	freq  float64
	wave  Wave
	rate  beep.SampleRate
	phase float64
	pos   int
	total int
	ramp  int
}

// NewTone returns a streamer of exactly rate.N(d) samples
func NewTone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &tone{
		freq:  freq,
		wave:  wave,
		rate:  rate,
		total: rate.N(d),
		ramp:  min(rate.N(fade), rate.N(d)/2),
	}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	if t.pos >= t.total {
		return 0, false
	}
	for i := range samples {
		if t.pos >= t.total {
			return i, true
		}
		var v float64
		switch t.wave {
		case Sine:
			v = math.Sin(2 * math.Pi * t.phase)
		case Square:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		}
		v *= t.gain()
		samples[i][0], samples[i][1] = v, v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) gain() float64 {
	if t.ramp == 0 {
		return 1
	}
	if t.pos < t.ramp {
		return float64(t.pos) / float64(t.ramp)
	}
	if left := t.total - t.pos; left < t.ramp {
		return float64(left) / float64(t.ramp)
	}
	return 1
}

func (t *tone) Err() error { return nil }

// ConfirmTone is a short high sine blip
func ConfirmTone(rate beep.SampleRate) beep.Streamer {
	return quiet(NewTone(confirmFreq, confirmDuration, Sine, rate))
}

// ErrorTone is a low square buzz
func ErrorTone(rate beep.SampleRate) beep.Streamer {
	return quiet(NewTone(errorFreq, errorDuration, Square, rate))
}

func quiet(s beep.Streamer) beep.Streamer {
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(toneVolume)}
}
