package sound

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain streams s to completion and returns the sample count
func drain(t *testing.T, s beep.Streamer) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 || buf[i][0] != buf[i][1] {
				t.Fatalf("sample %d out of range or unbalanced: %v", total+i, buf[i])
			}
		}
		total += n
		if !ok {
			return total
		}
	}
}

func TestToneLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, w := range []Wave{Sine, Square} {
		got := drain(t, NewTone(440, 100*time.Millisecond, w, rate))
		if want := rate.N(100 * time.Millisecond); got != want {
			t.Errorf("wave %d: %d samples, want %d", w, got, want)
		}
	}
}

func TestToneFadesFromSilence(t *testing.T) {
	s := NewTone(440, 50*time.Millisecond, Square, beep.SampleRate(44100))
	buf := make([][2]float64, 1)
	s.Stream(buf)
	if buf[0][0] != 0 {
		t.Errorf("first sample = %v, want 0", buf[0][0])
	}
}

func TestFeedbackTones(t *testing.T) {
	rate := beep.SampleRate(48000)
	if n := drain(t, ConfirmTone(rate)); n != rate.N(confirmDuration) {
		t.Errorf("confirm tone = %d samples", n)
	}
	if n := drain(t, ErrorTone(rate)); n != rate.N(errorDuration) {
		t.Errorf("error tone = %d samples", n)
	}
}

func TestDisabledPlayerIsSilent(t *testing.T) {
	p := NewPlayer(false)
	if err := p.Init(); err != nil {
		t.Fatal(err)
	}
	p.Confirm()
	p.Error()
	p.Close()
	if p.Enabled() {
		t.Error("disabled player reports enabled")
	}
}
