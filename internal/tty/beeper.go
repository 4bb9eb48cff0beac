package tty

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/Garsondee/Alien-Invaders/internal/invaders"
)

const sampleRate = beep.SampleRate(44100)

// Beeper plays cue tones on the system speaker. A nil *Beeper is silent.
type Beeper struct {
	sr beep.SampleRate
}

// NewBeeper initialises the speaker. Callers should run without sound when
// it fails.
func NewBeeper() (*Beeper, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &Beeper{sr: sampleRate}, nil
}

// Play starts one tone per cue; overlapping tones are mixed by the speaker.
func (b *Beeper) Play(cues []invaders.Cue) {
	if b == nil {
		return
	}
	for _, c := range cues {
		if s := b.toneStreamer(c.Tone()); s != nil {
			speaker.Play(s)
		}
	}
}

func (b *Beeper) toneStreamer(t invaders.Tone) beep.Streamer {
	if t.Freq <= 0 || t.Seconds <= 0 {
		return nil
	}
	sine, err := generators.SineTone(b.sr, t.Freq)
	if err != nil {
		return nil
	}
	n := b.sr.N(time.Duration(t.Seconds * float64(time.Second)))
	return &effects.Volume{Streamer: beep.Take(n, sine), Base: 2, Volume: -2}
}

// Close releases the speaker.
func (b *Beeper) Close() {
	if b == nil {
		return
	}
	speaker.Close()
}
