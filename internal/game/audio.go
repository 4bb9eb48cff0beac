package game

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/Garsondee/Alien-Invaders/internal/invaders"
)

const (
	sampleRate = 44100
	beepAmp    = 0.3
)

// Sound plays one synthesized beep per cue. A nil *Sound is silent.
type Sound struct {
	ctx     *audio.Context
	players map[invaders.Cue]*audio.Player
}

// NewSound creates the audio context and pre-renders every cue's beep. Only
// one audio context may exist per process.
func NewSound() *Sound {
	ctx := audio.NewContext(sampleRate)
	s := &Sound{ctx: ctx, players: make(map[invaders.Cue]*audio.Player)}
	for _, c := range invaders.AllCues() {
		s.players[c] = ctx.NewPlayerFromBytes(beepPCM(c.Tone(), sampleRate))
	}
	return s
}

// Play restarts the beep for each cue raised this frame.
func (s *Sound) Play(cues []invaders.Cue) {
	if s == nil {
		return
	}
	for _, c := range cues {
		p, ok := s.players[c]
		if !ok {
			continue
		}
		_ = p.Rewind()
		p.Play()
	}
}

// beepPCM synthesizes a sine beep as 16-bit little-endian stereo, fading out
// linearly over the last quarter to avoid a click.
func beepPCM(t invaders.Tone, rate int) []byte {
	n := int(float64(rate) * t.Seconds)
	pcm := make([]byte, n*4)
	fadeFrom := n * 3 / 4
	for i := 0; i < n; i++ {
		amp := beepAmp
		if i > fadeFrom {
			amp *= float64(n-i) / float64(n-fadeFrom)
		}
		v := math.Sin(2 * math.Pi * t.Freq * float64(i) / float64(rate))
		s := int16(v * amp * 32767)
		pcm[4*i] = byte(s)
		pcm[4*i+1] = byte(s >> 8)
		pcm[4*i+2] = byte(s)
		pcm[4*i+3] = byte(s >> 8)
	}
	return pcm
}
