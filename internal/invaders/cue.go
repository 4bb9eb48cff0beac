package invaders

// Cue is a sound trigger raised during a frame. Front-ends decide what, if
// anything, to play.
type Cue int

const (
	CuePlayerFire Cue = iota
	CueAlienFire
	CueAlienHit
	CueShipHit
)

func (c Cue) String() string {
	switch c {
	case CuePlayerFire:
		return "player_fire"
	case CueAlienFire:
		return "alien_fire"
	case CueAlienHit:
		return "alien_hit"
	case CueShipHit:
		return "ship_hit"
	default:
		return "unknown"
	}
}

// Tone is the beep a front-end plays for a cue: a sine at Freq Hz held for
// Seconds.
type Tone struct {
	Freq    float64
	Seconds float64
}

var cueTones = [...]Tone{
	CuePlayerFire: {Freq: 950, Seconds: 0.07},
	CueAlienFire:  {Freq: 420, Seconds: 0.06},
	CueAlienHit:   {Freq: 240, Seconds: 0.12},
	CueShipHit:    {Freq: 110, Seconds: 0.40},
}

// Tone returns the beep for c; unknown cues are silent.
func (c Cue) Tone() Tone {
	if c < 0 || int(c) >= len(cueTones) {
		return Tone{}
	}
	return cueTones[c]
}

// AllCues lists every cue, in declaration order.
func AllCues() []Cue {
	return []Cue{CuePlayerFire, CueAlienFire, CueAlienHit, CueShipHit}
}
