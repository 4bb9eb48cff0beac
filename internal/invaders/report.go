package invaders

import (
	"fmt"
	"strings"
)

// Outcome is how a session ended.
type Outcome int

const (
	OutcomeInProgress Outcome = iota
	OutcomeShipsLost          // last life spent
	OutcomeOverrun            // an alien reached the defense line
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInProgress:
		return "in_progress"
	case OutcomeShipsLost:
		return "ships_lost"
	case OutcomeOverrun:
		return "overrun"
	default:
		return "unknown"
	}
}

// SessionReport summarises a session for the clipboard and batch tooling.
type SessionReport struct {
	Outcome      Outcome
	Phase        Phase
	Frames       int
	Score        int
	Lives        int
	WavesCleared int
	AliensKilled int
	ShipsLost    int
	FirstHit     int // frame of the first alien kill, -1 if none
}

// Report builds a SessionReport. Kill and loss counts come from sl and are
// zero when the session was built without one.
func (s *Session) Report() SessionReport {
	r := SessionReport{
		Outcome:      s.outcome,
		Phase:        s.phase,
		Frames:       s.frame,
		Score:        s.Score(),
		Lives:        s.Lives(),
		WavesCleared: s.wavesCleared,
		FirstHit:     -1,
	}
	if s.simLog != nil {
		r.AliensKilled = s.simLog.CountCategory("hit", "alien")
		r.ShipsLost = s.simLog.CountCategory("ship", "lost")
		r.FirstHit = s.simLog.FirstFrame("hit", "alien", "")
	}
	return r
}

// String formats the report as a short block of key=value lines.
func (r SessionReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- Alien Invaders session ---\n")
	fmt.Fprintf(&b, "outcome=%s phase=%s frames=%d\n", r.Outcome, r.Phase, r.Frames)
	fmt.Fprintf(&b, "score=%d lives=%d waves_cleared=%d\n", r.Score, r.Lives, r.WavesCleared)
	fmt.Fprintf(&b, "aliens_killed=%d ships_lost=%d first_hit=%d\n", r.AliensKilled, r.ShipsLost, r.FirstHit)
	return b.String()
}
