package invaders

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/Garsondee/Alien-Invaders/internal/config"
)

// stubWave is a Controller whose predicates the test sets directly.
type stubWave struct {
	score, lives int
	allDead      bool
	reached      bool
	pause        bool
	exploding    bool

	updates     int
	clearPauses int
	ship        *Ship
	cues        []Cue
	updateErr   error
}

func (w *stubWave) Update(in Input, dt float64) error {
	w.updates++
	return w.updateErr
}

func (w *stubWave) Draw(ops []DrawOp) []DrawOp {
	return append(ops, DrawOp{Kind: DrawDefenseLine})
}

func (w *stubWave) Cues() []Cue                   { return w.cues }
func (w *stubWave) Score() int                    { return w.score }
func (w *stubWave) SetScore(score int)            { w.score = score }
func (w *stubWave) Lives() int                    { return w.lives }
func (w *stubWave) SetLives(lives int)            { w.lives = lives }
func (w *stubWave) SetShip(s *Ship)               { w.ship = s }
func (w *stubWave) PauseRequested() bool          { return w.pause }
func (w *stubWave) Exploding() bool               { return w.exploding }
func (w *stubWave) AllAliensDead() bool           { return w.allDead }
func (w *stubWave) AlienReachedDefenseLine() bool { return w.reached }

func (w *stubWave) ClearPause() {
	w.clearPauses++
	w.pause = false
}

// stubFactory hands out stub waves and remembers every one it built.
type stubFactory struct {
	built []*stubWave
	args  [][2]int
}

func (f *stubFactory) make(score, lives int) Controller {
	w := &stubWave{score: score, lives: lives}
	f.built = append(f.built, w)
	f.args = append(f.args, [2]int{score, lives})
	return w
}

func (f *stubFactory) last() *stubWave { return f.built[len(f.built)-1] }

func newStubSession(t *testing.T) (*Session, *stubFactory) {
	t.Helper()
	f := &stubFactory{}
	s := NewSession(config.Defaults(), WithRand(testRNG()), WithWaveFactory(f.make), WithSimLog(NewSimLog(false)))
	return s, f
}

func mustUpdate(t *testing.T, s *Session, in Input) {
	t.Helper()
	if err := s.Update(in, DefaultDT); err != nil {
		t.Fatalf("update in %s: %v", s.Phase(), err)
	}
}

// startSession presses S and runs the NEWWAVE frame.
func startSession(t *testing.T, s *Session) {
	t.Helper()
	mustUpdate(t, s, Keys(KeyStart))
	if s.Phase() != PhaseNewWave {
		t.Fatalf("expected newwave after S, got %s", s.Phase())
	}
	mustUpdate(t, s, Keys())
	if s.Phase() != PhaseActive {
		t.Fatalf("expected active, got %s", s.Phase())
	}
}

func TestSession_StartsInactiveWithPrompt(t *testing.T) {
	s, _ := newStubSession(t)
	if s.Phase() != PhaseInactive || s.Wave() != nil {
		t.Fatal("new session should be inactive with no wave")
	}
	mustUpdate(t, s, Keys())
	if s.Message() != startMessage {
		t.Fatalf("expected start prompt, got %q", s.Message())
	}
	ops := s.Draw()
	if len(ops) != 1 || ops[0].Kind != DrawText || ops[0].Text != startMessage || ops[0].Size != messageSize {
		t.Fatalf("expected just the prompt, got %+v", ops)
	}
}

func TestSession_StartBuildsFreshWave(t *testing.T) {
	s, f := newStubSession(t)
	startSession(t, s)
	if len(f.args) != 1 || f.args[0] != [2]int{0, 3} {
		t.Fatalf("expected one wave built with score 0 lives 3, got %v", f.args)
	}
	if s.Message() != "" {
		t.Fatalf("prompt should be cleared, got %q", s.Message())
	}
	mustUpdate(t, s, Keys())
	if f.last().updates != 1 {
		t.Fatalf("active frame should update the wave once, got %d", f.last().updates)
	}
	var texts []string
	for _, op := range s.Draw() {
		if op.Kind == DrawText {
			texts = append(texts, op.Text)
		}
	}
	if strings.Join(texts, "|") != "Player Lives: 3|Score: 0" {
		t.Fatalf("unexpected HUD %v", texts)
	}
}

func TestSession_HeldKeyBlocksStart(t *testing.T) {
	s, _ := newStubSession(t)
	held := Keys(KeyLeft)
	mustUpdate(t, s, held)
	mustUpdate(t, s, Keys(KeyStart, KeyLeft))
	if s.Phase() != PhaseInactive {
		t.Fatal("S pressed while another key was already held should be ignored")
	}
	mustUpdate(t, s, Keys())
	mustUpdate(t, s, Keys(KeyStart))
	if s.Phase() != PhaseNewWave {
		t.Fatalf("S after a release should start, got %s", s.Phase())
	}
}

func TestSession_UnmappedKeysCountAsHeld(t *testing.T) {
	s, _ := newStubSession(t)
	mustUpdate(t, s, KeySet{Extra: 1})
	mustUpdate(t, s, Keys(KeyStart))
	if s.Phase() != PhaseInactive {
		t.Fatal("an unmapped held key should block the start edge")
	}
}

func TestSession_ShipLossPausesThenContinues(t *testing.T) {
	s, f := newStubSession(t)
	startSession(t, s)
	w := f.last()
	w.pause = true
	w.lives = 2
	mustUpdate(t, s, Keys())
	if s.Phase() != PhasePaused {
		t.Fatalf("expected paused after ship loss, got %s", s.Phase())
	}

	// S was still counted when the game started, so release first.
	mustUpdate(t, s, Keys())
	if s.Message() != continueMessage {
		t.Fatalf("expected continue prompt, got %q", s.Message())
	}
	mustUpdate(t, s, Keys(KeyContinue))
	if s.Phase() != PhaseContinue {
		t.Fatalf("expected continue, got %s", s.Phase())
	}
	mustUpdate(t, s, Keys())
	if s.Phase() != PhaseActive {
		t.Fatalf("expected active after continue, got %s", s.Phase())
	}
	if w.clearPauses != 1 || w.ship == nil {
		t.Fatalf("continue should clear the pause and install a ship (clears=%d ship=%v)", w.clearPauses, w.ship)
	}
	if x, y := config.Defaults().ShipSpawn(); w.ship.X != x || w.ship.Y != y {
		t.Fatalf("new ship at (%.0f,%.0f), want spawn (%.0f,%.0f)", w.ship.X, w.ship.Y, x, y)
	}
	if len(f.built) != 1 {
		t.Fatal("continue must reuse the paused wave")
	}
}

func TestSession_StaleKeyCountBlocksContinue(t *testing.T) {
	s, f := newStubSession(t)
	startSession(t, s)
	f.last().pause = true
	mustUpdate(t, s, Keys())

	// The count recorded when S went down is still 1.
	mustUpdate(t, s, Keys(KeyContinue))
	if s.Phase() != PhasePaused {
		t.Fatal("continue should wait for a frame with no keys held")
	}
	mustUpdate(t, s, Keys(KeyContinue))
	if s.Phase() != PhasePaused {
		t.Fatal("holding C across frames is not a new press")
	}
	mustUpdate(t, s, Keys())
	mustUpdate(t, s, Keys(KeyContinue))
	if s.Phase() != PhaseContinue {
		t.Fatalf("expected continue after release and press, got %s", s.Phase())
	}
}

func TestSession_NoLivesLeftEndsGame(t *testing.T) {
	s, f := newStubSession(t)
	startSession(t, s)
	w := f.last()
	w.score = 120
	w.lives = 0
	w.pause = true
	mustUpdate(t, s, Keys())
	if s.Phase() != PhasePaused {
		t.Fatalf("expected paused, got %s", s.Phase())
	}
	mustUpdate(t, s, Keys(KeyContinue))
	if s.Phase() != PhaseComplete {
		t.Fatalf("expected complete with no lives, got %s", s.Phase())
	}
	if s.Outcome() != OutcomeShipsLost {
		t.Fatalf("expected ships_lost, got %s", s.Outcome())
	}
	mustUpdate(t, s, Keys())
	if s.Message() != gameOverMessage {
		t.Fatalf("expected game over, got %q", s.Message())
	}
	if s.Wave() != nil {
		t.Fatal("wave should be released on game over")
	}
	if s.Score() != 120 || s.Lives() != 0 {
		t.Fatalf("final score/lives should survive the wave, got %d/%d", s.Score(), s.Lives())
	}
	mustUpdate(t, s, Keys(KeyStart))
	if s.Phase() != PhaseComplete {
		t.Fatal("complete persists until the host resets")
	}
	s.Reset()
	if s.Phase() != PhaseInactive {
		t.Fatalf("reset should return to inactive, got %s", s.Phase())
	}
}

func TestSession_ResetClearsFinishedGame(t *testing.T) {
	s, f := newStubSession(t)
	startSession(t, s)
	w := f.last()
	w.score = 30
	w.lives = 0
	w.allDead = true
	mustUpdate(t, s, Keys(KeyLeft))
	mustUpdate(t, s, Keys(KeyLeft))
	if s.Phase() != PhaseComplete || s.Wave() != nil {
		t.Fatalf("expected a finished game, got %s", s.Phase())
	}

	s.Reset()
	if s.Phase() != PhaseInactive {
		t.Fatalf("expected inactive, got %s", s.Phase())
	}
	if s.Score() != 0 || s.Lives() != 0 || s.Outcome() != OutcomeInProgress || s.Frame() != 0 {
		t.Fatalf("reset kept the old game: score=%d lives=%d outcome=%s frame=%d",
			s.Score(), s.Lives(), s.Outcome(), s.Frame())
	}
	r := s.Report()
	if r.WavesCleared != 0 || r.Outcome != OutcomeInProgress || r.Score != 0 {
		t.Fatalf("report should describe a fresh session, got %+v", r)
	}
	if got := s.simLog.Entries(); len(got) != 1 || got[0].Key != "change" || got[0].Frame != 0 {
		t.Fatalf("log should hold only the reset transition, got %v", got)
	}

	mustUpdate(t, s, Keys(KeyStart))
	if s.Phase() != PhaseNewWave {
		t.Fatalf("first S after reset should start, got %s", s.Phase())
	}
}

func TestSession_WaveClearedCarriesScoreAndLives(t *testing.T) {
	s, f := newStubSession(t)
	startSession(t, s)
	w := f.last()
	w.score = 450
	w.lives = 2
	w.allDead = true
	mustUpdate(t, s, Keys())
	if s.Phase() != PhasePaused {
		t.Fatalf("cleared wave should pause, got %s", s.Phase())
	}
	if len(f.args) != 2 || f.args[1] != [2]int{450, 2} {
		t.Fatalf("next wave should carry 450/2, got %v", f.args)
	}
	if s.Wave() != Controller(f.last()) {
		t.Fatal("session should hold the replacement wave")
	}
	if s.WavesCleared() != 1 {
		t.Fatalf("expected 1 wave cleared, got %d", s.WavesCleared())
	}
}

func TestSession_ClearedWaveWaitsForExplosion(t *testing.T) {
	s, f := newStubSession(t)
	startSession(t, s)
	w := f.last()
	w.score = 200
	w.allDead = true
	w.exploding = true
	mustUpdate(t, s, Keys())
	if s.Phase() != PhaseActive || len(f.built) != 1 {
		t.Fatalf("no new wave while the ship explodes, got %s with %d waves", s.Phase(), len(f.built))
	}

	w.exploding = false
	w.lives = 2
	w.pause = true
	mustUpdate(t, s, Keys())
	if s.Phase() != PhasePaused {
		t.Fatalf("expected paused once the explosion ends, got %s", s.Phase())
	}
	if len(f.args) != 2 || f.args[1] != [2]int{200, 2} {
		t.Fatalf("next wave should carry the charged life, got %v", f.args)
	}
}

func TestSession_ClearedWithNoLivesIsGameOver(t *testing.T) {
	s, f := newStubSession(t)
	startSession(t, s)
	w := f.last()
	w.allDead = true
	w.lives = 0
	mustUpdate(t, s, Keys())
	if s.Phase() != PhaseComplete || s.Outcome() != OutcomeShipsLost {
		t.Fatalf("expected complete/ships_lost, got %s/%s", s.Phase(), s.Outcome())
	}
}

func TestSession_DefenseLineWins(t *testing.T) {
	s, f := newStubSession(t)
	startSession(t, s)
	w := f.last()
	w.allDead = true
	w.lives = 2
	w.pause = true
	w.reached = true
	mustUpdate(t, s, Keys())
	if s.Phase() != PhaseComplete {
		t.Fatalf("defense line should end the game, got %s", s.Phase())
	}
	if s.Outcome() != OutcomeOverrun {
		t.Fatalf("expected overrun, got %s", s.Outcome())
	}
}

func TestSession_BadDeltaRejected(t *testing.T) {
	s, _ := newStubSession(t)
	for _, dt := range []float64{math.NaN(), -1} {
		if err := s.Update(Keys(), dt); !errors.Is(err, ErrContract) {
			t.Fatalf("dt=%v: expected ErrContract, got %v", dt, err)
		}
	}
	if s.Frame() != 0 {
		t.Fatal("rejected frames must not count")
	}
}

func TestSession_MissingWaveIsContractError(t *testing.T) {
	s := NewSession(config.Defaults(), WithRand(testRNG()),
		WithWaveFactory(func(score, lives int) Controller { return nil }))
	mustUpdate(t, s, Keys(KeyStart))
	mustUpdate(t, s, Keys())
	if err := s.Update(Keys(), DefaultDT); !errors.Is(err, ErrContract) {
		t.Fatalf("expected ErrContract with no wave, got %v", err)
	}
}

func TestSession_WaveErrorPropagates(t *testing.T) {
	s, f := newStubSession(t)
	startSession(t, s)
	boom := errors.New("boom")
	f.last().updateErr = boom
	if err := s.Update(Keys(), DefaultDT); !errors.Is(err, boom) {
		t.Fatalf("expected wave error, got %v", err)
	}
}

func TestSession_ForwardsWaveCues(t *testing.T) {
	s, f := newStubSession(t)
	startSession(t, s)
	f.last().cues = []Cue{CueAlienFire, CueAlienHit}
	mustUpdate(t, s, Keys())
	if got := s.Cues(); len(got) != 2 || got[0] != CueAlienFire || got[1] != CueAlienHit {
		t.Fatalf("expected wave cues, got %v", got)
	}
	f.last().cues = nil
	mustUpdate(t, s, Keys())
	if len(s.Cues()) != 0 {
		t.Fatal("cues should reset each frame")
	}
}

func TestSession_PhaseChangesLogged(t *testing.T) {
	sl := NewSimLog(false)
	f := &stubFactory{}
	s := NewSession(config.Defaults(), WithRand(testRNG()), WithWaveFactory(f.make), WithSimLog(sl))
	startSession(t, s)
	changes := sl.Filter("phase", "change")
	if len(changes) != 2 {
		t.Fatalf("expected 2 phase changes, got %d:\n%s", len(changes), sl.Format())
	}
	if !strings.Contains(changes[1].Value, "newwave → active") {
		t.Fatalf("unexpected change %q", changes[1].Value)
	}
}
