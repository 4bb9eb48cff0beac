package invaders

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Garsondee/Alien-Invaders/internal/config"
)

// Phase is the session's top-level state.
type Phase int

const (
	PhaseInactive Phase = iota // title prompt, waiting for start
	PhaseNewWave               // one frame: build the first wave
	PhaseActive                // play
	PhasePaused                // ship lost or wave cleared, waiting for continue
	PhaseContinue              // one frame: respawn the ship
	PhaseComplete              // game over
)

func (p Phase) String() string {
	switch p {
	case PhaseInactive:
		return "inactive"
	case PhaseNewWave:
		return "newwave"
	case PhaseActive:
		return "active"
	case PhasePaused:
		return "paused"
	case PhaseContinue:
		return "continue"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

const (
	messageSize = 64
	hudSize     = 50

	startMessage    = "Press 'S' to Play"
	continueMessage = "Press 'C' to Continue"
	gameOverMessage = "Game Over"
)

// WaveFactory builds a wave carrying the given score and lives.
type WaveFactory func(score, lives int) Controller

// Session sequences phases and owns at most one wave at a time.
type Session struct {
	cfg    *config.Config
	log    *zap.Logger
	rng    *rand.Rand
	simLog *SimLog

	phase    Phase
	wave     Controller
	newWave  WaveFactory
	lastKeys int // held-key count seen by the last prompt handler

	message  *label
	livesHUD *label
	scoreHUD *label

	frame        int
	wavesCleared int
	finalScore   int
	finalLives   int
	outcome      Outcome
	cues         []Cue
}

// SessionOption customises a Session at construction.
type SessionOption func(*Session)

// WithLogger routes session and wave logging to log.
func WithLogger(log *zap.Logger) SessionOption {
	return func(s *Session) { s.log = log }
}

// WithRand seeds alien fire from rng.
func WithRand(rng *rand.Rand) SessionOption {
	return func(s *Session) { s.rng = rng }
}

// WithSimLog records structured events into sl.
func WithSimLog(sl *SimLog) SessionOption {
	return func(s *Session) { s.simLog = sl }
}

// WithWaveFactory replaces the wave constructor.
func WithWaveFactory(f WaveFactory) SessionOption {
	return func(s *Session) { s.newWave = f }
}

// NewSession starts in PhaseInactive.
func NewSession(cfg *config.Config, opts ...SessionOption) *Session {
	s := &Session{
		cfg:   cfg,
		log:   zap.NewNop(),
		phase: PhaseInactive,
	}
	for _, o := range opts {
		o(s)
	}
	if s.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		s.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- game only
	}
	if s.newWave == nil {
		s.newWave = s.defaultWave
	}
	return s
}

func (s *Session) defaultWave(score, lives int) Controller {
	w := NewWave(s.cfg, s.rng,
		WithWaveLogger(s.log),
		WithWaveSimLog(s.simLog, s.Frame),
	)
	w.SetScore(score)
	w.SetLives(lives)
	return w
}

// Update advances the session by one frame.
func (s *Session) Update(in Input, dt float64) error {
	if err := checkDelta(dt); err != nil {
		return err
	}
	if in == nil {
		return fmt.Errorf("session update without input: %w", ErrContract)
	}
	s.frame++
	s.cues = s.cues[:0]

	switch s.phase {
	case PhaseInactive:
		s.updateInactive(in)
	case PhaseNewWave:
		s.updateNewWave()
	case PhaseActive:
		return s.updateActive(in, dt)
	case PhasePaused:
		return s.updatePaused(in)
	case PhaseContinue:
		return s.updateContinue()
	case PhaseComplete:
		s.updateComplete()
	}
	return nil
}

func (s *Session) updateInactive(in Input) {
	s.message = s.centerLabel(startMessage)
	held := in.KeyCount()
	if in.IsKeyDown(KeyStart) && s.lastKeys == 0 {
		s.message = nil
		s.setPhase(PhaseNewWave)
	}
	s.lastKeys = held
}

func (s *Session) updateNewWave() {
	s.message = nil
	s.wave = s.newWave(0, s.cfg.Ship.Lives)
	s.wavesCleared = 0
	s.outcome = OutcomeInProgress
	s.setPhase(PhaseActive)
}

// updateActive plays one frame, then checks the end-of-frame predicates
// against the wave that was just played. The defense-line check runs last
// and wins over everything before it. A cleared wave is not replaced while
// its ship is still exploding, so the lost life is charged first.
func (s *Session) updateActive(in Input, dt float64) error {
	cur, err := s.requireWave()
	if err != nil {
		return err
	}
	if err := cur.Update(in, dt); err != nil {
		return err
	}
	s.cues = append(s.cues, cur.Cues()...)
	s.refreshHUD(cur)

	if cur.AllAliensDead() && !cur.Exploding() {
		if cur.Lives() > 0 {
			s.wavesCleared++
			s.simLog.Add(s.frame, "wave", "cleared", fmt.Sprintf("score=%d lives=%d", cur.Score(), cur.Lives()), float64(cur.Score()))
			s.log.Info("wave cleared",
				zap.Int("waves", s.wavesCleared),
				zap.Int("score", cur.Score()),
				zap.Int("lives", cur.Lives()),
			)
			s.wave = s.newWave(cur.Score(), cur.Lives())
			s.setPhase(PhasePaused)
		} else {
			s.outcome = OutcomeShipsLost
			s.setPhase(PhaseComplete)
		}
	}
	if cur.PauseRequested() {
		s.setPhase(PhasePaused)
	}
	if cur.AlienReachedDefenseLine() {
		s.outcome = OutcomeOverrun
		s.setPhase(PhaseComplete)
	}
	return nil
}

func (s *Session) updatePaused(in Input) error {
	w, err := s.requireWave()
	if err != nil {
		return err
	}
	if w.Lives() > 0 {
		s.message = s.centerLabel(continueMessage)
		held := in.KeyCount()
		if in.IsKeyDown(KeyContinue) && s.lastKeys == 0 {
			s.message = nil
			s.setPhase(PhaseContinue)
		}
		s.lastKeys = held
	}
	if w.Lives() == 0 {
		s.outcome = OutcomeShipsLost
		s.setPhase(PhaseComplete)
	}
	return nil
}

func (s *Session) updateContinue() error {
	w, err := s.requireWave()
	if err != nil {
		return err
	}
	w.ClearPause()
	w.SetShip(NewShip(s.cfg))
	s.setPhase(PhaseActive)
	return nil
}

func (s *Session) updateComplete() {
	s.message = s.centerLabel(gameOverMessage)
	if s.wave != nil {
		s.finalScore = s.wave.Score()
		s.finalLives = s.wave.Lives()
		s.simLog.Add(s.frame, "wave", "released", s.outcome.String(), float64(s.finalScore))
		s.log.Info("game over",
			zap.Stringer("outcome", s.outcome),
			zap.Int("score", s.finalScore),
			zap.Int("waves_cleared", s.wavesCleared),
		)
	}
	s.wave = nil
}

// Reset returns a finished (or any) session to the title prompt with the
// same state as a new session. The host loop decides when to call it.
func (s *Session) Reset() {
	s.wave = nil
	s.message = nil
	s.livesHUD = nil
	s.scoreHUD = nil
	s.lastKeys = 0
	s.wavesCleared = 0
	s.finalScore = 0
	s.finalLives = 0
	s.outcome = OutcomeInProgress
	s.cues = s.cues[:0]
	s.frame = 0
	s.simLog.Clear()
	s.setPhase(PhaseInactive)
}

func (s *Session) requireWave() (Controller, error) {
	if s.wave == nil {
		return nil, fmt.Errorf("phase %s with no wave: %w", s.phase, ErrContract)
	}
	return s.wave, nil
}

func (s *Session) setPhase(p Phase) {
	if p == s.phase {
		return
	}
	s.simLog.Add(s.frame, "phase", "change", s.phase.String()+" → "+p.String(), float64(p))
	s.log.Info("phase change", zap.Stringer("from", s.phase), zap.Stringer("to", p), zap.Int("frame", s.frame))
	s.phase = p
}

func (s *Session) centerLabel(text string) *label {
	return &label{text: text, x: s.cfg.Screen.Width / 2, y: s.cfg.Screen.Height / 2, size: messageSize}
}

func (s *Session) refreshHUD(w Controller) {
	w2, h := s.cfg.Screen.Width, s.cfg.Screen.Height
	s.livesHUD = &label{text: "Player Lives: " + strconv.Itoa(w.Lives()), x: 200, y: h - 50, size: hudSize}
	s.scoreHUD = &label{text: "Score: " + strconv.Itoa(w.Score()), x: w2 - 150, y: h - 50, size: hudSize}
}

// Draw returns this frame's draw requests: the wave's entities whenever a
// wave exists, then the prompt and HUD overlays.
func (s *Session) Draw() []DrawOp {
	var ops []DrawOp
	if s.wave != nil {
		ops = s.wave.Draw(ops)
	}
	for _, l := range []*label{s.message, s.livesHUD, s.scoreHUD} {
		if l != nil {
			ops = append(ops, l.op())
		}
	}
	return ops
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Wave returns the live wave, or nil.
func (s *Session) Wave() Controller { return s.wave }

// Cues returns the sound cues raised by the last Update.
func (s *Session) Cues() []Cue { return s.cues }

// Frame returns the number of Update calls so far.
func (s *Session) Frame() int { return s.frame }

// Message returns the prompt currently shown, or "".
func (s *Session) Message() string {
	if s.message == nil {
		return ""
	}
	return s.message.text
}

// Score returns the live score, or the final score once the wave is released.
func (s *Session) Score() int {
	if s.wave != nil {
		return s.wave.Score()
	}
	return s.finalScore
}

// Lives returns the live lives count, or the final count after game over.
func (s *Session) Lives() int {
	if s.wave != nil {
		return s.wave.Lives()
	}
	return s.finalLives
}

// WavesCleared counts waves destroyed this session.
func (s *Session) WavesCleared() int { return s.wavesCleared }

// Outcome reports how the session ended, or OutcomeInProgress.
func (s *Session) Outcome() Outcome { return s.outcome }
