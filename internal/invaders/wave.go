package invaders

import (
	"fmt"
	"math"
	"math/rand"

	"go.uber.org/zap"

	"github.com/Garsondee/Alien-Invaders/internal/config"
)

// Controller is the slice of a wave the session is allowed to touch. Score,
// lives and the ship only cross the wave boundary through these methods.
type Controller interface {
	Update(in Input, dt float64) error
	Draw(ops []DrawOp) []DrawOp
	Cues() []Cue

	Score() int
	SetScore(score int)
	Lives() int
	SetLives(lives int)
	SetShip(s *Ship)
	ClearPause()

	PauseRequested() bool
	Exploding() bool
	AllAliensDead() bool
	AlienReachedDefenseLine() bool
}

// Wave runs one formation from spawn until it is cleared or breaks through.
// Each Update runs formation, bolts, collisions and the explosion sequence
// in that order.
type Wave struct {
	cfg    *config.Config
	log    *zap.Logger
	simLog *SimLog
	clock  func() int

	formation   *Formation
	bolts       *Projectiles
	ship        *Ship
	defenseLine float64

	score int
	lives int

	paused     bool // set when the ship is lost; the session pauses on it
	destroying bool // ship hit; stays set until ClearPause
	sequence   *DestructionSequence

	prevFire bool
	cues     []Cue
}

// WaveOption customises a Wave at construction.
type WaveOption func(*Wave)

// WithWaveLogger routes wave events to log.
func WithWaveLogger(log *zap.Logger) WaveOption {
	return func(w *Wave) { w.log = log }
}

// WithWaveSimLog records wave events into sl, stamped with clock().
func WithWaveSimLog(sl *SimLog, clock func() int) WaveOption {
	return func(w *Wave) {
		w.simLog = sl
		w.clock = clock
	}
}

// WithFormation replaces the default grid.
func WithFormation(f *Formation) WaveOption {
	return func(w *Wave) { w.formation = f }
}

// NewWave builds a full formation, a ship at the spawn point, zero score and
// the configured number of lives.
func NewWave(cfg *config.Config, rng *rand.Rand, opts ...WaveOption) *Wave {
	w := &Wave{
		cfg:         cfg,
		log:         zap.NewNop(),
		clock:       func() int { return 0 },
		bolts:       NewProjectiles(cfg),
		ship:        NewShip(cfg),
		defenseLine: cfg.DefenseLine,
		lives:       cfg.Ship.Lives,
	}
	for _, o := range opts {
		o(w)
	}
	if w.formation == nil {
		w.formation = NewFormation(cfg, rng)
	}
	return w
}

// Update advances the wave by one frame.
func (w *Wave) Update(in Input, dt float64) error {
	if err := checkDelta(dt); err != nil {
		return err
	}
	if in == nil {
		return fmt.Errorf("wave update without input: %w", ErrContract)
	}
	w.cues = w.cues[:0]

	if w.sequence == nil {
		w.moveShip(in)
		if b := w.formation.Step(dt); b != nil {
			w.bolts.Add(b)
			w.cue(CueAlienFire)
			w.simLog.AddVerbose(w.clock(), "bolt", "alien_fire", fmt.Sprintf("(%.0f,%.0f)", b.X, b.Y), b.X)
		}
	}
	w.firePlayer(in)
	w.bolts.Advance()
	w.checkShipHit()
	w.checkAlienHit()

	switch {
	case w.sequence != nil:
		if w.sequence.Tick(dt) {
			w.finishDestruction()
		} else if w.ship != nil {
			w.ship.Frame = w.sequence.Frame()
		}
	case w.destroying && w.ship != nil:
		w.sequence = NewDestructionSequence(w.cfg.Ship.DeathFrames, w.cfg.Ship.DeathFrameSeconds)
	}
	return nil
}

// moveShip slides the ship along the bottom, never past either screen edge.
func (w *Wave) moveShip(in Input) {
	if w.ship == nil {
		return
	}
	half := w.ship.W / 2
	speed := w.cfg.Ship.Speed
	if in.IsKeyDown(KeyLeft) {
		w.ship.X = math.Max(half, w.ship.X-speed)
	}
	if in.IsKeyDown(KeyRight) {
		w.ship.X = math.Min(w.cfg.Screen.Width-half, w.ship.X+speed)
	}
}

// firePlayer shoots on the frame the fire key goes down.
func (w *Wave) firePlayer(in Input) {
	down := in.IsKeyDown(KeyFire)
	pressed := down && !w.prevFire
	w.prevFire = down
	if !pressed {
		return
	}
	if b, ok := w.bolts.FirePlayer(w.ship); ok {
		w.cue(CuePlayerFire)
		w.simLog.AddVerbose(w.clock(), "bolt", "player_fire", fmt.Sprintf("(%.0f,%.0f)", b.X, b.Y), b.X)
	}
}

func (w *Wave) checkShipHit() {
	if w.destroying {
		return
	}
	b, ok := resolveShipHit(w.ship, w.bolts)
	if !ok {
		return
	}
	w.destroying = true
	w.cue(CueShipHit)
	w.simLog.Add(w.clock(), "hit", "ship", fmt.Sprintf("bolt at (%.0f,%.0f)", b.X, b.Y), float64(w.lives))
	w.log.Debug("ship hit", zap.Float64("x", w.ship.X), zap.Int("lives", w.lives))
}

func (w *Wave) checkAlienHit() {
	hit, ok := resolveAlienHit(w.formation, w.bolts)
	if !ok {
		return
	}
	w.score += hit.points
	w.cue(CueAlienHit)
	w.simLog.Add(w.clock(), "hit", "alien", fmt.Sprintf("%s +%d", hit.alien, hit.points), float64(hit.points))
	w.log.Debug("alien destroyed",
		zap.Stringer("alien", hit.alien),
		zap.Int("points", hit.points),
		zap.Int("score", w.score),
	)
}

// finishDestruction retires the exploded ship and costs a life.
func (w *Wave) finishDestruction() {
	w.sequence = nil
	w.ship = nil
	w.bolts.Clear()
	w.paused = true
	w.lives--
	w.simLog.Add(w.clock(), "ship", "lost", fmt.Sprintf("lives=%d", w.lives), float64(w.lives))
	w.log.Info("ship lost", zap.Int("lives", w.lives), zap.Int("score", w.score))
}

func (w *Wave) cue(c Cue) { w.cues = append(w.cues, c) }

// Cues returns the sound cues raised by the last Update.
func (w *Wave) Cues() []Cue { return w.cues }

// Draw appends the wave's visible entities in draw order: aliens, ship,
// defense line, bolts.
func (w *Wave) Draw(ops []DrawOp) []DrawOp {
	for _, a := range w.formation.Aliens() {
		ops = append(ops, DrawOp{Kind: DrawAlien, X: a.X, Y: a.Y, W: a.W, H: a.H, Tier: a.Tier})
	}
	if w.ship != nil {
		ops = append(ops, DrawOp{
			Kind: DrawShip, X: w.ship.X, Y: w.ship.Y, W: w.ship.W, H: w.ship.H,
			Frame: w.ship.Frame, Exploding: w.sequence != nil,
		})
	}
	ops = append(ops, DrawOp{Kind: DrawDefenseLine, X: 0, Y: w.defenseLine, W: w.cfg.Screen.Width})
	for _, b := range w.bolts.All() {
		ops = append(ops, DrawOp{Kind: DrawBolt, X: b.X, Y: b.Y, W: b.W, H: b.H, Owner: b.Owner})
	}
	return ops
}

func (w *Wave) Score() int { return w.score }

func (w *Wave) SetScore(score int) {
	if score < 0 {
		panic(fmt.Errorf("negative score %d: %w", score, ErrContract))
	}
	w.score = score
}

func (w *Wave) Lives() int { return w.lives }

func (w *Wave) SetLives(lives int) {
	if lives < 0 {
		panic(fmt.Errorf("negative lives %d: %w", lives, ErrContract))
	}
	w.lives = lives
}

// SetShip installs a replacement ship after a continue.
func (w *Wave) SetShip(s *Ship) { w.ship = s }

// ClearPause drops the pause request and the destruction flag so play can
// resume.
func (w *Wave) ClearPause() {
	w.paused = false
	w.destroying = false
}

// PauseRequested reports whether the ship was lost and the session should
// pause.
func (w *Wave) PauseRequested() bool { return w.paused }

// Destroying reports whether the ship has been hit and not yet replaced.
func (w *Wave) Destroying() bool { return w.destroying }

// Exploding reports whether the destruction sequence is running.
func (w *Wave) Exploding() bool { return w.sequence != nil }

// AllAliensDead reports whether the formation is empty.
func (w *Wave) AllAliensDead() bool { return w.formation.AllDead() }

// AlienReachedDefenseLine reports whether the lowest alien's bottom edge has
// dropped below the defense line.
func (w *Wave) AlienReachedDefenseLine() bool {
	a, ok := w.formation.Bottommost()
	return ok && a.bottom() < w.defenseLine
}

// Ship returns the player ship, or nil once it has been destroyed.
func (w *Wave) Ship() *Ship { return w.ship }

// Bolts returns the bolt list.
func (w *Wave) Bolts() *Projectiles { return w.bolts }

// Formation returns the alien grid.
func (w *Wave) Formation() *Formation { return w.formation }
