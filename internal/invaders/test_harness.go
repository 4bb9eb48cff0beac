package invaders

import (
	"math"
	"math/rand"

	"go.uber.org/zap"

	"github.com/Garsondee/Alien-Invaders/internal/config"
)

// DefaultDT is the frame delta the harness feeds the session (60 Hz).
const DefaultDT = 1.0 / 60

// Pilot chooses the keys held on the next frame.
type Pilot interface {
	Next(s *Session) KeySet
}

// PilotFunc adapts a function to Pilot.
type PilotFunc func(s *Session) KeySet

func (f PilotFunc) Next(s *Session) KeySet { return f(s) }

// TestSim is a headless session harness for tests and the batch report. It
// drives a Session with a Pilot at a fixed dt and records a SimLog.
type TestSim struct {
	Config  *config.Config
	Session *Session
	SimLog  *SimLog
	DT      float64
	Pilot   Pilot

	rng    *rand.Rand
	log    *zap.Logger
	checks []func(ts *TestSim) error
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // config, seed, verbose, logger, applied first
	simOptRun                        // pilot, checks, applied after the session exists
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithConfig replaces the default configuration.
func WithConfig(cfg *config.Config) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.Config = cfg }}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- test harness
	}}
}

// WithVerbose enables per-step formation and bolt entries.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.SimLog = NewSimLog(v) }}
}

// WithSimLogger routes session logging to log.
func WithSimLogger(log *zap.Logger) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.log = log }}
}

// WithDT sets the per-frame delta.
func WithDT(dt float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.DT = dt }}
}

// WithPilot sets who presses the keys.
func WithPilot(p Pilot) SimOption {
	return SimOption{simOptRun, func(ts *TestSim) { ts.Pilot = p }}
}

// WithCheck runs fn after every frame; the first error stops the run.
func WithCheck(fn func(ts *TestSim) error) SimOption {
	return SimOption{simOptRun, func(ts *TestSim) { ts.checks = append(ts.checks, fn) }}
}

// NewTestSim constructs a TestSim from the given options in two passes:
//  1. Infrastructure (config, seed, verbose, logger)
//  2. Session, then pilot and per-frame checks
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		Config: config.Defaults(),
		SimLog: NewSimLog(false),
		DT:     DefaultDT,
		rng:    rand.New(rand.NewSource(1)), // #nosec G404 -- test harness default
		log:    zap.NewNop(),
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	ts.Session = NewSession(ts.Config,
		WithRand(ts.rng),
		WithSimLog(ts.SimLog),
		WithLogger(ts.log),
	)
	ts.Pilot = NewAutopilot()
	for _, o := range opts {
		if o.kind == simOptRun {
			o.fn(ts)
		}
	}
	return ts
}

// Step runs one frame.
func (ts *TestSim) Step() error {
	keys := ts.Pilot.Next(ts.Session)
	if err := ts.Session.Update(keys, ts.DT); err != nil {
		return err
	}
	for _, c := range ts.checks {
		if err := c(ts); err != nil {
			return err
		}
	}
	return nil
}

// RunFrames runs up to n frames, stopping early on error or game over.
func (ts *TestSim) RunFrames(n int) error {
	for i := 0; i < n; i++ {
		if err := ts.Step(); err != nil {
			return err
		}
		if ts.Session.Phase() == PhaseComplete && ts.Session.Wave() == nil {
			return nil
		}
	}
	return nil
}

// RunUntil runs frames until done reports true or max frames pass. It
// returns whether done was reached.
func (ts *TestSim) RunUntil(done func(*Session) bool, max int) (bool, error) {
	for i := 0; i < max; i++ {
		if err := ts.Step(); err != nil {
			return false, err
		}
		if done(ts.Session) {
			return true, nil
		}
	}
	return false, nil
}

// Autopilot plays a simple game: it taps start and continue, tracks the
// nearest firing column and shoots whenever it is lined up.
type Autopilot struct {
	tick int
}

// NewAutopilot returns a fresh autopilot.
func NewAutopilot() *Autopilot { return &Autopilot{} }

// Next taps prompt keys on alternate frames so each press is a fresh edge.
func (p *Autopilot) Next(s *Session) KeySet {
	p.tick++
	tap := p.tick%2 == 0
	switch s.Phase() {
	case PhaseInactive:
		if tap {
			return Keys(KeyStart)
		}
	case PhasePaused:
		if tap {
			return Keys(KeyContinue)
		}
	case PhaseActive:
		if w, ok := s.Wave().(*Wave); ok {
			return p.steer(w, tap)
		}
	}
	return KeySet{}
}

func (p *Autopilot) steer(w *Wave, tap bool) KeySet {
	var ks KeySet
	ship := w.Ship()
	if ship == nil {
		return ks
	}
	var target *Alien
	for _, col := range w.Formation().LiveColumns() {
		a, _ := w.Formation().LowestInColumn(col)
		if target == nil || math.Abs(a.X-ship.X) < math.Abs(target.X-ship.X) {
			target = a
		}
	}
	if target == nil {
		return ks
	}
	dx := target.X - ship.X
	switch {
	case dx < -w.cfg.Ship.Speed:
		ks.Set(KeyLeft, true)
	case dx > w.cfg.Ship.Speed:
		ks.Set(KeyRight, true)
	}
	if tap && math.Abs(dx) < target.W/2 {
		ks.Set(KeyFire, true)
	}
	return ks
}
