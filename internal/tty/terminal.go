// Package tty plays the game in a terminal with tcell.
package tty

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Garsondee/Alien-Invaders/internal/config"
	"github.com/Garsondee/Alien-Invaders/internal/invaders"
)

const (
	// tickRate is the redraw rate; each tick runs stepsPerTick session frames
	// so per-frame speeds match the 60 Hz desktop build.
	tickRate     = 30
	stepsPerTick = 2
)

// Terminal drives a session from tcell key events and draws it as text.
type Terminal struct {
	screen tcell.Screen
	cfg    *config.Config
	log    *zap.Logger

	session *invaders.Session
	keys    *heldKeys
	beeper  *Beeper
	now     func() time.Time
}

// Option customises a Terminal at construction.
type Option func(*Terminal)

// WithBeeper plays cues through b.
func WithBeeper(b *Beeper) Option {
	return func(t *Terminal) { t.beeper = b }
}

// WithClock replaces time.Now for the key hold window.
func WithClock(now func() time.Time) Option {
	return func(t *Terminal) { t.now = now }
}

// WithHold sets how long a key counts as held after its last event.
func WithHold(d time.Duration) Option {
	return func(t *Terminal) { t.keys.hold = d }
}

// New wraps an initialised screen.
func New(screen tcell.Screen, cfg *config.Config, log *zap.Logger, opts ...Option) *Terminal {
	t := &Terminal{
		screen:  screen,
		cfg:     cfg,
		log:     log,
		session: invaders.NewSession(cfg, invaders.WithLogger(log)),
		keys:    newHeldKeys(defaultHold),
		now:     time.Now,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Session exposes the running session.
func (t *Terminal) Session() *invaders.Session { return t.session }

// Run polls events and ticks the game until ctx ends or the player quits.
func (t *Terminal) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / tickRate)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	t.log.Info("terminal session started", zap.Int("tick_rate", tickRate))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !t.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			if err := t.Tick(); err != nil {
				return err
			}
		}
	}
}

// HandleEvent applies one tcell event. It returns false when the player
// asked to quit.
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if isQuit(ev) {
			t.log.Info("quit", zap.Int("score", t.session.Score()))
			return false
		}
		if isReset(ev) && t.session.Phase() == invaders.PhaseComplete {
			t.log.Info("new game", zap.Int("last_score", t.session.Score()))
			t.session.Reset()
			t.keys.reset()
			return true
		}
		t.keys.press(ev, t.now())
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

// Tick runs the session frames for one redraw and draws the result.
func (t *Terminal) Tick() error {
	for i := 0; i < stepsPerTick; i++ {
		if err := t.session.Update(t.keys.snapshot(t.now()), invaders.DefaultDT); err != nil {
			t.log.Error("session update failed", zap.Error(err), zap.Int("frame", t.session.Frame()))
			return err
		}
		t.beeper.Play(t.session.Cues())
	}
	t.Draw()
	return nil
}

// Draw renders the current frame.
func (t *Terminal) Draw() {
	t.screen.Clear()
	g := newGrid(t.screen, t.cfg.Screen.Width, t.cfg.Screen.Height)
	render(t.screen, g, t.session.Draw(), t.status())
	t.screen.Show()
}

func (t *Terminal) status() string {
	hint := "arrows move  space fire  s start  c continue  esc quit"
	if t.session.Phase() == invaders.PhaseComplete {
		hint = "r new game  esc quit"
	}
	return fmt.Sprintf("[%s] %s", t.session.Phase(), hint)
}
