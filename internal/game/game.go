package game

import (
	"fmt"
	"image/color"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/Garsondee/Alien-Invaders/internal/config"
	"github.com/Garsondee/Alien-Invaders/internal/invaders"
)

// borderWidth is the pixel gap between the window edge and the playfield.
const borderWidth = 16

// statusTicks is how long a one-line status message stays up (~2s at 60 TPS).
const statusTicks = 120

// reportFrames is how much recent SimLog history the clipboard report carries.
const reportFrames = 600

type Game struct {
	cfg *config.Config
	log *zap.Logger

	session *invaders.Session
	simLog  *invaders.SimLog
	feed    *EventFeed
	fed     int // SimLog entries already pushed into the feed
	sound   *Sound
	mute    bool

	width      int
	height     int
	fieldW     int // playfield width (event panel takes the rest)
	fieldH     int
	offX, offY int

	prevKeys map[ebiten.Key]bool
	pressed  []ebiten.Key
	text     *textCache

	status      string
	statusUntil int
	tick        int
}

// Option customises a Game at construction.
type Option func(*Game)

// WithSound enables or disables cue beeps.
func WithSound(on bool) Option {
	return func(g *Game) {
		g.mute = !on
	}
}

// New builds the desktop front-end around a fresh session.
func New(cfg *config.Config, log *zap.Logger, opts ...Option) *Game {
	fw, fh := int(cfg.Screen.Width), int(cfg.Screen.Height)
	g := &Game{
		cfg:      cfg,
		log:      log,
		fieldW:   fw,
		fieldH:   fh,
		offX:     borderWidth,
		offY:     borderWidth,
		width:    borderWidth + fw + borderWidth + feedPanelWidth,
		height:   borderWidth + fh + borderWidth,
		prevKeys: make(map[ebiten.Key]bool),
		text:     newTextCache(),
	}
	for _, o := range opts {
		o(g)
	}
	if !g.mute {
		g.sound = NewSound()
	}
	g.newSession()
	return g
}

func (g *Game) newSession() {
	g.simLog = invaders.NewSimLog(false)
	g.session = invaders.NewSession(g.cfg,
		invaders.WithLogger(g.log),
		invaders.WithSimLog(g.simLog),
	)
	g.feed = NewEventFeed()
	g.fed = 0
}

func (g *Game) Update() error {
	g.tick++
	g.handleInput()

	g.pressed = inpututil.AppendPressedKeys(g.pressed[:0])
	dt := 1.0 / float64(ebiten.TPS())
	if err := g.session.Update(readKeys(g.pressed), dt); err != nil {
		g.log.Error("session update failed", zap.Error(err), zap.Int("frame", g.session.Frame()))
		return err
	}
	g.sound.Play(g.session.Cues())
	g.pumpFeed()
	return nil
}

// handleInput processes the host keys (edge-triggered). They only act once
// the game is over.
func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}

	currentKeys[ebiten.KeyR] = ebiten.IsKeyPressed(ebiten.KeyR)
	currentKeys[ebiten.KeyY] = ebiten.IsKeyPressed(ebiten.KeyY)
	over := g.session.Phase() == invaders.PhaseComplete

	if over && currentKeys[ebiten.KeyR] && !g.prevKeys[ebiten.KeyR] {
		g.log.Info("new game", zap.Int("last_score", g.session.Score()))
		g.newSession()
	}
	if over && currentKeys[ebiten.KeyY] && !g.prevKeys[ebiten.KeyY] {
		g.copyReport()
	}

	g.prevKeys = currentKeys
}

func (g *Game) copyReport() {
	report := buildReport(g.session, g.simLog, reportFrames)
	if err := clipboard.WriteAll(report); err != nil {
		g.log.Warn("clipboard unavailable", zap.Error(err))
		g.setStatus("clipboard unavailable")
		return
	}
	g.setStatus("report copied to clipboard")
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusUntil = g.tick + statusTicks
}

// pumpFeed moves new SimLog entries into the on-screen feed.
func (g *Game) pumpFeed() {
	entries := g.simLog.Entries()
	for _, e := range entries[g.fed:] {
		g.feed.Add(e)
	}
	g.fed = len(entries)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 6, G: 6, B: 14, A: 255})

	for _, op := range g.session.Draw() {
		g.drawOp(screen, op)
	}

	ox := float32(g.offX)
	oy := float32(g.offY)
	fw := float32(g.fieldW)
	fh := float32(g.fieldH)
	vector.StrokeRect(screen, ox-1, oy-1, fw+2, fh+2, 2.0, color.RGBA{R: 60, G: 60, B: 110, A: 255}, false)

	g.feed.Draw(screen, g.offX+g.fieldW+g.offX, g.height)
	g.drawHint(screen)
}

func (g *Game) drawHint(screen *ebiten.Image) {
	hint := "arrows=move  space=fire  S=start  C=continue"
	if g.session.Phase() == invaders.PhaseComplete {
		hint = "R=new game  Y=copy report"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  [%s]", hint, g.session.Phase()), g.offX+4, g.offY+2)
	if g.status != "" && g.tick < g.statusUntil {
		ebitenutil.DebugPrintAt(screen, g.status, g.offX+4, g.offY+18)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Size returns the window size the game lays itself out at.
func (g *Game) Size() (int, int) {
	return g.width, g.height
}

// Session exposes the running session.
func (g *Game) Session() *invaders.Session {
	return g.session
}
