package invaders

import (
	"fmt"

	"github.com/Garsondee/Alien-Invaders/internal/config"
)

// Owner tags who fired a bolt.
type Owner int

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
)

func (o Owner) String() string {
	switch o {
	case OwnerPlayer:
		return "player"
	case OwnerEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// box is an axis-aligned rectangle given by its centre and full extents.
// Every entity embeds one; world coordinates are y-up.
type box struct {
	X, Y float64
	W, H float64
}

func (b box) left() float64   { return b.X - b.W/2 }
func (b box) right() float64  { return b.X + b.W/2 }
func (b box) bottom() float64 { return b.Y - b.H/2 }
func (b box) top() float64    { return b.Y + b.H/2 }

// overlaps reports strict intersection; boxes that only share an edge do not
// collide.
func (b box) overlaps(o box) bool {
	return b.left() < o.right() && o.left() < b.right() &&
		b.bottom() < o.top() && o.bottom() < b.top()
}

// Ship is the player's cannon. Frame is the explosion sprite frame; 0 while
// intact.
type Ship struct {
	box
	Frame int
}

// NewShip places a fresh ship at the configured spawn point.
func NewShip(cfg *config.Config) *Ship {
	x, y := cfg.ShipSpawn()
	return &Ship{box: box{X: x, Y: y, W: cfg.Ship.Width, H: cfg.Ship.Height}}
}

// Collides reports whether b overlaps the ship.
func (s *Ship) Collides(b *Bolt) bool {
	return s.box.overlaps(b.box)
}

// Alien is one formation member. Row and Col never change after creation.
type Alien struct {
	box
	Row, Col int
	Tier     int // sprite tier: 0..2
}

// NewAlien builds an alien centred at (x,y).
func NewAlien(x, y, w, h float64, row, col int) *Alien {
	return &Alien{box: box{X: x, Y: y, W: w, H: h}, Row: row, Col: col}
}

func (a *Alien) String() string {
	return fmt.Sprintf("A[%d,%d]", a.Row, a.Col)
}

// Collides reports whether b overlaps the alien.
func (a *Alien) Collides(b *Bolt) bool {
	return a.box.overlaps(b.box)
}

// Bolt is a laser shot travelling straight up (player) or down (enemy).
type Bolt struct {
	box
	Owner Owner
}

func newBolt(x, y float64, cfg *config.Config, owner Owner) *Bolt {
	return &Bolt{box: box{X: x, Y: y, W: cfg.Bolt.Width, H: cfg.Bolt.Height}, Owner: owner}
}

// IsPlayerBolt reports whether the player fired b.
func (b *Bolt) IsPlayerBolt() bool { return b.Owner == OwnerPlayer }
