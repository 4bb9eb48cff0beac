package invaders

import (
	"fmt"
	"math/rand"

	"github.com/Garsondee/Alien-Invaders/internal/config"
)

// Direction is the horizontal heading of the whole formation.
type Direction int

const (
	MarchRight Direction = iota
	MarchLeft
)

func (d Direction) String() string {
	if d == MarchLeft {
		return "left"
	}
	return "right"
}

// Formation owns the alien grid and moves it in lock-step: every march step
// translates all survivors by the same amount, so the block never shears.
// A nil cell is an empty slot; cells only ever go from alive to nil.
type Formation struct {
	cfg   *config.Config
	rng   *rand.Rand
	cells [][]*Alien
	rows  int
	cols  int

	timer float64 // seconds since the last march step
	dir   Direction

	// Enemy fire pacing, counted in march steps.
	stepsSinceFire int
	fireTarget     int
}

// NewFormation lays out cfg.Alien.Rows x cfg.Alien.Columns aliens below the
// ceiling. Row 0 is the top row.
func NewFormation(cfg *config.Config, rng *rand.Rand) *Formation {
	a := cfg.Alien
	cells := make([][]*Alien, a.Rows)
	y := cfg.Screen.Height - a.Ceiling
	tierIndex := 0
	for row := 0; row < a.Rows; row++ {
		cells[row] = make([]*Alien, a.Columns)
		x := a.HSep + a.Width + a.HSep
		for col := 0; col < a.Columns; col++ {
			alien := NewAlien(x, y, a.Width, a.Height, row, col)
			// Sprites cycle every two rows, bottom rows using the low tiers.
			alien.Tier = (a.Rows - tierIndex) % 3
			cells[row][col] = alien
			x += a.HSep + a.Width
		}
		if row%2 == 0 {
			tierIndex++
		}
		y -= a.Height + a.VSep
	}
	cols := 0
	if a.Rows > 0 {
		cols = a.Columns
	}
	return newFormation(cfg, rng, cells, cols)
}

// NewFormationFromGrid adopts a caller-built grid. Every row must have the
// same length; nil cells are empty slots.
func NewFormationFromGrid(cfg *config.Config, rng *rand.Rand, cells [][]*Alien) (*Formation, error) {
	cols := 0
	if len(cells) > 0 {
		cols = len(cells[0])
	}
	for i, row := range cells {
		if len(row) != cols {
			return nil, fmt.Errorf("alien grid row %d has %d cells, want %d: %w", i, len(row), cols, ErrContract)
		}
	}
	return newFormation(cfg, rng, cells, cols), nil
}

// newFormation wraps a grid already known to be rectangular.
func newFormation(cfg *config.Config, rng *rand.Rand, cells [][]*Alien, cols int) *Formation {
	f := &Formation{
		cfg:   cfg,
		rng:   rng,
		cells: cells,
		rows:  len(cells),
		cols:  cols,
		dir:   MarchRight,
	}
	f.fireTarget = f.nextFireTarget()
	return f
}

func (f *Formation) nextFireTarget() int {
	return 1 + f.rng.Intn(f.cfg.Bolt.MaxFireInterval)
}

// Rows returns the fixed grid height.
func (f *Formation) Rows() int { return f.rows }

// Columns returns the fixed grid width.
func (f *Formation) Columns() int { return f.cols }

// Direction returns the current march heading.
func (f *Formation) Direction() Direction { return f.dir }

// At returns the alien in a cell, or false when the cell is empty.
func (f *Formation) At(row, col int) (*Alien, bool) {
	if row < 0 || row >= f.rows || col < 0 || col >= f.cols {
		return nil, false
	}
	a := f.cells[row][col]
	return a, a != nil
}

// Aliens returns the survivors in row-major order.
func (f *Formation) Aliens() []*Alien {
	var out []*Alien
	for _, row := range f.cells {
		for _, a := range row {
			if a != nil {
				out = append(out, a)
			}
		}
	}
	return out
}

// Alive counts the survivors.
func (f *Formation) Alive() int {
	n := 0
	for _, row := range f.cells {
		for _, a := range row {
			if a != nil {
				n++
			}
		}
	}
	return n
}

// AllDead reports whether every cell is empty.
func (f *Formation) AllDead() bool {
	return f.Alive() == 0
}

// kill empties the cell holding a.
func (f *Formation) kill(a *Alien) {
	if got, ok := f.At(a.Row, a.Col); ok && got == a {
		f.cells[a.Row][a.Col] = nil
	}
}

// extremes returns the survivors with the smallest and largest x.
func (f *Formation) extremes() (leftmost, rightmost *Alien, ok bool) {
	for _, row := range f.cells {
		for _, a := range row {
			if a == nil {
				continue
			}
			if leftmost == nil || a.X < leftmost.X {
				leftmost = a
			}
			if rightmost == nil || a.X > rightmost.X {
				rightmost = a
			}
		}
	}
	return leftmost, rightmost, leftmost != nil
}

// Bottommost returns the survivor with the lowest bottom edge.
func (f *Formation) Bottommost() (*Alien, bool) {
	var low *Alien
	for _, row := range f.cells {
		for _, a := range row {
			if a != nil && (low == nil || a.bottom() < low.bottom()) {
				low = a
			}
		}
	}
	return low, low != nil
}

// LiveColumns lists, in ascending order, the columns that still hold at least
// one alien.
func (f *Formation) LiveColumns() []int {
	var cols []int
	for col := 0; col < f.cols; col++ {
		if _, ok := f.LowestInColumn(col); ok {
			cols = append(cols, col)
		}
	}
	return cols
}

// LowestInColumn returns the alive alien with the highest row index in col,
// i.e. the one nearest the player.
func (f *Formation) LowestInColumn(col int) (*Alien, bool) {
	for row := f.rows - 1; row >= 0; row-- {
		if a, ok := f.At(row, col); ok {
			return a, true
		}
	}
	return nil, false
}

// Step advances the march clock by dt. When a full step interval has
// elapsed it marches once and may return a freshly fired enemy bolt.
func (f *Formation) Step(dt float64) *Bolt {
	if f.rows == 0 || f.cols == 0 {
		return nil
	}
	f.timer += dt
	if f.timer < f.cfg.Alien.StepSeconds || f.AllDead() {
		return nil
	}
	f.timer = 0
	f.march()
	return f.fire()
}

// march moves the whole block one step sideways, or drops it one row and
// reverses when the next step would cross the screen edge.
func (f *Formation) march() {
	leftmost, rightmost, ok := f.extremes()
	if !ok {
		return
	}
	walk := f.cfg.Alien.HWalk
	switch f.dir {
	case MarchRight:
		if rightmost.right()+walk < f.cfg.Screen.Width {
			f.translate(walk, 0)
			return
		}
		f.translate(0, -f.cfg.Alien.VWalk)
		f.dir = MarchLeft
	case MarchLeft:
		if leftmost.left()-walk > 0 {
			f.translate(-walk, 0)
			return
		}
		f.translate(0, -f.cfg.Alien.VWalk)
		f.dir = MarchRight
	}
}

func (f *Formation) translate(dx, dy float64) {
	for _, row := range f.cells {
		for _, a := range row {
			if a != nil {
				a.X += dx
				a.Y += dy
			}
		}
	}
}

// fire runs once per march step. Eligible columns are re-derived every call
// so a column drops out as soon as its last alien dies.
func (f *Formation) fire() *Bolt {
	cols := f.LiveColumns()
	if len(cols) == 0 {
		return nil
	}
	if f.stepsSinceFire != f.fireTarget {
		f.stepsSinceFire++
		return nil
	}
	f.stepsSinceFire = 0
	shooter, _ := f.LowestInColumn(cols[f.rng.Intn(len(cols))])
	f.fireTarget = f.nextFireTarget()
	return newBolt(shooter.X, shooter.Y, f.cfg, OwnerEnemy)
}
