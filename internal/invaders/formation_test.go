package invaders

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/Garsondee/Alien-Invaders/internal/config"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(12345)) // #nosec G404 -- tests
}

// gridOf builds a formation from rows of x positions; a negative x marks an
// empty cell. Row 0 sits at y and each further row 50px lower.
func gridOf(t *testing.T, cfg *config.Config, y float64, rows ...[]float64) *Formation {
	t.Helper()
	cells := make([][]*Alien, len(rows))
	for r, xs := range rows {
		cells[r] = make([]*Alien, len(xs))
		for c, x := range xs {
			if x < 0 {
				continue
			}
			cells[r][c] = NewAlien(x, y-float64(r)*50, cfg.Alien.Width, cfg.Alien.Height, r, c)
		}
	}
	f, err := NewFormationFromGrid(cfg, testRNG(), cells)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	return f
}

func TestNewFormation_DefaultLayout(t *testing.T) {
	cfg := config.Defaults()
	f := NewFormation(cfg, testRNG())
	if f.Rows() != 5 || f.Columns() != 12 || f.Alive() != 60 {
		t.Fatalf("expected 5x12 full grid, got %dx%d alive=%d", f.Rows(), f.Columns(), f.Alive())
	}
	first, _ := f.At(0, 0)
	if first.X != 65 || first.Y != 600 {
		t.Fatalf("first alien should sit at (65,600), got (%.0f,%.0f)", first.X, first.Y)
	}
	next, _ := f.At(0, 1)
	if next.X-first.X != 49 {
		t.Fatalf("column pitch should be 49, got %.0f", next.X-first.X)
	}
	below, _ := f.At(1, 0)
	if first.Y-below.Y != 49 {
		t.Fatalf("row pitch should be 49, got %.0f", first.Y-below.Y)
	}
	wantTiers := []int{2, 1, 1, 0, 0}
	for row, want := range wantTiers {
		a, _ := f.At(row, 0)
		if a.Tier != want {
			t.Fatalf("row %d: expected tier %d, got %d", row, want, a.Tier)
		}
	}
	if f.Direction() != MarchRight {
		t.Fatalf("formation should start marching right")
	}
}

func TestFormation_FlipsAtRightEdge(t *testing.T) {
	cfg := config.Defaults()
	f := gridOf(t, cfg, 500, []float64{700})
	a, _ := f.At(0, 0)

	moves := 0
	for step := 0; step < 50 && f.Direction() == MarchRight; step++ {
		prevX, prevY := a.X, a.Y
		wouldCross := prevX+a.W/2+cfg.Alien.HWalk >= cfg.Screen.Width
		f.Step(cfg.Alien.StepSeconds)

		if f.Direction() == MarchLeft {
			if !wouldCross {
				t.Fatalf("flipped at x=%.1f before reaching the edge", prevX)
			}
			if a.X != prevX || a.Y != prevY-cfg.Alien.VWalk {
				t.Fatalf("flip step should drop once: (%.1f,%.1f) -> (%.1f,%.1f)", prevX, prevY, a.X, a.Y)
			}
			break
		}
		if wouldCross {
			t.Fatalf("should have flipped at x=%.1f", prevX)
		}
		if a.X != prevX+cfg.Alien.HWalk || a.Y != prevY {
			t.Fatalf("expected +%.0f in x only, got (%.1f,%.1f) -> (%.1f,%.1f)", cfg.Alien.HWalk, prevX, prevY, a.X, a.Y)
		}
		moves++
	}
	if f.Direction() != MarchLeft {
		t.Fatal("formation never reversed")
	}
	if moves != 10 {
		t.Fatalf("expected 10 moves before the flip from x=700, got %d", moves)
	}

	// The following step walks left without another drop.
	y := a.Y
	x := a.X
	f.Step(cfg.Alien.StepSeconds)
	if a.Y != y || a.X != x-cfg.Alien.HWalk {
		t.Fatalf("step after flip should move left only, got (%.1f,%.1f) -> (%.1f,%.1f)", x, y, a.X, a.Y)
	}
}

func TestFormation_FlipsAtLeftEdge(t *testing.T) {
	cfg := config.Defaults()
	f := gridOf(t, cfg, 500, []float64{780})
	f.Step(cfg.Alien.StepSeconds) // drop + flip at the right edge
	if f.Direction() != MarchLeft {
		t.Fatalf("expected left after hitting the right edge")
	}
	a, _ := f.At(0, 0)
	for i := 0; i < 200 && f.Direction() == MarchLeft; i++ {
		f.Step(cfg.Alien.StepSeconds)
	}
	if f.Direction() != MarchRight {
		t.Fatal("never reversed at the left edge")
	}
	if a.left()-cfg.Alien.HWalk > 0 {
		t.Fatalf("reversed too early at x=%.1f", a.X)
	}
	if a.left() < 0 {
		t.Fatalf("alien left the screen: x=%.1f", a.X)
	}
}

func TestFormation_LockStep(t *testing.T) {
	cfg := config.Defaults()
	f := gridOf(t, cfg, 500,
		[]float64{100, 200, 300},
		[]float64{100, -1, 300},
	)
	before := map[*Alien][2]float64{}
	for _, a := range f.Aliens() {
		before[a] = [2]float64{a.X, a.Y}
	}
	for i := 0; i < 120; i++ {
		f.Step(cfg.Alien.StepSeconds)
	}
	var dx, dy float64
	first := true
	for a, p := range before {
		ddx, ddy := a.X-p[0], a.Y-p[1]
		if first {
			dx, dy, first = ddx, ddy, false
			continue
		}
		if ddx != dx || ddy != dy {
			t.Fatalf("%s drifted: (%.1f,%.1f) vs formation (%.1f,%.1f)", a, ddx, ddy, dx, dy)
		}
	}
	if dy >= 0 {
		t.Fatalf("formation should have dropped after 120 steps, dy=%.1f", dy)
	}
}

func TestFormation_StepAccumulatesDelta(t *testing.T) {
	cfg := config.Defaults()
	f := gridOf(t, cfg, 500, []float64{100})
	a, _ := f.At(0, 0)
	f.Step(0.25)
	f.Step(0.5)
	if a.X != 100 {
		t.Fatalf("should not march before a full interval, x=%.1f", a.X)
	}
	f.Step(0.25)
	if a.X != 108 {
		t.Fatalf("should march once the interval is reached, x=%.1f", a.X)
	}
	f.Step(0.75)
	if a.X != 108 {
		t.Fatalf("timer should restart from zero after a step, x=%.1f", a.X)
	}
}

func TestFormation_EmptyGridIsNoOp(t *testing.T) {
	cfg := config.Defaults()
	for _, cells := range [][][]*Alien{nil, {{}, {}}} {
		f, err := NewFormationFromGrid(cfg, testRNG(), cells)
		if err != nil {
			t.Fatalf("empty grid rejected: %v", err)
		}
		for i := 0; i < 10; i++ {
			if b := f.Step(cfg.Alien.StepSeconds); b != nil {
				t.Fatal("empty grid fired")
			}
		}
		if _, ok := f.Bottommost(); ok {
			t.Fatal("empty grid has no bottommost alien")
		}
	}
}

func TestNewFormation_ZeroRowsIsEmpty(t *testing.T) {
	cfg := config.Defaults()
	cfg.Alien.Rows = 0
	f := NewFormation(cfg, testRNG())
	if f == nil {
		t.Fatal("expected an empty formation, got nil")
	}
	if f.Rows() != 0 || f.Columns() != 0 || !f.AllDead() {
		t.Fatalf("expected 0x0 dead grid, got %dx%d alive=%d", f.Rows(), f.Columns(), f.Alive())
	}
	if b := f.Step(cfg.Alien.StepSeconds); b != nil {
		t.Fatal("empty grid fired")
	}
}

func TestFormation_AllDeadNeverFires(t *testing.T) {
	cfg := config.Defaults()
	cfg.Bolt.MaxFireInterval = 1
	f := gridOf(t, cfg, 500, []float64{-1, -1}, []float64{-1, -1})
	for i := 0; i < 20; i++ {
		if b := f.Step(cfg.Alien.StepSeconds); b != nil {
			t.Fatal("dead grid fired")
		}
	}
	if len(f.LiveColumns()) != 0 {
		t.Fatal("dead grid should have no live columns")
	}
}

func TestNewFormationFromGrid_RejectsRaggedGrid(t *testing.T) {
	cfg := config.Defaults()
	cells := [][]*Alien{make([]*Alien, 3), make([]*Alien, 2)}
	if _, err := NewFormationFromGrid(cfg, testRNG(), cells); !errors.Is(err, ErrContract) {
		t.Fatalf("expected ErrContract, got %v", err)
	}
}

func TestFormation_FiresFromLowestAlienInColumn(t *testing.T) {
	cfg := config.Defaults()
	cfg.Bolt.MaxFireInterval = 1
	f := gridOf(t, cfg, 500, []float64{100}, []float64{100}, []float64{-1})
	low, _ := f.At(1, 0)

	var b *Bolt
	for i := 0; i < 4 && b == nil; i++ {
		b = f.Step(cfg.Alien.StepSeconds)
	}
	if b == nil {
		t.Fatal("formation never fired")
	}
	if b.Owner != OwnerEnemy {
		t.Fatalf("expected enemy bolt, got %s", b.Owner)
	}
	if b.X != low.X || b.Y != low.Y {
		t.Fatalf("bolt should leave from row 1 at (%.0f,%.0f), got (%.0f,%.0f)", low.X, low.Y, b.X, b.Y)
	}
}

func TestFormation_FireTracksLiveColumns(t *testing.T) {
	cfg := config.Defaults()
	cfg.Bolt.MaxFireInterval = 1
	f := gridOf(t, cfg, 500, []float64{100, 200, 300})
	left, _ := f.At(0, 0)
	right, _ := f.At(0, 2)
	f.kill(left)
	f.kill(right)
	if cols := f.LiveColumns(); len(cols) != 1 || cols[0] != 1 {
		t.Fatalf("expected only column 1 live, got %v", cols)
	}
	mid, _ := f.At(0, 1)
	shots := 0
	for i := 0; i < 40; i++ {
		if b := f.Step(cfg.Alien.StepSeconds); b != nil {
			shots++
			if b.X != mid.X {
				t.Fatalf("shot from x=%.0f, only the middle alien (x=%.0f) can fire", b.X, mid.X)
			}
		}
	}
	if shots == 0 {
		t.Fatal("expected the middle column to fire")
	}
}

func TestFormation_FireIntervalWithinBounds(t *testing.T) {
	cfg := config.Defaults()
	cfg.Bolt.MaxFireInterval = 3
	f := gridOf(t, cfg, 500, []float64{100, 200})
	last := 0
	for step := 1; step <= 200; step++ {
		if b := f.Step(cfg.Alien.StepSeconds); b != nil {
			gap := step - last
			// A target of n means n skipped steps, then the shot.
			if gap < 2 || gap > cfg.Bolt.MaxFireInterval+1 {
				t.Fatalf("shot gap %d outside [2,%d]", gap, cfg.Bolt.MaxFireInterval+1)
			}
			last = step
		}
	}
	if last == 0 {
		t.Fatal("never fired in 200 steps")
	}
}

func TestFormation_Bottommost(t *testing.T) {
	cfg := config.Defaults()
	f := gridOf(t, cfg, 500, []float64{100, 200}, []float64{-1, 200})
	a, ok := f.Bottommost()
	if !ok || a.Row != 1 || a.Col != 1 {
		t.Fatalf("expected A[1,1] bottommost, got %v ok=%v", a, ok)
	}
	f.kill(a)
	a, ok = f.Bottommost()
	if !ok || a.Row != 0 {
		t.Fatalf("expected a row 0 alien after the kill, got %v ok=%v", a, ok)
	}
}
