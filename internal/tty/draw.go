package tty

import (
	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Alien-Invaders/internal/invaders"
)

// canvas is the part of tcell.Screen the renderer writes to.
type canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
}

var (
	tierRunes      = [3]rune{'M', 'W', 'V'}
	explosionRunes = [4]rune{'*', '+', 'x', '.'}
	tierStyles     = [3]tcell.Style{
		tcell.StyleDefault.Foreground(tcell.ColorGreen),
		tcell.StyleDefault.Foreground(tcell.ColorAqua),
		tcell.StyleDefault.Foreground(tcell.ColorFuchsia),
	}
	shipStyle       = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	explosionStyle  = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	lineStyle       = tcell.StyleDefault.Foreground(tcell.ColorMaroon)
	playerBoltStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	enemyBoltStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	textStyle       = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	statusStyle     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// grid maps world coordinates (y-up) onto terminal cells. The bottom row
// is kept for the status line.
type grid struct {
	cols, rows int
	worldW     float64
	worldH     float64
}

func newGrid(c canvas, worldW, worldH float64) grid {
	w, h := c.Size()
	rows := h - 1
	if rows < 1 {
		rows = 1
	}
	if w < 1 {
		w = 1
	}
	return grid{cols: w, rows: rows, worldW: worldW, worldH: worldH}
}

// cell returns the column and row containing world point (x, y), clamped to
// the playfield.
func (g grid) cell(x, y float64) (int, int) {
	col := int(x / g.worldW * float64(g.cols))
	row := int((g.worldH - y) / g.worldH * float64(g.rows))
	return clamp(col, 0, g.cols-1), clamp(row, 0, g.rows-1)
}

// span returns the cell rectangle covered by a centred box; every box covers
// at least one cell.
func (g grid) span(op invaders.DrawOp) (c0, r0, c1, r1 int) {
	c0, r0 = g.cell(op.X-op.W/2, op.Y+op.H/2)
	c1, r1 = g.cell(op.X+op.W/2, op.Y-op.H/2)
	return c0, r0, c1, r1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func fill(c canvas, c0, r0, c1, r1 int, r rune, style tcell.Style) {
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			c.SetContent(col, row, r, nil, style)
		}
	}
}

func putString(c canvas, col, row int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		c.SetContent(col+i, row, r, nil, style)
	}
}

// render draws the session's draw ops plus a status line.
func render(c canvas, g grid, ops []invaders.DrawOp, status string) {
	for _, op := range ops {
		switch op.Kind {
		case invaders.DrawAlien:
			tier := ((op.Tier % 3) + 3) % 3
			c0, r0, c1, r1 := g.span(op)
			fill(c, c0, r0, c1, r1, tierRunes[tier], tierStyles[tier])
		case invaders.DrawShip:
			c0, r0, c1, r1 := g.span(op)
			if op.Exploding {
				fill(c, c0, r0, c1, r1, explosionRunes[op.Frame%len(explosionRunes)], explosionStyle)
				continue
			}
			fill(c, c0, r1, c1, r1, '=', shipStyle)
			col, _ := g.cell(op.X, op.Y)
			c.SetContent(col, r0, '^', nil, shipStyle)
		case invaders.DrawDefenseLine:
			c0, row := g.cell(op.X, op.Y)
			c1, _ := g.cell(op.X+op.W, op.Y)
			fill(c, c0, row, c1, row, '-', lineStyle)
		case invaders.DrawBolt:
			col, row := g.cell(op.X, op.Y)
			if op.Owner == invaders.OwnerPlayer {
				c.SetContent(col, row, '|', nil, playerBoltStyle)
			} else {
				c.SetContent(col, row, '!', nil, enemyBoltStyle)
			}
		case invaders.DrawText:
			col, row := g.cell(op.X, op.Y)
			if op.Anchor == invaders.AnchorCenter {
				col -= len([]rune(op.Text)) / 2
			}
			putString(c, clamp(col, 0, g.cols-1), row, op.Text, textStyle)
		}
	}
	putString(c, 0, g.rows, status, statusStyle)
}
