package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Alien-Invaders/internal/invaders"
)

// tierColors tints aliens by sprite tier.
var tierColors = [3]color.RGBA{
	{R: 90, G: 230, B: 120, A: 255},  // tier 0: bottom rows
	{R: 90, G: 200, B: 240, A: 255},  // tier 1
	{R: 230, G: 110, B: 230, A: 255}, // tier 2: top row
}

var (
	shipColor       = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	explosionColor  = color.RGBA{R: 255, G: 170, B: 40, A: 255}
	defenseColor    = color.RGBA{R: 200, G: 60, B: 60, A: 180}
	playerBoltColor = color.RGBA{R: 255, G: 255, B: 120, A: 255}
	enemyBoltColor  = color.RGBA{R: 255, G: 90, B: 90, A: 255}
	textColor       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// debrisDirs are the unit directions explosion fragments fly along.
var debrisDirs = [8][2]float32{
	{1, 0}, {0.7, 0.7}, {0, 1}, {-0.7, 0.7},
	{-1, 0}, {-0.7, -0.7}, {0, -1}, {0.7, -0.7},
}

// toScreen converts a y-up world point to screen pixels.
func toScreen(fieldH int, offX, offY int, x, y float64) (float32, float32) {
	return float32(offX) + float32(x), float32(offY) + float32(float64(fieldH)-y)
}

// boxRect returns the screen rect (top-left, size) of a centred world box.
func boxRect(fieldH int, offX, offY int, op invaders.DrawOp) (x, y, w, h float32) {
	x, y = toScreen(fieldH, offX, offY, op.X-op.W/2, op.Y+op.H/2)
	return x, y, float32(op.W), float32(op.H)
}

func (g *Game) drawOp(screen *ebiten.Image, op invaders.DrawOp) {
	switch op.Kind {
	case invaders.DrawAlien:
		g.drawAlien(screen, op)
	case invaders.DrawShip:
		g.drawShip(screen, op)
	case invaders.DrawDefenseLine:
		x0, y := toScreen(g.fieldH, g.offX, g.offY, op.X, op.Y)
		vector.StrokeLine(screen, x0, y, x0+float32(op.W), y, 1.0, defenseColor, false)
	case invaders.DrawBolt:
		x, y, w, h := boxRect(g.fieldH, g.offX, g.offY, op)
		c := enemyBoltColor
		if op.Owner == invaders.OwnerPlayer {
			c = playerBoltColor
		}
		vector.FillRect(screen, x, y, w, h, c, false)
	case invaders.DrawText:
		g.drawText(screen, op)
	}
}

// drawAlien renders a blocky invader: body, eyes and two legs whose stance
// depends on the tier.
func (g *Game) drawAlien(screen *ebiten.Image, op invaders.DrawOp) {
	x, y, w, h := boxRect(g.fieldH, g.offX, g.offY, op)
	c := tierColors[((op.Tier%3)+3)%3]
	vector.FillRect(screen, x+w*0.15, y+h*0.2, w*0.7, h*0.5, c, false)
	vector.FillRect(screen, x, y+h*0.35, w, h*0.2, c, false)

	eye := color.RGBA{R: 6, G: 6, B: 14, A: 255}
	vector.FillRect(screen, x+w*0.3, y+h*0.3, w*0.12, h*0.12, eye, false)
	vector.FillRect(screen, x+w*0.58, y+h*0.3, w*0.12, h*0.12, eye, false)

	spread := w * 0.1 * float32(op.Tier)
	vector.FillRect(screen, x+w*0.2-spread, y+h*0.7, w*0.15, h*0.25, c, false)
	vector.FillRect(screen, x+w*0.65+spread, y+h*0.7, w*0.15, h*0.25, c, false)
}

// drawShip renders the cannon, or while exploding a ring of debris that
// widens with the frame.
func (g *Game) drawShip(screen *ebiten.Image, op invaders.DrawOp) {
	x, y, w, h := boxRect(g.fieldH, g.offX, g.offY, op)
	if !op.Exploding {
		vector.FillRect(screen, x, y+h*0.5, w, h*0.5, shipColor, false)
		vector.FillRect(screen, x+w*0.4, y, w*0.2, h*0.5, shipColor, false)
		return
	}
	cx, cy := x+w/2, y+h/2
	r := float32(4 + op.Frame*3)
	for _, d := range debrisDirs {
		vector.FillRect(screen, cx+d[0]*r-2, cy+d[1]*r-2, 4, 4, explosionColor, false)
	}
	vector.StrokeRect(screen, cx-r/2, cy-r/2, r, r, 1.0, explosionColor, false)
}

// textScale maps a nominal point size onto an integer upscale of the 7x13
// bitmap face.
func textScale(size int) int {
	if s := size / 20; s > 1 {
		return s
	}
	return 1
}

func (g *Game) drawText(screen *ebiten.Image, op invaders.DrawOp) {
	img := g.text.get(op.Text)
	scale := float64(textScale(op.Size))
	w, h := img.Bounds().Dx(), img.Bounds().Dy()

	x, y := toScreen(g.fieldH, g.offX, g.offY, op.X, op.Y)
	sx := float64(x)
	if op.Anchor == invaders.AnchorCenter {
		sx -= float64(w) * scale / 2
	}
	sy := float64(y) - float64(h)*scale/2

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(scale, scale)
	opts.GeoM.Translate(sx, sy)
	screen.DrawImage(img, opts)
}

// textCache keeps one 1x render per string; labels are redrawn every frame
// but rarely change.
type textCache struct {
	images map[string]*ebiten.Image
}

func newTextCache() *textCache {
	return &textCache{images: make(map[string]*ebiten.Image)}
}

func (c *textCache) get(s string) *ebiten.Image {
	if img, ok := c.images[s]; ok {
		return img
	}
	b := text.BoundString(basicfont.Face7x13, s)
	w, h := b.Dx(), b.Dy()
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := ebiten.NewImage(w, h)
	text.Draw(img, s, basicfont.Face7x13, -b.Min.X, -b.Min.Y, textColor)
	// HUD strings change with the score; drop the cache before it grows.
	if len(c.images) > 64 {
		for k, old := range c.images {
			old.Deallocate()
			delete(c.images, k)
		}
	}
	c.images[s] = img
	return img
}
