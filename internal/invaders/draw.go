package invaders

// DrawKind selects how a front-end renders a DrawOp.
type DrawKind int

const (
	DrawAlien DrawKind = iota
	DrawShip
	DrawDefenseLine
	DrawBolt
	DrawText
)

// Anchor positions a text overlay relative to its (X,Y).
type Anchor int

const (
	AnchorCenter Anchor = iota
	AnchorLeft
)

// DrawOp is one draw request in world coordinates (y-up, origin bottom-left).
// Shapes are given by centre and size; DrawDefenseLine spans X..X+W at Y.
type DrawOp struct {
	Kind DrawKind
	X, Y float64
	W, H float64

	Tier      int   // DrawAlien: sprite tier
	Frame     int   // DrawShip: explosion frame
	Exploding bool  // DrawShip: destruction sequence running
	Owner     Owner // DrawBolt

	Text   string // DrawText
	Size   int    // DrawText: nominal point size
	Anchor Anchor // DrawText
}

// label is a text overlay kept by the session between frames.
type label struct {
	text   string
	x, y   float64
	size   int
	anchor Anchor
}

func (l *label) op() DrawOp {
	return DrawOp{Kind: DrawText, X: l.x, Y: l.y, Text: l.text, Size: l.size, Anchor: l.anchor}
}
