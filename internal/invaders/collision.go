package invaders

// AlienPoints is the score for destroying an alien in row of a grid with
// cols columns. A zero remainder pays the top tier rather than nothing.
func AlienPoints(row, cols int) int {
	if cols <= 0 {
		return 0
	}
	if tier := row % cols; tier != 0 {
		return tier * 10
	}
	return cols * 10
}

// resolveShipHit checks enemy bolts against the ship in list order. The first
// overlapping bolt is removed and true returned; later bolts are left alone.
func resolveShipHit(ship *Ship, bolts *Projectiles) (*Bolt, bool) {
	if ship == nil {
		return nil, false
	}
	for _, b := range bolts.All() {
		if b.IsPlayerBolt() {
			continue
		}
		if ship.Collides(b) {
			bolts.Remove(b)
			return b, true
		}
	}
	return nil, false
}

// alienHit describes one destroyed alien.
type alienHit struct {
	alien  *Alien
	points int
}

// resolveAlienHit checks the player bolt against the grid in row-major order.
// The first alien it overlaps is killed and the bolt is spent.
func resolveAlienHit(f *Formation, bolts *Projectiles) (alienHit, bool) {
	b, ok := bolts.PlayerBolt()
	if !ok {
		return alienHit{}, false
	}
	for _, row := range f.cells {
		for _, a := range row {
			if a == nil || !a.Collides(b) {
				continue
			}
			f.kill(a)
			bolts.Remove(b)
			return alienHit{alien: a, points: AlienPoints(a.Row, f.cols)}, true
		}
	}
	return alienHit{}, false
}
