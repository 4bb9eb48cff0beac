package invaders

import "github.com/Garsondee/Alien-Invaders/internal/config"

// Projectiles is the ordered list of bolts in flight. Removal keeps the
// relative order of the survivors so collision scans stay deterministic.
type Projectiles struct {
	cfg   *config.Config
	bolts []*Bolt
}

// NewProjectiles returns an empty bolt list.
func NewProjectiles(cfg *config.Config) *Projectiles {
	return &Projectiles{cfg: cfg}
}

// All returns the bolts in creation order. Callers must not mutate the slice.
func (p *Projectiles) All() []*Bolt { return p.bolts }

// Len returns the number of bolts in flight.
func (p *Projectiles) Len() int { return len(p.bolts) }

// Add appends b. A second player bolt is refused.
func (p *Projectiles) Add(b *Bolt) bool {
	if b == nil {
		return false
	}
	if b.IsPlayerBolt() && p.HasPlayerBolt() {
		return false
	}
	p.bolts = append(p.bolts, b)
	return true
}

// FirePlayer spawns a player bolt at the ship's nose unless one is already
// in flight.
func (p *Projectiles) FirePlayer(s *Ship) (*Bolt, bool) {
	if s == nil || p.HasPlayerBolt() {
		return nil, false
	}
	b := newBolt(s.X, s.top(), p.cfg, OwnerPlayer)
	p.bolts = append(p.bolts, b)
	return b, true
}

// PlayerBolt returns the single player bolt, if any.
func (p *Projectiles) PlayerBolt() (*Bolt, bool) {
	for _, b := range p.bolts {
		if b.IsPlayerBolt() {
			return b, true
		}
	}
	return nil, false
}

// HasPlayerBolt reports whether the player has a shot in flight.
func (p *Projectiles) HasPlayerBolt() bool {
	_, ok := p.PlayerBolt()
	return ok
}

// CountOwned counts bolts fired by o.
func (p *Projectiles) CountOwned(o Owner) int {
	n := 0
	for _, b := range p.bolts {
		if b.Owner == o {
			n++
		}
	}
	return n
}

// Advance moves every bolt one frame along its lane and drops those that
// have left the playfield: player bolts once their bottom edge clears the
// top, enemy bolts once their top edge clears the bottom.
func (p *Projectiles) Advance() {
	speed := p.cfg.Bolt.Speed
	kept := p.bolts[:0]
	for _, b := range p.bolts {
		if b.IsPlayerBolt() {
			if b.bottom() > p.cfg.Screen.Height {
				continue
			}
			b.Y += speed
		} else {
			if b.top() < 0 {
				continue
			}
			b.Y -= speed
		}
		kept = append(kept, b)
	}
	clearTail(p.bolts, len(kept))
	p.bolts = kept
}

// Remove drops b, keeping the order of the rest.
func (p *Projectiles) Remove(b *Bolt) bool {
	for i, x := range p.bolts {
		if x == b {
			copy(p.bolts[i:], p.bolts[i+1:])
			p.bolts[len(p.bolts)-1] = nil
			p.bolts = p.bolts[:len(p.bolts)-1]
			return true
		}
	}
	return false
}

// Clear drops every bolt.
func (p *Projectiles) Clear() {
	clearTail(p.bolts, 0)
	p.bolts = p.bolts[:0]
}

// clearTail nils out dropped pointers so the backing array does not pin them.
func clearTail(bolts []*Bolt, from int) {
	for i := from; i < len(bolts); i++ {
		bolts[i] = nil
	}
}
